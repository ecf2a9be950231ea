// Package graph implements the conjunctive graph a query assembles its
// procedure-call results into: a set of named subgraphs, queried as a
// single union by the final SPARQL evaluation step.
package graph

import (
	"github.com/google/uuid"

	"github.com/bas-stringer/scry/rdf"
)

// Graph is one query's exclusive working graph. It is never shared across
// queries and is discarded along with the query at cleanup.
type Graph struct {
	named map[string][]rdf.Triple
	order []string
}

// New returns an empty conjunctive graph.
func New() *Graph {
	return &Graph{named: make(map[string][]rdf.Triple)}
}

// AddNamedSubgraph appends triples as a freshly named subgraph and returns
// the generated name. Used once per emitted procedure solution.
func (g *Graph) AddNamedSubgraph(triples []rdf.Triple) string {
	name := "urn:scry:subgraph:" + uuid.NewString()
	g.AddSubgraphNamed(name, triples)
	return name
}

// AddSubgraphNamed appends triples under an explicit graph name, creating
// the graph if it doesn't exist yet or extending it if it does. Used for the
// memoized orb_description graph, which every Orb handler shares.
func (g *Graph) AddSubgraphNamed(name string, triples []rdf.Triple) {
	if _, exists := g.named[name]; !exists {
		g.order = append(g.order, name)
	}
	g.named[name] = append(g.named[name], triples...)
}

// HasNamed reports whether a subgraph with the given name has already been
// materialized (used to memoize the orb_description graph: build it once).
func (g *Graph) HasNamed(name string) bool {
	_, ok := g.named[name]
	return ok
}

// Named returns the triples of one named subgraph, or nil if it doesn't
// exist.
func (g *Graph) Named(name string) []rdf.Triple {
	return g.named[name]
}

// All returns every triple in the graph, across all named subgraphs, in the
// order their subgraphs were added. The final SPARQL evaluation reads this
// view when the query asks about the sentinel orb subject, and AllExcept the
// orb_description graph otherwise; the Orb handler reads only Named.
func (g *Graph) All() []rdf.Triple {
	var out []rdf.Triple
	for _, name := range g.order {
		out = append(out, g.named[name]...)
	}
	return out
}

// AllExcept returns every triple except those in the named subgraph —
// useful when a caller wants the default graph without a side table like
// orb_description mixed in.
func (g *Graph) AllExcept(excludeName string) []rdf.Triple {
	var out []rdf.Triple
	for _, name := range g.order {
		if name == excludeName {
			continue
		}
		out = append(out, g.named[name]...)
	}
	return out
}

package handler

import (
	"github.com/bas-stringer/scry/merge"
	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/sparqleval"
)

// Orb wraps a `GRAPH <orb_description> { ... }` block: the service's
// self-description, queried as SELECT DISTINCT over the inner pattern's
// variables. It declares no dependencies and runs eagerly at construction
// time, before the scheduler starts.
type Orb struct {
	outputVars []string
	bindings   []merge.Row
}

// NewOrb materializes the orb_description graph (once per query, memoized
// by q) and evaluates pattern against it as SELECT DISTINCT over vars.
func NewOrb(pattern []rdf.Triple, q QueryContext) (*Orb, error) {
	graphName, err := q.EnsureOrbDescription()
	if err != nil {
		return nil, err
	}
	vars := distinctVars(pattern)

	rows, err := sparqleval.Select(pattern, vars, true, q.Graph().Named(graphName))
	if err != nil {
		return nil, err
	}
	bindings := make([]merge.Row, 0, len(rows))
	for _, r := range rows {
		bindings = append(bindings, merge.Row(r))
	}
	return &Orb{outputVars: vars, bindings: bindings}, nil
}

func distinctVars(triples []rdf.Triple) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range triples {
		for _, n := range t.Vars() {
			name := n.VarName()
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

func (o *Orb) InputVars() []string   { return nil }
func (o *Orb) OutputVars() []string  { return o.outputVars }
func (o *Orb) Executed() bool        { return true }
func (o *Orb) Bindings() []merge.Row { return o.bindings }

// Execute is a no-op: an Orb handler's bindings are already fixed at
// construction time.
func (o *Orb) Execute(deps [][]merge.Row, q QueryContext) error { return nil }

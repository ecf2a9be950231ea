package algebra

import (
	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/scryerr"
)

// Walked is the flat decomposition of a parsed query's pattern: the plain
// BGP triples, plus every VALUES/BIND/orb-description-GRAPH node found
// anywhere in it.
type Walked struct {
	Triples []rdf.Triple
	Values  []*ValuesClause
	Binds   []*BindClause
	Orbs    []*GraphClause
}

// Walk flattens q's pattern tree into a Walked, dispatching on node kind:
// VALUES and BIND always become their own handler-producing node; a GRAPH
// whose IRI is the orb_description sentinel becomes an Orb node; everything
// else contributes its triples to the flat BGP list.
func Walk(q *Query) (*Walked, error) {
	w := &Walked{}
	if err := walkPattern(q.Pattern, w, true); err != nil {
		return nil, err
	}
	return w, nil
}

func walkPattern(ggp *GroupGraphPattern, w *Walked, topLevel bool) error {
	w.Triples = append(w.Triples, ggp.Triples...)
	w.Values = append(w.Values, ggp.Values...)
	w.Binds = append(w.Binds, ggp.Binds...)

	for _, g := range ggp.Graphs {
		if g.IRI == rdf.SentinelOrbDescription.Value() {
			if !topLevel {
				return scryerr.ErrParse.New("GRAPH <orb_description> must appear at the top level of the query")
			}
			if len(g.Pattern.Values) > 0 || len(g.Pattern.Binds) > 0 {
				return scryerr.ErrParse.New("BIND/VALUES are not permitted inside GRAPH <orb_description>")
			}
			w.Orbs = append(w.Orbs, g)
			continue
		}
		// A GRAPH clause naming anything other than the orb_description
		// sentinel is left to the delegated SPARQL evaluator; its triples
		// still need to reach the BGP so the final query can see them.
		if err := walkPattern(g.Pattern, w, false); err != nil {
			return err
		}
	}
	return nil
}

package rdf

// Triple is an ordered (subject, predicate, object) of RDF nodes. Any of the
// three positions may carry a Variable when the triple comes straight out of
// a parsed basic graph pattern; once a handler materializes a solution, the
// triples it emits into the conjunctive graph are variable-free.
type Triple struct {
	Subject   Node
	Predicate Node
	Object    Node
}

// HasVariableObject reports whether this triple's object is a SPARQL
// variable — the distinction the Call handler uses to split input/output
// triples into "known" vs "variable".
func (t Triple) HasVariableObject() bool {
	return t.Object.IsVariable()
}

// Vars returns every variable appearing in any position of t, in
// subject/predicate/object order.
func (t Triple) Vars() []Node {
	var out []Node
	for _, n := range [3]Node{t.Subject, t.Predicate, t.Object} {
		if n.IsVariable() {
			out = append(out, n)
		}
	}
	return out
}

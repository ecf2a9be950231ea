package algebra

import "github.com/bas-stringer/scry/rdf"

// Query is a fully parsed SELECT query: the projected variables (or "*"
// for all), the DISTINCT flag, and the top-level group graph pattern.
type Query struct {
	SelectAll bool
	Distinct  bool
	Vars      []string
	Pattern   *GroupGraphPattern
}

// GroupGraphPattern is one `{ ... }` block: a basic graph pattern's triples
// plus any VALUES/BIND/GRAPH clauses nested directly inside it. Nested plain
// groups (bare `{ }` with no special clause) are flattened into the parent
// at parse time via a recursive "walk children" fall-through.
type GroupGraphPattern struct {
	Triples []rdf.Triple
	Values  []*ValuesClause
	Binds   []*BindClause
	Graphs  []*GraphClause
}

// ValuesClause is an inline VALUES block: a fixed list of variable names and
// the rows of values bound to them.
type ValuesClause struct {
	Vars []string
	Rows []map[string]rdf.Node
}

// BindClause is `BIND(expr AS ?var)`.
type BindClause struct {
	Expr Expr
	Var  string
}

// GraphClause is `GRAPH <iri> { pattern }`.
type GraphClause struct {
	IRI     string
	Pattern *GroupGraphPattern
}

// Expr is a small arithmetic expression tree usable in BIND. It supports
// variable references, RDF-node literals, and binary +,-,*,/ operators —
// the subset the service's own procedures (and the queries exercising them)
// actually need; anything richer belongs to the delegated SPARQL evaluator.
type Expr interface {
	// Vars returns every variable this expression references.
	Vars() []string
}

// VarExpr references a bound variable.
type VarExpr struct{ Name string }

func (e VarExpr) Vars() []string { return []string{e.Name} }

// LiteralExpr is a constant RDF node.
type LiteralExpr struct{ Node rdf.Node }

func (e LiteralExpr) Vars() []string { return nil }

// BinOpExpr is a binary arithmetic expression.
type BinOpExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (e BinOpExpr) Vars() []string {
	return append(append([]string(nil), e.Left.Vars()...), e.Right.Vars()...)
}

// Package rdf defines the tagged RDF value model shared by every layer of
// the query-to-execution pipeline: IRIs, literals, blank nodes and SPARQL
// variables.
package rdf

import (
	"fmt"

	"github.com/knakk/rdf"
)

// Kind discriminates the four cases a Node can take.
type Kind int

const (
	// KindInvalid is the zero value: a Node that was never constructed
	// through one of the New* functions. IsIRI/IsLiteral/IsVariable all
	// report false for it, so an accidentally-zero Node never masquerades
	// as a real term.
	KindInvalid Kind = iota
	// KindIRI is a full IRI, e.g. <http://www.scry.com/math/sqrt>.
	KindIRI
	// KindLiteral is a literal value, optionally typed or language-tagged.
	KindLiteral
	// KindBlank is a blank node.
	KindBlank
	// KindVariable is a SPARQL query variable, e.g. ?x.
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "IRI"
	case KindLiteral:
		return "Literal"
	case KindBlank:
		return "Blank"
	case KindVariable:
		return "Variable"
	default:
		return "Invalid"
	}
}

// IsValid reports whether n was actually constructed through one of the
// New* functions, as opposed to being a zero-value Node{}.
func (n Node) IsValid() bool { return n.kind != KindInvalid }

// Node is a single RDF term or SPARQL variable. It wraps github.com/knakk/rdf's
// Term for the three RDF-proper cases (IRI, Literal, Blank) and adds the one
// case a triple store has no business knowing about: Variable.
//
// The term's lexical pieces are also kept on Node directly (raw, lang,
// datatype) so equality and formatting never depend on guessing the exact
// serialization knakk/rdf.Term.String() produces.
type Node struct {
	kind     Kind
	term     rdf.Term // the knakk/rdf term, for interop with RDF-aware code
	raw      string   // IRI value, literal value, blank node id, or variable name
	lang     string   // literal language tag, if any
	datatype string   // literal datatype IRI, if any
}

// NewIRI builds an IRI node.
func NewIRI(value string) (Node, error) {
	t, err := rdf.NewIRI(value)
	if err != nil {
		return Node{}, fmt.Errorf("rdf: invalid IRI %q: %w", value, err)
	}
	return Node{kind: KindIRI, term: t, raw: value}, nil
}

// MustIRI panics if value is not a valid IRI; used for the handful of
// compile-time-known sentinel IRIs (service namespace, orb, orb_description).
func MustIRI(value string) Node {
	n, err := NewIRI(value)
	if err != nil {
		panic(err)
	}
	return n
}

// NewLiteral builds a plain (untyped, unlocalized) literal.
func NewLiteral(value string) (Node, error) {
	t, err := rdf.NewLiteral(value)
	if err != nil {
		return Node{}, fmt.Errorf("rdf: invalid literal %q: %w", value, err)
	}
	return Node{kind: KindLiteral, term: t, raw: value}, nil
}

// NewTypedLiteral builds a literal carrying an explicit datatype IRI.
func NewTypedLiteral(value string, datatype Node) (Node, error) {
	if datatype.kind != KindIRI {
		return Node{}, fmt.Errorf("rdf: datatype of a typed literal must be an IRI, got %s", datatype.kind)
	}
	t := rdf.NewTypedLiteral(value, datatype.term.(rdf.IRI))
	return Node{kind: KindLiteral, term: t, raw: value, datatype: datatype.raw}, nil
}

// NewLangLiteral builds a language-tagged literal.
func NewLangLiteral(value, lang string) (Node, error) {
	t, err := rdf.NewLangLiteral(value, lang)
	if err != nil {
		return Node{}, fmt.Errorf("rdf: invalid lang literal %q@%s: %w", value, lang, err)
	}
	return Node{kind: KindLiteral, term: t, raw: value, lang: lang}, nil
}

// NewBlank builds a blank node with the given local identifier.
func NewBlank(id string) (Node, error) {
	t, err := rdf.NewBlank(id)
	if err != nil {
		return Node{}, fmt.Errorf("rdf: invalid blank node %q: %w", id, err)
	}
	return Node{kind: KindBlank, term: t, raw: id}, nil
}

// NewVariable builds a SPARQL variable node. name excludes the leading '?'.
func NewVariable(name string) Node {
	return Node{kind: KindVariable, raw: name}
}

// Kind reports which of the four cases this Node holds.
func (n Node) Kind() Kind { return n.kind }

// IsVariable reports whether n is a SPARQL variable.
func (n Node) IsVariable() bool { return n.kind == KindVariable }

// IsIRI reports whether n is an IRI.
func (n Node) IsIRI() bool { return n.kind == KindIRI }

// IsLiteral reports whether n is a literal.
func (n Node) IsLiteral() bool { return n.kind == KindLiteral }

// VarName returns the variable's name (without '?'). Panics if n is not a
// variable.
func (n Node) VarName() string {
	if n.kind != KindVariable {
		panic("rdf: VarName called on a non-variable Node")
	}
	return n.raw
}

// Value returns the node's raw lexical value: the IRI string, the literal's
// value, or the blank node's local id. Panics for variables; use VarName.
func (n Node) Value() string {
	if n.kind == KindVariable {
		panic("rdf: Value called on a Variable Node")
	}
	return n.raw
}

// Datatype returns the literal's datatype IRI string, or "" if untyped.
func (n Node) Datatype() string { return n.datatype }

// Lang returns the literal's language tag, or "" if none.
func (n Node) Lang() string { return n.lang }

// Term returns the underlying knakk/rdf Term. Panics if n is a variable,
// which has no RDF term representation.
func (n Node) Term() rdf.Term {
	if n.kind == KindVariable {
		panic("rdf: Term called on a Variable Node")
	}
	return n.term
}

// Lexical returns a human-readable form of the node, used for String(),
// result serialization and row deduplication keys.
func (n Node) Lexical() string {
	switch n.kind {
	case KindVariable:
		return "?" + n.raw
	default:
		return n.raw
	}
}

// Equal reports whether two nodes denote the same RDF term or variable.
func (n Node) Equal(other Node) bool {
	if n.kind != other.kind {
		return false
	}
	if n.kind == KindVariable {
		return n.raw == other.raw
	}
	return n.raw == other.raw && n.lang == other.lang && n.datatype == other.datatype
}

func (n Node) String() string { return n.Lexical() }

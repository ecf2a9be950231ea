package registry

import (
	"strings"

	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/scryerr"
)

// ValueType classifies the shape of value an Argument carries: a single
// scalar or a homogeneous array, mirroring services/MATH's distinction
// between its val_* and array_* argument ids.
type ValueType int

const (
	ValueTypeScalar ValueType = iota
	ValueTypeArray
)

func (v ValueType) String() string {
	if v == ValueTypeArray {
		return "array"
	}
	return "scalar"
}

// Argument describes one named input or output slot of a Procedure: its
// specifier (the id string used after '?' in a predicate IRI), the shape of
// value it carries, an optional datatype IRI, and a human description.
type Argument struct {
	ID          string
	URI         rdf.Node
	Valuetype   ValueType
	Datatype    string
	Description string
}

// NewArgument builds an Argument descriptor. id must be non-empty and not
// "_": both are reserved to mean "use the default" in a predicate specifier.
func NewArgument(id string, uri rdf.Node, valuetype ValueType, datatype, description string) (Argument, error) {
	if strings.TrimSpace(id) == "" || id == "_" {
		return Argument{}, scryerr.ErrRegistryInvalid.New("<argument>", "argument id must be non-empty and not \"_\"")
	}
	return Argument{
		ID:          id,
		URI:         uri,
		Valuetype:   valuetype,
		Datatype:    datatype,
		Description: description,
	}, nil
}

// AssertType checks that node matches this argument's declared valuetype
// and datatype before a procedure runs. A scalar argument takes a literal
// or an IRI; an array argument takes only a literal, since arrays travel as
// a separator-joined lexical value. A literal carrying an explicit datatype
// must agree with the argument's declared datatype, when both are present.
func (a Argument) AssertType(node rdf.Node, procedureURI string) error {
	switch node.Kind() {
	case rdf.KindVariable:
		return scryerr.ErrBadSpecifier.New(a.ID, procedureURI, "value is unbound")
	case rdf.KindBlank:
		return scryerr.ErrBadSpecifier.New(a.ID, procedureURI, "blank node carries no value")
	case rdf.KindIRI:
		if a.Valuetype == ValueTypeArray {
			return scryerr.ErrBadSpecifier.New(a.ID, procedureURI,
				"array argument requires a literal value, got IRI <"+node.Value()+">")
		}
	case rdf.KindLiteral:
		if dt := node.Datatype(); dt != "" && a.Datatype != "" && dt != a.Datatype {
			return scryerr.ErrBadSpecifier.New(a.ID, procedureURI,
				"literal datatype <"+dt+"> does not match declared datatype <"+a.Datatype+">")
		}
	default:
		return scryerr.ErrBadSpecifier.New(a.ID, procedureURI, "value is not a usable RDF term")
	}
	return nil
}

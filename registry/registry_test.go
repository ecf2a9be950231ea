package registry

import (
	"testing"

	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/scryerr"
)

func valArg(t *testing.T, id string) Argument {
	t.Helper()
	a, err := NewArgument(id, rdf.Node{}, ValueTypeScalar, "", "")
	if err != nil {
		t.Fatalf("NewArgument(%s): %v", id, err)
	}
	return a
}

func TestAssertValidityDerivesDefaults(t *testing.T) {
	in := valArg(t, "val_in")
	out := valArg(t, "val_out")
	p := &Procedure{
		URI:       "http://www.scry.com/math/absolute",
		Callable:  func(map[string]rdf.Node, map[string]bool, QueryHandle) (Result, error) { return Empty(), nil },
		Accepts:   []Argument{in},
		Requires:  []Argument{in},
		Generates: []Argument{out},
	}
	if err := p.AssertValidity(); err != nil {
		t.Fatalf("AssertValidity: %v", err)
	}
	if p.DefaultInput == nil || p.DefaultInput.ID != "val_in" {
		t.Errorf("expected derived default input val_in, got %+v", p.DefaultInput)
	}
	if p.DefaultOutput == nil || p.DefaultOutput.ID != "val_out" {
		t.Errorf("expected derived default output val_out, got %+v", p.DefaultOutput)
	}
}

func TestAssertValidityRejectsRequiresNotInAccepts(t *testing.T) {
	p := &Procedure{
		URI:      "http://www.scry.com/math/bad",
		Callable: func(map[string]rdf.Node, map[string]bool, QueryHandle) (Result, error) { return Empty(), nil },
		Requires: []Argument{valArg(t, "val_in")},
	}
	if err := p.AssertValidity(); err == nil {
		t.Fatalf("expected error when requires is not a subset of accepts")
	}
}

func TestAssertTypeValuetypeAndDatatype(t *testing.T) {
	const procURI = "http://www.scry.com/math/mean"

	arrayArg, err := NewArgument("array_in", rdf.Node{}, ValueTypeArray, "http://www.scry.com/math/csv-array", "")
	if err != nil {
		t.Fatal(err)
	}
	scalarArg := valArg(t, "val_in")

	plain, err := rdf.NewLiteral("1,2,3")
	if err != nil {
		t.Fatal(err)
	}
	if err := arrayArg.AssertType(plain, procURI); err != nil {
		t.Errorf("plain literal against array argument: unexpected error %v", err)
	}

	iri := rdf.MustIRI("http://www.scry.com/math/sqrt")
	if err := arrayArg.AssertType(iri, procURI); err == nil {
		t.Errorf("IRI against array argument: expected bad-specifier error")
	}
	if err := scalarArg.AssertType(iri, procURI); err != nil {
		t.Errorf("IRI against scalar argument: unexpected error %v", err)
	}

	dtMatch := rdf.MustIRI("http://www.scry.com/math/csv-array")
	typedOK, err := rdf.NewTypedLiteral("1,2,3", dtMatch)
	if err != nil {
		t.Fatal(err)
	}
	if err := arrayArg.AssertType(typedOK, procURI); err != nil {
		t.Errorf("matching literal datatype: unexpected error %v", err)
	}

	dtOther := rdf.MustIRI("http://www.w3.org/2001/XMLSchema#integer")
	typedBad, err := rdf.NewTypedLiteral("3", dtOther)
	if err != nil {
		t.Fatal(err)
	}
	err = arrayArg.AssertType(typedBad, procURI)
	if err == nil {
		t.Fatalf("mismatched literal datatype: expected bad-specifier error")
	}
	if !scryerr.ErrBadSpecifier.Is(err) {
		t.Fatalf("expected ErrBadSpecifier, got %v", err)
	}

	blank, err := rdf.NewBlank("b0")
	if err != nil {
		t.Fatal(err)
	}
	if err := scalarArg.AssertType(blank, procURI); err == nil {
		t.Errorf("blank node: expected bad-specifier error")
	}

	if err := scalarArg.AssertType(rdf.NewVariable("x"), procURI); err == nil {
		t.Errorf("variable: expected bad-specifier error")
	}
}

func TestRegistryRejectsDuplicateURI(t *testing.T) {
	r := NewRegistry()
	mk := func() *Procedure {
		return &Procedure{
			URI:      "http://www.scry.com/math/sqrt",
			Callable: func(map[string]rdf.Node, map[string]bool, QueryHandle) (Result, error) { return Empty(), nil },
		}
	}
	if err := r.Add(mk()); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := r.Add(mk()); err == nil {
		t.Fatalf("expected duplicate URI to be rejected")
	}
}

package sparqleval

import (
	"testing"

	"github.com/bas-stringer/scry/rdf"
)

func tripleLit(s, p, o string) rdf.Triple {
	subj := rdf.MustIRI(s)
	pred := rdf.MustIRI(p)
	obj, err := rdf.NewLiteral(o)
	if err != nil {
		panic(err)
	}
	return rdf.Triple{Subject: subj, Predicate: pred, Object: obj}
}

func TestSelectProjectsBoundVariable(t *testing.T) {
	data := []rdf.Triple{
		tripleLit("http://www.scry.com/math/absolute", "http://www.scry.com/author", "Bas Stringer"),
		tripleLit("http://www.scry.com/math/sqrt", "http://www.scry.com/author", "Bas Stringer"),
	}
	pattern := []rdf.Triple{
		{Subject: rdf.NewVariable("p"), Predicate: rdf.MustIRI("http://www.scry.com/author"), Object: rdf.NewVariable("a")},
	}
	rows, err := Select(pattern, []string{"p", "a"}, false, data)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestSelectDistinctDedups(t *testing.T) {
	data := []rdf.Triple{
		tripleLit("http://www.scry.com/math/absolute", "http://www.scry.com/author", "Bas Stringer"),
		tripleLit("http://www.scry.com/math/absolute", "http://www.scry.com/version", "1.0.0"),
	}
	pattern := []rdf.Triple{
		{Subject: rdf.NewVariable("p"), Predicate: rdf.NewVariable("pred"), Object: rdf.NewVariable("o")},
	}
	rows, err := Select(pattern, []string{"p"}, true, data)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 distinct row, got %d", len(rows))
	}
}

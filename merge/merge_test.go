package merge

import (
	"testing"

	"github.com/bas-stringer/scry/rdf"
)

func lit(t *testing.T, s string) rdf.Node {
	t.Helper()
	n, err := rdf.NewLiteral(s)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestMergeAndFilterEmptyPropagation(t *testing.T) {
	rows := MergeAndFilter([][]Row{
		{{"x": lit(t, "1")}},
		{},
	})
	if len(rows) != 0 {
		t.Fatalf("expected empty result when a producer list is empty, got %v", rows)
	}
}

func TestMergeAndFilterIdempotentSingleList(t *testing.T) {
	in := []Row{
		{"x": lit(t, "1")},
		{"x": lit(t, "1")},
		{"x": lit(t, "2")},
	}
	rows := MergeAndFilter([][]Row{in})
	if len(rows) != 2 {
		t.Fatalf("expected duplicate rows collapsed to 2, got %d", len(rows))
	}
}

func TestMergeAndFilterJoinsOnSharedKey(t *testing.T) {
	a := []Row{
		{"x": lit(t, "1"), "y": lit(t, "a")},
		{"x": lit(t, "2"), "y": lit(t, "b")},
	}
	b := []Row{
		{"x": lit(t, "1"), "z": lit(t, "z1")},
		{"x": lit(t, "3"), "z": lit(t, "z3")},
	}
	rows := MergeAndFilter([][]Row{a, b})
	if len(rows) != 1 {
		t.Fatalf("expected 1 consistent joined row, got %d: %v", len(rows), rows)
	}
	if rows[0]["y"].Value() != "a" || rows[0]["z"].Value() != "z1" {
		t.Fatalf("unexpected joined row: %v", rows[0])
	}
}

func TestMergeAndFilterRejectsConflictingValues(t *testing.T) {
	a := []Row{{"x": lit(t, "1")}}
	b := []Row{{"x": lit(t, "2")}}
	rows := MergeAndFilter([][]Row{a, b})
	if len(rows) != 0 {
		t.Fatalf("expected no consistent rows, got %d", len(rows))
	}
}

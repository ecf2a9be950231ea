package algebra

import "testing"

func TestParseSimpleSelect(t *testing.T) {
	q, err := Parse(`SELECT ?v WHERE { <http://www.scry.com/math/absolute> <http://www.scry.com/input?val_in> "-3.5" . <http://www.scry.com/math/absolute> <http://www.scry.com/output?val_out> ?v }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if q.Distinct {
		t.Errorf("did not expect DISTINCT")
	}
	if len(q.Vars) != 1 || q.Vars[0] != "v" {
		t.Errorf("expected single projected var 'v', got %v", q.Vars)
	}
	if len(q.Pattern.Triples) != 2 {
		t.Fatalf("expected 2 triples, got %d", len(q.Pattern.Triples))
	}
}

func TestParseValuesClause(t *testing.T) {
	q, err := Parse(`SELECT * WHERE { VALUES ?x { "1" "4" "9" } }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !q.SelectAll {
		t.Fatalf("expected SELECT *")
	}
	if len(q.Pattern.Values) != 1 {
		t.Fatalf("expected one VALUES clause")
	}
	v := q.Pattern.Values[0]
	if len(v.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(v.Rows))
	}
}

func TestParseBindClause(t *testing.T) {
	q, err := Parse(`SELECT ?y WHERE { BIND(?x + 1 AS ?y) }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(q.Pattern.Binds) != 1 {
		t.Fatalf("expected one BIND clause")
	}
	b := q.Pattern.Binds[0]
	if b.Var != "y" {
		t.Errorf("expected bind target 'y', got %s", b.Var)
	}
	vars := b.Expr.Vars()
	if len(vars) != 1 || vars[0] != "x" {
		t.Errorf("expected free var 'x' in bind expr, got %v", vars)
	}
}

func TestWalkOrbDescriptionGraph(t *testing.T) {
	q, err := Parse(`SELECT ?p ?a WHERE { GRAPH <http://www.scry.com/orb_description> { ?p <http://www.scry.com/author> ?a } }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w, err := Walk(q)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(w.Orbs) != 1 {
		t.Fatalf("expected one orb graph node, got %d", len(w.Orbs))
	}
	if len(w.Triples) != 0 {
		t.Fatalf("expected no top-level triples, got %d", len(w.Triples))
	}
}

package rdf

import "testing"

func TestSplitPredicateDefaulting(t *testing.T) {
	cases := []struct {
		in       string
		wantBase string
		wantSpec string
	}{
		{"http://www.scry.com/math/sqrt", "http://www.scry.com/math/sqrt", ""},
		{"http://www.scry.com/input?val_in", "http://www.scry.com/input", "val_in"},
		{"http://www.scry.com/input?_", "http://www.scry.com/input", ""},
		{"http://www.scry.com/input?", "http://www.scry.com/input", ""},
	}
	for _, c := range cases {
		base, spec := SplitPredicate(c.in)
		if base != c.wantBase || spec != c.wantSpec {
			t.Errorf("SplitPredicate(%q) = (%q,%q), want (%q,%q)", c.in, base, spec, c.wantBase, c.wantSpec)
		}
	}
}

func TestSplitPAURoundTrips(t *testing.T) {
	base, disc := SplitPAU("http://www.scry.com/math/sqrt?call1")
	if base != "http://www.scry.com/math/sqrt" {
		t.Errorf("unexpected base: %s", base)
	}
	if disc != "call1" {
		t.Errorf("unexpected discriminator: %s", disc)
	}
}

func TestNodeEqualAndLexical(t *testing.T) {
	a, err := NewIRI("http://www.scry.com/math/sqrt")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewIRI("http://www.scry.com/math/sqrt")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("expected equal IRIs")
	}

	v := NewVariable("x")
	if !v.IsVariable() || v.Lexical() != "?x" {
		t.Errorf("unexpected variable rendering: %s", v.Lexical())
	}
}

package scryerr

import "testing"

func TestKindsFormatAndMatch(t *testing.T) {
	err := ErrUnknownProcedure.New("http://www.scry.com/math/sqrt")
	if !ErrUnknownProcedure.Is(err) {
		t.Fatalf("expected ErrUnknownProcedure.Is to match its own New() error")
	}
	if ErrParse.Is(err) {
		t.Fatalf("did not expect a different Kind to match")
	}

	wrapped := ErrBadSpecifier.New("val_in", "http://www.scry.com/math/sqrt", "not a number")
	if !ErrBadSpecifier.Is(wrapped) {
		t.Fatalf("expected ErrBadSpecifier.Is to match its own New() error")
	}
}

package dpl

import "testing"

func TestRunConvertsInvariantViolationToError(t *testing.T) {
	err := Run(func() {
		panic(InvariantViolation{Code: CodePaintOccupied, Message: "boom"})
	})
	if err == nil {
		t.Fatal("expected an error from a panic carrying an InvariantViolation")
	}
	iv, ok := err.(InvariantViolation)
	if !ok {
		t.Fatalf("expected InvariantViolation, got %T", err)
	}
	if iv.Code != CodePaintOccupied {
		t.Errorf("got code %q, want %q", iv.Code, CodePaintOccupied)
	}
}

func TestRunReturnsNilOnSuccess(t *testing.T) {
	ran := false
	err := Run(func() { ran = true })
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ran {
		t.Fatal("expected fn to run")
	}
}

func TestRunRepanicsOtherTypes(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a non-InvariantViolation panic to propagate")
		}
		if r != "not an invariant violation" {
			t.Fatalf("got panic value %v, want the original panic value", r)
		}
	}()
	_ = Run(func() {
		panic("not an invariant violation")
	})
}

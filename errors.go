package dpl

import "fmt"

// Code identifies the specific failure behind a ConfigurationError or
// InvariantViolation, so callers can branch on it without parsing Message.
type Code string

const (
	CodeCellTooWide       Code = "cell_too_wide"
	CodeCellTooTall       Code = "cell_too_tall"
	CodeGroupOverUtilized Code = "group_over_utilized"
	CodeNoRows            Code = "no_rows"
	CodeUnknownMaster     Code = "unknown_master"

	CodePaintOutOfBounds Code = "paint_out_of_bounds"
	CodePaintOccupied    Code = "paint_occupied"
	CodeEraseUnplaced    Code = "erase_unplaced"
	CodeLegalizeFixed    Code = "legalize_fixed"
	CodeNoLayer          Code = "no_layer"
)

// ConfigurationError reports a fatal problem discovered before placement
// starts: the input is structurally incapable of being legalized (a cell
// wider than the core, a group asked to hold more area than its regions
// provide). Legalize returns this rather than attempting a partial run.
type ConfigurationError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// InvariantViolation is a programmer error: a precondition the caller was
// responsible for maintaining did not hold (painting over an occupied
// pixel, erasing a cell that was never placed, legalizing a fixed cell).
// These panic rather than return an error -- callers are not expected to
// recover from them, only to not trigger them. Use Run to convert a panic
// of this type back into an error at a package boundary.
type InvariantViolation struct {
	Code    Code
	Message string
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation (%s): %s", e.Code, e.Message)
}

// PlacementFailure records one cell the placer could not legalize. It is
// never fatal by itself -- Legalize keeps going and accumulates every
// failure into Result.Failures. Callers that want a hard failure on any
// unplaced cell should check len(Result.Failures) themselves.
type PlacementFailure struct {
	CellName string
	Reason   string
}

func (f PlacementFailure) Error() string {
	return fmt.Sprintf("could not place %s: %s", f.CellName, f.Reason)
}

// Run calls fn and converts any panic carrying an InvariantViolation back
// into a returned error, the way a CLI boundary needs to in order to print
// a clean message instead of a stack trace. Panics of any other type are
// re-raised unchanged, since those are genuine bugs this package did not
// anticipate.
func Run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(InvariantViolation); ok {
				err = iv
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

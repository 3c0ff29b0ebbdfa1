package instrument

import "fmt"

// ConstructionError reports a builder or factory invariant violation.
// A failed construction never yields a partially built instrument.
type ConstructionError struct {
	Type   string // e.g. "SwapLeg", "InterestRateSwap", "Swaption"
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s construction failed: %s", e.Type, e.Reason)
}

func newConstructionError(typ, format string, args ...any) *ConstructionError {
	return &ConstructionError{Type: typ, Reason: fmt.Sprintf(format, args...)}
}

// InvalidOperationError reports an operation not permitted in the
// instrument's current state, e.g. adding an exercise date to a
// non-Bermudan swaption or reading the fixed rate of a floating leg.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// UnknownEnumError reports a string-to-enum parse failure.
type UnknownEnumError struct {
	Kind  string // e.g. "day count convention"
	Value string
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, e.Value)
}

package caproc

import "fmt"

// InvalidInputError reports a malformed argument: a range violation the
// caller must fix, raised before any computation happens.
//
// This is the only error kind in the package. A gate that fails (A > C,
// or A > λ_max) is a normal result carried in the verdict booleans, never
// an error. Callers that need the distinction should use errors.As:
//
//	var inv *caproc.InvalidInputError
//	if errors.As(err, &inv) {
//	    // caller bug: fix inv.Field
//	}
type InvalidInputError struct {
	Field  string // Offending input field (R, p, tpr, fpr, C, delta, lambda)
	Reason string // Human-readable range description
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// invalidInput builds the single error kind with a formatted reason.
func invalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

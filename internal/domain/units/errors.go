package units

import "fmt"

// ValidationError means the caller supplied structurally invalid input:
// bad category change, non-positive factor, cross-category conversion.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "units: " + e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError means the requested operation would violate a catalog
// invariant: deleting a unit still in use, or a base-unit race detected
// after a write.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return "units: " + e.Reason }

func conflictf(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

package calmar

import (
	"errors"
	"fmt"
)

// Sentinel errors for the calendar engine. All user-facing failures wrap one
// of these, so callers can classify with errors.Is.
var (
	// ErrRange is returned when a numeric element or ADR falls outside its
	// valid domain.
	ErrRange = errors.New("out of range")

	// ErrConversion is returned when an input cannot be interpreted as an
	// integer where one is required.
	ErrConversion = errors.New("not an integer")

	// ErrFormat is returned when a date string matches neither recognized
	// notation.
	ErrFormat = errors.New("invalid date format")
)

// rangeError returns an out-of-range error with a custom message, which
// unwraps to ErrRange.
func rangeError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRange, fmt.Sprintf(format, args...))
}

// conversionError returns a conversion error which unwraps to ErrConversion.
func conversionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConversion, fmt.Sprintf(format, args...))
}

// formatError returns a format error which unwraps to ErrFormat.
func formatError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// invariant panics with a descriptive message. It is called when the
// decomposition engine itself produces an element outside its domain, which
// is broken arithmetic rather than bad input and is not recoverable.
func invariant(err error) {
	panic(fmt.Sprintf("calmar: internal invariant violated: %v", err))
}

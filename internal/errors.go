package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDateFormat is returned for input that is not a well-formed,
	// calendrically valid YYYY-MM-DD date.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrUnsupportedCycle is returned for a billing cycle outside the known set.
	ErrUnsupportedCycle = errors.New("unsupported billing cycle")

	ErrNotFound       = errors.New("subscription not found")
	ErrOneTimePayment = errors.New("one-time payments do not renew")
	ErrUnknownPreset  = errors.New("unknown preset")
)

// DateError reports the input that failed to parse as a date.
type DateError struct {
	Input string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%v: %q (want YYYY-MM-DD)", ErrInvalidDateFormat, e.Input)
}

func (e *DateError) Unwrap() error { return ErrInvalidDateFormat }

// CycleError reports a billing cycle name that is not recognized.
type CycleError struct {
	Input string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %q (want one of %s)", ErrUnsupportedCycle, e.Input, strings.Join(CycleNames(), ", "))
}

func (e *CycleError) Unwrap() error { return ErrUnsupportedCycle }

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every invalid field of a subscription.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid subscription: " + strings.Join(msgs, "; ")
}

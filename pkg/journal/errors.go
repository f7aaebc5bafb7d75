package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every *InputError.
	ErrInvalidInput = errors.New("journal: invalid input")
	// ErrNotFound is returned when an item id is unknown.
	ErrNotFound = errors.New("journal: item not found")
)

// InputError rejects a call before anything is changed.
type InputError struct {
	Field string
	Value string
	Err   error
}

// Invalid builds an InputError for field.
func Invalid(field, value string, err error) *InputError {
	return &InputError{Field: field, Value: value, Err: err}
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

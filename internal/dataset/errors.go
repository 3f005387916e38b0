package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrNoLineColumns  = errors.New("no line columns")
	ErrNoXColumn      = errors.New("no x column")
	ErrMultipleX      = errors.New("more than one x column")
	ErrLengthMismatch = errors.New("column lengths differ")
	ErrTooFewSamples  = errors.New("fewer than 2 samples")
	ErrMissingColor   = errors.New("line column has no color")
	ErrMissingType    = errors.New("column has no type")
	ErrUnknownColumn  = errors.New("type refers to an unknown column")
	ErrNotFinite      = errors.New("value is not finite")
	ErrEmptyKey       = errors.New("column has an empty key")
)

// ValidationError reports which column made a dataset unusable.
type ValidationError struct {
	Column string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("dataset: invalid: %v", e.Err)
	}
	return fmt.Sprintf("dataset: invalid column %q: %v", e.Column, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(column string, err error) error {
	return &ValidationError{Column: column, Err: err}
}

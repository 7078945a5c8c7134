package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every input validation failure.
var ErrInvalidInput = errors.New("invalid calculator input")

// InputError describes one rejected calculator input.
type InputError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Field: field, Reason: fmt.Sprintf("must be a finite number, got %g", v)}
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return &InputError{Field: field, Reason: fmt.Sprintf("must not be negative, got %g", v)}
	}
	return nil
}

func between(field string, v, lo, hi float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return &InputError{Field: field, Reason: fmt.Sprintf("must be between %g and %g, got %g", lo, hi, v)}
	}
	return nil
}

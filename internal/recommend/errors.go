package recommend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is matched by every error caused by an incomplete or
// out-of-domain answer set.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError describes one rejected answer set field.
type InvalidInputError struct {
	Field   string   `json:"field"`
	Value   string   `json:"value,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
	Reason  string   `json:"reason"`
}

func (e *InvalidInputError) Error() string {
	if len(e.Allowed) > 0 && e.Value != "" {
		return fmt.Sprintf("%s: %s %q (allowed: %s)", e.Field, e.Reason, e.Value, strings.Join(e.Allowed, ", "))
	}
	if e.Value != "" {
		return fmt.Sprintf("%s: %s %q", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) true for every InvalidInputError.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func newUnanswered(f Field) *InvalidInputError {
	return &InvalidInputError{Field: string(f), Allowed: f.Allowed(), Reason: "unanswered"}
}

func newInvalidValue(f Field, v string) *InvalidInputError {
	return &InvalidInputError{Field: string(f), Value: v, Allowed: f.Allowed(), Reason: "invalid value"}
}

// InvalidFields flattens err (possibly an errors.Join tree) into the
// individual field errors it carries.
func InvalidFields(err error) []*InvalidInputError {
	var out []*InvalidInputError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if fe, ok := e.(*InvalidInputError); ok {
			out = append(out, fe)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pricingexcellence/pricing/internal/calculator"
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/recommend"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: ExitSuccess},
		{name: "unanswered question", err: recommend.AnswerSet{}.Validate(), want: ExitInvalidInput},
		{name: "wrapped answer error", err: fmt.Errorf("recommend: %w", recommend.ErrInvalidInput), want: ExitInvalidInput},
		{name: "calculator input", err: &calculator.InputError{Field: "baseline", Reason: "must not be negative"}, want: ExitInvalidInput},
		{name: "unknown model", err: fmt.Errorf("%w: %q", catalog.ErrNotFound, "barter"), want: ExitInvalidInput},
		{name: "joined with other", err: errors.Join(errors.New("context"), recommend.ErrInvalidInput), want: ExitInvalidInput},
		{name: "config error", err: errors.New("parsing .pricing.yaml: bad indent"), want: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

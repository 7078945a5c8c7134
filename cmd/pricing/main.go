package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pricingexcellence/pricing/internal/calculator"
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/recommend"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Command completed
	ExitInvalidInput = 1 // Answers, calculator inputs or model id were rejected
	ExitError        = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, recommend.ErrInvalidInput),
		errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, catalog.ErrNotFound):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

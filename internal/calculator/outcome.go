// Package calculator implements the fee calculators attached to catalog
// models: the outcome-based fee and the Total Economic Impact (TEI) ROI
// calculator.
package calculator

import (
	"errors"
	"math"

	"github.com/pricingexcellence/pricing/internal/models"
)

// Risk multiplier bounds and the reference points of each band.
const (
	MinRiskMultiplier = 1.0
	MaxRiskMultiplier = 2.0

	LowRiskMultiplier    = 1.2
	MediumRiskMultiplier = 1.5
	HighRiskMultiplier   = 2.0
)

// DefaultOutcomeInput returns the worked example used when no inputs are given.
func DefaultOutcomeInput() models.OutcomeFeeInput {
	return models.OutcomeFeeInput{
		Baseline:       2_000_000,
		AchievementPct: 110,
		RiskMultiplier: 1.3,
	}
}

// ValidateOutcome checks outcome fee inputs and reports every bad field.
func ValidateOutcome(in models.OutcomeFeeInput) error {
	return errors.Join(
		nonNegative("baseline", in.Baseline),
		nonNegative("achievementPct", in.AchievementPct),
		between("riskMultiplier", in.RiskMultiplier, MinRiskMultiplier, MaxRiskMultiplier),
	)
}

// OutcomeFee computes the fee for an outcome-based engagement:
//
//	savings = baseline × achievement%
//	fee     = savings × riskMultiplier
//
// The client's net benefit is savings less the fee.
func OutcomeFee(in models.OutcomeFeeInput) (models.OutcomeFeeResult, error) {
	if err := ValidateOutcome(in); err != nil {
		return models.OutcomeFeeResult{}, err
	}

	savings := in.Baseline * in.AchievementPct / 100
	fee := savings * in.RiskMultiplier
	if math.IsInf(fee, 0) {
		return models.OutcomeFeeResult{}, &InputError{Field: "baseline", Reason: "too large to compute a fee"}
	}

	res := models.OutcomeFeeResult{
		OutcomeFeeInput: in,
		Fee:             fee,
		Savings:         savings,
		NetBenefit:      savings - fee,
		RiskBand:        RiskBand(in.RiskMultiplier),
	}
	if fee > 0 {
		res.ClientROI = savings / fee
	}
	return res, nil
}

// RiskBand names the band a multiplier falls in: the band whose reference
// point is nearest, ties going to the lower band.
func RiskBand(multiplier float64) string {
	bands := []struct {
		name string
		ref  float64
	}{
		{"low", LowRiskMultiplier},
		{"medium", MediumRiskMultiplier},
		{"high", HighRiskMultiplier},
	}
	best := bands[0]
	for _, b := range bands[1:] {
		if math.Abs(multiplier-b.ref) < math.Abs(multiplier-best.ref) {
			best = b
		}
	}
	return best.name
}

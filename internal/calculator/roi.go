package calculator

import (
	"errors"
	"math"

	"github.com/pricingexcellence/pricing/internal/models"
)

// Fee percentage bounds and default for the TEI calculator.
const (
	MinFeePercentage     = 5.0
	MaxFeePercentage     = 30.0
	DefaultFeePercentage = 15.0
)

// HorizonMonths is the value realization horizon of the TEI model.
const HorizonMonths = 36

// Breakdown category names in display order.
const (
	CategoryDirect    = "Direct Benefits"
	CategoryIndirect  = "Indirect Benefits"
	CategoryRisk      = "Risk Mitigation"
	CategoryStrategic = "Strategic Value"
)

// DefaultROIInput returns an empty input with the default fee percentage.
func DefaultROIInput() models.ROIInput {
	return models.ROIInput{FeePercentage: DefaultFeePercentage}
}

// ValidateROI checks TEI inputs and reports every bad field.
func ValidateROI(in models.ROIInput) error {
	return errors.Join(
		nonNegative("laborSavings", in.LaborSavings),
		nonNegative("revenueIncrease", in.RevenueIncrease),
		nonNegative("costAvoidance", in.CostAvoidance),
		nonNegative("decisionQuality", in.DecisionQuality),
		nonNegative("timeToMarket", in.TimeToMarket),
		nonNegative("employeeExperience", in.EmployeeExperience),
		between("complianceProbability", in.ComplianceProbability, 0, 100),
		nonNegative("complianceValue", in.ComplianceValue),
		between("securityProbability", in.SecurityProbability, 0, 100),
		nonNegative("securityValue", in.SecurityValue),
		nonNegative("futureCapabilities", in.FutureCapabilities),
		nonNegative("competitiveMoat", in.CompetitiveMoat),
		between("feePercentage", in.FeePercentage, MinFeePercentage, MaxFeePercentage),
	)
}

// ROI runs the Total Economic Impact model. Value accrues linearly over
// HorizonMonths while the fee is paid up front.
func ROI(in models.ROIInput) (models.ROIResult, error) {
	if err := ValidateROI(in); err != nil {
		return models.ROIResult{}, err
	}

	res := models.ROIResult{
		Input:            in,
		DirectBenefits:   in.LaborSavings + in.RevenueIncrease + in.CostAvoidance,
		IndirectBenefits: in.DecisionQuality + in.TimeToMarket + in.EmployeeExperience,
		RiskMitigation: in.ComplianceProbability/100*in.ComplianceValue +
			in.SecurityProbability/100*in.SecurityValue,
		StrategicValue: in.FutureCapabilities + in.CompetitiveMoat,
	}
	res.TotalValue = res.DirectBenefits + res.IndirectBenefits + res.RiskMitigation + res.StrategicValue
	if math.IsInf(res.TotalValue, 0) {
		return models.ROIResult{}, &InputError{Field: "totalValue", Reason: "too large to compute"}
	}
	res.Fee = res.TotalValue * in.FeePercentage / 100
	res.NetBenefit = res.TotalValue - res.Fee

	monthly := res.TotalValue / HorizonMonths
	if res.Fee > 0 {
		res.ROI = res.TotalValue / res.Fee
		res.PaybackMonths = math.Round(res.Fee/monthly*10) / 10
	}

	for _, s := range []models.ValueSlice{
		{Name: CategoryDirect, Value: res.DirectBenefits},
		{Name: CategoryIndirect, Value: res.IndirectBenefits},
		{Name: CategoryRisk, Value: res.RiskMitigation},
		{Name: CategoryStrategic, Value: res.StrategicValue},
	} {
		if s.Value > 0 {
			res.Breakdown = append(res.Breakdown, s)
		}
	}

	res.Timeline = make([]models.TimelinePoint, 0, HorizonMonths+1)
	for m := 0; m <= HorizonMonths; m++ {
		value := monthly * float64(m)
		res.Timeline = append(res.Timeline, models.TimelinePoint{
			Month:      m,
			Investment: res.Fee,
			Value:      value,
			NetBenefit: value - res.Fee,
		})
	}
	return res, nil
}

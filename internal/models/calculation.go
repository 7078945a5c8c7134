package models

// OutcomeFeeInput holds the inputs of the outcome-based fee calculator.
type OutcomeFeeInput struct {
	// Baseline is the annual savings or revenue value being improved.
	Baseline float64 `json:"baseline" yaml:"baseline" mapstructure:"baseline"`
	// AchievementPct is the achieved improvement, 100 = baseline target.
	AchievementPct float64 `json:"achievementPct" yaml:"achievementPct" mapstructure:"achievementPct"`
	RiskMultiplier float64 `json:"riskMultiplier" yaml:"riskMultiplier" mapstructure:"riskMultiplier"`
}

// OutcomeFeeResult is the output of the outcome-based fee calculator.
type OutcomeFeeResult struct {
	OutcomeFeeInput
	Fee        float64 `json:"fee"`
	Savings    float64 `json:"savings"`
	NetBenefit float64 `json:"netBenefit"`
	// ClientROI is savings divided by fee, 0 when the fee is 0.
	ClientROI float64 `json:"clientRoi"`
	RiskBand  string  `json:"riskBand"`
}

// ROIInput holds the Total Economic Impact inputs. Amounts are annualized
// currency values; probabilities are percentages in [0, 100].
type ROIInput struct {
	LaborSavings    float64 `json:"laborSavings" yaml:"laborSavings" mapstructure:"laborSavings"`
	RevenueIncrease float64 `json:"revenueIncrease" yaml:"revenueIncrease" mapstructure:"revenueIncrease"`
	CostAvoidance   float64 `json:"costAvoidance" yaml:"costAvoidance" mapstructure:"costAvoidance"`

	DecisionQuality    float64 `json:"decisionQuality" yaml:"decisionQuality" mapstructure:"decisionQuality"`
	TimeToMarket       float64 `json:"timeToMarket" yaml:"timeToMarket" mapstructure:"timeToMarket"`
	EmployeeExperience float64 `json:"employeeExperience" yaml:"employeeExperience" mapstructure:"employeeExperience"`

	ComplianceProbability float64 `json:"complianceProbability" yaml:"complianceProbability" mapstructure:"complianceProbability"`
	ComplianceValue       float64 `json:"complianceValue" yaml:"complianceValue" mapstructure:"complianceValue"`
	SecurityProbability   float64 `json:"securityProbability" yaml:"securityProbability" mapstructure:"securityProbability"`
	SecurityValue         float64 `json:"securityValue" yaml:"securityValue" mapstructure:"securityValue"`

	FutureCapabilities float64 `json:"futureCapabilities" yaml:"futureCapabilities" mapstructure:"futureCapabilities"`
	CompetitiveMoat    float64 `json:"competitiveMoat" yaml:"competitiveMoat" mapstructure:"competitiveMoat"`

	FeePercentage float64 `json:"feePercentage" yaml:"feePercentage" mapstructure:"feePercentage"`
}

// ValueSlice is one non-zero category of the value breakdown.
type ValueSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TimelinePoint is the cumulative position at the given month.
type TimelinePoint struct {
	Month      int     `json:"month"`
	Investment float64 `json:"investment"`
	Value      float64 `json:"value"`
	NetBenefit float64 `json:"netBenefit"`
}

// ROIResult is the output of the Total Economic Impact calculator.
type ROIResult struct {
	Input            ROIInput        `json:"input"`
	DirectBenefits   float64         `json:"directBenefits"`
	IndirectBenefits float64         `json:"indirectBenefits"`
	RiskMitigation   float64         `json:"riskMitigation"`
	StrategicValue   float64         `json:"strategicValue"`
	TotalValue       float64         `json:"totalValue"`
	Fee              float64         `json:"fee"`
	NetBenefit       float64         `json:"netBenefit"`
	ROI              float64         `json:"roi"`
	PaybackMonths    float64         `json:"paybackMonths"`
	Breakdown        []ValueSlice    `json:"breakdown"`
	Timeline         []TimelinePoint `json:"timeline"`
}

// ROITemplate is a named, pre-filled set of TEI inputs.
type ROITemplate struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Inputs ROIInput `json:"inputs"`
}

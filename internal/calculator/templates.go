package calculator

import (
	"fmt"
	"sort"

	"github.com/pricingexcellence/pricing/internal/models"
)

var roiTemplates = map[string]models.ROITemplate{
	"supply-chain": {
		Key:  "supply-chain",
		Name: "Supply Chain Optimization (CPG)",
		Inputs: models.ROIInput{
			LaborSavings:          720_000,
			CostAvoidance:         3_120_000,
			DecisionQuality:       450_000,
			TimeToMarket:          300_000,
			EmployeeExperience:    150_000,
			ComplianceProbability: 40,
			ComplianceValue:       1_500_000,
			FutureCapabilities:    400_000,
			CompetitiveMoat:       300_000,
			FeePercentage:         12,
		},
	},
	"digital-transformation": {
		Key:  "digital-transformation",
		Name: "Digital Transformation",
		Inputs: models.ROIInput{
			LaborSavings:          500_000,
			RevenueIncrease:       1_500_000,
			CostAvoidance:         800_000,
			DecisionQuality:       400_000,
			TimeToMarket:          600_000,
			EmployeeExperience:    200_000,
			ComplianceProbability: 25,
			ComplianceValue:       2_000_000,
			SecurityProbability:   30,
			SecurityValue:         1_500_000,
			FutureCapabilities:    800_000,
			CompetitiveMoat:       600_000,
			FeePercentage:         15,
		},
	},
	"change-management": {
		Key:  "change-management",
		Name: "Change Management Program",
		Inputs: models.ROIInput{
			LaborSavings:          300_000,
			CostAvoidance:         400_000,
			DecisionQuality:       250_000,
			TimeToMarket:          150_000,
			EmployeeExperience:    400_000,
			ComplianceProbability: 10,
			ComplianceValue:       1_000_000,
			FutureCapabilities:    200_000,
			CompetitiveMoat:       150_000,
			FeePercentage:         18,
		},
	},
}

// Template returns the named TEI template.
func Template(key string) (models.ROITemplate, error) {
	t, ok := roiTemplates[key]
	if !ok {
		return models.ROITemplate{}, fmt.Errorf("unknown ROI template %q (available: %v)", key, TemplateKeys())
	}
	return t, nil
}

// Templates returns every TEI template sorted by key.
func Templates() []models.ROITemplate {
	out := make([]models.ROITemplate, 0, len(roiTemplates))
	for _, k := range TemplateKeys() {
		out = append(out, roiTemplates[k])
	}
	return out
}

// TemplateKeys returns the template keys in sorted order.
func TemplateKeys() []string {
	keys := make([]string, 0, len(roiTemplates))
	for k := range roiTemplates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

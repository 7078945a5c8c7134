package models

// Level is the coarse rating used for a model's risk, reward and complexity.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Industry identifies an industry practice a model is commonly sold into.
type Industry string

const (
	IndustryPublicSector      Industry = "public-sector"
	IndustryRetailCPG         Industry = "retail-cpg"
	IndustryLifeSciences      Industry = "life-sciences"
	IndustryFinancialServices Industry = "financial-services"
	IndustryMidMarket         Industry = "mid-market"
)

// CalculatorType names the calculator attached to a model, if any.
type CalculatorType string

const (
	CalculatorOutcomeBased CalculatorType = "outcome-based"
	CalculatorValueBased   CalculatorType = "value-based"
	CalculatorTiered       CalculatorType = "tiered"
	CalculatorConsumption  CalculatorType = "consumption"
	CalculatorPlatform     CalculatorType = "platform"
	CalculatorGeneric      CalculatorType = "generic"
)

// Application is a worked example of a model applied to a real offering.
type Application struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Pricing     string `json:"pricing" yaml:"pricing"`
}

// PricingModel is one entry of the pricing model catalog.
type PricingModel struct {
	ID               string   `json:"id" yaml:"id"`
	Aliases          []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Title            string   `json:"title" yaml:"title"`
	Tagline          string   `json:"tagline" yaml:"tagline"`
	ShortDescription string   `json:"shortDescription" yaml:"shortDescription"`
	LongDescription  string   `json:"longDescription" yaml:"longDescription"`
	MarketAdoption   string   `json:"marketAdoption,omitempty" yaml:"marketAdoption,omitempty"`

	RiskLevel       Level `json:"riskLevel" yaml:"riskLevel"`
	RewardLevel     Level `json:"rewardLevel" yaml:"rewardLevel"`
	ComplexityLevel Level `json:"complexityLevel" yaml:"complexityLevel"`

	PricingFormula string `json:"pricingFormula" yaml:"pricingFormula"`
	TypicalRange   string `json:"typicalRange" yaml:"typicalRange"`

	WhenToUse    []string      `json:"whenToUse" yaml:"whenToUse"`
	WhenNotToUse []string      `json:"whenNotToUse" yaml:"whenNotToUse"`
	BestFor      []string      `json:"bestFor" yaml:"bestFor"`
	Applications []Application `json:"applications" yaml:"applications"`

	RelatedModels     []string   `json:"relatedModels" yaml:"relatedModels"`
	RelatedPractices  []string   `json:"relatedPractices" yaml:"relatedPractices"`
	RelatedIndustries []Industry `json:"relatedIndustries" yaml:"relatedIndustries"`
	CaseStudyIDs      []string   `json:"caseStudyIds" yaml:"caseStudyIds"`

	HasCalculator  bool           `json:"hasCalculator" yaml:"hasCalculator"`
	CalculatorType CalculatorType `json:"calculatorType,omitempty" yaml:"calculatorType,omitempty"`
}

// Link returns the site path of the model's detail page.
func (m PricingModel) Link() string {
	return "/models/" + m.ID
}

// ServesIndustry reports whether the model lists ind among its related industries.
func (m PricingModel) ServesIndustry(ind Industry) bool {
	for _, i := range m.RelatedIndustries {
		if i == ind {
			return true
		}
	}
	return false
}

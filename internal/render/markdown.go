// Package render turns catalog models, recommendations and calculator
// results into Markdown, and Markdown into HTML.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pricingexcellence/pricing/internal/models"
)

var funcs = template.FuncMap{
	"currency": Currency,
	"percent":  Percent,
	"multiple": Multiple,
	"months":   Months,
	"level":    levelLabel,
	"industries": func(is []models.Industry) string {
		s := make([]string, len(is))
		for i, v := range is {
			s[i] = string(v)
		}
		return strings.Join(s, ", ")
	},
}

func levelLabel(l models.Level) string {
	if l == "" {
		return "-"
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

const modelTemplate = `# {{.Title}}
{{with .Tagline}}
*{{.}}*
{{end}}
{{.ShortDescription}}
{{with .LongDescription}}
{{.}}
{{end}}
| Risk | Reward | Complexity |
|---|---|---|
| {{level .RiskLevel}} | {{level .RewardLevel}} | {{level .ComplexityLevel}} |

**Pricing formula:** {{.PricingFormula}}
{{with .TypicalRange}}
**Typical range:** {{.}}
{{end}}{{with .MarketAdoption}}
**Market adoption:** {{.}}
{{end}}
## When to use
{{range .WhenToUse}}
- {{.}}{{end}}

## When not to use
{{range .WhenNotToUse}}
- {{.}}{{end}}
{{with .BestFor}}
## Best for
{{range .}}
- {{.}}{{end}}
{{end}}{{with .Applications}}
## Applications
{{range .}}
### {{.Title}}

{{.Description}}

Pricing: {{.Pricing}}
{{end}}{{end}}{{with .RelatedModels}}
**Related models:** {{range $i, $id := .}}{{if $i}}, {{end}}[{{$id}}](/models/{{$id}}){{end}}
{{end}}{{with .RelatedIndustries}}
**Industries:** {{industries .}}
{{end}}`

const recommendationsTemplate = `# Recommended pricing models
{{range .}}
## {{.Rank}}. {{if .Title}}{{if .Link}}[{{.Title}}]({{.Link}}){{else}}{{.Title}}{{end}}{{else}}{{.ModelID}}{{end}}

**Confidence:** {{.Confidence}}%

{{.Rationale}}
{{end}}`

const catalogTemplate = `# Pricing models

| Model | Risk | Reward | Complexity | Calculator |
|---|---|---|---|---|
{{range .}}| [{{.Title}}](/models/{{.ID}}) | {{level .RiskLevel}} | {{level .RewardLevel}} | {{level .ComplexityLevel}} | {{if .HasCalculator}}{{.CalculatorType}}{{else}}-{{end}} |
{{end}}`

const outcomeTemplate = `# Outcome-based fee

| | |
|---|---|
| Baseline value | {{currency .Baseline}} |
| Achievement | {{percent .AchievementPct}} |
| Risk multiplier | {{.RiskMultiplier}}x ({{.RiskBand}} risk) |
| **Calculated fee** | **{{currency .Fee}}** |
| Client savings | {{currency .Savings}} |
| Client net benefit | {{currency .NetBenefit}} |
| Client ROI | {{multiple .ClientROI}} |
`

const roiTemplate = `# Total Economic Impact

| Category | Value |
|---|---|
| Direct benefits | {{currency .DirectBenefits}} |
| Indirect benefits | {{currency .IndirectBenefits}} |
| Risk mitigation | {{currency .RiskMitigation}} |
| Strategic value | {{currency .StrategicValue}} |
| **Total value** | **{{currency .TotalValue}}** |

| | |
|---|---|
| Fee ({{percent .Input.FeePercentage}}) | {{currency .Fee}} |
| Client net benefit | {{currency .NetBenefit}} |
| Client ROI | {{multiple .ROI}} |
| Payback period | {{months .PaybackMonths}} |
`

var templates = template.Must(template.New("render").Funcs(funcs).Option("missingkey=error").Parse(""))

func init() {
	for name, text := range map[string]string{
		"model":           modelTemplate,
		"recommendations": recommendationsTemplate,
		"catalog":         catalogTemplate,
		"outcome":         outcomeTemplate,
		"roi":             roiTemplate,
	} {
		template.Must(templates.New(name).Parse(text))
	}
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// ModelMarkdown renders the detail page of one model.
func ModelMarkdown(m models.PricingModel) (string, error) {
	return execute("model", m)
}

// RecommendationsMarkdown renders ranked recommendations.
func RecommendationsMarkdown(recs []models.Recommendation) (string, error) {
	return execute("recommendations", recs)
}

// CatalogMarkdown renders a catalog listing as a table.
func CatalogMarkdown(ms []models.PricingModel) (string, error) {
	return execute("catalog", ms)
}

// OutcomeMarkdown renders an outcome-based fee calculation.
func OutcomeMarkdown(res models.OutcomeFeeResult) (string, error) {
	return execute("outcome", res)
}

// ROIMarkdown renders a Total Economic Impact calculation.
func ROIMarkdown(res models.ROIResult) (string, error) {
	return execute("roi", res)
}

package recommend

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Model identifiers targeted by the default rule set.
const (
	ModelOutcomeBased           = "outcome-based"
	ModelSuccessBasedRiskShare  = "success-based-risk-sharing"
	ModelTieredAugmentation     = "tiered-augmentation"
	ModelValueBasedROI          = "value-based-roi"
	ModelSubscriptionContinuous = "subscription-continuous"
	ModelTimeMaterials          = "time-materials"
	ModelHybridCustomized       = "hybrid-customized"
)

// Rule maps a predicate over the answer set to a model with a fixed
// confidence. Rationale is a text/template executed against the AnswerSet.
type Rule struct {
	ID         string
	ModelID    string
	Confidence int
	Rationale  string
	// Predicate is the human-readable form of Match.
	Predicate string
	Match     func(AnswerSet) bool
}

// DefaultRules returns a fresh copy of the built-in rule table.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:         "outcome-based",
			ModelID:    ModelOutcomeBased,
			Confidence: 95,
			Rationale:  "High outcome measurability and client risk tolerance make this ideal",
			Predicate:  "outcomeMeasurability = high AND clientRiskTolerance != low",
			Match: func(a AnswerSet) bool {
				return a.OutcomeMeasurability == LevelHigh && a.ClientRiskTolerance != LevelLow
			},
		},
		{
			ID:         "risk-sharing",
			ModelID:    ModelSuccessBasedRiskShare,
			Confidence: 90,
			Rationale:  "Risk-sharing reduces client downside while aligning incentives",
			Predicate:  "clientRiskTolerance = low",
			Match: func(a AnswerSet) bool {
				return a.ClientRiskTolerance == LevelLow
			},
		},
		{
			ID:         "tiered",
			ModelID:    ModelTieredAugmentation,
			Confidence: 85,
			Rationale:  "Offering tiers provides choice and reduces decision risk",
			Predicate:  "scopeCertainty = moderate OR budgetVisibility = unknown",
			Match: func(a AnswerSet) bool {
				return a.ScopeCertainty == ScopeModerate || a.BudgetVisibility == BudgetUnknown
			},
		},
		{
			ID:         "value-based",
			ModelID:    ModelValueBasedROI,
			Confidence: 88,
			Rationale:  "Strong value quantification enables comprehensive TEI approach",
			Predicate:  "valueClarity = high AND scopeCertainty = clear",
			Match: func(a AnswerSet) bool {
				return a.ValueClarity == LevelHigh && a.ScopeCertainty == ScopeClear
			},
		},
		{
			ID:         "subscription",
			ModelID:    ModelSubscriptionContinuous,
			Confidence: 82,
			Rationale:  "Long timeline and strong relationship support recurring revenue model",
			Predicate:  "timeline = long AND relationshipMaturity = mature",
			Match: func(a AnswerSet) bool {
				return a.Timeline == TimelineLong && a.RelationshipMaturity == MaturityMature
			},
		},
		{
			ID:         "time-materials",
			ModelID:    ModelTimeMaterials,
			Confidence: 70,
			Rationale:  "Uncertain scope or traditional client preferences suggest T&M approach",
			Predicate:  "scopeCertainty = uncertain OR clientSophistication = low",
			Match: func(a AnswerSet) bool {
				return a.ScopeCertainty == ScopeUncertain || a.ClientSophistication == LevelLow
			},
		},
	}
}

// DefaultFallback is used when no rule of the set matches.
func DefaultFallback() Rule {
	return Rule{
		ID:         "fallback",
		ModelID:    ModelHybridCustomized,
		Confidence: 75,
		Rationale:  "Your situation suggests a custom hybrid approach",
		Predicate:  "no other rule matched",
	}
}

// validateRule checks the invariants every rule must hold before it can
// be loaded into an engine. Fallback rules carry no Match.
func validateRule(r Rule, fallback bool) error {
	if r.ModelID == "" {
		return fmt.Errorf("rule %q: model id is required", r.ID)
	}
	if r.Confidence < 0 || r.Confidence > 100 {
		return fmt.Errorf("rule %q: confidence %d outside 0-100", r.ID, r.Confidence)
	}
	if !fallback && r.Match == nil {
		return fmt.Errorf("rule %q: match function is required", r.ID)
	}
	if _, err := parseRationale(r); err != nil {
		return err
	}
	return nil
}

func parseRationale(r Rule) (*template.Template, error) {
	t, err := template.New(r.ID).Option("missingkey=error").Parse(r.Rationale)
	if err != nil {
		return nil, fmt.Errorf("rule %q: parse rationale: %w", r.ID, err)
	}
	return t, nil
}

// renderRationale executes the rule's rationale against the answer set.
// Rationales without template actions are returned unchanged.
func renderRationale(r Rule, a AnswerSet) (string, error) {
	if !strings.Contains(r.Rationale, "{{") {
		return r.Rationale, nil
	}
	t, err := parseRationale(r)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, a); err != nil {
		return "", fmt.Errorf("rule %q: render rationale: %w", r.ID, err)
	}
	return buf.String(), nil
}

package recommend

// Choice is one selectable answer to a question.
type Choice struct {
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// Question is one step of the model selector wizard.
type Question struct {
	Field   Field    `json:"id" yaml:"id"`
	Text    string   `json:"question" yaml:"question"`
	Options []Choice `json:"options" yaml:"options"`
}

var questions = []Question{
	{
		Field: FieldOutcomeMeasurability,
		Text:  "Can you clearly measure and attribute outcomes to your work?",
		Options: []Choice{
			{"high", "Yes, very clear metrics", "We can measure specific improvements and attribute them to our work"},
			{"medium", "Moderately clear", "We can measure outcomes but attribution may be challenging"},
			{"low", "Difficult to measure", "Outcomes are fuzzy or multi-causal"},
		},
	},
	{
		Field: FieldClientRiskTolerance,
		Text:  "How much risk is your client willing to accept?",
		Options: []Choice{
			{"high", "High risk tolerance", "Client comfortable with outcome-based or performance models"},
			{"medium", "Moderate risk tolerance", "Client wants some risk-sharing but needs protection"},
			{"low", "Risk-averse", "Client wants predictability and low risk"},
		},
	},
	{
		Field: FieldRelationshipMaturity,
		Text:  "What's your relationship maturity with this client?",
		Options: []Choice{
			{"new", "New relationship", "First engagement or early in relationship"},
			{"developing", "Developing relationship", "Done 1-2 projects together, building trust"},
			{"mature", "Mature partnership", "Long-term client with strong trust and transparency"},
		},
	},
	{
		Field: FieldBudgetVisibility,
		Text:  "What's the client's budget situation?",
		Options: []Choice{
			{"fixed", "Fixed budget", "Client has specific budget approved/allocated"},
			{"flexible", "Flexible budget", "Client can adjust based on value demonstrated"},
			{"unknown", "Budget unclear", "Budget visibility is limited or uncertain"},
		},
	},
	{
		Field: FieldScopeCertainty,
		Text:  "How well-defined is the project scope?",
		Options: []Choice{
			{"clear", "Very clear", "Scope is well-defined with clear deliverables"},
			{"moderate", "Moderately clear", "General scope defined but details evolving"},
			{"uncertain", "Highly uncertain", "Scope will emerge through discovery"},
		},
	},
	{
		Field: FieldValueClarity,
		Text:  "Can you quantify the business impact and value?",
		Options: []Choice{
			{"high", "Yes, clearly", "We can calculate ROI and value with confidence"},
			{"medium", "Somewhat", "We can estimate value but with uncertainty"},
			{"low", "Difficult", "Value is intangible or hard to quantify"},
		},
	},
	{
		Field: FieldTimeline,
		Text:  "What's the expected engagement timeline?",
		Options: []Choice{
			{"short", "Short (< 3 months)", "Quick project or assessment"},
			{"medium", "Medium (3-12 months)", "Standard transformation timeline"},
			{"long", "Long (12+ months)", "Multi-year transformation or ongoing"},
		},
	},
	{
		Field: FieldClientSophistication,
		Text:  "How sophisticated is the client with pricing models?",
		Options: []Choice{
			{"high", "Very sophisticated", "Experienced with various pricing models"},
			{"medium", "Moderately sophisticated", "Open to innovation but needs education"},
			{"low", "Traditional", "Prefers familiar hourly or fixed-price models"},
		},
	},
}

// Questions returns the wizard questions in asking order. The returned
// slice is a copy and may be modified by the caller.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]Choice(nil), q.Options...)
		out[i] = q
	}
	return out
}

// QuestionFor returns the question that collects the given field.
func QuestionFor(f Field) (Question, bool) {
	for _, q := range Questions() {
		if q.Field == f {
			return q, true
		}
	}
	return Question{}, false
}

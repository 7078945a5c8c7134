package models

// Recommendation is one ranked pricing-model suggestion produced by the
// recommendation engine for a complete answer set.
type Recommendation struct {
	ModelID    string `json:"modelId" yaml:"modelId"`
	Confidence int    `json:"confidence" yaml:"confidence"`
	Rationale  string `json:"rationale" yaml:"rationale"`
	Rank       int    `json:"rank" yaml:"rank"`
	RuleID     string `json:"ruleId,omitempty" yaml:"ruleId,omitempty"`

	// Display metadata, filled only when a catalog is available.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Link  string `json:"link,omitempty" yaml:"link,omitempty"`
}

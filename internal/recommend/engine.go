package recommend

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/pricingexcellence/pricing/internal/models"
)

// DefaultLimit is the maximum number of recommendations returned.
const DefaultLimit = 3

// Catalog resolves model identifiers to display metadata.
type Catalog interface {
	Get(id string) (models.PricingModel, bool)
}

// Engine evaluates a fixed rule table against complete answer sets.
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	rules    []Rule
	fallback Rule
	limit    int
	catalog  Catalog
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the default rule table.
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		e.rules = append([]Rule(nil), rules...)
	}
}

// WithFallback replaces the rule used when nothing matches.
func WithFallback(r Rule) Option {
	return func(e *Engine) { e.fallback = r }
}

// WithLimit caps the number of recommendations returned. It must be
// between 1 and DefaultLimit.
func WithLimit(n int) Option {
	return func(e *Engine) { e.limit = n }
}

// WithCatalog enriches recommendations with titles and links.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// NewEngine creates an engine with the default rules, fallback and limit,
// then applies opts.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		rules:    DefaultRules(),
		fallback: DefaultFallback(),
		limit:    DefaultLimit,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.limit < 1 || e.limit > DefaultLimit {
		return nil, fmt.Errorf("limit must be between 1 and %d, got %d", DefaultLimit, e.limit)
	}
	seen := make(map[string]bool, len(e.rules))
	for _, r := range e.rules {
		if err := validateRule(r, false); err != nil {
			return nil, err
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true
	}
	if err := validateRule(e.fallback, true); err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}
	return e, nil
}

// Default returns an engine with the built-in configuration.
func Default() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(fmt.Sprintf("default recommendation engine: %v", err))
	}
	return e
}

// Rules returns a copy of the engine's rule table.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Recommend maps a complete answer set to between one and the engine
// limit of recommendations, sorted by descending confidence. Ties keep
// rule table order. Incomplete or out-of-domain answers return an error
// matching ErrInvalidInput and no recommendations.
func (e *Engine) Recommend(answers AnswerSet) ([]models.Recommendation, error) {
	if err := answers.Validate(); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	var matched []Rule
	for _, r := range e.rules {
		if r.Match(answers) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		matched = []Rule{e.fallback}
	}

	sort.SliceStable(matched, func(a, b int) bool {
		return matched[a].Confidence > matched[b].Confidence
	})
	if len(matched) > e.limit {
		matched = matched[:e.limit]
	}

	recs := make([]models.Recommendation, 0, len(matched))
	for i, r := range matched {
		rationale, err := renderRationale(r, answers)
		if err != nil {
			return nil, err
		}
		rec := models.Recommendation{
			ModelID:    r.ModelID,
			Confidence: r.Confidence,
			Rationale:  rationale,
			Rank:       i + 1,
			RuleID:     r.ID,
		}
		if e.catalog != nil {
			if m, ok := e.catalog.Get(r.ModelID); ok {
				rec.Title = m.Title
				rec.Link = m.Link()
			} else {
				slog.Debug("recommended model not in catalog", "model", r.ModelID)
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Explain reports, for each rule in table order, whether it matched the
// answer set. The answer set must be complete.
func (e *Engine) Explain(answers AnswerSet) ([]RuleMatch, error) {
	if err := answers.Validate(); err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}
	out := make([]RuleMatch, 0, len(e.rules))
	for _, r := range e.rules {
		out = append(out, RuleMatch{
			RuleID:     r.ID,
			ModelID:    r.ModelID,
			Confidence: r.Confidence,
			Predicate:  r.Predicate,
			Matched:    r.Match(answers),
		})
	}
	return out, nil
}

// RuleMatch is one row of an Explain report.
type RuleMatch struct {
	RuleID     string `json:"ruleId"`
	ModelID    string `json:"modelId"`
	Confidence int    `json:"confidence"`
	Predicate  string `json:"predicate"`
	Matched    bool   `json:"matched"`
}

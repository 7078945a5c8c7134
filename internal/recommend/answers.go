package recommend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Level rates measurability, risk tolerance, value clarity and sophistication.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Maturity describes how established the client relationship is.
type Maturity string

const (
	MaturityNew        Maturity = "new"
	MaturityDeveloping Maturity = "developing"
	MaturityMature     Maturity = "mature"
)

// Budget describes the client's budget situation.
type Budget string

const (
	BudgetFixed    Budget = "fixed"
	BudgetFlexible Budget = "flexible"
	BudgetUnknown  Budget = "unknown"
)

// Scope describes how well-defined the project scope is.
type Scope string

const (
	ScopeClear     Scope = "clear"
	ScopeModerate  Scope = "moderate"
	ScopeUncertain Scope = "uncertain"
)

// Timeline is the expected engagement length.
type Timeline string

const (
	TimelineShort  Timeline = "short"
	TimelineMedium Timeline = "medium"
	TimelineLong   Timeline = "long"
)

var (
	levelValues    = []string{string(LevelHigh), string(LevelMedium), string(LevelLow)}
	maturityValues = []string{string(MaturityNew), string(MaturityDeveloping), string(MaturityMature)}
	budgetValues   = []string{string(BudgetFixed), string(BudgetFlexible), string(BudgetUnknown)}
	scopeValues    = []string{string(ScopeClear), string(ScopeModerate), string(ScopeUncertain)}
	timelineValues = []string{string(TimelineShort), string(TimelineMedium), string(TimelineLong)}
)

func (v Level) Valid() bool    { return contains(levelValues, string(v)) }
func (v Maturity) Valid() bool { return contains(maturityValues, string(v)) }
func (v Budget) Valid() bool   { return contains(budgetValues, string(v)) }
func (v Scope) Valid() bool    { return contains(scopeValues, string(v)) }
func (v Timeline) Valid() bool { return contains(timelineValues, string(v)) }

// Field names one of the eight answer set fields. The string value is the
// JSON/YAML key used on every external surface.
type Field string

const (
	FieldOutcomeMeasurability Field = "outcomeMeasurability"
	FieldClientRiskTolerance  Field = "clientRiskTolerance"
	FieldRelationshipMaturity Field = "relationshipMaturity"
	FieldBudgetVisibility     Field = "budgetVisibility"
	FieldScopeCertainty       Field = "scopeCertainty"
	FieldValueClarity         Field = "valueClarity"
	FieldTimeline             Field = "timeline"
	FieldClientSophistication Field = "clientSophistication"
)

var fieldOrder = []Field{
	FieldOutcomeMeasurability,
	FieldClientRiskTolerance,
	FieldRelationshipMaturity,
	FieldBudgetVisibility,
	FieldScopeCertainty,
	FieldValueClarity,
	FieldTimeline,
	FieldClientSophistication,
}

// Fields returns the eight fields in the order the wizard asks them.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Allowed returns the closed set of values accepted for the field, or nil
// for an unknown field.
func (f Field) Allowed() []string {
	switch f {
	case FieldOutcomeMeasurability, FieldClientRiskTolerance, FieldValueClarity, FieldClientSophistication:
		return append([]string(nil), levelValues...)
	case FieldRelationshipMaturity:
		return append([]string(nil), maturityValues...)
	case FieldBudgetVisibility:
		return append([]string(nil), budgetValues...)
	case FieldScopeCertainty:
		return append([]string(nil), scopeValues...)
	case FieldTimeline:
		return append([]string(nil), timelineValues...)
	}
	return nil
}

// AnswerSet is the eight-field categorical profile of a client engagement.
// An empty field is "unanswered"; the engine only accepts complete sets.
type AnswerSet struct {
	OutcomeMeasurability Level    `json:"outcomeMeasurability" yaml:"outcomeMeasurability"`
	ClientRiskTolerance  Level    `json:"clientRiskTolerance" yaml:"clientRiskTolerance"`
	RelationshipMaturity Maturity `json:"relationshipMaturity" yaml:"relationshipMaturity"`
	BudgetVisibility     Budget   `json:"budgetVisibility" yaml:"budgetVisibility"`
	ScopeCertainty       Scope    `json:"scopeCertainty" yaml:"scopeCertainty"`
	ValueClarity         Level    `json:"valueClarity" yaml:"valueClarity"`
	Timeline             Timeline `json:"timeline" yaml:"timeline"`
	ClientSophistication Level    `json:"clientSophistication" yaml:"clientSophistication"`
}

// Get returns the raw value currently held by the field.
func (a AnswerSet) Get(f Field) string {
	switch f {
	case FieldOutcomeMeasurability:
		return string(a.OutcomeMeasurability)
	case FieldClientRiskTolerance:
		return string(a.ClientRiskTolerance)
	case FieldRelationshipMaturity:
		return string(a.RelationshipMaturity)
	case FieldBudgetVisibility:
		return string(a.BudgetVisibility)
	case FieldScopeCertainty:
		return string(a.ScopeCertainty)
	case FieldValueClarity:
		return string(a.ValueClarity)
	case FieldTimeline:
		return string(a.Timeline)
	case FieldClientSophistication:
		return string(a.ClientSophistication)
	}
	return ""
}

// Set assigns one field after checking the value against its enumeration.
// The answer set is left unchanged on error.
func (a *AnswerSet) Set(f Field, value string) error {
	allowed := f.Allowed()
	if allowed == nil {
		return &InvalidInputError{Field: string(f), Value: value, Reason: "unknown field"}
	}
	if !contains(allowed, value) {
		return newInvalidValue(f, value)
	}

	switch f {
	case FieldOutcomeMeasurability:
		a.OutcomeMeasurability = Level(value)
	case FieldClientRiskTolerance:
		a.ClientRiskTolerance = Level(value)
	case FieldRelationshipMaturity:
		a.RelationshipMaturity = Maturity(value)
	case FieldBudgetVisibility:
		a.BudgetVisibility = Budget(value)
	case FieldScopeCertainty:
		a.ScopeCertainty = Scope(value)
	case FieldValueClarity:
		a.ValueClarity = Level(value)
	case FieldTimeline:
		a.Timeline = Timeline(value)
	case FieldClientSophistication:
		a.ClientSophistication = Level(value)
	}
	return nil
}

// Answered returns the fields that currently hold a value, in wizard order.
func (a AnswerSet) Answered() []Field {
	var out []Field
	for _, f := range fieldOrder {
		if a.Get(f) != "" {
			out = append(out, f)
		}
	}
	return out
}

// Complete reports whether every field holds a valid value.
func (a AnswerSet) Complete() bool {
	return a.Validate() == nil
}

// Validate reports every unanswered or out-of-domain field. The returned
// error matches ErrInvalidInput.
func (a AnswerSet) Validate() error {
	var errs []error
	for _, f := range fieldOrder {
		v := a.Get(f)
		if v == "" {
			errs = append(errs, newUnanswered(f))
			continue
		}
		if !contains(f.Allowed(), v) {
			errs = append(errs, newInvalidValue(f, v))
		}
	}
	return errors.Join(errs...)
}

// ParseAnswers builds a complete answer set from field/value pairs, as
// decoded from flags, YAML or tool arguments. Unknown keys are rejected.
func ParseAnswers(values map[string]string) (AnswerSet, error) {
	var (
		a    AnswerSet
		errs []error
	)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := a.Set(Field(k), values[k]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return AnswerSet{}, errors.Join(errs...)
	}
	if err := a.Validate(); err != nil {
		return AnswerSet{}, err
	}
	return a, nil
}

// String renders the answer set as field=value pairs in wizard order.
func (a AnswerSet) String() string {
	var b strings.Builder
	for i, f := range fieldOrder {
		if i > 0 {
			b.WriteByte(' ')
		}
		v := a.Get(f)
		if v == "" {
			v = "?"
		}
		fmt.Fprintf(&b, "%s=%s", f, v)
	}
	return b.String()
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

package recommend

import "errors"

// Situation is the three-answer subset used by the quick shortlist.
type Situation struct {
	OutcomeMeasurability Level `json:"outcomeMeasurability" yaml:"outcomeMeasurability" mapstructure:"outcomeMeasurability"`
	ClientRiskTolerance  Level `json:"clientRiskTolerance" yaml:"clientRiskTolerance" mapstructure:"clientRiskTolerance"`
	ScopeCertainty       Scope `json:"scopeCertainty" yaml:"scopeCertainty" mapstructure:"scopeCertainty"`
}

// Validate reports every unanswered or out-of-domain field.
func (s Situation) Validate() error {
	var errs []error
	check := func(f Field, v string) {
		switch {
		case v == "":
			errs = append(errs, newUnanswered(f))
		case !contains(f.Allowed(), v):
			errs = append(errs, newInvalidValue(f, v))
		}
	}
	check(FieldOutcomeMeasurability, string(s.OutcomeMeasurability))
	check(FieldClientRiskTolerance, string(s.ClientRiskTolerance))
	check(FieldScopeCertainty, string(s.ScopeCertainty))
	return errors.Join(errs...)
}

// Shortlist returns the unranked playbook shortlist of model ids for a
// situation. It never returns an empty list for valid input.
func Shortlist(s Situation) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var ids []string
	if s.OutcomeMeasurability == LevelHigh && s.ClientRiskTolerance != LevelLow {
		ids = append(ids, ModelOutcomeBased)
	}
	if s.ClientRiskTolerance == LevelLow {
		ids = append(ids, ModelSuccessBasedRiskShare)
	}
	switch s.ScopeCertainty {
	case ScopeClear:
		ids = append(ids, ModelTieredAugmentation, ModelValueBasedROI)
	case ScopeUncertain:
		ids = append(ids, ModelTimeMaterials, ModelHybridCustomized)
	}

	if len(ids) == 0 {
		return []string{ModelHybridCustomized}, nil
	}
	return ids, nil
}

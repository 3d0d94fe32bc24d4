package rules

import "time"

// RuleRecord is the outcome of one rule evaluated against one target.
// Records are built once by the evaluation driver and are read-only afterwards.
type RuleRecord struct {
	RunID         string
	RuleID        ResourceId
	Ref           string
	TargetObject  TargetObject
	TargetName    string
	TargetType    string
	Tag           ResourceTags
	Info          RuleHelpInfo
	Field         map[string]any
	Reason        []string
	Level         SeverityLevel
	Extent        *SourceExtent
	Outcome       Outcome
	OutcomeReason OutcomeReason
	Time          time.Duration
}

type RecordOption func(*RuleRecord)

func WithRef(ref string) RecordOption {
	return func(r *RuleRecord) { r.Ref = ref }
}

func WithTags(tags ResourceTags) RecordOption {
	return func(r *RuleRecord) { r.Tag = tags.clone() }
}

// WithField records bound field values relevant to the outcome.
func WithField(field map[string]any) RecordOption {
	return func(r *RuleRecord) {
		r.Field = make(map[string]any, len(field))
		for k, v := range field {
			r.Field[k] = v
		}
	}
}

// WithReason appends failure reason messages.
func WithReason(reasons ...string) RecordOption {
	return func(r *RuleRecord) { r.Reason = append(r.Reason, reasons...) }
}

func WithExtent(extent SourceExtent) RecordOption {
	return func(r *RuleRecord) { r.Extent = &extent }
}

func WithTime(d time.Duration) RecordOption {
	return func(r *RuleRecord) { r.Time = d }
}

func NewRecord(runID string, ruleID ResourceId, target TargetObject, info RuleHelpInfo, level SeverityLevel, outcome Outcome, reason OutcomeReason, opts ...RecordOption) RuleRecord {
	r := RuleRecord{
		RunID:         runID,
		RuleID:        ruleID,
		TargetObject:  target,
		TargetName:    target.Name,
		TargetType:    target.Type,
		Info:          info,
		Level:         level,
		Outcome:       outcome,
		OutcomeReason: reason,
	}
	for _, apply := range opts {
		if apply != nil {
			apply(&r)
		}
	}
	return r.normalize()
}

func (r RuleRecord) normalize() RuleRecord {
	if r.Tag == nil {
		r.Tag = ResourceTags{}
	}
	if r.Field == nil {
		r.Field = map[string]any{}
	}
	if r.Reason == nil {
		r.Reason = []string{}
	}
	if r.Level == "" {
		r.Level = LevelError
	}
	if r.Outcome == "" {
		r.Outcome = OutcomeNone
	}
	if r.OutcomeReason == "" {
		r.OutcomeReason = ReasonNone
	}
	return r
}

// clone copies the maps, slices and extent of r.
func (r RuleRecord) clone() RuleRecord {
	if r.Tag != nil {
		r.Tag = r.Tag.clone()
	}
	if r.Field != nil {
		field := make(map[string]any, len(r.Field))
		for k, v := range r.Field {
			field[k] = v
		}
		r.Field = field
	}
	if r.Reason != nil {
		r.Reason = append([]string{}, r.Reason...)
	}
	if r.Extent != nil {
		extent := *r.Extent
		r.Extent = &extent
	}
	return r
}

// RuleName is the name part of the rule id.
func (r RuleRecord) RuleName() string {
	return r.RuleID.Name
}

// IsSuccess reports whether the record passed.
func (r RuleRecord) IsSuccess() bool {
	return r.Outcome == OutcomePass
}

// Recommendation never returns an absent value; an unset recommendation is "".
func (r RuleRecord) Recommendation() string {
	return r.Info.Recommendation.Text
}

func (r RuleRecord) Synopsis() string {
	return r.Info.Synopsis.Text
}

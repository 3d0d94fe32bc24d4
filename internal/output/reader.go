package output

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"psrule/internal/rules"
)

// resultDoc accepts both the JSON and YAML result documents.
type resultDoc struct {
	Detail struct {
		Field  map[string]any `yaml:"field"`
		Reason []string       `yaml:"reason"`
	} `yaml:"detail"`
	Info struct {
		DisplayName    string `yaml:"displayName"`
		ModuleName     string `yaml:"moduleName"`
		Name           string `yaml:"name"`
		Recommendation string `yaml:"recommendation"`
		Synopsis       string `yaml:"synopsis"`
	} `yaml:"info"`
	Level         string            `yaml:"level"`
	Outcome       string            `yaml:"outcome"`
	OutcomeReason string            `yaml:"outcomeReason"`
	Ref           string            `yaml:"ref"`
	RuleName      string            `yaml:"ruleName"`
	RunID         string            `yaml:"runId"`
	Source        []sourceDoc       `yaml:"source"`
	Tag           map[string]string `yaml:"tag"`
	TargetName    string            `yaml:"targetName"`
	TargetType    string            `yaml:"targetType"`
	Time          int64             `yaml:"time"`
}

// ReadResults decodes a document written by the JSON or YAML writer. Records are
// grouped by target in first-seen order.
func ReadResults(r io.Reader) ([]rules.InvokeResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	var docs []resultDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}

	var buf buffer
	for i, d := range docs {
		rec, err := d.record()
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		if err := buf.addRecord(rec); err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
	}
	return buf.results, nil
}

func (d resultDoc) record() (rules.RuleRecord, error) {
	if d.RuleName == "" {
		return rules.RuleRecord{}, fmt.Errorf("missing ruleName")
	}
	level := rules.LevelError
	if d.Level != "" {
		l, err := rules.ParseSeverityLevel(d.Level)
		if err != nil {
			return rules.RuleRecord{}, err
		}
		level = l
	}
	outcome := rules.OutcomeNone
	if d.Outcome != "" {
		o, err := rules.ParseOutcome(d.Outcome)
		if err != nil {
			return rules.RuleRecord{}, err
		}
		outcome = o
	}
	reason := rules.ReasonNone
	if d.OutcomeReason != "" {
		r, err := rules.ParseOutcomeReason(d.OutcomeReason)
		if err != nil {
			return rules.RuleRecord{}, err
		}
		reason = r
	}

	name := d.Info.Name
	if name == "" {
		name = d.RuleName
	}
	info := rules.RuleHelpInfo{
		Name:           name,
		DisplayName:    d.Info.DisplayName,
		ModuleName:     d.Info.ModuleName,
		Synopsis:       rules.NewInfoString(d.Info.Synopsis),
		Recommendation: rules.NewInfoString(d.Info.Recommendation),
	}
	opts := []rules.RecordOption{
		rules.WithRef(d.Ref),
		rules.WithTags(d.Tag),
		rules.WithReason(d.Detail.Reason...),
		rules.WithTime(time.Duration(d.Time) * time.Millisecond),
	}
	if len(d.Detail.Field) > 0 {
		opts = append(opts, rules.WithField(d.Detail.Field))
	}
	if len(d.Source) > 0 && d.Source[0].File != "" {
		opts = append(opts, rules.WithExtent(rules.SourceExtent{
			File:     d.Source[0].File,
			Line:     d.Source[0].Line,
			Position: d.Source[0].Position,
		}))
	}

	target := rules.NewTargetObject(nil, d.TargetName, d.TargetType)
	id := rules.NewResourceId(d.Info.ModuleName, d.RuleName)
	return rules.NewRecord(d.RunID, id, target, info, level, outcome, reason, opts...), nil
}

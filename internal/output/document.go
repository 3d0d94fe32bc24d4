package output

import (
	"path/filepath"

	"psrule/internal/rules"
)

// recordDoc is the serialized shape of a record. Field order is the document order.
type recordDoc struct {
	Detail        detailDoc         `json:"detail"`
	Info          infoDoc           `json:"info"`
	Level         string            `json:"level"`
	Outcome       string            `json:"outcome"`
	OutcomeReason string            `json:"outcomeReason"`
	Ref           string            `json:"ref,omitempty"`
	RuleName      string            `json:"ruleName"`
	RunID         string            `json:"runId"`
	Source        []sourceDoc       `json:"source"`
	Tag           map[string]string `json:"tag"`
	TargetName    string            `json:"targetName"`
	TargetType    string            `json:"targetType"`
	Time          int64             `json:"time"`
}

type detailDoc struct {
	Field  map[string]any `json:"field,omitempty"`
	Reason []string       `json:"reason,omitempty"`
}

type infoDoc struct {
	DisplayName    string `json:"displayName,omitempty"`
	ModuleName     string `json:"moduleName,omitempty"`
	Name           string `json:"name,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Synopsis       string `json:"synopsis,omitempty"`
}

type sourceDoc struct {
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	Position int    `json:"position,omitempty" yaml:"position,omitempty"`
	Type     string `json:"type" yaml:"type"`
}

// yamlRecordDoc is the YAML shape: detail always lists reasons and info keeps the
// module and recommendation only.
type yamlRecordDoc struct {
	Detail        yamlDetailDoc     `yaml:"detail"`
	Info          yamlInfoDoc       `yaml:"info"`
	Level         string            `yaml:"level"`
	Outcome       string            `yaml:"outcome"`
	OutcomeReason string            `yaml:"outcomeReason"`
	Ref           string            `yaml:"ref,omitempty"`
	RuleName      string            `yaml:"ruleName"`
	RunID         string            `yaml:"runId"`
	Source        []sourceDoc       `yaml:"source"`
	Tag           map[string]string `yaml:"tag"`
	TargetName    string            `yaml:"targetName"`
	TargetType    string            `yaml:"targetType"`
	Time          int64             `yaml:"time"`
}

type yamlDetailDoc struct {
	Field  map[string]any `yaml:"field,omitempty"`
	Reason []string       `yaml:"reason"`
}

type yamlInfoDoc struct {
	ModuleName     string `yaml:"moduleName,omitempty"`
	Recommendation string `yaml:"recommendation,omitempty"`
}

func newRecordDoc(r rules.RuleRecord) recordDoc {
	return recordDoc{
		Detail: detailDoc{Field: r.Field, Reason: r.Reason},
		Info: infoDoc{
			DisplayName:    r.Info.DisplayName,
			ModuleName:     r.Info.ModuleName,
			Name:           r.Info.Name,
			Recommendation: r.Recommendation(),
			Synopsis:       r.Synopsis(),
		},
		Level:         string(r.Level),
		Outcome:       string(r.Outcome),
		OutcomeReason: string(r.OutcomeReason),
		Ref:           r.Ref,
		RuleName:      r.RuleName(),
		RunID:         r.RunID,
		Source:        sourceDocs(r.Extent),
		Tag:           tagDoc(r.Tag),
		TargetName:    r.TargetName,
		TargetType:    r.TargetType,
		Time:          r.Time.Milliseconds(),
	}
}

func newYAMLRecordDoc(r rules.RuleRecord) yamlRecordDoc {
	reason := r.Reason
	if reason == nil {
		reason = []string{}
	}
	var field map[string]any
	if len(r.Field) > 0 {
		field = r.Field
	}
	return yamlRecordDoc{
		Detail: yamlDetailDoc{Field: field, Reason: reason},
		Info: yamlInfoDoc{
			ModuleName:     r.Info.ModuleName,
			Recommendation: r.Recommendation(),
		},
		Level:         string(r.Level),
		Outcome:       string(r.Outcome),
		OutcomeReason: string(r.OutcomeReason),
		Ref:           r.Ref,
		RuleName:      r.RuleName(),
		RunID:         r.RunID,
		Source:        sourceDocs(r.Extent),
		Tag:           tagDoc(r.Tag),
		TargetName:    r.TargetName,
		TargetType:    r.TargetType,
		Time:          r.Time.Milliseconds(),
	}
}

func sourceDocs(extent *rules.SourceExtent) []sourceDoc {
	if extent == nil || extent.File == "" {
		return []sourceDoc{}
	}
	return []sourceDoc{{
		File:     filepath.ToSlash(extent.File),
		Line:     extent.Line,
		Position: extent.Position,
		Type:     "File",
	}}
}

func tagDoc(tags rules.ResourceTags) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

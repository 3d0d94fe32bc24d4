package output

import (
	"path/filepath"

	"psrule/internal/rules"
)

const (
	sarifSchema         = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion        = "2.1.0"
	sarifToolName       = "PSRule"
	sarifInformationURI = "https://aka.ms/ps-rule"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool                     sarifTool             `json:"tool"`
	Results                  []sarifResult         `json:"results"`
	VersionControlProvenance []sarifVersionControl `json:"versionControlProvenance,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name            string               `json:"name"`
	SemanticVersion string               `json:"semanticVersion,omitempty"`
	InformationURI  string               `json:"informationUri,omitempty"`
	Rules           []sarifReportingRule `json:"rules"`
}

type sarifReportingRule struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name,omitempty"`
	ShortDescription     *sarifMessage       `json:"shortDescription,omitempty"`
	Help                 *sarifMessage       `json:"help,omitempty"`
	DefaultConfiguration *sarifConfiguration `json:"defaultConfiguration,omitempty"`
}

type sarifConfiguration struct {
	Level string `json:"level,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Kind      string          `json:"kind"`
	Level     string          `json:"level,omitempty"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text     string `json:"text"`
	Markdown string `json:"markdown,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

type sarifVersionControl struct {
	RepositoryURI string `json:"repositoryUri"`
	RevisionID    string `json:"revisionId,omitempty"`
	Branch        string `json:"branch,omitempty"`
}

// SarifWriter renders a SARIF 2.1.0 log with a single run.
type SarifWriter struct {
	documentWriter
	version      string
	problemsOnly bool
	repository   sarifVersionControl
}

func NewSarifWriter(sink Sink, opts Options) *SarifWriter {
	return &SarifWriter{
		documentWriter: newDocumentWriter(FormatSarif, opts.Path, sink, opts.Outcome),
		version:        opts.Version,
		problemsOnly:   opts.SarifProblemsOnly,
		repository: sarifVersionControl{
			RepositoryURI: opts.RepositoryURL,
			RevisionID:    opts.RepositoryRevision,
			Branch:        opts.RepositoryRef,
		},
	}
}

func (w *SarifWriter) End() error {
	return w.flush(w.render)
}

func (w *SarifWriter) render(results []rules.InvokeResult) ([]byte, error) {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:            sarifToolName,
			SemanticVersion: w.version,
			InformationURI:  sarifInformationURI,
			Rules:           []sarifReportingRule{},
		}},
		Results: []sarifResult{},
	}
	if w.repository.RepositoryURI != "" {
		run.VersionControlProvenance = []sarifVersionControl{w.repository}
	}

	ruleIndex := make(map[string]int)
	for _, r := range records(results) {
		if w.problemsOnly && !r.Outcome.IsProblem() {
			continue
		}
		id := sarifRuleID(r)
		i, ok := ruleIndex[id]
		if !ok {
			i = len(run.Tool.Driver.Rules)
			ruleIndex[id] = i
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, newSarifReportingRule(id, r))
		}
		run.Results = append(run.Results, w.newResult(id, i, r))
	}

	return marshalJSON(sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs:    []sarifRun{run},
	}, 2)
}

func (w *SarifWriter) newResult(id string, index int, r rules.RuleRecord) sarifResult {
	res := sarifResult{
		RuleID:    id,
		RuleIndex: index,
		Kind:      "fail",
		Level:     sarifLevel(r.Level),
		Message:   sarifResultMessage(r),
	}
	if r.IsSuccess() {
		res.Kind = "pass"
		res.Level = "none"
	}
	if r.Extent != nil && r.Extent.File != "" {
		loc := sarifLocation{PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(r.Extent.File)},
		}}
		if r.Extent.Line > 0 {
			loc.PhysicalLocation.Region = &sarifRegion{StartLine: r.Extent.Line, StartColumn: r.Extent.Position}
		}
		res.Locations = []sarifLocation{loc}
	}
	return res
}

func newSarifReportingRule(id string, r rules.RuleRecord) sarifReportingRule {
	rule := sarifReportingRule{ID: id, Name: r.Info.Name}
	if rule.Name == "" {
		rule.Name = r.RuleName()
	}
	if s := r.Synopsis(); s != "" {
		rule.ShortDescription = &sarifMessage{Text: s}
	}
	if r.Info.Recommendation.HasValue() {
		rule.Help = &sarifMessage{Text: r.Info.Recommendation.Text, Markdown: r.Info.Recommendation.Markdown}
	}
	if level := sarifLevel(r.Level); level != "" {
		rule.DefaultConfiguration = &sarifConfiguration{Level: level}
	}
	return rule
}

// sarifRuleID prefers the stable rule reference over the qualified name.
func sarifRuleID(r rules.RuleRecord) string {
	if r.Ref != "" {
		return r.Ref
	}
	return r.RuleID.String()
}

// sarifLevel maps severity to a SARIF level. Warning is the SARIF default and is
// left empty.
func sarifLevel(level rules.SeverityLevel) string {
	switch level {
	case rules.LevelError:
		return "error"
	case rules.LevelInformation:
		return "note"
	case rules.LevelWarning:
		return ""
	default:
		return "none"
	}
}

func sarifResultMessage(r rules.RuleRecord) sarifMessage {
	if text := r.Recommendation(); text != "" {
		return sarifMessage{Text: text}
	}
	return sarifMessage{Text: r.Synopsis()}
}

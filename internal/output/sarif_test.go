package output

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"psrule/internal/rules"
)

func decodeSarif(t *testing.T, body string) sarifLog {
	t.Helper()
	var log sarifLog
	if err := json.Unmarshal([]byte(body), &log); err != nil {
		t.Fatalf("Unmarshal sarif: %v\n%s", err, body)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("want 1 run, got %d", len(log.Runs))
	}
	return log
}

type sarifOutcome struct {
	RuleID string
	Level  string
	Kind   string
}

func sarifOutcomes(run sarifRun) []sarifOutcome {
	var out []sarifOutcome
	for _, r := range run.Results {
		out = append(out, sarifOutcome{RuleID: r.RuleID, Level: r.Level, Kind: r.Kind})
	}
	return out
}

func TestSarifWriter(t *testing.T) {
	opts := testOptions()
	opts.SarifProblemsOnly = false
	sink := NewMemorySink()
	runWriter(t, NewSarifWriter(sink, opts), standardResult(t))

	log := decodeSarif(t, sink.String())
	if log.Version != "2.1.0" {
		t.Fatalf("version: want 2.1.0, got %s", log.Version)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "PSRule" || run.Tool.Driver.SemanticVersion != "0.0.1" {
		t.Fatalf("unexpected driver: %+v", run.Tool.Driver)
	}
	if len(run.VersionControlProvenance) != 1 || run.VersionControlProvenance[0].RepositoryURI != "https://github.com/microsoft/PSRule.UnitTest" {
		t.Fatalf("unexpected provenance: %+v", run.VersionControlProvenance)
	}

	want := []sarifOutcome{
		{RuleID: `TestModule\rule-001`, Level: "none", Kind: "pass"},
		{RuleID: "rid-002", Level: "error", Kind: "fail"},
		{RuleID: "rid-003", Level: "", Kind: "fail"},
		{RuleID: "rid-004", Level: "note", Kind: "fail"},
	}
	if diff := cmp.Diff(want, sarifOutcomes(run)); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
	if got := run.Results[1].Message.Text; got != "Recommendation for rule 002" {
		t.Fatalf("message: got %q", got)
	}
	if len(run.Tool.Driver.Rules) != 4 {
		t.Fatalf("want 4 rule descriptors, got %d", len(run.Tool.Driver.Rules))
	}
	for i, r := range run.Results {
		if run.Tool.Driver.Rules[r.RuleIndex].ID != r.RuleID {
			t.Fatalf("result %d: rule index %d points at %s", i, r.RuleIndex, run.Tool.Driver.Rules[r.RuleIndex].ID)
		}
	}
}

func TestSarifWriter_ProblemsOnly(t *testing.T) {
	opts := DefaultOptions()
	opts.Version = "0.0.1"
	sink := NewMemorySink()
	runWriter(t, NewSarifWriter(sink, opts), standardResult(t))

	run := decodeSarif(t, sink.String()).Runs[0]
	want := []sarifOutcome{
		{RuleID: "rid-002", Level: "error", Kind: "fail"},
		{RuleID: "rid-003", Level: "", Kind: "fail"},
		{RuleID: "rid-004", Level: "note", Kind: "fail"},
	}
	if diff := cmp.Diff(want, sarifOutcomes(run)); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
	if len(run.VersionControlProvenance) != 0 {
		t.Fatalf("provenance should be omitted without a repository url")
	}
}

func TestSarifWriter_LevelNoneAndLocation(t *testing.T) {
	r := rules.NewRecord(
		"run-001",
		rules.ParseResourceId(`TestModule\rule-009`),
		rules.NewTargetObject(nil, "TestObject1", "TestType"),
		rules.RuleHelpInfo{Name: "rule-009", Synopsis: rules.NewInfoString("Synopsis only.")},
		rules.LevelNone,
		rules.OutcomeError,
		rules.ReasonProcessed,
		rules.WithExtent(rules.SourceExtent{File: `rules\test.Rule.yaml`, Line: 12, Position: 5}),
	)
	sink := NewMemorySink()
	runWriter(t, NewSarifWriter(sink, testOptions()), r)

	res := decodeSarif(t, sink.String()).Runs[0].Results
	if len(res) != 1 {
		t.Fatalf("want 1 result, got %d", len(res))
	}
	if res[0].Level != "none" || res[0].Message.Text != "Synopsis only." {
		t.Fatalf("unexpected result: %+v", res[0])
	}
	if len(res[0].Locations) != 1 {
		t.Fatalf("want 1 location, got %d", len(res[0].Locations))
	}
	loc := res[0].Locations[0].PhysicalLocation
	if loc.Region == nil || loc.Region.StartLine != 12 || loc.Region.StartColumn != 5 {
		t.Fatalf("unexpected region: %+v", loc.Region)
	}
}

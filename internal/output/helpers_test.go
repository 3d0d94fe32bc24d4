package output

import (
	"testing"

	"psrule/internal/rules"
)

func passRecord() rules.RuleRecord {
	return rules.NewRecord(
		"run-001",
		rules.ParseResourceId(`TestModule\rule-001`),
		rules.NewTargetObject(map[string]any{}, "TestObject1", "TestType"),
		rules.RuleHelpInfo{
			Name:           "rule-001",
			DisplayName:    "Rule 001",
			ModuleName:     "TestModule",
			Synopsis:       rules.NewInfoString("This is rule 001."),
			Recommendation: rules.NewInfoString("Recommendation for rule 001"),
		},
		rules.LevelError,
		rules.OutcomePass,
		rules.ReasonProcessed,
	)
}

type failOption func(*failSpec)

type failSpec struct {
	ref      string
	level    rules.SeverityLevel
	synopsis string
	ruleID   string
}

func withSynopsis(s string) failOption { return func(f *failSpec) { f.synopsis = s } }
func withRuleID(s string) failOption   { return func(f *failSpec) { f.ruleID = s } }

func failRecord(ref string, level rules.SeverityLevel, opts ...failOption) rules.RuleRecord {
	spec := failSpec{ref: ref, level: level, synopsis: "This is rule 002.", ruleID: `TestModule\rule-002`}
	for _, o := range opts {
		o(&spec)
	}
	return rules.NewRecord(
		"run-001",
		rules.ParseResourceId(spec.ruleID),
		rules.NewTargetObject(map[string]any{}, "TestObject1", "TestType"),
		rules.RuleHelpInfo{
			Name:           "rule-002",
			DisplayName:    "Rule 002",
			ModuleName:     "TestModule",
			Synopsis:       rules.NewInfoString(spec.synopsis),
			Recommendation: rules.NewInfoString("Recommendation for rule 002"),
		},
		spec.level,
		rules.OutcomeFail,
		rules.ReasonProcessed,
		rules.WithRef(spec.ref),
	)
}

func newResult(t *testing.T, records ...rules.RuleRecord) *rules.InvokeResult {
	t.Helper()
	ir, err := rules.NewInvokeResult(records...)
	if err != nil {
		t.Fatalf("NewInvokeResult: %v", err)
	}
	return ir
}

// standardResult is one pass and three failures at each severity.
func standardResult(t *testing.T) *rules.InvokeResult {
	t.Helper()
	return newResult(t,
		passRecord(),
		failRecord("rid-002", rules.LevelError),
		failRecord("rid-003", rules.LevelWarning),
		failRecord("rid-004", rules.LevelInformation),
	)
}

// runWriter drives a writer through a full lifecycle.
func runWriter(t *testing.T, w Writer, objects ...any) {
	t.Helper()
	if err := w.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	for _, o := range objects {
		if err := w.WriteObject(o, false); err != nil {
			t.Fatalf("WriteObject: %v", err)
		}
	}
	if err := w.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Version = "0.0.1"
	opts.RepositoryURL = "https://github.com/microsoft/PSRule.UnitTest"
	return opts
}

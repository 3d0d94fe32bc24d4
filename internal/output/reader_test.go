package output

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"psrule/internal/rules"
)

func TestReadResults_JSONRoundTrip(t *testing.T) {
	r := failRecord("rid-002", rules.LevelWarning)
	r.Reason = []string{"Field 'kind' was not set."}
	r.Time = 1200 * time.Millisecond
	r.Tag = rules.ResourceTags{"release": "GA"}
	in := newResult(t, passRecord(), r)

	sink := NewMemorySink()
	runWriter(t, NewJSONWriter(sink, testOptions()), in)

	got, err := ReadResults(strings.NewReader(sink.String()))
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 target, got %d", len(got))
	}

	opts := cmp.Options{
		cmpopts.IgnoreFields(rules.RuleRecord{}, "TargetObject"),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(in.Records(), got[0].Records(), opts); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadResults_YAMLGroupsTargets(t *testing.T) {
	doc := `
- ruleName: rule-001
  outcome: Pass
  targetName: a
  targetType: T
  info:
    moduleName: TestModule
- ruleName: rule-001
  outcome: Fail
  targetName: b
  targetType: T
- ruleName: rule-002
  outcome: Fail
  level: Warning
  targetName: a
  targetType: T
`
	got, err := ReadResults(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if len(got) != 2 || got[0].Len() != 2 || got[1].Len() != 1 {
		t.Fatalf("unexpected grouping: %d groups", len(got))
	}
	first := got[0].Records()[0]
	if first.RuleID.String() != `TestModule\rule-001` || first.Level != rules.LevelError {
		t.Fatalf("unexpected record: %+v", first)
	}
}

func TestReadResults_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"not a list":   `ruleName: x`,
		"missing name": `[{"outcome": "Pass"}]`,
		"bad outcome":  `[{"ruleName": "r", "outcome": "Maybe"}]`,
		"bad level":    `[{"ruleName": "r", "outcome": "Pass", "level": "Loud"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadResults(strings.NewReader(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

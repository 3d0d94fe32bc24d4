package output

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"psrule/internal/rules"
)

func TestSummarize(t *testing.T) {
	a := passRecord()
	a.Time = 1500 * time.Millisecond
	b := failRecord("rid-002", rules.LevelError)
	b.Time = 2 * time.Second
	c := passRecord()
	c.TargetName = "TestObject2"
	c.Outcome = rules.OutcomeError

	s := Summarize([]rules.InvokeResult{*newResult(t, a, b), *newResult(t, c)})
	if s.RuleCount != 3 || s.TargetCount != 2 {
		t.Fatalf("counts: got %d rules, %d targets", s.RuleCount, s.TargetCount)
	}
	if s.Outcome != rules.OutcomeFail || s.Passed() {
		t.Fatalf("outcome: got %s", s.Outcome)
	}
	if s.Elapsed != 3500*time.Millisecond {
		t.Fatalf("elapsed: got %s", s.Elapsed)
	}
	if s.Pass != 1 || s.Fail != 1 || s.Error != 1 {
		t.Fatalf("per outcome: %d/%d/%d", s.Pass, s.Fail, s.Error)
	}
	var names []string
	for _, p := range s.Problems {
		names = append(names, p.RuleName()+"@"+p.TargetName)
	}
	if diff := cmp.Diff([]string{"rule-002@TestObject1", "rule-001@TestObject2"}, names); diff != "" {
		t.Fatalf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_SameTargetAcrossResults(t *testing.T) {
	s := Summarize([]rules.InvokeResult{*newResult(t, passRecord()), *newResult(t, passRecord())})
	if s.TargetCount != 1 || s.RuleCount != 2 || s.Outcome != rules.OutcomePass {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if len(s.Targets[0].Records) != 2 {
		t.Fatalf("want both records grouped under one target")
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Outcome != rules.OutcomePass || s.RuleCount != 0 || s.TargetCount != 0 {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{999 * time.Millisecond, "00:00:00"},
		{75 * time.Second, "00:01:15"},
		{26*time.Hour + 3*time.Minute, "26:03:00"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%s) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

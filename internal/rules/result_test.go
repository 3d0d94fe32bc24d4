package rules

import "testing"

func TestOutcome_IsProblem(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    bool
	}{
		{OutcomePass, false},
		{OutcomeFail, true},
		{OutcomeError, true},
		{OutcomeNone, false},
	}
	for _, tt := range tests {
		if got := tt.outcome.IsProblem(); got != tt.want {
			t.Errorf("%s.IsProblem() = %v, want %v", tt.outcome, got, tt.want)
		}
	}
}

func TestOutcome_RankOrdersWorstLast(t *testing.T) {
	order := []Outcome{OutcomeNone, OutcomePass, OutcomeFail, OutcomeError}
	for i := 1; i < len(order); i++ {
		if order[i-1].rank() >= order[i].rank() {
			t.Fatalf("%s should rank below %s", order[i-1], order[i])
		}
	}
}

func TestSeverityLevel_Rank(t *testing.T) {
	order := []SeverityLevel{LevelNone, LevelInformation, LevelWarning, LevelError}
	for i, l := range order {
		if l.Rank() != i {
			t.Errorf("%s.Rank() = %d, want %d", l, l.Rank(), i)
		}
	}
	if SeverityLevel("bogus").Rank() != 0 {
		t.Error("unknown level should rank as None")
	}
}

func TestParseOutcomeReason(t *testing.T) {
	got, err := ParseOutcomeReason(" suppressed ")
	if err != nil || got != ReasonSuppressed {
		t.Fatalf("ParseOutcomeReason() = %q, %v", got, err)
	}
	if _, err := ParseOutcomeReason("skipped"); err == nil {
		t.Fatal("expected error for unknown reason")
	}
}

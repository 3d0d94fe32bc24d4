package output

import (
	"fmt"
	"time"

	"psrule/internal/rules"
)

// TargetGroup is every rendered record for one target name, in arrival order.
type TargetGroup struct {
	Name    string
	Type    string
	Records []rules.RuleRecord
}

type Summary struct {
	RuleCount   int
	TargetCount int
	Outcome     rules.Outcome
	Elapsed     time.Duration

	Pass  int
	Fail  int
	Error int
	None  int

	Problems []rules.RuleRecord
	Targets  []TargetGroup
}

// Summarize aggregates the run. An empty run passes.
func Summarize(results []rules.InvokeResult) Summary {
	s := Summary{Outcome: rules.OutcomePass}
	index := make(map[string]int)
	for _, ir := range results {
		for _, r := range ir.Records() {
			s.RuleCount++
			s.Elapsed += r.Time

			switch r.Outcome {
			case rules.OutcomePass:
				s.Pass++
			case rules.OutcomeFail:
				s.Fail++
			case rules.OutcomeError:
				s.Error++
			default:
				s.None++
			}
			if r.Outcome.IsProblem() {
				s.Outcome = rules.OutcomeFail
				s.Problems = append(s.Problems, r)
			}

			i, ok := index[r.TargetName]
			if !ok {
				i = len(s.Targets)
				index[r.TargetName] = i
				s.Targets = append(s.Targets, TargetGroup{Name: r.TargetName, Type: r.TargetType})
			}
			s.Targets[i].Records = append(s.Targets[i].Records, r)
		}
	}
	s.TargetCount = len(s.Targets)
	return s
}

func (s Summary) Passed() bool {
	return s.Outcome == rules.OutcomePass
}

// FormatElapsed renders d as HH:MM:SS. Hours keep counting past 24.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

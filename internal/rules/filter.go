package rules

import (
	"fmt"
	"strings"
)

// OutcomeFilter is a set of outcomes to render.
type OutcomeFilter uint8

const (
	FilterPass OutcomeFilter = 1 << iota
	FilterFail
	FilterError
	FilterNone

	FilterProblem   = FilterFail | FilterError
	FilterProcessed = FilterPass | FilterFail | FilterError
	FilterAll       = FilterProcessed | FilterNone
)

func (f OutcomeFilter) Match(o Outcome) bool {
	switch o {
	case OutcomePass:
		return f&FilterPass != 0
	case OutcomeFail:
		return f&FilterFail != 0
	case OutcomeError:
		return f&FilterError != 0
	default:
		return f&FilterNone != 0
	}
}

// ParseOutcomeFilter combines outcome names. Empty input means Processed.
func ParseOutcomeFilter(names []string) (OutcomeFilter, error) {
	var f OutcomeFilter
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		switch strings.ToLower(n) {
		case "pass":
			f |= FilterPass
		case "fail":
			f |= FilterFail
		case "error":
			f |= FilterError
		case "none":
			f |= FilterNone
		case "problem":
			f |= FilterProblem
		case "processed":
			f |= FilterProcessed
		case "all":
			f |= FilterAll
		default:
			return 0, fmt.Errorf("unknown outcome filter %q", n)
		}
	}
	if f == 0 {
		return FilterProcessed, nil
	}
	return f, nil
}

package rules

import (
	"fmt"
	"strings"
)

type Outcome string

const (
	OutcomePass  Outcome = "Pass"
	OutcomeFail  Outcome = "Fail"
	OutcomeError Outcome = "Error"
	// OutcomeNone marks a rule that was not evaluated (e.g. suppressed or filtered).
	OutcomeNone Outcome = "None"
)

// IsProblem reports whether the outcome counts as a failed run.
func (o Outcome) IsProblem() bool {
	return o == OutcomeFail || o == OutcomeError
}

func (o Outcome) rank() int {
	switch o {
	case OutcomeError:
		return 3
	case OutcomeFail:
		return 2
	case OutcomePass:
		return 1
	default:
		return 0
	}
}

func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{OutcomePass, OutcomeFail, OutcomeError, OutcomeNone} {
		if strings.EqualFold(string(o), strings.TrimSpace(s)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

type OutcomeReason string

const (
	ReasonNone           OutcomeReason = "None"
	ReasonProcessed      OutcomeReason = "Processed"
	ReasonInconclusive   OutcomeReason = "Inconclusive"
	ReasonDependencyFail OutcomeReason = "DependencyFail"
	ReasonSuppressed     OutcomeReason = "Suppressed"
)

func ParseOutcomeReason(s string) (OutcomeReason, error) {
	for _, r := range []OutcomeReason{ReasonNone, ReasonProcessed, ReasonInconclusive, ReasonDependencyFail, ReasonSuppressed} {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown outcome reason %q", s)
}

type SeverityLevel string

const (
	LevelError       SeverityLevel = "Error"
	LevelWarning     SeverityLevel = "Warning"
	LevelInformation SeverityLevel = "Information"
	LevelNone        SeverityLevel = "None"
)

// Rank orders levels from None (0) to Error (3).
func (l SeverityLevel) Rank() int {
	switch l {
	case LevelError:
		return 3
	case LevelWarning:
		return 2
	case LevelInformation:
		return 1
	default:
		return 0
	}
}

func ParseSeverityLevel(s string) (SeverityLevel, error) {
	for _, l := range []SeverityLevel{LevelError, LevelWarning, LevelInformation, LevelNone} {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown severity level %q", s)
}

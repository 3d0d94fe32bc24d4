package rules

import (
	"path"
	"strings"
)

// SuppressionList marks records as not evaluated for configured rule/target pairs.
// Rules are matched by name, scope\name or ref; targets by exact name or
// path.Match pattern. Matching is case-insensitive.
type SuppressionList struct {
	targets map[string][]string
}

func NewSuppressionList(entries map[string][]string) SuppressionList {
	s := SuppressionList{targets: make(map[string][]string)}
	for rule, targets := range entries {
		rule = strings.ToLower(strings.TrimSpace(rule))
		if rule == "" {
			continue
		}
		for _, t := range targets {
			t = strings.TrimSpace(t)
			if t != "" {
				// We lowercase patterns to support case-insensitive matching
				s.targets[rule] = append(s.targets[rule], strings.ToLower(t))
			}
		}
	}
	return s
}

func (s SuppressionList) Len() int {
	return len(s.targets)
}

// IsSuppressed returns true and the matching pattern when the record is suppressed.
func (s SuppressionList) IsSuppressed(r RuleRecord) (bool, string) {
	if len(s.targets) == 0 {
		return false, ""
	}
	target := strings.ToLower(r.TargetName)
	for _, key := range []string{r.RuleID.Name, r.RuleID.String(), r.Ref} {
		if key == "" {
			continue
		}
		for _, pattern := range s.targets[strings.ToLower(key)] {
			if pattern == target {
				return true, pattern
			}
			if matched, _ := path.Match(pattern, target); matched {
				return true, pattern
			}
		}
	}
	return false, ""
}

// Apply returns the record with outcome None and reason Suppressed when it matches.
func (s SuppressionList) Apply(r RuleRecord) RuleRecord {
	if ok, _ := s.IsSuppressed(r); ok {
		r.Outcome = OutcomeNone
		r.OutcomeReason = ReasonSuppressed
	}
	return r
}

// ApplyAll rewrites every record of the given results.
func (s SuppressionList) ApplyAll(results []InvokeResult) []InvokeResult {
	if len(s.targets) == 0 {
		return results
	}
	out := make([]InvokeResult, 0, len(results))
	for _, ir := range results {
		next := InvokeResult{}
		for _, r := range ir.records {
			next.records = append(next.records, s.Apply(r))
		}
		out = append(out, next)
	}
	return out
}

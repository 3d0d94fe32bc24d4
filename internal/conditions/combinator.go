package conditions

// Result counts the child conditions of a combinator.
type Result struct {
	Pass  int
	Count int
}

func NewResult(results []bool) Result {
	r := Result{Count: len(results)}
	for _, ok := range results {
		if ok {
			r.Pass++
		}
	}
	return r
}

func (r Result) AnyOf() bool {
	return r.Pass > 0
}

func (r Result) AllOf() bool {
	return r.Count > 0 && r.Pass == r.Count
}

// AnyOf passes when at least one child result is true. No children never pass.
func (e *Evaluator) AnyOf(results ...bool) (bool, Result) {
	r := NewResult(results)
	outcome := r.AnyOf()
	e.tracer.VerboseConditionMessage(NameAnyOf, "results: %v", results)
	e.tracer.VerboseConditionResult(NameAnyOf, r.Pass, r.Count, outcome)
	return outcome, r
}

// AllOf passes when there is at least one child result and all are true.
func (e *Evaluator) AllOf(results ...bool) (bool, Result) {
	r := NewResult(results)
	outcome := r.AllOf()
	e.tracer.VerboseConditionMessage(NameAllOf, "results: %v", results)
	e.tracer.VerboseConditionResult(NameAllOf, r.Pass, r.Count, outcome)
	return outcome, r
}

// AnyOf evaluates without tracing.
func AnyOf(results ...bool) (bool, Result) {
	return defaultEvaluator.AnyOf(results...)
}

// AllOf evaluates without tracing.
func AllOf(results ...bool) (bool, Result) {
	return defaultEvaluator.AllOf(results...)
}

package conditions

import (
	"reflect"
	"strings"
)

// Evaluator runs condition primitives with a field binder and a trace sink.
type Evaluator struct {
	binder Binder
	tracer Tracer
}

var defaultEvaluator = New(nil, nil)

func New(binder Binder, tracer Tracer) *Evaluator {
	if binder == nil {
		binder = MapBinder{}
	}
	if tracer == nil {
		tracer = NopTracer{}
	}
	return &Evaluator{binder: binder, tracer: tracer}
}

type WithinOptions struct {
	// CaseSensitive applies to string value comparison, not to the field name.
	CaseSensitive bool
	// Not inverts the result.
	Not bool
}

// Within tests whether a target field holds one of the allowed values.
func (e *Evaluator) Within(target any, field string, allowed []any, opts WithinOptions) bool {
	value, found := e.binder.GetField(target, field, false)
	match := within(value, found, allowed, opts.CaseSensitive)
	if match {
		e.tracer.VerboseConditionMessage(NameWithin, "The field value '%v' was within the allowed values.", value)
	}
	result := opts.Not != match
	pass := 0
	if result {
		pass = 1
	}
	e.tracer.VerboseConditionResult(NameWithin, pass, 1, result)
	return result
}

// Within is the membership test over an already bound value. found is false when the
// field did not exist on the target. A nil allowed slice is treated as [nil].
func Within(value any, found bool, allowed []any, caseSensitive, negate bool) bool {
	return negate != within(value, found, allowed, caseSensitive)
}

func within(value any, found bool, allowed []any, caseSensitive bool) bool {
	if !found {
		return false
	}
	if allowed == nil {
		return value == nil
	}
	for _, candidate := range allowed {
		if value == nil || candidate == nil {
			// Exactly one side absent is incomparable and ends the scan.
			return value == nil && candidate == nil
		}
		if s, ok := value.(string); ok {
			if c, ok := candidate.(string); ok {
				if equalString(s, c, caseSensitive) {
					return true
				}
				continue
			}
		}
		if reflect.DeepEqual(candidate, value) {
			return true
		}
	}
	return false
}

func equalString(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

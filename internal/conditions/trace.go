package conditions

// Tracer receives diagnostic output from condition primitives.
// It never influences a condition's result.
type Tracer interface {
	VerboseConditionMessage(condition, message string, args ...any)
	VerboseConditionResult(condition string, pass, count int, outcome bool)
}

type NopTracer struct{}

func (NopTracer) VerboseConditionMessage(string, string, ...any) {}
func (NopTracer) VerboseConditionResult(string, int, int, bool) {}

// Condition names used in trace output.
const (
	NameAnyOf  = "AnyOf"
	NameAllOf  = "AllOf"
	NameWithin = "Within"
)

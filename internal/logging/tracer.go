package logging

import (
	"github.com/rs/zerolog"

	"psrule/internal/conditions"
)

var _ conditions.Tracer = ConditionTracer{}

// ConditionTracer writes condition diagnostics at debug level.
type ConditionTracer struct {
	Log zerolog.Logger
}

func NewConditionTracer(l zerolog.Logger) ConditionTracer {
	return ConditionTracer{Log: l}
}

func (t ConditionTracer) VerboseConditionMessage(condition, message string, args ...any) {
	t.Log.Debug().Str("condition", condition).Msgf(message, args...)
}

func (t ConditionTracer) VerboseConditionResult(condition string, pass, count int, outcome bool) {
	t.Log.Debug().
		Str("condition", condition).
		Int("pass", pass).
		Int("count", count).
		Bool("outcome", outcome).
		Msg("condition result")
}

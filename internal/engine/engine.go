package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"psrule/internal/config"
	"psrule/internal/output"
	"psrule/internal/rules"
)

const (
	ExitPass  = 0
	ExitFail  = 1
	ExitError = 2
	ExitFatal = 3
)

func exitCodeForRun(fatal, errored, failed bool) int {
	// Exit code contract:
	// 0 = every rendered rule passed
	// 1 = at least one rule failed
	// 2 = at least one rule errored
	// 3 = fatal error (results were not written)
	if fatal {
		return ExitFatal
	}
	if errored {
		return ExitError
	}
	if failed {
		return ExitFail
	}
	return ExitPass
}

// ExitCode derives the process exit code from the results of a run.
func ExitCode(results []rules.InvokeResult) int {
	var errored, failed bool
	for _, ir := range results {
		switch ir.Outcome() {
		case rules.OutcomeError:
			errored = true
		case rules.OutcomeFail:
			failed = true
		}
	}
	return exitCodeForRun(false, errored, failed)
}

// Engine renders a set of results through every configured writer.
type Engine struct {
	stdout  io.Writer
	log     zerolog.Logger
	version string
}

type Option func(*Engine)

// WithStdout redirects streamed documents, which default to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(e *Engine) { e.stdout = w }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(version string, opts ...Option) *Engine {
	e := &Engine{stdout: os.Stdout, log: zerolog.Nop(), version: version}
	for _, apply := range opts {
		if apply != nil {
			apply(e)
		}
	}
	return e
}

// Run applies suppression, writes every configured format and returns the exit code.
func (e *Engine) Run(ctx context.Context, cfg *config.Config, results []rules.InvokeResult) int {
	if err := ctx.Err(); err != nil {
		e.log.Error().Err(err).Msg("run canceled")
		return exitCodeForRun(true, false, false)
	}

	results = e.suppress(cfg, results)
	outMgr, err := e.setupOutputManager(cfg)
	if err != nil {
		e.log.Error().Err(err).Msg("failed to create output writers")
		return exitCodeForRun(true, false, false)
	}
	if err := e.write(outMgr, results); err != nil {
		e.log.Error().Err(err).Msg("failed to write results")
		return exitCodeForRun(true, false, false)
	}

	s := output.Summarize(results)
	e.log.Info().
		Int("rules", s.RuleCount).
		Int("targets", s.TargetCount).
		Str("outcome", string(s.Outcome)).
		Msg("run complete")
	return ExitCode(results)
}

// Render applies suppression and returns a single format rendered in memory.
func (e *Engine) Render(cfg *config.Config, format string, results []rules.InvokeResult) ([]byte, error) {
	sink := output.NewMemorySink()
	w, err := output.New(format, sink, cfg.WriterOptions(e.version))
	if err != nil {
		return nil, err
	}
	outMgr := output.NewManager()
	if err := outMgr.AddWriter(w); err != nil {
		return nil, err
	}
	if err := e.write(outMgr, e.suppress(cfg, results)); err != nil {
		return nil, err
	}
	doc, ok := sink.Last()
	if !ok {
		return nil, fmt.Errorf("render %s: no document written", format)
	}
	return doc.Body, nil
}

func (e *Engine) suppress(cfg *config.Config, results []rules.InvokeResult) []rules.InvokeResult {
	suppression := cfg.SuppressionList()
	if suppression.Len() == 0 {
		return results
	}
	e.log.Debug().Int("rules", suppression.Len()).Msg("applying suppression")
	return suppression.ApplyAll(results)
}

func (e *Engine) write(outMgr *output.Manager, results []rules.InvokeResult) error {
	if err := outMgr.Begin(); err != nil {
		return err
	}
	if err := outMgr.WriteObject(results, true); err != nil {
		return err
	}
	return outMgr.End()
}

// setupOutputManager routes each format to its sink. The markdown summary always
// goes to its own file; other formats go to --output-path or stdout.
func (e *Engine) setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()
	opts := cfg.WriterOptions(e.version)
	stream := output.NewStreamSink(e.stdout)

	for _, format := range cfg.Output.Format {
		var sink output.Sink = stream
		switch {
		case format == output.FormatMarkdown:
			sink = output.NewFileSink(cfg.Output.JobSummaryPath)
		case cfg.Output.Path != "":
			sink = output.NewFileSink(cfg.Output.Path)
		}

		w, err := output.New(format, sink, opts)
		if err != nil {
			return nil, err
		}
		if err := outMgr.AddWriter(w); err != nil {
			return nil, err
		}
		e.log.Debug().Str("format", format).Msgf("writer %T ready", w)
	}
	if outMgr.Len() == 0 {
		return nil, fmt.Errorf("no output formats configured")
	}
	return outMgr, nil
}

package output

import (
	"fmt"
	"strings"

	"psrule/internal/rules"
)

const DefaultJobSummaryPath = "reports/ps-rule-summary.md"

const (
	glyphPass = "✔️"
	glyphFail = "❌"
)

// JobSummaryWriter renders a Markdown run summary for CI job summaries.
type JobSummaryWriter struct {
	documentWriter
}

func NewJobSummaryWriter(sink Sink, opts Options) *JobSummaryWriter {
	path := opts.JobSummaryPath
	if path == "" {
		path = DefaultJobSummaryPath
	}
	return &JobSummaryWriter{documentWriter: newDocumentWriter(FormatMarkdown, path, sink, opts.Outcome)}
}

func (w *JobSummaryWriter) End() error {
	return w.flush(renderJobSummary)
}

func renderJobSummary(results []rules.InvokeResult) ([]byte, error) {
	s := Summarize(results)

	var b strings.Builder
	b.WriteString("# PSRule result summary\n\n")

	glyph := glyphPass
	if !s.Passed() {
		glyph = glyphFail
	}
	fmt.Fprintf(&b, "%s PSRule completed with an overall result of '%s' with %d rule(s) and %d target(s) in %s.\n\n",
		glyph, s.Outcome, s.RuleCount, s.TargetCount, FormatElapsed(s.Elapsed))

	b.WriteString("## Analysis\n")
	if len(s.Problems) > 0 {
		b.WriteString("\nThe following results were reported with fail or error results.\n\n")
		b.WriteString("Name | Target name | Synopsis\n")
		b.WriteString("---- | ----------- | --------\n")
		for _, r := range s.Problems {
			fmt.Fprintf(&b, "%s | %s | %s\n", escapeCell(r.RuleName()), escapeCell(r.TargetName), escapeCell(r.Synopsis()))
		}
	}
	return []byte(b.String()), nil
}

// escapeCell keeps a value inside a single Markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

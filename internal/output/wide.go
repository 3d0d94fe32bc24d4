package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"psrule/internal/rules"
)

// WideWriter renders a console table per target.
type WideWriter struct {
	documentWriter
	noColor bool
}

func NewWideWriter(sink Sink, opts Options) *WideWriter {
	return &WideWriter{
		documentWriter: newDocumentWriter(FormatWide, opts.Path, sink, opts.Outcome),
		noColor:        opts.NoColor,
	}
}

func (w *WideWriter) End() error {
	return w.flush(w.render)
}

func (w *WideWriter) render(results []rules.InvokeResult) ([]byte, error) {
	s := Summarize(results)

	var b strings.Builder
	for _, group := range s.Targets {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.SetTitle("%s : %s", group.Name, group.Type)
		t.AppendHeader(table.Row{"RuleName", "Outcome", "Recommendation"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignCenter},
			{Number: 3, WidthMax: 80},
		})
		for _, r := range group.Records {
			t.AppendRow(table.Row{r.RuleName(), w.outcome(r.Outcome), r.Recommendation()})
		}
		b.WriteString(t.Render())
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Rules: %d  Targets: %d  Pass: %d  Fail: %d  Error: %d  Elapsed: %s  Result: %s\n",
		s.RuleCount, s.TargetCount, s.Pass, s.Fail, s.Error, FormatElapsed(s.Elapsed), w.outcome(s.Outcome))
	return []byte(b.String()), nil
}

func (w *WideWriter) outcome(o rules.Outcome) string {
	var c *color.Color
	switch o {
	case rules.OutcomePass:
		c = color.New(color.FgGreen)
	case rules.OutcomeFail:
		c = color.New(color.FgRed)
	case rules.OutcomeError:
		c = color.New(color.FgRed, color.Bold)
	default:
		c = color.New(color.FgYellow)
	}
	if w.noColor {
		c.DisableColor()
	}
	return c.Sprint(string(o))
}

package output

import (
	"errors"
	"fmt"

	"psrule/internal/rules"
)

var ErrUnsupportedObject = errors.New("unsupported output object")

// Writer renders results as one complete document.
//
// Callers drive a writer with Begin, any number of WriteObject calls and a final
// End. A single writer is not safe for concurrent use.
type Writer interface {
	Begin() error
	WriteObject(o any, enumerate bool) error
	End() error
}

// buffer collects the results of one run for a document writer.
type buffer struct {
	filter  rules.OutcomeFilter
	results []rules.InvokeResult
}

func newBuffer(filter rules.OutcomeFilter) buffer {
	if filter == 0 {
		filter = rules.FilterProcessed
	}
	return buffer{filter: filter}
}

func (b *buffer) reset() {
	b.results = nil
}

func (b *buffer) add(o any, enumerate bool) error {
	if enumerate {
		switch t := o.(type) {
		case []rules.InvokeResult:
			for _, ir := range t {
				b.results = append(b.results, ir.Clone())
			}
			return nil
		case []*rules.InvokeResult:
			for _, ir := range t {
				if ir != nil {
					b.results = append(b.results, ir.Clone())
				}
			}
			return nil
		case []rules.RuleRecord:
			for _, r := range t {
				if err := b.addRecord(r); err != nil {
					return err
				}
			}
			return nil
		}
	}

	switch t := o.(type) {
	case rules.InvokeResult:
		b.results = append(b.results, t.Clone())
	case *rules.InvokeResult:
		if t == nil {
			return fmt.Errorf("%w: nil invoke result", ErrUnsupportedObject)
		}
		b.results = append(b.results, t.Clone())
	case rules.RuleRecord:
		return b.addRecord(t)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedObject, o)
	}
	return nil
}

// addRecord groups a loose record with earlier records for the same target.
func (b *buffer) addRecord(r rules.RuleRecord) error {
	for i := range b.results {
		ir := &b.results[i]
		if ir.TargetName() == r.TargetName && ir.TargetType() == r.TargetType {
			return ir.Add(r)
		}
	}
	var ir rules.InvokeResult
	if err := ir.Add(r); err != nil {
		return err
	}
	b.results = append(b.results, ir)
	return nil
}

// filtered returns the buffered results reduced to the configured outcomes.
// Results left without records are dropped.
func (b *buffer) filtered() []rules.InvokeResult {
	out := make([]rules.InvokeResult, 0, len(b.results))
	for _, ir := range b.results {
		f := ir.Filter(b.filter)
		if f.Len() > 0 {
			out = append(out, f)
		}
	}
	return out
}

// documentWriter is the shared lifecycle of every writer in this package.
type documentWriter struct {
	format string
	name   string
	sink   Sink
	buf    buffer
}

func newDocumentWriter(format, name string, sink Sink, filter rules.OutcomeFilter) documentWriter {
	return documentWriter{format: format, name: name, sink: sink, buf: newBuffer(filter)}
}

func (w *documentWriter) Begin() error {
	w.buf.reset()
	return nil
}

func (w *documentWriter) WriteObject(o any, enumerate bool) error {
	return w.buf.add(o, enumerate)
}

// flush renders the buffer and hands the complete body to the sink.
func (w *documentWriter) flush(render func([]rules.InvokeResult) ([]byte, error)) error {
	if w.sink == nil {
		return fmt.Errorf("%s writer: sink must not be nil", w.format)
	}
	body, err := render(w.buf.filtered())
	if err != nil {
		return fmt.Errorf("render %s: %w", w.format, err)
	}
	if err := w.sink.WriteDocument(Document{Name: w.name, Format: w.format, Body: body}); err != nil {
		return fmt.Errorf("write %s document: %w", w.format, err)
	}
	return nil
}

func records(results []rules.InvokeResult) []rules.RuleRecord {
	var out []rules.RuleRecord
	for _, ir := range results {
		out = append(out, ir.Records()...)
	}
	return out
}

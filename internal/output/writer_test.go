package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"psrule/internal/rules"
)

func TestWriters_EndIsIdempotent(t *testing.T) {
	opts := testOptions()
	opts.SarifProblemsOnly = false
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			sink := NewMemorySink()
			w, err := New(format, sink, opts)
			if err != nil {
				t.Fatalf("New(%s): %v", format, err)
			}
			if nw, ok := w.(*NUnit3Writer); ok {
				nw.clock = fixedClock
			}
			runWriter(t, w, standardResult(t))
			if err := w.End(); err != nil {
				t.Fatalf("second End: %v", err)
			}

			docs := sink.Documents()
			if len(docs) != 2 {
				t.Fatalf("want 2 documents, got %d", len(docs))
			}
			if !bytes.Equal(docs[0].Body, docs[1].Body) {
				t.Fatalf("End output differs between calls")
			}
			if docs[0].Format != format {
				t.Fatalf("document format: want %s, got %s", format, docs[0].Format)
			}
		})
	}
}

func TestWriter_WriteObjectShapes(t *testing.T) {
	ir := standardResult(t)
	other := newResult(t, rules.NewRecord("run-001", rules.ParseResourceId("rule-001"),
		rules.NewTargetObject(nil, "TestObject2", "TestType"), rules.RuleHelpInfo{}, rules.LevelError,
		rules.OutcomePass, rules.ReasonProcessed))

	tests := []struct {
		name      string
		o         any
		enumerate bool
		targets   int
		rules     int
	}{
		{name: "invoke result", o: *ir, targets: 1, rules: 4},
		{name: "invoke result pointer", o: ir, targets: 1, rules: 4},
		{name: "record", o: passRecord(), targets: 1, rules: 1},
		{name: "enumerated results", o: []rules.InvokeResult{*ir, *other}, enumerate: true, targets: 2, rules: 5},
		{name: "enumerated pointers", o: []*rules.InvokeResult{ir, other}, enumerate: true, targets: 2, rules: 5},
		{name: "enumerated records", o: append(ir.Records(), other.Records()...), enumerate: true, targets: 2, rules: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuffer(0)
			if err := b.add(tt.o, tt.enumerate); err != nil {
				t.Fatalf("add: %v", err)
			}
			s := Summarize(b.filtered())
			if s.TargetCount != tt.targets || s.RuleCount != tt.rules {
				t.Fatalf("want %d targets/%d rules, got %d/%d", tt.targets, tt.rules, s.TargetCount, s.RuleCount)
			}
		})
	}
}

func TestWriter_BufferDoesNotShareCallerRecords(t *testing.T) {
	// Three records leave spare capacity in the backing array.
	ir := newResult(t, passRecord(), failRecord("rid-002", rules.LevelError), failRecord("rid-003", rules.LevelWarning))

	sink := NewMemorySink()
	w := NewJSONWriter(sink, testOptions())
	if err := w.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := w.WriteObject(*ir, false); err != nil {
		t.Fatalf("WriteObject: %v", err)
	}
	if err := w.WriteObject(failRecord("rid-buffered", rules.LevelError), false); err != nil {
		t.Fatalf("WriteObject: %v", err)
	}
	if err := ir.Add(failRecord("rid-caller", rules.LevelError)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	if !strings.Contains(sink.String(), `"ref":"rid-buffered"`) || strings.Contains(sink.String(), "rid-caller") {
		t.Fatalf("buffer shares memory with the caller:\n%s", sink.String())
	}
	if ir.Len() != 4 {
		t.Fatalf("caller result changed by writer: %d records", ir.Len())
	}
}

func TestWriter_UnsupportedObject(t *testing.T) {
	w := NewJSONWriter(NewMemorySink(), testOptions())
	if err := w.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	for _, o := range []any{"text", 42, []rules.RuleRecord{passRecord()}} {
		err := w.WriteObject(o, false)
		if !errors.Is(err, ErrUnsupportedObject) {
			t.Fatalf("WriteObject(%T): want ErrUnsupportedObject, got %v", o, err)
		}
	}
}

func TestWriter_BeginResetsBuffer(t *testing.T) {
	sink := NewMemorySink()
	w := NewJSONWriter(sink, testOptions())
	runWriter(t, w, standardResult(t))
	runWriter(t, w, newResult(t, passRecord()))

	if got := strings.Count(sink.String(), `"ruleName"`); got != 1 {
		t.Fatalf("want 1 record after reset, got %d", got)
	}
}

type failingSink struct{}

func (failingSink) WriteDocument(Document) error { return errors.New("disk full") }

func TestWriter_SinkError(t *testing.T) {
	w := NewYAMLWriter(failingSink{}, testOptions())
	_ = w.Begin()
	_ = w.WriteObject(standardResult(t), false)
	err := w.End()
	if err == nil || !strings.Contains(err.Error(), "disk full") || !strings.Contains(err.Error(), "yaml") {
		t.Fatalf("want wrapped sink error, got %v", err)
	}
}

func TestWriter_RenderError(t *testing.T) {
	r := failRecord("rid-002", rules.LevelError)
	r.Field = map[string]any{"bad": make(chan int)}
	sink := NewMemorySink()
	w := NewJSONWriter(sink, testOptions())
	_ = w.Begin()
	_ = w.WriteObject(r, false)
	if err := w.End(); err == nil || !strings.Contains(err.Error(), "render json") {
		t.Fatalf("want render error, got %v", err)
	}
	if len(sink.Documents()) != 0 {
		t.Fatalf("nothing should be written on render failure")
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	if _, err := New("html", NewMemorySink(), testOptions()); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := New(FormatJSON, nil, testOptions()); err == nil {
		t.Fatalf("expected error for nil sink")
	}
	if !IsFormat(" SARIF ") || IsFormat("html") {
		t.Fatalf("IsFormat mismatch")
	}
}

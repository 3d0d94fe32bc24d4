package output

import (
	"bytes"
	"encoding/json"
	"strings"

	"psrule/internal/rules"
)

const DefaultJSONIndent = 0

// JSONWriter renders records as a JSON array.
type JSONWriter struct {
	documentWriter
	indent int
}

func NewJSONWriter(sink Sink, opts Options) *JSONWriter {
	return &JSONWriter{
		documentWriter: newDocumentWriter(FormatJSON, opts.Path, sink, opts.Outcome),
		indent:         opts.JSONIndent,
	}
}

func (w *JSONWriter) End() error {
	return w.flush(w.render)
}

func (w *JSONWriter) render(results []rules.InvokeResult) ([]byte, error) {
	docs := make([]recordDoc, 0)
	for _, r := range records(results) {
		docs = append(docs, newRecordDoc(r))
	}
	return marshalJSON(docs, w.indent)
}

// marshalJSON encodes v without HTML escaping and without a trailing newline.
func marshalJSON(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

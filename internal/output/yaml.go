package output

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"psrule/internal/rules"
)

// YAMLWriter renders records as a YAML sequence.
type YAMLWriter struct {
	documentWriter
}

func NewYAMLWriter(sink Sink, opts Options) *YAMLWriter {
	return &YAMLWriter{documentWriter: newDocumentWriter(FormatYAML, opts.Path, sink, opts.Outcome)}
}

func (w *YAMLWriter) End() error {
	return w.flush(w.render)
}

func (w *YAMLWriter) render(results []rules.InvokeResult) ([]byte, error) {
	docs := make([]yamlRecordDoc, 0)
	for _, r := range records(results) {
		docs = append(docs, newYAMLRecordDoc(r))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

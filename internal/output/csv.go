package output

import (
	"bytes"
	"encoding/csv"

	"psrule/internal/rules"
)

var csvHeader = []string{"RuleName", "TargetName", "TargetType", "Outcome", "OutcomeReason", "Synopsis", "Recommendation"}

// CSVWriter renders one row per record.
type CSVWriter struct {
	documentWriter
}

func NewCSVWriter(sink Sink, opts Options) *CSVWriter {
	return &CSVWriter{documentWriter: newDocumentWriter(FormatCSV, opts.Path, sink, opts.Outcome)}
}

func (w *CSVWriter) End() error {
	return w.flush(renderCSV)
}

func renderCSV(results []rules.InvokeResult) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records(results) {
		row := []string{
			r.RuleName(),
			r.TargetName,
			r.TargetType,
			string(r.Outcome),
			string(r.OutcomeReason),
			r.Synopsis(),
			r.Recommendation(),
		}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

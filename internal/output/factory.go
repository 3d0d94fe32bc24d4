package output

import (
	"fmt"
	"strings"

	"psrule/internal/rules"
)

const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatSarif    = "sarif"
	FormatNUnit3   = "nunit3"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatWide     = "wide"
)

// Formats lists every supported format name.
var Formats = []string{FormatJSON, FormatYAML, FormatSarif, FormatNUnit3, FormatMarkdown, FormatCSV, FormatWide}

// Options configures the writers built by New.
type Options struct {
	// Path is the document name handed to sinks. Empty for streamed output.
	Path    string
	Outcome rules.OutcomeFilter

	JSONIndent        int
	SarifProblemsOnly bool
	JobSummaryPath    string
	NoColor           bool

	RepositoryURL      string
	RepositoryRef      string
	RepositoryRevision string

	// Version is reported as the SARIF tool version.
	Version string
}

func DefaultOptions() Options {
	return Options{
		Outcome:           rules.FilterProcessed,
		JSONIndent:        DefaultJSONIndent,
		SarifProblemsOnly: true,
		JobSummaryPath:    DefaultJobSummaryPath,
		Version:           "dev",
	}
}

// IsFormat reports whether name is a supported format.
func IsFormat(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// New builds the writer for format.
func New(format string, sink Sink, opts Options) (Writer, error) {
	if sink == nil {
		return nil, fmt.Errorf("sink must not be nil")
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return NewJSONWriter(sink, opts), nil
	case FormatYAML:
		return NewYAMLWriter(sink, opts), nil
	case FormatSarif:
		return NewSarifWriter(sink, opts), nil
	case FormatNUnit3:
		return NewNUnit3Writer(sink, opts), nil
	case FormatMarkdown:
		return NewJobSummaryWriter(sink, opts), nil
	case FormatCSV:
		return NewCSVWriter(sink, opts), nil
	case FormatWide:
		return NewWideWriter(sink, opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"psrule/internal/logging"
	"psrule/internal/output"
	"psrule/internal/rules"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep these in sync:
	// - key constants and defaults in keys.go
	// - CLI flags in internal/cli/root.go and internal/cli/convert.go
	Output     Output     `mapstructure:"output"`
	Repository Repository `mapstructure:"repository"`
	Logging    Logging    `mapstructure:"logging"`

	// Suppression maps rule names to target name patterns whose results are
	// reported as suppressed. Rule names commonly contain dots, so this is
	// decoded separately from the dotted viper keys (see Load).
	Suppression map[string][]string `mapstructure:"-"`
}

type Output struct {
	// Format lists the report formats to render (see --output-format).
	// Values may be provided as repeated flags and/or comma-separated lists.
	// Allowed values: json, yaml, sarif, nunit3, markdown, csv, wide.
	Format []string `mapstructure:"format"`

	// Path writes the rendered report to this file instead of stdout (see --output-path).
	// Only one non-markdown format may be written to a path.
	Path string `mapstructure:"path"`

	// JSONIndent is the number of spaces used to indent JSON output. 0 is compact.
	JSONIndent int `mapstructure:"jsonIndent"`

	// SarifProblemsOnly limits SARIF results to failed or errored records.
	SarifProblemsOnly bool `mapstructure:"sarifProblemsOnly"`

	// JobSummaryPath is where the markdown writer puts the job summary.
	JobSummaryPath string `mapstructure:"jobSummaryPath"`

	// Outcome filters which record outcomes are rendered (see --outcome).
	// Allowed values: Pass, Fail, Error, None, Processed, Problem, All.
	Outcome []string `mapstructure:"outcome"`
}

type Repository struct {
	// URL of the repository being analyzed; reported in SARIF provenance.
	URL string `mapstructure:"url"`

	// Ref is the git ref (for example refs/heads/main) the results belong to.
	Ref string `mapstructure:"ref"`

	// Revision is the commit SHA the results belong to.
	Revision string `mapstructure:"revision"`
}

type Logging struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"noColor"`
}

func New() *Config {
	return &Config{
		Output: Output{
			Format:            []string{output.FormatWide},
			JSONIndent:        output.DefaultJSONIndent,
			SarifProblemsOnly: true,
			JobSummaryPath:    output.DefaultJobSummaryPath,
			Outcome:           []string{"Processed"},
		},
		Logging: Logging{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Output.Format = splitCommaList(c.Output.Format)
	c.Output.Outcome = splitCommaList(c.Output.Outcome)

	// Output validation
	if len(c.Output.Format) == 0 {
		return fmt.Errorf("--output-format must include at least one of: %s", strings.Join(output.Formats, ", "))
	}
	documents := 0
	for i, f := range c.Output.Format {
		v := normalizeEnumValue(f)
		if !output.IsFormat(v) {
			return fmt.Errorf("unsupported --output-format: %s (must be one of: %s)", f, strings.Join(output.Formats, ", "))
		}
		c.Output.Format[i] = v
		if v != output.FormatMarkdown {
			documents++
		}
	}
	if c.Output.Path != "" && documents > 1 {
		return errors.New("--output-path can only be used with a single non-markdown output format")
	}
	if c.Output.JSONIndent < 0 || c.Output.JSONIndent > 4 {
		return fmt.Errorf("output.jsonIndent must be between 0 and 4, got %d", c.Output.JSONIndent)
	}
	if strings.TrimSpace(c.Output.JobSummaryPath) == "" {
		c.Output.JobSummaryPath = output.DefaultJobSummaryPath
	}
	if _, err := rules.ParseOutcomeFilter(c.Output.Outcome); err != nil {
		return fmt.Errorf("invalid --outcome value: %w", err)
	}

	// Repository validation
	if c.Repository.URL != "" {
		u, err := url.Parse(strings.TrimSpace(c.Repository.URL))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid repository url %q: expected an http(s) URL", c.Repository.URL)
		}
		c.Repository.URL = strings.TrimSuffix(u.String(), "/")
	}

	// Logging validation
	c.Logging.Level = normalizeEnumValue(c.Logging.Level)
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("unsupported --log-level: %s", c.Logging.Level)
	}
	c.Logging.Format = normalizeEnumValue(c.Logging.Format)
	if c.Logging.Format == "" {
		c.Logging.Format = logging.FormatConsole
	}
	if c.Logging.Format != logging.FormatConsole && c.Logging.Format != logging.FormatJSON {
		return fmt.Errorf("unsupported --log-format: %s (must be one of: console, json)", c.Logging.Format)
	}

	return nil
}

// OutcomeFilter returns the parsed outcome filter. Call after Validate.
func (c *Config) OutcomeFilter() rules.OutcomeFilter {
	f, err := rules.ParseOutcomeFilter(c.Output.Outcome)
	if err != nil {
		return rules.FilterProcessed
	}
	return f
}

// WriterOptions maps the configuration onto writer options.
func (c *Config) WriterOptions(version string) output.Options {
	return output.Options{
		Path:               c.Output.Path,
		Outcome:            c.OutcomeFilter(),
		JSONIndent:         c.Output.JSONIndent,
		SarifProblemsOnly:  c.Output.SarifProblemsOnly,
		JobSummaryPath:     c.Output.JobSummaryPath,
		NoColor:            c.Logging.NoColor,
		RepositoryURL:      c.Repository.URL,
		RepositoryRef:      c.Repository.Ref,
		RepositoryRevision: c.Repository.Revision,
		Version:            version,
	}
}

func (c *Config) SuppressionList() rules.SuppressionList {
	return rules.NewSuppressionList(c.Suppression)
}

func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.Logging.Level, Format: c.Logging.Format, NoColor: c.Logging.NoColor}
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

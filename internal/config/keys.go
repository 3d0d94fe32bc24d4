package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "PSRULE"
	DefaultFile    = "ps-rule"
	DefaultFileExt = "yaml"
)

const (
	KeyOutputFormat            = "output.format"
	KeyOutputPath              = "output.path"
	KeyOutputJSONIndent        = "output.jsonIndent"
	KeyOutputSarifProblemsOnly = "output.sarifProblemsOnly"
	KeyOutputJobSummaryPath    = "output.jobSummaryPath"
	KeyOutputOutcome           = "output.outcome"

	KeyRepositoryURL      = "repository.url"
	KeyRepositoryRef      = "repository.ref"
	KeyRepositoryRevision = "repository.revision"

	KeyLogLevel   = "logging.level"
	KeyLogFormat  = "logging.format"
	KeyLogNoColor = "logging.noColor"

	KeySuppression = "suppression"
)

// Setup prepares v for environment lookups and registers defaults so every key
// can be overridden through PSRULE_* variables (PSRULE_OUTPUT_JSONINDENT, ...).
func Setup(v *viper.Viper) {
	d := New()
	v.SetDefault(KeyOutputFormat, d.Output.Format)
	v.SetDefault(KeyOutputPath, d.Output.Path)
	v.SetDefault(KeyOutputJSONIndent, d.Output.JSONIndent)
	v.SetDefault(KeyOutputSarifProblemsOnly, d.Output.SarifProblemsOnly)
	v.SetDefault(KeyOutputJobSummaryPath, d.Output.JobSummaryPath)
	v.SetDefault(KeyOutputOutcome, d.Output.Outcome)
	v.SetDefault(KeyRepositoryURL, "")
	v.SetDefault(KeyRepositoryRef, "")
	v.SetDefault(KeyRepositoryRevision, "")
	v.SetDefault(KeyLogLevel, d.Logging.Level)
	v.SetDefault(KeyLogFormat, d.Logging.Format)
	v.SetDefault(KeyLogNoColor, d.Logging.NoColor)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()
}

// ReadFile reads the options file. An explicit path must exist; otherwise
// ps-rule.yaml is looked up in the working directory and may be absent.
// It returns the file used, if any.
func ReadFile(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType(DefaultFileExt)
		v.SetConfigName(DefaultFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFoundError) {
			return "", nil
		}
		return "", fmt.Errorf("read options file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes and validates the effective configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	suppression, err := decodeSuppression(v.Get(KeySuppression))
	if err != nil {
		return nil, err
	}
	cfg.Suppression = suppression
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeSuppression reads the suppression block without splitting rule names on dots.
func decodeSuppression(raw any) (map[string][]string, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("suppression must be a map of rule names to target names, got %T", raw)
	}
	out := make(map[string][]string, len(m))
	for rule, v := range m {
		switch t := v.(type) {
		case string:
			out[rule] = splitCommaList([]string{t})
		case []any:
			for _, item := range t {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("suppression for %s: target names must be strings, got %T", rule, item)
				}
				out[rule] = append(out[rule], s)
			}
		case []string:
			out[rule] = append(out[rule], t...)
		default:
			return nil, fmt.Errorf("suppression for %s: expected a list of target names, got %T", rule, v)
		}
	}
	return out, nil
}

package flags

// Package flags defines canonical CLI flag names shared across commands.
// Keeping these as constants helps avoid drift between Cobra flag wiring and the
// viper keys they are bound to.
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringSlice(flags.FlagOutputFormat, nil, "...")
//	arg := "--" + flags.FlagOutputFormat
const (
	// Global
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagNoColor   = "no-color"

	// Input
	FlagInput = "input"

	// Output
	FlagOutputFormat      = "output-format"
	FlagOutputPath        = "output-path"
	FlagOutcome           = "outcome"
	FlagJSONIndent        = "json-indent"
	FlagJobSummaryPath    = "job-summary-path"
	FlagSarifProblemsOnly = "sarif-problems-only"

	// Repository
	FlagRepositoryURL = "repository-url"
	FlagRef           = "ref"
	FlagRevision      = "revision"

	// Upload
	FlagToken  = "token"
	FlagAPIURL = "api-url"

	// Assert
	FlagField         = "field"
	FlagValue         = "value"
	FlagNot           = "not"
	FlagCaseSensitive = "case-sensitive"
)

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"psrule/internal/config"
	"psrule/internal/flags"
	"psrule/internal/logging"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// Exit codes shared by every command.
const (
	exitPass  = 0
	exitFail  = 1
	exitFatal = 3
)

// ExitError carries a process exit code out of a command.
// A nil Err exits silently.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func fatal(err error) error {
	return &ExitError{Code: exitFatal, Err: err}
}

// flagKeys binds command flags onto configuration keys. Flags are bound for the
// command being run so that commands sharing a flag name do not steal each
// other's binding.
var flagKeys = map[string]string{
	flags.FlagLogLevel:          config.KeyLogLevel,
	flags.FlagLogFormat:         config.KeyLogFormat,
	flags.FlagNoColor:           config.KeyLogNoColor,
	flags.FlagOutputFormat:      config.KeyOutputFormat,
	flags.FlagOutputPath:        config.KeyOutputPath,
	flags.FlagOutcome:           config.KeyOutputOutcome,
	flags.FlagJSONIndent:        config.KeyOutputJSONIndent,
	flags.FlagJobSummaryPath:    config.KeyOutputJobSummaryPath,
	flags.FlagSarifProblemsOnly: config.KeyOutputSarifProblemsOnly,
	flags.FlagRepositoryURL:     config.KeyRepositoryURL,
	flags.FlagRef:               config.KeyRepositoryRef,
	flags.FlagRevision:          config.KeyRepositoryRevision,
}

// app is the state shared by one command tree.
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	log        zerolog.Logger
	configFile string
}

func newApp() *app {
	v := viper.New()
	config.Setup(v)
	return &app{v: v, cfg: config.New(), log: zerolog.Nop()}
}

// load resolves options from file, environment and flags, then starts logging.
func (a *app) load(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fatal(fmt.Errorf("bind --%s: %w", name, err))
			}
		}
	}

	used, err := config.ReadFile(a.v, a.configFile)
	if err != nil {
		return fatal(err)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return fatal(err)
	}
	a.cfg = cfg

	if err := logging.Init(cfg.LoggingOptions(), cmd.ErrOrStderr()); err != nil {
		return fatal(err)
	}
	a.log = log.Logger
	if used != "" {
		a.log.Debug().Str("file", used).Msg("loaded options file")
	}
	return nil
}

func newRootCmd() *cobra.Command {
	a := newApp()
	cmd := &cobra.Command{
		Use:   "psrule",
		Short: "Convert, report and publish PSRule analysis results",
		Long: `psrule turns PSRule analysis results into reports.

Results are read as a JSON or YAML document of rule records, filtered by
outcome, and written in one or more formats: json, yaml, sarif, nunit3,
markdown (a job summary), csv or wide (a console table).

Options are read from ps-rule.yaml in the working directory (or --config),
PSRULE_* environment variables and flags, in increasing order of precedence.

Examples:
  # Render a console table
  psrule convert --input results.json

  # Write SARIF and a job summary
  psrule convert --input results.json --output-format sarif,markdown --output-path reports/ps-rule.sarif

  # Publish results to GitHub code scanning
  psrule upload --input results.json --repository-url https://github.com/octo/repo

Exit codes:
  0 = every rule passed
  1 = at least one rule failed
  2 = at least one rule errored
  3 = fatal error (results were not written)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, flags.FlagConfig, "", "Path to an options file (default: ./ps-rule.yaml when present)")
	pf.String(flags.FlagLogLevel, a.cfg.Logging.Level, "Log level: trace|debug|info|warn|error")
	pf.String(flags.FlagLogFormat, a.cfg.Logging.Format, "Log format: console|json")
	pf.Bool(flags.FlagNoColor, false, "Disable colored console output")

	cmd.AddCommand(newConvertCmd(a), newUploadCmd(a), newAssertCmd(a), newVersionCmd())
	cmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	cmd.SetVersionTemplate("{{.Version}}\n")
	return cmd
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

// run executes the command tree with args and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return exitPass
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}
	// Usage errors from cobra (unknown flags, bad arguments).
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitFatal
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

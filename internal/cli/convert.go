package cli

import (
	"github.com/spf13/cobra"

	"psrule/internal/engine"
	"psrule/internal/flags"
)

const outputFlagsHelp = `Output:
  --output-format selects one or more formats (repeatable; comma-separated accepted).
  The markdown job summary is always written to --job-summary-path. Other
  formats are written to stdout, or to --output-path when exactly one is selected.
  Records are filtered by --outcome (default: Processed, which hides
  suppressed and not evaluated rules).`

func addOutputFlags(cmd *cobra.Command, a *app) {
	f := cmd.Flags()
	o := a.cfg.Output
	f.StringSlice(flags.FlagOutputFormat, o.Format, "Output format(s): json|yaml|sarif|nunit3|markdown|csv|wide")
	f.String(flags.FlagOutputPath, o.Path, "Write the rendered report to this path instead of stdout")
	f.StringSlice(flags.FlagOutcome, o.Outcome, "Outcomes to include: Pass|Fail|Error|None|Processed|Problem|All")
	f.Int(flags.FlagJSONIndent, o.JSONIndent, "Spaces used to indent JSON output (0-4, 0 = compact)")
	f.String(flags.FlagJobSummaryPath, o.JobSummaryPath, "Path of the markdown job summary")
	f.Bool(flags.FlagSarifProblemsOnly, o.SarifProblemsOnly, "Only include failed and errored records in SARIF output")
}

func addRepositoryFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String(flags.FlagRepositoryURL, "", "URL of the analyzed repository (for example https://github.com/owner/repo)")
	f.String(flags.FlagRef, "", "Git reference the results belong to (for example refs/heads/main)")
	f.String(flags.FlagRevision, "", "Commit SHA the results belong to")
}

func newConvertCmd(a *app) *cobra.Command {
	var inputs []string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Render analysis results in one or more report formats",
		Long: `Read PSRule analysis results and render them as reports.

Input is a JSON or YAML array of rule records, as produced by
"psrule convert --output-format json". Use --input - (the default) to read
from stdin. Suppression entries from the options file are applied before
rendering.

` + outputFlagsHelp + `

Examples:
  psrule convert --input results.json
  psrule convert --input results.json --output-format json --json-indent 2
  cat results.yaml | psrule convert --output-format nunit3 --output-path reports/ps-rule.xml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			results, err := engine.LoadResults(ctx, cmd.InOrStdin(), inputs)
			if err != nil {
				return fatal(err)
			}
			a.log.Debug().Int("targets", len(results)).Msg("loaded results")

			version, _, _ := BuildInfo()
			eng := engine.NewEngine(version, engine.WithStdout(cmd.OutOrStdout()), engine.WithLogger(a.log))
			if code := eng.Run(ctx, a.cfg, results); code != exitPass {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&inputs, flags.FlagInput, []string{engine.StdinPath}, "Results file(s) to read (repeatable; - reads stdin)")
	addOutputFlags(cmd, a)
	addRepositoryFlags(cmd)
	return cmd
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"psrule/internal/engine"
	"psrule/internal/flags"
	gh "psrule/internal/github"
	"psrule/internal/output"
)

const uploadToolName = "PSRule"

type uploadOptions struct {
	inputs []string
	token  string
	apiURL string
}

func newUploadCmd(a *app) *cobra.Command {
	var o uploadOptions
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload analysis results to GitHub code scanning",
		Long: `Render analysis results as SARIF and upload them to GitHub code scanning.

The repository, commit and ref default to the GitHub Actions environment
(GITHUB_REPOSITORY, GITHUB_SHA and GITHUB_REF) when not set by flags or options.

Authentication (in order):
  1) --token
  2) GITHUB_TOKEN or GH_TOKEN environment variable
  3) GitHub CLI (gh) authentication via gh auth token

The token needs the security_events scope (or Code scanning alerts: write for
fine-grained tokens).

Examples:
  psrule upload --input results.json
  psrule upload --input results.json --repository-url https://github.com/octo/repo \
    --ref refs/heads/main --revision 0123456789abcdef0123456789abcdef01234567`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.upload(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&o.inputs, flags.FlagInput, []string{engine.StdinPath}, "Results file(s) to read (repeatable; - reads stdin)")
	f.StringVar(&o.token, flags.FlagToken, "", "GitHub token (default: GITHUB_TOKEN, GH_TOKEN or gh auth token)")
	f.StringVar(&o.apiURL, flags.FlagAPIURL, "", "GitHub API base URL (default: derived from the repository host)")
	f.StringSlice(flags.FlagOutcome, a.cfg.Output.Outcome, "Outcomes to include: Pass|Fail|Error|None|Processed|Problem|All")
	f.Bool(flags.FlagSarifProblemsOnly, a.cfg.Output.SarifProblemsOnly, "Only include failed and errored records")
	addRepositoryFlags(cmd)
	return cmd
}

func (a *app) upload(cmd *cobra.Command, o uploadOptions) error {
	ctx := cmd.Context()
	started := time.Now()

	target, err := uploadTarget(a.cfg.Repository.URL, a.cfg.Repository.Ref, a.cfg.Repository.Revision)
	if err != nil {
		return fatal(err)
	}
	if a.cfg.Repository.URL == "" {
		// SARIF provenance follows the resolved repository.
		a.cfg.Repository.URL = target.Repository.URL()
	}

	results, err := engine.LoadResults(ctx, cmd.InOrStdin(), o.inputs)
	if err != nil {
		return fatal(err)
	}
	version, _, _ := BuildInfo()
	sarif, err := engine.NewEngine(version, engine.WithLogger(a.log)).Render(a.cfg, output.FormatSarif, results)
	if err != nil {
		return fatal(err)
	}
	target.Sarif = sarif
	target.StartedAt = started

	token, source, err := gh.ResolveAuthTokenForHost(ctx, o.token, target.Repository.Host)
	if err != nil {
		return fatal(fmt.Errorf("failed to resolve GitHub auth token: %w", err))
	}
	if strings.TrimSpace(token) == "" {
		return fatal(errors.New("GitHub auth token is required (use --token, set GITHUB_TOKEN or run 'gh auth login')"))
	}
	a.log.Debug().Str("source", string(source)).Msg("resolved GitHub token")

	apiURL := o.apiURL
	if apiURL == "" && !target.Repository.IsGitHubDotCom() {
		apiURL = "https://" + target.Repository.Host + "/api/v3/"
	}
	clientOpts := []gh.Option{gh.WithVerbose(a.log.GetLevel() <= zerolog.DebugLevel, a.log)}
	if apiURL != "" {
		clientOpts = append(clientOpts, gh.WithBaseURL(apiURL))
	}
	client, err := gh.NewClient(ctx, token, clientOpts...)
	if err != nil {
		return fatal(fmt.Errorf("failed to create GitHub client: %w", err))
	}

	id, err := client.UploadSarif(ctx, target)
	if err != nil {
		return fatal(err)
	}
	a.log.Info().
		Str("repository", target.Repository.String()).
		Str("ref", target.Ref).
		Str("sarif_id", id).
		Msg("uploaded results")
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

// uploadTarget fills repository, ref and commit from options, falling back to
// the GitHub Actions environment.
func uploadTarget(repoURL, ref, revision string) (gh.SarifUpload, error) {
	if repoURL == "" {
		if name := os.Getenv("GITHUB_REPOSITORY"); name != "" {
			server := strings.TrimSuffix(os.Getenv("GITHUB_SERVER_URL"), "/")
			if server == "" {
				server = "https://github.com"
			}
			repoURL = server + "/" + name
		}
	}
	if repoURL == "" {
		return gh.SarifUpload{}, fmt.Errorf("--%s is required outside GitHub Actions", flags.FlagRepositoryURL)
	}
	repo, err := gh.ParseRepository(repoURL)
	if err != nil {
		return gh.SarifUpload{}, err
	}
	if ref == "" {
		ref = os.Getenv("GITHUB_REF")
	}
	if revision == "" {
		revision = os.Getenv("GITHUB_SHA")
	}
	u := gh.SarifUpload{
		Repository: repo,
		CommitSHA:  revision,
		Ref:        ref,
		ToolName:   uploadToolName,
	}
	if ws := os.Getenv("GITHUB_WORKSPACE"); ws != "" {
		u.CheckoutURI = "file://" + ws
	}
	return u, nil
}

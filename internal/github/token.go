package github

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

type AuthTokenSource string

const (
	AuthTokenSourceExplicit  AuthTokenSource = "explicit"
	AuthTokenSourceEnv       AuthTokenSource = "env:GITHUB_TOKEN"
	AuthTokenSourceEnvGH     AuthTokenSource = "env:GH_TOKEN"
	AuthTokenSourceGitHubCLI AuthTokenSource = "gh"
)

var tokenEnvVars = []struct {
	name   string
	source AuthTokenSource
}{
	{"GITHUB_TOKEN", AuthTokenSourceEnv},
	{"GH_TOKEN", AuthTokenSourceEnvGH},
}

// ResolveAuthToken finds a token for uploading results.
//
// Precedence:
//  1. provided (if non-empty)
//  2. GITHUB_TOKEN, then GH_TOKEN
//  3. GitHub CLI: `gh auth token -h <host>`
//
// An empty token with no error means none was found. The token is never logged.
func ResolveAuthToken(ctx context.Context, provided string) (string, AuthTokenSource, error) {
	return ResolveAuthTokenForHost(ctx, provided, "github.com")
}

func ResolveAuthTokenForHost(ctx context.Context, provided, host string) (string, AuthTokenSource, error) {
	if tok := strings.TrimSpace(provided); tok != "" {
		return tok, AuthTokenSourceExplicit, nil
	}
	for _, env := range tokenEnvVars {
		if tok := strings.TrimSpace(os.Getenv(env.name)); tok != "" {
			return tok, env.source, nil
		}
	}

	tok, err := tokenFromGitHubCLI(ctx, host)
	if err != nil || tok == "" {
		return "", "", err
	}
	return tok, AuthTokenSourceGitHubCLI, nil
}

func tokenFromGitHubCLI(ctx context.Context, host string) (string, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return "", nil
	}
	if host == "" {
		host = "github.com"
	}

	cmdCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, "gh", "auth", "token", "-h", host)
	cmd.Env = append(withoutEnv(os.Environ(), "GH_PAGER", "GH_HOST"), "GH_PAGER=cat")
	out, err := cmd.Output()
	if err != nil {
		if cmdCtx.Err() != nil {
			return "", cmdCtx.Err()
		}
		// gh installed but not logged in.
		return "", nil
	}

	tok := strings.TrimSpace(string(out))
	if strings.ContainsAny(tok, " \t\n\r") {
		return "", errors.New("invalid token returned by gh: contains whitespace")
	}
	return tok, nil
}

func withoutEnv(env []string, names ...string) []string {
	out := make([]string, 0, len(env))
next:
	for _, entry := range env {
		for _, name := range names {
			if strings.HasPrefix(entry, name+"=") {
				continue next
			}
		}
		out = append(out, entry)
	}
	return out
}

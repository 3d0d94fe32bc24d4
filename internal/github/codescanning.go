package github

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v81/github"
)

// SarifUpload describes one analysis to publish to code scanning.
type SarifUpload struct {
	Repository Repository
	// CommitSHA is the full 40 character revision the analysis ran against.
	CommitSHA string
	// Ref is the full git reference, for example refs/heads/main or refs/pull/42/merge.
	Ref         string
	Sarif       []byte
	CheckoutURI string
	ToolName    string
	StartedAt   time.Time
}

func (u SarifUpload) validate() error {
	var errs []error
	if u.Repository.Owner == "" || u.Repository.Name == "" {
		errs = append(errs, errors.New("repository is required"))
	}
	if len(u.CommitSHA) != 40 {
		errs = append(errs, fmt.Errorf("commit sha must be 40 characters, got %q", u.CommitSHA))
	}
	if !strings.HasPrefix(u.Ref, "refs/") {
		errs = append(errs, fmt.Errorf("ref must be a full reference (refs/...), got %q", u.Ref))
	}
	if len(u.Sarif) == 0 {
		errs = append(errs, errors.New("sarif document is empty"))
	}
	return errors.Join(errs...)
}

// UploadSarif publishes a SARIF log and returns the analysis id assigned by GitHub.
func (c *Client) UploadSarif(ctx context.Context, u SarifUpload) (string, error) {
	if err := u.validate(); err != nil {
		return "", fmt.Errorf("upload sarif: %w", err)
	}
	encoded, err := EncodeSarif(u.Sarif)
	if err != nil {
		return "", fmt.Errorf("upload sarif: %w", err)
	}

	analysis := &github.SarifAnalysis{
		CommitSHA: github.Ptr(u.CommitSHA),
		Ref:       github.Ptr(u.Ref),
		Sarif:     github.Ptr(encoded),
	}
	if u.CheckoutURI != "" {
		analysis.CheckoutURI = github.Ptr(u.CheckoutURI)
	}
	if u.ToolName != "" {
		analysis.ToolName = github.Ptr(u.ToolName)
	}
	if !u.StartedAt.IsZero() {
		analysis.StartedAt = &github.Timestamp{Time: u.StartedAt}
	}

	id, _, err := c.Client.CodeScanning.UploadSarif(ctx, u.Repository.Owner, u.Repository.Name, analysis)
	if err != nil {
		var accepted *github.AcceptedError
		if !errors.As(err, &accepted) {
			return "", fmt.Errorf("upload sarif to %s: %w", u.Repository, err)
		}
		id = new(github.SarifID)
		if len(accepted.Raw) > 0 {
			if err := json.Unmarshal(accepted.Raw, id); err != nil {
				return "", fmt.Errorf("decode sarif upload response: %w", err)
			}
		}
	}
	if id == nil {
		return "", nil
	}
	return id.GetID(), nil
}

// EncodeSarif gzips and base64 encodes a SARIF document for the code scanning API.
func EncodeSarif(sarif []byte) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(sarif); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

package github

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func decodeSarifPayload(t *testing.T, encoded string) string {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read gzip: %v", err)
	}
	return string(data)
}

func validUpload() SarifUpload {
	return SarifUpload{
		Repository: Repository{Host: "github.com", Owner: "acme", Name: "widgets"},
		CommitSHA:  strings.Repeat("a", 40),
		Ref:        "refs/heads/main",
		Sarif:      []byte(`{"version":"2.1.0","runs":[]}`),
		ToolName:   "PSRule",
		StartedAt:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestUploadSarif(t *testing.T) {
	var (
		gotPath string
		gotBody map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"47177e22-5596-11eb-80a1-c1e54ef945c6","url":"https://api.github.com/repos/acme/widgets/code-scanning/sarifs/47177e22"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(context.Background(), "test-token")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	pointAt(t, c, server)

	id, err := c.UploadSarif(context.Background(), validUpload())
	if err != nil {
		t.Fatalf("UploadSarif: %v", err)
	}
	if id != "47177e22-5596-11eb-80a1-c1e54ef945c6" {
		t.Fatalf("unexpected id %q", id)
	}
	if gotPath != "POST /repos/acme/widgets/code-scanning/sarifs" {
		t.Fatalf("unexpected request %s", gotPath)
	}
	if gotBody["commit_sha"] != strings.Repeat("a", 40) || gotBody["ref"] != "refs/heads/main" || gotBody["tool_name"] != "PSRule" {
		t.Fatalf("unexpected body: %v", gotBody)
	}
	sarif, _ := gotBody["sarif"].(string)
	if got := decodeSarifPayload(t, sarif); got != `{"version":"2.1.0","runs":[]}` {
		t.Fatalf("sarif payload mismatch: %s", got)
	}
}

func TestUploadSarif_Validation(t *testing.T) {
	c, err := NewClient(context.Background(), "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	u := validUpload()
	u.CommitSHA = "abc"
	u.Ref = "main"
	u.Sarif = nil

	_, err = c.UploadSarif(context.Background(), u)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"commit sha", "full reference", "empty"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestUploadSarif_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(context.Background(), "test-token")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	pointAt(t, c, server)

	_, err = c.UploadSarif(context.Background(), validUpload())
	if err == nil || !strings.Contains(err.Error(), "acme/widgets") || !strings.Contains(err.Error(), "403") {
		t.Fatalf("want wrapped 403 error, got %v", err)
	}
}

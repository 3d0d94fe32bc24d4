package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v81/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Client wraps the REST client used to publish results.
type Client struct {
	Client *github.Client
	HTTP   *http.Client
}

type options struct {
	verbose bool
	log     zerolog.Logger
	baseURL string
}

type Option func(*options)

// WithVerbose logs one debug line per request and response to log.
func WithVerbose(enabled bool, log zerolog.Logger) Option {
	return func(o *options) {
		o.verbose = enabled
		o.log = log
	}
}

// WithBaseURL points the client at a GitHub Enterprise Server API, for example
// https://ghe.example.com/api/v3/.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

type loggingRoundTripper struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	t.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("github api request")
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start).Truncate(time.Millisecond)
	if err != nil {
		t.log.Debug().Err(err).Dur("elapsed", dur).Msg("github api error")
		return resp, err
	}
	t.log.Debug().Int("status", resp.StatusCode).Dur("elapsed", dur).Msg("github api response")
	return resp, err
}

func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("github client: ctx is nil")
	}

	o := &options{log: zerolog.Nop()}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}

	transport := http.DefaultTransport
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, log: o.log}
	}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	tc := &http.Client{Transport: transport}

	gh := github.NewClient(tc)
	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		var err error
		gh, err = gh.WithEnterpriseURLs(base, base)
		if err != nil {
			return nil, fmt.Errorf("github client: invalid base url: %w", err)
		}
	}

	return &Client{
		Client: gh,
		HTTP:   tc,
	}, nil
}

package github

import (
	"fmt"
	"net/url"
	"strings"
)

// Repository identifies a repository on a GitHub host.
type Repository struct {
	Host  string
	Owner string
	Name  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// URL is the browser URL of the repository.
func (r Repository) URL() string {
	return "https://" + r.Host + "/" + r.Owner + "/" + r.Name
}

// IsGitHubDotCom reports whether the repository lives on github.com.
func (r Repository) IsGitHubDotCom() bool {
	return r.Host == "github.com"
}

// ParseRepository accepts OWNER/REPO, an https URL or an scp-style git remote.
//
//	acme/widgets
//	https://github.com/acme/widgets.git
//	git@github.com:acme/widgets.git
func ParseRepository(raw string) (Repository, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Repository{}, fmt.Errorf("repository is empty")
	}

	host := "github.com"
	path := s
	switch {
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		u, err := url.Parse(s)
		if err != nil {
			return Repository{}, fmt.Errorf("invalid repository url %q: %w", raw, err)
		}
		host = strings.ToLower(u.Hostname())
		path = u.Path
	case strings.HasPrefix(s, "git@"):
		rest := strings.TrimPrefix(s, "git@")
		h, p, ok := strings.Cut(rest, ":")
		if !ok {
			return Repository{}, fmt.Errorf("invalid repository remote %q", raw)
		}
		host = strings.ToLower(h)
		path = p
	case strings.HasPrefix(s, "github.com/"), strings.HasPrefix(s, "www.github.com/"):
		path = s[strings.Index(s, "/"):]
	}
	if host == "www.github.com" {
		host = "github.com"
	}

	parts := strings.FieldsFunc(strings.Trim(path, "/"), func(r rune) bool { return r == '/' })
	if len(parts) != 2 {
		return Repository{}, fmt.Errorf("invalid repository %q: expected OWNER/REPO", raw)
	}
	name := strings.TrimSuffix(parts[1], ".git")
	if parts[0] == "" || name == "" {
		return Repository{}, fmt.Errorf("invalid repository %q: expected OWNER/REPO", raw)
	}
	return Repository{Host: host, Owner: parts[0], Name: name}, nil
}

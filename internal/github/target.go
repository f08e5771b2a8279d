package github

import (
	"net/url"
	"strings"
)

const pagesHostSuffix = ".github.io"

// Target is the repository answers are committed to.
type Target struct {
	Owner string
	Repo  string
}

// TargetFromPagesURL derives the repository from the site's own Pages
// address: https://<owner>.github.io/<repo>/...
func TargetFromPagesURL(pagesURL string) (Target, error) {
	raw := strings.TrimSpace(pagesURL)
	if raw == "" {
		return Target{}, &EnvironmentError{}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Target{}, &EnvironmentError{Location: raw}
	}

	host := strings.ToLower(parsed.Hostname())
	owner := strings.TrimSuffix(host, pagesHostSuffix)
	if !strings.HasSuffix(host, pagesHostSuffix) || owner == "" {
		return Target{}, &EnvironmentError{Location: raw}
	}

	var repo string
	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment != "" {
			repo = segment
			break
		}
	}
	return Target{Owner: owner, Repo: repo}, nil
}

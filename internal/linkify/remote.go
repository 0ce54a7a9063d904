package linkify

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
)

// RepoFromRemote reads owner and repository name from the origin remote of the git
// repository containing path.
func RepoFromRemote(path string) (owner, repo string, err error) {
	dir := path
	if abs, absErr := filepath.Abs(path); absErr == nil {
		dir = filepath.Dir(abs)
	}
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", errors.WrapError(err, errors.CategoryGit, "open git repository").
			WithContext("path", dir).
			Build()
	}
	remote, err := r.Remote("origin")
	if err != nil {
		return "", "", errors.WrapError(err, errors.CategoryGit, "read origin remote").
			WithContext("path", dir).
			Build()
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", errors.GitError("origin remote has no URL").WithContext("path", dir).Build()
	}
	owner, repo, ok := ParseRemoteURL(urls[0])
	if !ok {
		return "", "", errors.GitError("cannot derive owner/repo from remote URL").
			WithContext("url", urls[0]).
			Build()
	}
	return owner, repo, nil
}

// ParseRemoteURL extracts owner and repository from https, ssh and scp-style git URLs.
func ParseRemoteURL(remoteURL string) (owner, repo string, ok bool) {
	normalized := remoteURL
	if strings.HasPrefix(normalized, "git@") {
		parts := strings.SplitN(strings.TrimPrefix(normalized, "git@"), ":", 2)
		if len(parts) != 2 {
			return "", "", false
		}
		normalized = "ssh://git@" + parts[0] + "/" + parts[1]
	}

	u, err := url.Parse(normalized)
	if err != nil || u.Host == "" {
		return "", "", false
	}
	path := strings.Trim(u.Path, "/")
	path = strings.TrimSuffix(path, ".git")

	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

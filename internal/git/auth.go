package git

import (
	"net/url"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// This file is the only place credentials are materialized in-process.
// Everything that logs a URL must pass it through RedactURL first.

// AuthenticatedURL embeds the credential pair into an http(s) repository URL.
// SSH and local URLs are returned unchanged; credentials do not apply there.
func AuthenticatedURL(raw, username, password string) string {
	if username == "" || password == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	switch u.Scheme {
	case "http", "https":
		u.User = url.UserPassword(username, password)
		return u.String()
	default:
		return raw
	}
}

// RedactURL strips any password from a repository URL so it can be logged
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}

	u.User = url.User(u.User.Username())
	return u.String()
}

// BasicAuth returns transport authentication for push and pull against an
// existing checkout, or nil when no credential pair is configured.
func BasicAuth(username, password string) transport.AuthMethod {
	if username == "" || password == "" {
		return nil
	}
	return &githttp.BasicAuth{
		Username: username,
		Password: password,
	}
}

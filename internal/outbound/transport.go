// Package outbound adds the API bearer credential to outgoing requests.
package outbound

import (
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

var assetExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".webp": true, ".ico": true, ".css": true, ".js": true, ".woff": true,
	".woff2": true, ".ttf": true, ".mp3": true, ".mp4": true,
}

var authEndpoints = []string{"/auth/login", "/auth/register", "/auth/recovery"}

// Transport sets "Authorization: Bearer <token>" on every request that is not
// Exempt. A request that already carries Authorization is left alone.
type Transport struct {
	Base    http.RoundTripper
	Token   func() string
	APIHost string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.Token == nil || req.Header.Get("Authorization") != "" || Exempt(req.URL, t.APIHost) {
		return base.RoundTrip(req)
	}
	token := t.Token()
	if token == "" {
		return base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(r)
}

// Exempt reports whether u must go out without credentials: static assets,
// JSON fixtures hosted anywhere but the API host, and the login, register
// and recovery endpoints.
func Exempt(u *url.URL, apiHost string) bool {
	if u == nil {
		return true
	}
	p := strings.ToLower(u.Path)

	if strings.Contains(p, "/assets/") || strings.Contains(p, "/static/") {
		return true
	}
	ext := path.Ext(p)
	if assetExtensions[ext] {
		return true
	}
	if ext == ".json" && !strings.EqualFold(u.Host, apiHost) {
		return true
	}
	for _, ep := range authEndpoints {
		if strings.HasSuffix(strings.TrimSuffix(p, "/"), ep) {
			return true
		}
	}
	return false
}

// NewClient returns a client whose requests to apiBaseURL carry token.
func NewClient(apiBaseURL, token string, timeout time.Duration) *http.Client {
	host := ""
	if u, err := url.Parse(apiBaseURL); err == nil {
		host = u.Host
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &Transport{
			Token:   func() string { return token },
			APIHost: host,
		},
	}
}

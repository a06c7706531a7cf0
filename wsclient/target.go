package wsclient

import (
	"net"
	"net/url"
	"strings"
)

// Target is a normalized ws:// or wss:// address.
type Target struct {
	Host     string // hostname without port
	Port     string
	Resource string // path plus query, always starts with "/"
	Secure   bool

	u *url.URL
}

// ParseTarget normalizes a WebSocket URL. Only ws and wss schemes are
// accepted and fragments are rejected.
func ParseTarget(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, WrapError(ErrorSyntax, "invalid url", err)
	}
	if !u.IsAbs() {
		return Target{}, NewError(ErrorSyntax, "url must be absolute")
	}

	var t Target
	switch strings.ToLower(u.Scheme) {
	case "ws":
		t.Port = "80"
	case "wss":
		t.Secure = true
		t.Port = "443"
	default:
		return Target{}, NewError(ErrorSyntax, "unsupported scheme "+u.Scheme)
	}
	if u.Fragment != "" || strings.HasSuffix(raw, "#") {
		return Target{}, NewError(ErrorSyntax, "url must not contain a fragment")
	}
	if u.Hostname() == "" {
		return Target{}, NewError(ErrorSyntax, "url has no host")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	t.Host = u.Hostname()
	if p := u.Port(); p != "" {
		t.Port = p
	}
	t.Resource = u.EscapedPath()
	if u.RawQuery != "" {
		t.Resource += "?" + u.RawQuery
	}
	t.u = u
	return t, nil
}

// String returns the serialized URL.
func (t Target) String() string {
	if t.u == nil {
		return ""
	}
	return t.u.String()
}

// Address returns host:port suitable for dialing.
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, t.Port)
}

// Origin returns the http(s) origin matching the target, used when the
// caller has not configured one.
func (t Target) Origin() string {
	scheme, def := "http", "80"
	if t.Secure {
		scheme, def = "https", "443"
	}
	host := t.Host
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if t.Port != def {
		host = net.JoinHostPort(t.Host, t.Port)
	}
	return scheme + "://" + host
}

package service

import (
	"net"
	"net/url"
	"strings"
)

// NormalizeImage maps a stored image reference to one the reader at origin
// can fetch:
//   - absolute http(s) URL on a public host: unchanged
//   - absolute http(s) URL on a loopback host: rebased onto origin
//   - anything else (bare paths, relative URLs, other schemes): nil
func NormalizeImage(ref *string, origin *url.URL) *string {
	if ref == nil {
		return nil
	}

	raw := strings.TrimSpace(*ref)
	u, err := url.Parse(raw)
	if raw == "" || err != nil || !isWebURL(u) {
		return nil
	}

	if !isLoopbackHost(u.Hostname()) {
		return &raw
	}

	if origin == nil || origin.Host == "" {
		return nil
	}

	rebased := *u
	rebased.Scheme = origin.Scheme
	rebased.Host = origin.Host
	rebased.User = nil
	result := rebased.String()
	return &result
}

func isAbsoluteURL(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && isWebURL(u)
}

func isWebURL(u *url.URL) bool {
	return (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}

func isLoopbackHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}

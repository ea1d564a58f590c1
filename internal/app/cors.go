package app

import (
	"net"
	"net/url"
	"strings"
)

// originAllowed reports whether a browser Origin matches one of the
// configured allowed_origins entries. An entry may be a full origin
// ("https://example.com:8443"), a bare host — matched port-insensitively —
// or a "*.example.com" wildcard covering the apex and its subdomains.
func originAllowed(patterns []string, origin string) bool {
	if origin == "" {
		return false
	}

	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	bare := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		bare = h
	}

	for _, pattern := range patterns {
		switch {
		case pattern == origin || pattern == host:
			return true
		case !strings.Contains(pattern, ":") && pattern == bare:
			return true
		case strings.HasPrefix(pattern, "*."):
			domain := pattern[2:]
			if bare == domain || strings.HasSuffix(bare, pattern[1:]) {
				return true
			}
		}
	}
	return false
}

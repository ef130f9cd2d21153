package tenant

import (
	"strings"
)

// ExtractSubdomain derives a candidate tenant subdomain from a Host header.
// It returns the leftmost label when host is `something.{mainDomain}`, and
// false for the bare main domain, an unrelated host, or an empty header.
// Ports are stripped before comparison. The result is a label match only;
// it is not validated against the tenant subdomain format here.
func ExtractSubdomain(host, mainDomain string) (string, bool) {
	host = strings.ToLower(strings.TrimSpace(host))
	mainDomain = strings.ToLower(stripPort(mainDomain))
	if host == "" || mainDomain == "" {
		return "", false
	}

	host = stripPort(host)
	if host == mainDomain || !strings.HasSuffix(host, "."+mainDomain) {
		return "", false
	}

	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "", false
	}
	return label, true
}

func stripPort(host string) string {
	// net.SplitHostPort rejects hosts without a port, so cut manually.
	// Bracketed IPv6 hosts never carry a tenant subdomain.
	if strings.HasPrefix(host, "[") {
		return host
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		return host[:i]
	}
	return host
}

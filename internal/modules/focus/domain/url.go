package domain

import (
	"net/url"
	"strings"
)

// CleanURL drops a stray query continuation, the fragment and trailing
// separators so equivalent links compare equal.
func CleanURL(raw string) string {
	if i := strings.IndexByte(raw, '&'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimRight(raw, "?/&")
}

// ExtractDomain returns host[:port] of the cleaned URL. Input without an
// authority yields the cleaned string itself; it never fails.
func ExtractDomain(raw string) string {
	cleaned := CleanURL(raw)
	parsed, err := url.Parse(cleaned)
	if err != nil {
		return raw
	}
	if parsed.Host != "" {
		return parsed.Host
	}
	return cleaned
}

// hostname strips the port and lowercases a domain for matching.
func hostname(domain string) string {
	domain = strings.ToLower(domain)
	if i := strings.LastIndexByte(domain, ':'); i >= 0 && !strings.Contains(domain[i:], "]") {
		domain = domain[:i]
	}
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	return domain
}

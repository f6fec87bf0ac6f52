package domain

import "strings"

// DistractionDomains are blocked by the quick check unless a keyword matches.
var DistractionDomains = []string{
	"facebook.com",
	"twitter.com",
	"instagram.com",
	"tiktok.com",
	"youtube.com",
	"reddit.com",
	"netflix.com",
	"twitch.tv",
	"pinterest.com",
	"snapchat.com",
	"whatsapp.com",
}

// IsWhitelisted reports whether any allowed entry is a case-insensitive
// substring of the URL's domain. Blank entries never match.
func IsWhitelisted(rawURL string, allowedDomains []string) bool {
	domain := strings.ToLower(ExtractDomain(rawURL))
	for _, allowed := range allowedDomains {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		if strings.Contains(domain, allowed) {
			return true
		}
	}
	return false
}

// QuickDecision is the oracle-free verdict: keyword hit allows, a distraction
// domain blocks, anything else is allowed.
func QuickDecision(rawURL string, keywords []string) bool {
	lowered := strings.ToLower(rawURL)
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return !IsDistraction(rawURL)
}

// IsDistraction matches the URL's host against DistractionDomains, including
// subdomains such as m.youtube.com.
func IsDistraction(rawURL string) bool {
	host := hostname(ExtractDomain(rawURL))
	for _, d := range DistractionDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

package slug

import (
	"regexp"
	"strings"
)

// MaxLen bounds slugs used in file names.
const MaxLen = 48

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and joins its alphanumeric runs with hyphens. Long
// results are cut at the last hyphen that fits; empty ones fall back to
// "session".
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxLen {
		s = s[:MaxLen]
		if cut := strings.LastIndex(s, "-"); cut > 0 {
			s = s[:cut]
		}
	}
	if s == "" {
		return "session"
	}
	return s
}

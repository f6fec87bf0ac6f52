package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	labelDecision   = "DECISION:"
	labelConfidence = "CONFIDENCE:"
	labelReason     = "REASON:"
	allowToken      = "ALLOW"
)

var firstInteger = regexp.MustCompile(`\d+`)

// ParseReply reads the labelled DECISION/CONFIDENCE/REASON lines of an oracle
// reply. Labels count only at the start of a line. Missing or malformed
// fields keep their defaults; later lines win.
func ParseReply(text string) Verdict {
	verdict := DefaultVerdict()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		switch {
		case strings.HasPrefix(line, labelDecision):
			value := strings.TrimSpace(strings.TrimPrefix(line, labelDecision))
			value = strings.Trim(value, "[]*.!` ")
			verdict.Allowed = strings.EqualFold(value, allowToken)
		case strings.HasPrefix(line, labelConfidence):
			match := firstInteger.FindString(line[len(labelConfidence):])
			if match == "" {
				verdict.Confidence = DefaultConfidence
				continue
			}
			n, err := strconv.Atoi(match)
			if err != nil {
				verdict.Confidence = 100
				continue
			}
			verdict.Confidence = clampConfidence(n)
		case strings.HasPrefix(line, labelReason):
			if reason := strings.TrimSpace(strings.TrimPrefix(line, labelReason)); reason != "" {
				verdict.Reason = reason
			}
		}
	}
	return verdict
}

package domain

import (
	"fmt"
	"strings"
)

const (
	SystemPrompt = "You are a helpful focus mode assistant. Be concise and decisive."

	// ClassifierTemperature and ClassifierMaxTokens keep replies short and near-deterministic.
	ClassifierTemperature = 0.3
	ClassifierMaxTokens   = 150
)

// BuildPrompt renders the classification request for one URL.
func BuildPrompt(q RelevanceQuery, domain string) string {
	var context strings.Builder
	context.WriteString("Topic: " + q.Topic)
	if d := strings.TrimSpace(q.Description); d != "" {
		context.WriteString("\nDescription: " + d)
	}
	if keywords := CleanList(q.Keywords); len(keywords) > 0 {
		context.WriteString("\nKeywords: " + strings.Join(keywords, ", "))
	}

	strict := "No - Be reasonable"
	if q.StrictMode {
		strict = "Yes - Be very restrictive"
	}

	return fmt.Sprintf(`You are a focus mode assistant. Determine if a website is relevant to the user's focus topic.

%s

Website to check: %s
Domain: %s

Analyze if this website is relevant to the focus topic. Consider:
1. Does the domain name suggest relevance?
2. Would visiting this site help with the topic?
3. Is it a distraction or productive?

Strict mode: %s

Respond in this exact format:
DECISION: [ALLOW or BLOCK]
CONFIDENCE: [0-100]
REASON: [One sentence explanation]`, context.String(), q.URL, domain, strict)
}

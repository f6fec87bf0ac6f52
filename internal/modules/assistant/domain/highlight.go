package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxHighlightElements = 50
	MaxElementText       = 300
	MaxHighlightIDs      = 15
)

// Element is one candidate section of a page, as numbered by the extension.
type Element struct {
	ID   int
	Tag  string
	Text string
}

// HighlightPrompt asks for the IDs of the sections that matter for topic.
// Only the first MaxHighlightElements elements are sent, each cut to
// MaxElementText runes.
func HighlightPrompt(topic, pageTitle string, elements []Element) string {
	if len(elements) > MaxHighlightElements {
		elements = elements[:MaxHighlightElements]
	}
	sections := make([]string, 0, len(elements))
	for _, el := range elements {
		text := []rune(el.Text)
		if len(text) > MaxElementText {
			text = text[:MaxElementText]
		}
		sections = append(sections, fmt.Sprintf("[ID: %d] %s: %s", el.ID, el.Tag, string(text)))
	}
	return fmt.Sprintf(`You are analyzing a webpage titled "%s" to help a user research the topic: "%s".

Below are sections of the webpage with their IDs. Identify which sections are most relevant and important for understanding "%s".

Webpage sections:
%s

Task: Return ONLY a JSON array of IDs for the most important sections. Include 5-15 sections that are most relevant to the topic "%s".

Example response format: {"important_ids": [0, 3, 7, 12]}

Your response (JSON only):`, pageTitle, topic, topic, strings.Join(sections, "\n\n"), topic)
}

var (
	importantObject = regexp.MustCompile(`(?s)\{.*"important_ids".*\}`)
	anyInteger      = regexp.MustCompile(`\d+`)
)

// ParseHighlight reads {"important_ids": [...]} out of a reply. When no such
// object decodes it falls back to the first MaxHighlightIDs integers.
func ParseHighlight(reply string) []int {
	if raw := importantObject.FindString(reply); raw != "" {
		var decoded struct {
			ImportantIDs []int `json:"important_ids"`
		}
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			if decoded.ImportantIDs == nil {
				return []int{}
			}
			return decoded.ImportantIDs
		}
	}
	ids := []int{}
	for _, m := range anyInteger.FindAllString(reply, MaxHighlightIDs) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	return ids
}

package domain

import (
	"fmt"
	"strings"
)

const (
	ChatSystem     = "You are AiChat, a helpful AI assistant integrated into a browser."
	SummarySystem  = "You are a helpful assistant that provides clear and concise summaries."
	QuestionSystem = "You are a helpful assistant that answers questions based on provided context."

	Temperature = 0.7
	MaxTokens   = 1024

	ChunkSize    = 4000
	ChunkOverlap = 200
	// MaxContextChunks bounds how much page text reaches a single prompt.
	MaxContextChunks = 3
)

// ChatPrompt frames the user query with the current page text when present.
func ChatPrompt(query, pageContext string) string {
	if strings.TrimSpace(pageContext) == "" {
		return query
	}
	return fmt.Sprintf("Context from current page:\n%s\n\nUser: %s\n\nAssistant:", pageContext, query)
}

func SummaryPrompt(text string) string {
	return fmt.Sprintf("Provide a clear and concise summary of the following content:\n\n%s\n\nSummary:", text)
}

func QuestionPrompt(question, pageContext string) string {
	return fmt.Sprintf("Based on the following context, answer the question accurately and concisely.\n\nContext:\n%s\n\nQuestion: %s\n\nAnswer:", pageContext, question)
}

// LeadingContext keeps the first MaxContextChunks chunks of text.
func LeadingContext(text string) string {
	chunks := SplitText(text, ChunkSize, ChunkOverlap)
	if len(chunks) > MaxContextChunks {
		chunks = chunks[:MaxContextChunks]
	}
	return strings.Join(chunks, "\n\n")
}

var learningWords = []string{"learn", "study", "tutorial", "course", "guide", "teach", "explain", "understand", "research", "information", "about"}

// IsLearningQuery reports whether a chat query asks to learn something, in
// which case the reply carries site suggestions.
func IsLearningQuery(query string) bool {
	q := strings.ToLower(query)
	for _, w := range learningWords {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

var topicFillers = []string{"learn about", "teach me", "explain"}

// SuggestionTopic strips request phrasing from a learning query.
func SuggestionTopic(query string) string {
	topic := query
	for _, f := range topicFillers {
		topic = strings.ReplaceAll(topic, f, "")
	}
	return strings.TrimSpace(topic)
}

package dto

type ChatInput struct {
	Query   string `json:"query"`
	Context string `json:"context,omitempty"`
	PageURL string `json:"page_url,omitempty"`
}

type SummarizeInput struct {
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

type QuestionInput struct {
	Question string `json:"question"`
	Context  string `json:"context"`
	URL      string `json:"url,omitempty"`
}

type ElementInput struct {
	ID   int    `json:"id"`
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

type HighlightInput struct {
	Topic     string         `json:"topic"`
	PageTitle string         `json:"pageTitle"`
	PageURL   string         `json:"pageUrl"`
	Elements  []ElementInput `json:"elements"`
}

type SuggestionOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type ReplyOutput struct {
	Text              string             `json:"text"`
	SuggestedWebsites []SuggestionOutput `json:"suggested_websites"`
}

type HighlightOutput struct {
	ImportantIDs []int  `json:"important_ids"`
	Topic        string `json:"topic"`
	Count        int    `json:"count"`
}

package domain

type Suggestion struct {
	Title       string
	Description string
	URL         string
}

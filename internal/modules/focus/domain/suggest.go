package domain

import (
	"net/url"
	"strings"
)

const maxSuggestions = 5

type Suggestion struct {
	Title       string
	Description string
	URL         string
}

type suggestionFamily struct {
	words []string
	sites []Suggestion
}

var suggestionFamilies = []suggestionFamily{
	{
		words: []string{"python", "javascript", "programming", "coding", "web development", "java", "c++", "react", "node", "golang", "rust"},
		sites: []Suggestion{
			{Title: "MDN Web Docs", Description: "Comprehensive web development documentation and tutorials", URL: "https://developer.mozilla.org"},
			{Title: "freeCodeCamp", Description: "Learn to code for free with interactive tutorials", URL: "https://www.freecodecamp.org"},
			{Title: "W3Schools", Description: "Web development tutorials and references", URL: "https://www.w3schools.com"},
			{Title: "Stack Overflow", Description: "Q&A community for programmers", URL: "https://stackoverflow.com"},
			{Title: "GitHub", Description: "Explore open source projects and code", URL: "https://github.com"},
		},
	},
	{
		words: []string{"math", "physics", "chemistry", "biology", "science", "calculus", "algebra"},
		sites: []Suggestion{
			{Title: "Khan Academy", Description: "Free courses in math, science, and more", URL: "https://www.khanacademy.org"},
			{Title: "Wolfram Alpha", Description: "Computational knowledge engine", URL: "https://www.wolframalpha.com"},
			{Title: "MIT OpenCourseWare", Description: "Free MIT course materials", URL: "https://ocw.mit.edu"},
			{Title: "Coursera", Description: "Online courses from top universities", URL: "https://www.coursera.org"},
			{Title: "edX", Description: "University-level courses online", URL: "https://www.edx.org"},
		},
	},
	{
		words: []string{"language", "spanish", "french", "german", "chinese", "japanese", "english"},
		sites: []Suggestion{
			{Title: "Duolingo", Description: "Learn languages for free", URL: "https://www.duolingo.com"},
			{Title: "Memrise", Description: "Language learning with native speakers", URL: "https://www.memrise.com"},
			{Title: "BBC Languages", Description: "Free language courses from BBC", URL: "https://www.bbc.co.uk/languages"},
			{Title: "italki", Description: "Learn languages with native teachers", URL: "https://www.italki.com"},
			{Title: "Busuu", Description: "Language learning community", URL: "https://www.busuu.com"},
		},
	},
}

var topicFillers = []string{"learn about", "teach me", "explain"}

// SuggestSites returns up to five learning resources for the topic. The first
// family whose word occurs in the topic wins; otherwise generic links are
// built around the topic itself.
func SuggestSites(topic string) []Suggestion {
	for _, filler := range topicFillers {
		topic = strings.ReplaceAll(topic, filler, "")
	}
	topic = strings.TrimSpace(topic)
	lowered := strings.ToLower(topic)

	for _, family := range suggestionFamilies {
		for _, word := range family.words {
			if strings.Contains(lowered, word) {
				return limitSuggestions(family.sites)
			}
		}
	}
	if topic == "" {
		return nil
	}

	wiki := strings.ReplaceAll(topic, " ", "_")
	query := url.QueryEscape(topic)
	return limitSuggestions([]Suggestion{
		{Title: "Wikipedia", Description: "Encyclopedia article about " + topic, URL: "https://en.wikipedia.org/wiki/" + url.PathEscape(wiki)},
		{Title: "Khan Academy", Description: "Free educational resources", URL: "https://www.khanacademy.org"},
		{Title: "Coursera", Description: "Online courses from universities", URL: "https://www.coursera.org"},
		{Title: "YouTube Education", Description: "Educational videos and tutorials", URL: "https://www.youtube.com/results?search_query=" + query + "+tutorial"},
		{Title: "Reddit", Description: "Community discussions about " + topic, URL: "https://www.reddit.com/search/?q=" + query},
	})
}

func limitSuggestions(sites []Suggestion) []Suggestion {
	if len(sites) > maxSuggestions {
		sites = sites[:maxSuggestions]
	}
	out := make([]Suggestion, len(sites))
	copy(out, sites)
	return out
}

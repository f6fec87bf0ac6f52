package dto

import "time"

type StartInput struct {
	UserID         string   `json:"-"`
	Topic          string   `json:"topic"`
	Description    string   `json:"description,omitempty"`
	Keywords       []string `json:"keywords"`
	AllowedDomains []string `json:"allowed_domains"`
}

type StartOutput struct {
	SessionID  string    `json:"session_id"`
	Topic      string    `json:"topic"`
	StrictMode bool      `json:"strict_mode"`
	CreatedAt  time.Time `json:"created_at"`
}

type StatsOutput struct {
	URLsChecked int `json:"urls_checked"`
	URLsAllowed int `json:"urls_allowed"`
	URLsBlocked int `json:"urls_blocked"`
}

type SessionOutput struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Topic          string     `json:"topic"`
	Description    string     `json:"description"`
	Keywords       []string   `json:"keywords"`
	AllowedDomains []string   `json:"allowed_domains"`
	BlockedURLs    []string   `json:"blocked_urls"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	EndedAt        *time.Time `json:"ended_at"`
	StatsOutput
}

type ActiveOutput struct {
	Active  bool           `json:"active"`
	Session *SessionOutput `json:"session"`
}

type CheckInput struct {
	UserID        string `json:"-"`
	URL           string `json:"url"`
	UseQuickCheck bool   `json:"use_quick_check"`
}

type CheckOutput struct {
	URL           string `json:"url"`
	Domain        string `json:"domain"`
	Allowed       bool   `json:"allowed"`
	Reason        string `json:"reason"`
	Confidence    *int   `json:"confidence,omitempty"`
	SessionActive bool   `json:"session_active"`
	Topic         string `json:"topic,omitempty"`
}

type BatchCheckInput struct {
	UserID string   `json:"-"`
	URLs   []string `json:"urls"`
}

type VerdictOutput struct {
	URL        string `json:"url"`
	Domain     string `json:"domain"`
	Allowed    bool   `json:"allowed"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

// BatchCheckOutput is keyed by URL. Partial is set when the batch deadline
// expired before every URL was classified.
type BatchCheckOutput struct {
	Results       map[string]VerdictOutput `json:"results"`
	SessionActive bool                     `json:"session_active"`
	Partial       bool                     `json:"partial"`
}

type EndInput struct {
	UserID string `json:"-"`
}

type EndOutput struct {
	Ended      bool        `json:"ended"`
	SessionID  string      `json:"session_id,omitempty"`
	Stats      StatsOutput `json:"stats"`
	ReportPath string      `json:"report_path,omitempty"`
}

type HistoryInput struct {
	UserID string
	Limit  int
}

type SuggestionOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

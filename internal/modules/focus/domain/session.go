package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

type Stats struct {
	URLsChecked int `json:"urls_checked" yaml:"urls_checked"`
	URLsAllowed int `json:"urls_allowed" yaml:"urls_allowed"`
	URLsBlocked int `json:"urls_blocked" yaml:"urls_blocked"`
}

// Session is one focus period. It is never deleted; ending it keeps it as history.
type Session struct {
	ID             string
	UserID         string
	Topic          string
	Description    string
	Keywords       []string
	AllowedDomains []string
	BlockedURLs    []string
	Active         bool
	CreatedAt      time.Time
	EndedAt        *time.Time
	Stats          Stats
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(s.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(s.Topic) == "" {
		return fmt.Errorf("topic is required")
	}
	return nil
}

// Ended reports whether the session reached its terminal state.
func (s Session) Ended() bool {
	return s.EndedAt != nil
}

// CleanList trims entries and drops blanks and duplicates, keeping order.
func CleanList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

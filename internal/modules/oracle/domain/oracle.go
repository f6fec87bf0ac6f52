package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrProviderUnavailable = errors.New("oracle provider unavailable")
	ErrEmptyCompletion     = errors.New("oracle returned an empty completion")
	ErrChecksumMismatch    = errors.New("oracle plugin checksum mismatch")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// CompletionRequest is one stateless prompt for a text completion provider.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

func (r CompletionRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("prompt is required")
	}
	if r.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2]")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
	Model   string
}

// ValidChecksum reports whether sum is a lowercase hex SHA-256 digest.
func ValidChecksum(sum string) bool {
	return sha256Pattern.MatchString(sum)
}

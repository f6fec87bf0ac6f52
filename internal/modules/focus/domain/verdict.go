package domain

const (
	DefaultConfidence = 50
	DefaultReason     = "unable to determine relevance"
)

// RelevanceQuery carries everything the classifier needs; it holds no session state.
type RelevanceQuery struct {
	URL         string
	Topic       string
	Description string
	Keywords    []string
	StrictMode  bool
}

type Verdict struct {
	URL        string
	Domain     string
	Allowed    bool
	Confidence int
	Reason     string
}

func DefaultVerdict() Verdict {
	return Verdict{Allowed: false, Confidence: DefaultConfidence, Reason: DefaultReason}
}

func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

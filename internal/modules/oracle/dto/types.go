package dto

import "time"

type CompleteInput struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type CompleteOutput struct {
	Text     string
	Provider string
	Latency  time.Duration
}

type PingOutput struct {
	Provider string        `json:"provider"`
	Version  string        `json:"version"`
	Model    string        `json:"model"`
	Reply    string        `json:"reply"`
	Latency  time.Duration `json:"latency"`
}

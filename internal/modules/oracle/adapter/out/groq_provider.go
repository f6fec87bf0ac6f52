package out

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"lernova/internal/modules/oracle/domain"
	oracleout "lernova/internal/modules/oracle/port/out"
)

// GroqProvider talks to Groq through its OpenAI-compatible API.
type GroqProvider struct {
	client *openai.Client
	http   *http.Client
	apiKey string
	model  string
}

func NewGroqProvider(baseURL, apiKey, model string, httpClient *http.Client) oracleout.Provider {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = httpClient
	return &GroqProvider{
		client: openai.NewClientWithConfig(cfg),
		http:   httpClient,
		apiKey: apiKey,
		model:  model,
	}
}

func (p *GroqProvider) Metadata(context.Context) (domain.Metadata, error) {
	return domain.Metadata{Name: "groq", Version: "v1", Model: p.model}, nil
}

func (p *GroqProvider) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("%w: groq api key is not set", domain.ErrProviderUnavailable)
	}
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", classifyAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyAPIError keeps the HTTP status in the message and reports rejected
// credentials as an unavailable provider.
func classifyAPIError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		return fmt.Errorf("call chat completions: %w", err)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: chat completions returned %d: %v", domain.ErrProviderUnavailable, status, err)
	}
	return fmt.Errorf("chat completions returned %d: %w", status, err)
}

func (p *GroqProvider) Close() error {
	p.http.CloseIdleConnections()
	return nil
}

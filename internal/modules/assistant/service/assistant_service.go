package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"lernova/internal/modules/assistant/domain"
	assistantout "lernova/internal/modules/assistant/port/out"
	apperrors "lernova/internal/platform/errors"
)

// AssistantService turns page text and user questions into prompts for the
// completer. It holds no per-user state.
type AssistantService struct {
	completer assistantout.Completer
	logger    hclog.Logger
}

func NewAssistantService(completer assistantout.Completer, logger hclog.Logger) *AssistantService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AssistantService{completer: completer, logger: logger.Named("assistant")}
}

func (s *AssistantService) Chat(ctx context.Context, query, pageContext string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is required", apperrors.ErrInvalidInput)
	}
	return s.complete(ctx, domain.ChatSystem, domain.ChatPrompt(query, domain.LeadingContext(pageContext)))
}

// Summarize summarizes short content in one call. Longer content is split,
// the leading chunks are summarized in parallel and the partial summaries are
// summarized once more.
func (s *AssistantService) Summarize(ctx context.Context, content string) (string, error) {
	chunks := domain.SplitText(content, domain.ChunkSize, domain.ChunkOverlap)
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: content is required", apperrors.ErrInvalidInput)
	}
	if len(chunks) == 1 {
		return s.complete(ctx, domain.SummarySystem, domain.SummaryPrompt(chunks[0]))
	}
	if len(chunks) > domain.MaxContextChunks {
		s.logger.Debug("summarizing leading chunks only", "chunks", len(chunks), "kept", domain.MaxContextChunks)
		chunks = chunks[:domain.MaxContextChunks]
	}

	partial := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(domain.MaxContextChunks)
	for i, chunk := range chunks {
		g.Go(func() error {
			text, err := s.complete(gctx, domain.SummarySystem, domain.SummaryPrompt(chunk))
			if err != nil {
				return fmt.Errorf("summarize chunk %d: %w", i+1, err)
			}
			partial[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return s.complete(ctx, domain.SummarySystem, domain.SummaryPrompt(strings.Join(partial, "\n\n")))
}

func (s *AssistantService) Answer(ctx context.Context, question, pageContext string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is required", apperrors.ErrInvalidInput)
	}
	return s.complete(ctx, domain.QuestionSystem, domain.QuestionPrompt(question, domain.LeadingContext(pageContext)))
}

// Highlight returns the IDs of the page sections that matter for topic.
func (s *AssistantService) Highlight(ctx context.Context, topic, pageTitle, pageURL string, elements []domain.Element) ([]int, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", apperrors.ErrInvalidInput)
	}
	if len(elements) == 0 {
		return []int{}, nil
	}
	prompt := domain.ChatPrompt(domain.HighlightPrompt(topic, pageTitle, elements), "Analyzing webpage: "+pageURL)
	reply, err := s.complete(ctx, domain.ChatSystem, prompt)
	if err != nil {
		return nil, err
	}
	ids := domain.ParseHighlight(reply)
	s.logger.Info("important sections identified", "topic", topic, "count", len(ids))
	return ids, nil
}

func (s *AssistantService) complete(ctx context.Context, system, prompt string) (string, error) {
	if s.completer == nil {
		return "", fmt.Errorf("completer is not configured")
	}
	text, err := s.completer.Complete(ctx, system, prompt, domain.Temperature, domain.MaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

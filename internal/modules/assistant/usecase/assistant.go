package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"lernova/internal/modules/assistant/domain"
	"lernova/internal/modules/assistant/dto"
	assistantin "lernova/internal/modules/assistant/port/in"
	assistantout "lernova/internal/modules/assistant/port/out"
	"lernova/internal/modules/assistant/service"
	apperrors "lernova/internal/platform/errors"
)

type Interactor struct {
	svc       *service.AssistantService
	suggester assistantout.Suggester
	logger    hclog.Logger
}

// NewInteractor wires the assistant. suggester may be nil, in which case
// chat replies never carry suggestions.
func NewInteractor(svc *service.AssistantService, suggester assistantout.Suggester, logger hclog.Logger) assistantin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{svc: svc, suggester: suggester, logger: logger.Named("assistant")}
}

// Chat answers the query and, for learning queries, attaches site
// suggestions. A suggestion failure never fails the chat.
func (i *Interactor) Chat(ctx context.Context, input dto.ChatInput) (dto.ReplyOutput, error) {
	text, err := i.svc.Chat(ctx, input.Query, input.Context)
	if err != nil {
		return dto.ReplyOutput{}, err
	}
	out := dto.ReplyOutput{Text: text, SuggestedWebsites: []dto.SuggestionOutput{}}
	if !domain.IsLearningQuery(input.Query) || i.suggester == nil {
		return out, nil
	}
	topic := domain.SuggestionTopic(input.Query)
	sites, err := i.suggester.Suggest(ctx, topic)
	if err != nil {
		i.logger.Warn("website suggestions failed", "topic", topic, "error", err)
		return out, nil
	}
	out.SuggestedWebsites = toSuggestions(sites)
	return out, nil
}

func (i *Interactor) Summarize(ctx context.Context, input dto.SummarizeInput) (dto.ReplyOutput, error) {
	text, err := i.svc.Summarize(ctx, input.Content)
	if err != nil {
		return dto.ReplyOutput{}, err
	}
	i.logger.Debug("content summarized", "url", input.URL, "chars", len(input.Content))
	return dto.ReplyOutput{Text: text, SuggestedWebsites: []dto.SuggestionOutput{}}, nil
}

func (i *Interactor) Ask(ctx context.Context, input dto.QuestionInput) (dto.ReplyOutput, error) {
	text, err := i.svc.Answer(ctx, input.Question, input.Context)
	if err != nil {
		return dto.ReplyOutput{}, err
	}
	return dto.ReplyOutput{Text: text, SuggestedWebsites: []dto.SuggestionOutput{}}, nil
}

func (i *Interactor) Highlight(ctx context.Context, input dto.HighlightInput) (dto.HighlightOutput, error) {
	elements := make([]domain.Element, 0, len(input.Elements))
	for _, el := range input.Elements {
		elements = append(elements, domain.Element{ID: el.ID, Tag: el.Tag, Text: el.Text})
	}
	ids, err := i.svc.Highlight(ctx, input.Topic, input.PageTitle, input.PageURL, elements)
	if err != nil {
		return dto.HighlightOutput{}, err
	}
	return dto.HighlightOutput{ImportantIDs: ids, Topic: input.Topic, Count: len(ids)}, nil
}

func (i *Interactor) SuggestWebsites(ctx context.Context, topic string) ([]dto.SuggestionOutput, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", apperrors.ErrInvalidInput)
	}
	if i.suggester == nil {
		return []dto.SuggestionOutput{}, nil
	}
	sites, err := i.suggester.Suggest(ctx, topic)
	if err != nil {
		return nil, err
	}
	return toSuggestions(sites), nil
}

func toSuggestions(sites []domain.Suggestion) []dto.SuggestionOutput {
	out := make([]dto.SuggestionOutput, 0, len(sites))
	for _, s := range sites {
		out = append(out, dto.SuggestionOutput{Title: s.Title, Description: s.Description, URL: s.URL})
	}
	return out
}

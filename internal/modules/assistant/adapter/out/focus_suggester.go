package out

import (
	"context"

	"lernova/internal/modules/assistant/domain"
	assistantout "lernova/internal/modules/assistant/port/out"
	focusin "lernova/internal/modules/focus/port/in"
)

// FocusSuggester reuses the focus module's curated learning sites.
type FocusSuggester struct {
	focus focusin.Usecase
}

func NewFocusSuggester(focus focusin.Usecase) assistantout.Suggester {
	return &FocusSuggester{focus: focus}
}

func (a *FocusSuggester) Suggest(ctx context.Context, topic string) ([]domain.Suggestion, error) {
	items, err := a.focus.Suggest(ctx, topic)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Suggestion, 0, len(items))
	for _, it := range items {
		out = append(out, domain.Suggestion{Title: it.Title, Description: it.Description, URL: it.URL})
	}
	return out, nil
}

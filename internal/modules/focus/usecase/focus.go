package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"lernova/internal/modules/focus/domain"
	"lernova/internal/modules/focus/dto"
	focusin "lernova/internal/modules/focus/port/in"
	focusout "lernova/internal/modules/focus/port/out"
	"lernova/internal/modules/focus/service"
	apperrors "lernova/internal/platform/errors"
)

const (
	ReasonNoSession   = "no active session"
	ReasonWhitelisted = "domain is whitelisted"
	ReasonQuickCheck  = "quick keyword-based check"
)

type Interactor struct {
	sessions   *service.SessionService
	classifier *service.Classifier
	strict     focusout.StrictModeSource
	reports    focusout.ReportStore
	logger     hclog.Logger
}

// NewInteractor wires the focus flow. reports may be nil when session reports are disabled.
func NewInteractor(sessions *service.SessionService, classifier *service.Classifier, strict focusout.StrictModeSource, reports focusout.ReportStore, logger hclog.Logger) focusin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{
		sessions:   sessions,
		classifier: classifier,
		strict:     strict,
		reports:    reports,
		logger:     logger.Named("focus"),
	}
}

func (i *Interactor) StartSession(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	session, err := i.sessions.Start(ctx, input.UserID, input.Topic, input.Description, input.Keywords, input.AllowedDomains)
	if err != nil {
		return dto.StartOutput{}, err
	}
	strict, err := i.strictMode(ctx, session.UserID)
	if err != nil {
		return dto.StartOutput{}, err
	}
	i.logger.Info("focus session started", "user", session.UserID, "session", session.ID, "topic", session.Topic)
	return dto.StartOutput{
		SessionID:  session.ID,
		Topic:      session.Topic,
		StrictMode: strict,
		CreatedAt:  session.CreatedAt,
	}, nil
}

func (i *Interactor) GetActive(ctx context.Context, userID string) (dto.ActiveOutput, error) {
	session, err := i.sessions.Active(ctx, userID)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return dto.ActiveOutput{Active: false}, nil
	}
	if err != nil {
		return dto.ActiveOutput{}, err
	}
	out := toSessionOutput(session)
	return dto.ActiveOutput{Active: true, Session: &out}, nil
}

// CheckURL decides in order: no session, whitelist, quick heuristic, oracle.
// Every decision taken inside a session is counted before returning.
func (i *Interactor) CheckURL(ctx context.Context, input dto.CheckInput) (dto.CheckOutput, error) {
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return dto.CheckOutput{}, fmt.Errorf("%w: url is required", apperrors.ErrInvalidInput)
	}
	out := dto.CheckOutput{URL: url, Domain: domain.ExtractDomain(url)}

	session, err := i.sessions.Active(ctx, input.UserID)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		out.Allowed = true
		out.Reason = ReasonNoSession
		return out, nil
	}
	if err != nil {
		return dto.CheckOutput{}, err
	}
	out.SessionActive = true
	out.Topic = session.Topic

	switch {
	case domain.IsWhitelisted(url, session.AllowedDomains):
		out.Allowed = true
		out.Reason = ReasonWhitelisted
	case input.UseQuickCheck:
		out.Allowed = domain.QuickDecision(url, session.Keywords)
		out.Reason = ReasonQuickCheck
	default:
		strict, err := i.strictMode(ctx, session.UserID)
		if err != nil {
			return dto.CheckOutput{}, err
		}
		verdict := i.classifier.CheckRelevance(ctx, queryFor(session, url, strict))
		confidence := verdict.Confidence
		out.Allowed = verdict.Allowed
		out.Reason = verdict.Reason
		out.Confidence = &confidence
	}

	if err := i.sessions.RecordCheck(ctx, session.ID, url, out.Allowed); err != nil {
		return dto.CheckOutput{}, fmt.Errorf("record check: %w", err)
	}
	return out, nil
}

// BatchCheckURLs applies the whitelist and the oracle to each distinct URL.
// URLs still pending at the batch deadline are left out and flagged partial.
func (i *Interactor) BatchCheckURLs(ctx context.Context, input dto.BatchCheckInput) (dto.BatchCheckOutput, error) {
	out := dto.BatchCheckOutput{Results: map[string]dto.VerdictOutput{}}

	session, err := i.sessions.Active(ctx, input.UserID)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		for _, url := range input.URLs {
			if url = strings.TrimSpace(url); url != "" {
				out.Results[url] = dto.VerdictOutput{URL: url, Domain: domain.ExtractDomain(url), Allowed: true, Reason: ReasonNoSession}
			}
		}
		return out, nil
	}
	if err != nil {
		return dto.BatchCheckOutput{}, err
	}
	out.SessionActive = true

	strict, err := i.strictMode(ctx, session.UserID)
	if err != nil {
		return dto.BatchCheckOutput{}, err
	}

	results, partial, err := i.classifier.RunBatch(ctx, input.URLs, func(batchCtx context.Context, url string) (domain.Verdict, bool, error) {
		var verdict domain.Verdict
		if domain.IsWhitelisted(url, session.AllowedDomains) {
			verdict = domain.Verdict{URL: url, Domain: domain.ExtractDomain(url), Allowed: true, Confidence: 100, Reason: ReasonWhitelisted}
		} else {
			verdict = i.classifier.CheckRelevance(batchCtx, queryFor(session, url, strict))
			if batchCtx.Err() != nil {
				return domain.Verdict{}, false, nil
			}
		}
		if err := i.sessions.RecordCheck(ctx, session.ID, url, verdict.Allowed); err != nil {
			return domain.Verdict{}, false, err
		}
		return verdict, true, nil
	})
	if err != nil {
		return dto.BatchCheckOutput{}, fmt.Errorf("batch check: %w", err)
	}
	for url, verdict := range results {
		out.Results[url] = toVerdictOutput(verdict)
	}
	out.Partial = partial
	return out, nil
}

func (i *Interactor) EndSession(ctx context.Context, input dto.EndInput) (dto.EndOutput, error) {
	active, err := i.sessions.Active(ctx, input.UserID)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return dto.EndOutput{Ended: false}, nil
	}
	if err != nil {
		return dto.EndOutput{}, err
	}

	session, ended, err := i.sessions.End(ctx, active.ID)
	if err != nil {
		return dto.EndOutput{}, err
	}
	out := dto.EndOutput{Ended: ended, SessionID: session.ID, Stats: toStatsOutput(session.Stats)}
	if ended && i.reports != nil {
		path, err := i.reports.Save(ctx, session)
		if err != nil {
			i.logger.Warn("session report not written", "session", session.ID, "error", err)
		} else {
			out.ReportPath = path
		}
	}
	i.logger.Info("focus session ended", "user", session.UserID, "session", session.ID,
		"checked", session.Stats.URLsChecked, "blocked", session.Stats.URLsBlocked)
	return out, nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.SessionOutput, error) {
	sessions, err := i.sessions.History(ctx, input.UserID, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionOutput(session))
	}
	return out, nil
}

func (i *Interactor) Suggest(_ context.Context, topic string) ([]dto.SuggestionOutput, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", apperrors.ErrInvalidInput)
	}
	sites := domain.SuggestSites(topic)
	out := make([]dto.SuggestionOutput, 0, len(sites))
	for _, site := range sites {
		out = append(out, dto.SuggestionOutput{Title: site.Title, Description: site.Description, URL: site.URL})
	}
	return out, nil
}

func (i *Interactor) strictMode(ctx context.Context, userID string) (bool, error) {
	if i.strict == nil {
		return false, nil
	}
	strict, err := i.strict.StrictMode(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("read strict mode: %w", err)
	}
	return strict, nil
}

func queryFor(session domain.Session, url string, strict bool) domain.RelevanceQuery {
	return domain.RelevanceQuery{
		URL:         url,
		Topic:       session.Topic,
		Description: session.Description,
		Keywords:    session.Keywords,
		StrictMode:  strict,
	}
}

func toStatsOutput(stats domain.Stats) dto.StatsOutput {
	return dto.StatsOutput{URLsChecked: stats.URLsChecked, URLsAllowed: stats.URLsAllowed, URLsBlocked: stats.URLsBlocked}
}

func toVerdictOutput(v domain.Verdict) dto.VerdictOutput {
	return dto.VerdictOutput{URL: v.URL, Domain: v.Domain, Allowed: v.Allowed, Confidence: v.Confidence, Reason: v.Reason}
}

func toSessionOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:             s.ID,
		UserID:         s.UserID,
		Topic:          s.Topic,
		Description:    s.Description,
		Keywords:       nonNil(s.Keywords),
		AllowedDomains: nonNil(s.AllowedDomains),
		BlockedURLs:    nonNil(s.BlockedURLs),
		Active:         s.Active,
		CreatedAt:      s.CreatedAt,
		EndedAt:        s.EndedAt,
		StatsOutput:    toStatsOutput(s.Stats),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

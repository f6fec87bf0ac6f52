package in

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	focusdto "lernova/internal/modules/focus/dto"
	focusin "lernova/internal/modules/focus/port/in"
	apperrors "lernova/internal/platform/errors"
	"lernova/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase     focusin.Usecase
	defaultUser string
}

func NewHTTPHandler(usecase focusin.Usecase, defaultUser string) HTTPHandler {
	return HTTPHandler{usecase: usecase, defaultUser: defaultUser}
}

// Register mounts the focus routes under /api/focus.
func (h HTTPHandler) Register(r *mux.Router) {
	sub := r.PathPrefix("/api/focus").Subrouter()
	sub.HandleFunc("/start", h.start).Methods(http.MethodPost)
	sub.HandleFunc("/active", h.active).Methods(http.MethodGet)
	sub.HandleFunc("/check-url", h.checkURL).Methods(http.MethodPost)
	sub.HandleFunc("/check-urls", h.checkURLs).Methods(http.MethodPost)
	sub.HandleFunc("/end", h.end).Methods(http.MethodPost)
	sub.HandleFunc("/history", h.history).Methods(http.MethodGet)
	sub.HandleFunc("/suggestions", h.suggestions).Methods(http.MethodGet)
}

func (h HTTPHandler) start(w http.ResponseWriter, r *http.Request) {
	input := focusdto.StartInput{}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	input.UserID = httpx.UserID(r, h.defaultUser)
	out, err := h.usecase.StartSession(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{
		"session_id":  out.SessionID,
		"message":     "Focus mode started for topic: " + out.Topic,
		"strict_mode": out.StrictMode,
	})
}

func (h HTTPHandler) active(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.GetActive(r.Context(), httpx.UserID(r, h.defaultUser))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"active": out.Active, "session": out.Session})
}

func (h HTTPHandler) checkURL(w http.ResponseWriter, r *http.Request) {
	input := focusdto.CheckInput{}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	input.UserID = httpx.UserID(r, h.defaultUser)
	out, err := h.usecase.CheckURL(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	body := httpx.Envelope{
		"url":            out.URL,
		"domain":         out.Domain,
		"allowed":        out.Allowed,
		"reason":         out.Reason,
		"session_active": out.SessionActive,
	}
	if out.Confidence != nil {
		body["confidence"] = *out.Confidence
	}
	if out.Topic != "" {
		body["topic"] = out.Topic
	}
	httpx.WriteOK(w, http.StatusOK, body)
}

func (h HTTPHandler) checkURLs(w http.ResponseWriter, r *http.Request) {
	input := focusdto.BatchCheckInput{}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	input.UserID = httpx.UserID(r, h.defaultUser)
	out, err := h.usecase.BatchCheckURLs(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{
		"results":        out.Results,
		"session_active": out.SessionActive,
		"partial":        out.Partial,
	})
}

func (h HTTPHandler) end(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.EndSession(r.Context(), focusdto.EndInput{UserID: httpx.UserID(r, h.defaultUser)})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if !out.Ended && out.SessionID == "" {
		httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"ended": false, "message": "No active focus session"})
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{
		"ended":      out.Ended,
		"session_id": out.SessionID,
		"message":    "Focus session ended",
		"stats":      out.Stats,
	})
}

func (h HTTPHandler) history(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpx.WriteError(w, apperrors.ErrInvalidInput)
			return
		}
		limit = n
	}
	out, err := h.usecase.History(r.Context(), focusdto.HistoryInput{UserID: httpx.UserID(r, h.defaultUser), Limit: limit})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"history": out})
}

func (h HTTPHandler) suggestions(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Suggest(r.Context(), r.URL.Query().Get("topic"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"suggestions": out})
}

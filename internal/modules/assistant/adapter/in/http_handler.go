package in

import (
	"net/http"

	"github.com/gorilla/mux"

	assistantdto "lernova/internal/modules/assistant/dto"
	assistantin "lernova/internal/modules/assistant/port/in"
	"lernova/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase assistantin.Usecase
}

func NewHTTPHandler(usecase assistantin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

// Register mounts the assistant routes under /api/ai.
func (h HTTPHandler) Register(r *mux.Router) {
	sub := r.PathPrefix("/api/ai").Subrouter()
	sub.HandleFunc("/chat", h.chat).Methods(http.MethodPost)
	sub.HandleFunc("/summarize", h.summarize).Methods(http.MethodPost)
	sub.HandleFunc("/question", h.question).Methods(http.MethodPost)
	sub.HandleFunc("/highlight-important", h.highlight).Methods(http.MethodPost)
	sub.HandleFunc("/suggest-websites", h.suggestWebsites).Methods(http.MethodPost)
}

func (h HTTPHandler) chat(w http.ResponseWriter, r *http.Request) {
	input := assistantdto.ChatInput{}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.Chat(r.Context(), input)
	writeReply(w, out, err)
}

func (h HTTPHandler) summarize(w http.ResponseWriter, r *http.Request) {
	input := assistantdto.SummarizeInput{}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.Summarize(r.Context(), input)
	writeReply(w, out, err)
}

func (h HTTPHandler) question(w http.ResponseWriter, r *http.Request) {
	input := assistantdto.QuestionInput{}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.Ask(r.Context(), input)
	writeReply(w, out, err)
}

func writeReply(w http.ResponseWriter, out assistantdto.ReplyOutput, err error) {
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"text": out.Text, "suggested_websites": out.SuggestedWebsites})
}

func (h HTTPHandler) highlight(w http.ResponseWriter, r *http.Request) {
	input := assistantdto.HighlightInput{}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.Highlight(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"important_ids": out.ImportantIDs, "topic": out.Topic, "count": out.Count})
}

func (h HTTPHandler) suggestWebsites(w http.ResponseWriter, r *http.Request) {
	input := struct {
		Topic string `json:"topic"`
	}{}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	sites, err := h.usecase.SuggestWebsites(r.Context(), input.Topic)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"suggested_websites": sites, "topic": input.Topic})
}

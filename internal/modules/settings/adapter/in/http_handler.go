package in

import (
	"net/http"

	"github.com/gorilla/mux"

	settingsdto "lernova/internal/modules/settings/dto"
	settingsin "lernova/internal/modules/settings/port/in"
	"lernova/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase     settingsin.Usecase
	defaultUser string
}

func NewHTTPHandler(usecase settingsin.Usecase, defaultUser string) HTTPHandler {
	return HTTPHandler{usecase: usecase, defaultUser: defaultUser}
}

func (h HTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/settings", h.get).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", h.update).Methods(http.MethodPut)
}

func (h HTTPHandler) get(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Get(r.Context(), httpx.UserID(r, h.defaultUser))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"settings": out})
}

func (h HTTPHandler) update(w http.ResponseWriter, r *http.Request) {
	input := settingsdto.UpdateInput{}
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	input.UserID = httpx.UserID(r, h.defaultUser)
	out, err := h.usecase.Update(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteOK(w, http.StatusOK, httpx.Envelope{"message": "Settings updated", "settings": out})
}

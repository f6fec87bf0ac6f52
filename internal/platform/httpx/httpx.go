package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "lernova/internal/platform/errors"
)

const maxBodyBytes = 1 << 20

// Envelope is the JSON body every API response shares.
type Envelope map[string]any

// WriteOK merges fields into {"success": true}.
func WriteOK(w http.ResponseWriter, status int, fields Envelope) {
	body := Envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// WriteError maps sentinel errors to status codes.
func WriteError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), Envelope{"success": false, "error": err.Error()})
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrNoActiveSession):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads a bounded JSON body. Malformed input is ErrInvalidInput.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: request body is required", apperrors.ErrInvalidInput)
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}

// UserID reads the user_id query parameter, falling back to fallback.
func UserID(r *http.Request, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get("user_id")); v != "" {
		return v
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

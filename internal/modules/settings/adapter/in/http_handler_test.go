package in_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	settingsin "lernova/internal/modules/settings/adapter/in"
	"lernova/internal/modules/settings/dto"
)

type fakeUsecase struct {
	last dto.UpdateInput
}

func (f *fakeUsecase) Get(_ context.Context, userID string) (dto.SettingsOutput, error) {
	return dto.SettingsOutput{UserID: userID}, nil
}

func (f *fakeUsecase) Update(_ context.Context, input dto.UpdateInput) (dto.SettingsOutput, error) {
	f.last = input
	return dto.SettingsOutput{UserID: input.UserID, FocusModeStrict: input.FocusModeStrict != nil && *input.FocusModeStrict}, nil
}

func (f *fakeUsecase) StrictMode(context.Context, string) (bool, error) { return false, nil }

func TestSettingsRoutes(t *testing.T) {
	t.Parallel()
	uc := &fakeUsecase{}
	router := mux.NewRouter()
	settingsin.NewHTTPHandler(uc, "default_user").Register(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"user_id":"default_user"`) {
		t.Fatalf("unexpected get response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/settings?user_id=bob", strings.NewReader(`{"focus_mode_strict":true}`)))
	body := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("unexpected put response %d %v", rec.Code, body)
	}
	if uc.last.UserID != "bob" || uc.last.FocusModeStrict == nil || uc.last.FocusModeEnabled != nil {
		t.Fatalf("patch not forwarded as sent: %+v", uc.last)
	}
}

package bootstrap_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"lernova/internal/bootstrap"
	"lernova/internal/platform/config"
	"lernova/internal/platform/logging"
)

func newApp(t *testing.T) *bootstrap.App {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Store.Path = filepath.Join(dir, "lernova.db")
	cfg.Focus.ReportsDir = filepath.Join(dir, "reports")
	cfg.Oracle.Provider = config.OracleNone
	app, err := bootstrap.New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func call(t *testing.T, h http.Handler, method, target, body string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("%s %s: status %d body %s", method, target, rec.Code, rec.Body.String())
	}
	out := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", target, err)
	}
	return out
}

func TestFocusFlowOverHTTP(t *testing.T) {
	t.Parallel()
	h := newApp(t).Handler()

	if got := call(t, h, http.MethodGet, "/health", ""); got["status"] != "healthy" {
		t.Fatalf("unexpected health: %v", got)
	}
	started := call(t, h, http.MethodPost, "/api/focus/start", `{"topic":"Go generics","allowed_domains":["go.dev"]}`)
	if started["session_id"] == "" || started["strict_mode"] != false {
		t.Fatalf("unexpected start: %v", started)
	}
	checked := call(t, h, http.MethodPost, "/api/focus/check-url", `{"url":"https://go.dev/doc/tutorial/generics"}`)
	if checked["allowed"] != true || checked["reason"] != "domain is whitelisted" {
		t.Fatalf("unexpected check: %v", checked)
	}
	quick := call(t, h, http.MethodPost, "/api/focus/check-url", `{"url":"https://www.youtube.com/watch?v=x","use_quick_check":true}`)
	if quick["allowed"] != false {
		t.Fatalf("distraction should be blocked: %v", quick)
	}
	ended := call(t, h, http.MethodPost, "/api/focus/end", "")
	stats, _ := ended["stats"].(map[string]any)
	if ended["ended"] != true || stats["urls_checked"] != float64(2) || stats["urls_blocked"] != float64(1) {
		t.Fatalf("unexpected end: %v", ended)
	}
	again := call(t, h, http.MethodPost, "/api/focus/end", "")
	if again["ended"] != false {
		t.Fatalf("second end should report no session: %v", again)
	}
}

func TestCORSPreflightForConfiguredOrigin(t *testing.T) {
	t.Parallel()
	h := newApp(t).Handler()
	req := httptest.NewRequest(http.MethodOptions, "/api/focus/check-url", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected origin to be allowed, got %q", got)
	}
}

func TestAssistantRoutesAreMounted(t *testing.T) {
	t.Parallel()
	h := newApp(t).Handler()

	got := call(t, h, http.MethodPost, "/api/ai/suggest-websites", `{"topic":"python"}`)
	sites, _ := got["suggested_websites"].([]any)
	if len(sites) != 5 {
		t.Fatalf("unexpected suggestions: %v", got)
	}
	if first, _ := sites[0].(map[string]any); first["title"] != "MDN Web Docs" {
		t.Fatalf("programming topics should lead with MDN: %v", sites[0])
	}

	// With the oracle disabled the chat fails instead of inventing a reply.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ai/chat", strings.NewReader(`{"query":"hello"}`)))
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("unexpected chat response %d %s", rec.Code, rec.Body.String())
	}
}

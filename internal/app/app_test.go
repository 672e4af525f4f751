package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"humblespace/internal/config"
)

// newTestApp wires the full application without backing services. The DB
// and Redis clients are nil: routing tests never touch a handler that
// dereferences them.
func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{
		Env:     "development",
		Port:    8080,
		BaseURL: "http://localhost:8080",
		Admin: config.AdminConfig{
			Secret:   "0123456789abcdef0123456789abcdef",
			Password: "correct-horse",
		},
	}
	a := New(cfg, nil, nil)
	a.RegisterRoutes()
	return a
}

func (a *App) doRequest(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestWrongMethodOnAPIRouteIs405(t *testing.T) {
	a := newTestApp(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/login"},
		{http.MethodGet, "/api/auth/logout"},
		{http.MethodPost, "/api/auth/me"},
		{http.MethodPatch, "/api/books"},
		{http.MethodPost, "/api/stats"},
		{http.MethodPost, "/api/covers"},
	}
	for _, tc := range cases {
		rec := a.doRequest(tc.method, tc.path)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected 405, got %d (body: %s)",
				tc.method, tc.path, rec.Code, rec.Body.String())
		}
	}
}

func TestUnknownAPIPathIsJSON404(t *testing.T) {
	a := newTestApp(t)

	rec := a.doRequest(http.MethodGet, "/api/nonexistent")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("expected JSON error body, got Content-Type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Errorf("expected error field in body, got %s", rec.Body.String())
	}
}

func TestAuthRoutesReachHandlers(t *testing.T) {
	a := newTestApp(t)

	// Wrong password reaches the auth handler and comes back 401, proving
	// the static middleware does not intercept API traffic.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 from login handler, got %d", rec.Code)
	}
}

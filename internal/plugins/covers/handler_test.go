package covers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"humblespace/internal/apperror"
)

func newTestServer(t *testing.T, upstream *fakeOpenLibrary) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		_ = c.JSON(apperror.SafeCode(err), map[string]string{"error": apperror.SafeMessage(err)})
	}
	RegisterRoutes(e, NewHandler(newTestService(t, upstream, false)))
	return e
}

func TestGet_MissingTitle(t *testing.T) {
	e := newTestServer(t, &fakeOpenLibrary{body: `{}`})

	req := httptest.NewRequest(http.MethodGet, "/api/covers?author=someone", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGet_ReturnsCover(t *testing.T) {
	e := newTestServer(t, &fakeOpenLibrary{body: `{"docs":[{"cover_i":4242}]}`})

	req := httptest.NewRequest(http.MethodGet, "/api/covers?title=Piranesi&author=Susanna+Clarke", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/b/id/4242-M.jpg") || !strings.Contains(body, "Open Library") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestGet_UpstreamFailureStill200(t *testing.T) {
	e := newTestServer(t, &fakeOpenLibrary{status: http.StatusInternalServerError})

	req := httptest.NewRequest(http.MethodGet, "/api/covers?title=Whatever", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite upstream failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"none"`) {
		t.Errorf("expected source none, got %s", rec.Body.String())
	}
}

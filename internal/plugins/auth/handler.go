package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"humblespace/internal/apperror"
)

// Handler handles HTTP requests for authentication (login, logout, session
// query). Handlers are thin: they bind the request, call the service, and
// render the response. No business logic lives here.
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login validates the submitted password and issues the session cookie
// (POST /api/auth/login). Non-POST methods get 405 from the router.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	if err := h.service.VerifyPassword(req.Password); err != nil {
		return err
	}

	cookie, err := h.service.SessionCookie()
	if err != nil {
		// Password matched but the token secret is missing -- still an
		// operator error, not an authentication failure.
		return apperror.NewMisconfigured(err)
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Logout expires the session cookie (POST /api/auth/logout). Succeeds
// unconditionally -- logging out while logged out is not an error, the
// clearing cookie is simply sent again.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(h.service.ClearCookie())
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Me reports the current authentication status (GET /api/auth/me). A missing
// or stale cookie is not an error, it just reads as unauthenticated.
func (h *Handler) Me(c echo.Context) error {
	authenticated := h.service.IsAuthenticated(c.Request().Header.Get("Cookie"))
	return c.JSON(http.StatusOK, Status{Authenticated: authenticated})
}

package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"humblespace/internal/middleware"
)

// RegisterRoutes sets up all auth-related routes on the given Echo instance.
// Auth routes are public (no session required) -- the RequireAdmin middleware
// is exported separately for the book routes to use.
//
// Login is rate-limited to slow down brute-force attempts against the single
// admin password: 10 attempts per IP per minute.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/api/auth/login", h.Login, middleware.RateLimit(10, time.Minute))
	e.POST("/api/auth/logout", h.Logout)
	e.GET("/api/auth/me", h.Me)
}

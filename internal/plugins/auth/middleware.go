package auth

import (
	"humblespace/internal/apperror"

	"github.com/labstack/echo/v4"
)

// RequireAdmin returns middleware that rejects requests lacking a valid
// admin session cookie with 401. It must wrap every state-changing book
// route; reads stay public (the catalogue is a public library view, only
// curation is private).
//
// Verification happens on every request -- the client's own idea of being
// logged in is never trusted.
func RequireAdmin(service *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !service.IsAuthenticated(c.Request().Header.Get("Cookie")) {
				return apperror.NewUnauthorized("Authentication required")
			}
			return next(c)
		}
	}
}

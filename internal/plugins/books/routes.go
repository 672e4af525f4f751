package books

import (
	"github.com/labstack/echo/v4"

	"humblespace/internal/plugins/auth"
)

// RegisterRoutes sets up all book-related routes on the given Echo instance.
// Reads are public -- the catalogue is the whole point of the site. Every
// mutation runs through RequireAdmin; the client's own auth state is never
// consulted.
func RegisterRoutes(e *echo.Echo, h *Handler, authSvc *auth.Service) {
	e.GET("/api/books", h.List)
	e.GET("/api/quotes", h.Quotes)

	admin := auth.RequireAdmin(authSvc)
	e.POST("/api/books", h.Create, admin)
	e.PUT("/api/books", h.Update, admin)
	e.DELETE("/api/books", h.Delete, admin)
}

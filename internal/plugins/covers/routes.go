package covers

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the covers endpoint.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/covers", h.Get)
}

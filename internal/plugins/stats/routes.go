package stats

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the stats endpoint.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/stats", h.Get)
}

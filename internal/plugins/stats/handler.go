package stats

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves the statistics endpoint.
type Handler struct {
	service *Service
}

// NewHandler creates a new stats handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns library statistics (GET /api/stats). Public.
func (h *Handler) Get(c echo.Context) error {
	result, err := h.service.Compute(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

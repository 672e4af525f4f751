package covers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"humblespace/internal/apperror"
)

// Handler serves cover art lookups.
type Handler struct {
	service *Service
}

// NewHandler creates a new covers handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get resolves cover art (GET /api/covers?title=&author=&isbn=). Public.
// Always responds 200 once the title is present; upstream failures are
// reported in the payload's source field.
func (h *Handler) Get(c echo.Context) error {
	title := c.QueryParam("title")
	if title == "" {
		return apperror.NewBadRequest("Title is required")
	}

	result := h.service.Lookup(c.Request().Context(), title, c.QueryParam("author"), c.QueryParam("isbn"))
	return c.JSON(http.StatusOK, result)
}

package books

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"humblespace/internal/apperror"
)

// Handler handles HTTP requests for book operations. Handlers are thin:
// bind request, call service, render response. No business logic lives here.
type Handler struct {
	service BookService
}

// NewHandler creates a new book handler backed by the given service.
func NewHandler(service BookService) *Handler {
	return &Handler{service: service}
}

// List returns the catalogue (GET /api/books). Public. Optional query
// params: q (free-text search), genre, minRating, sort.
func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		Query: c.QueryParam("q"),
		Genre: c.QueryParam("genre"),
		Sort:  c.QueryParam("sort"),
	}
	if raw := c.QueryParam("minRating"); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil || min < 0 || min > 5 {
			return apperror.NewBadRequest("minRating must be an integer between 0 and 5")
		}
		filter.MinRating = min
	}

	books, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if books == nil {
		books = []Book{}
	}
	return c.JSON(http.StatusOK, books)
}

// Create adds a new book (POST /api/books). Admin only.
func (h *Handler) Create(c echo.Context) error {
	var req CreateBookRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	book, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Update modifies an existing book (PUT /api/books?id=). Admin only.
func (h *Handler) Update(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return apperror.NewBadRequest("id query parameter is required")
	}

	var req UpdateBookRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	book, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete removes a book (DELETE /api/books?id=). Admin only.
func (h *Handler) Delete(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return apperror.NewBadRequest("id query parameter is required")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Book deleted"})
}

// Quotes returns books with a favourite quote (GET /api/quotes). Public.
func (h *Handler) Quotes(c echo.Context) error {
	books, err := h.service.ListQuotes(c.Request().Context())
	if err != nil {
		return err
	}
	if books == nil {
		books = []Book{}
	}
	return c.JSON(http.StatusOK, books)
}

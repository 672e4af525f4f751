package books

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"humblespace/internal/apperror"
	"humblespace/internal/sanitize"
)

// dateLayout is the wire format for dateFinished values.
const dateLayout = "2006-01-02"

// maxTextField caps free-text fields (notes, quote) so a single record
// can't balloon the catalogue payload.
const maxTextField = 10000

// BookService defines the business logic contract for the book collection.
// Handlers call these methods -- they never touch the repository directly.
type BookService interface {
	Create(ctx context.Context, req CreateBookRequest) (*Book, error)
	Update(ctx context.Context, id string, req UpdateBookRequest) (*Book, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Book, error)
	ListQuotes(ctx context.Context) ([]Book, error)
}

// bookService implements BookService.
type bookService struct {
	repo BookRepository
}

// NewBookService creates a new book service.
func NewBookService(repo BookRepository) BookService {
	return &bookService{repo: repo}
}

// Create validates and persists a new book. Title and author are the only
// required fields; free-text fields are stripped of any markup before they
// are stored.
func (s *bookService) Create(ctx context.Context, req CreateBookRequest) (*Book, error) {
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)
	if title == "" || author == "" {
		return nil, apperror.NewBadRequest("Title and author are required")
	}

	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	if err := validatePages(req.Pages); err != nil {
		return nil, err
	}

	finished, err := parseDateFinished(req.DateFinished)
	if err != nil {
		return nil, err
	}

	notes, err := cleanText(req.Notes, "notes")
	if err != nil {
		return nil, err
	}
	quote, err := cleanText(req.FavouriteQuote, "favourite quote")
	if err != nil {
		return nil, err
	}

	book := &Book{
		ID:             uuid.NewString(),
		Title:          title,
		Author:         author,
		ISBN:           strings.TrimSpace(req.ISBN),
		Genre:          strings.TrimSpace(req.Genre),
		Rating:         req.Rating,
		Notes:          notes,
		Pages:          req.Pages,
		CoverImageURL:  strings.TrimSpace(req.CoverImageURL),
		DateFinished:   finished,
		FavouriteQuote: quote,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	// Re-read so created_at/updated_at reflect what the database stored.
	return s.repo.FindByID(ctx, book.ID)
}

// Update applies a partial update to an existing book.
func (s *bookService) Update(ctx context.Context, id string, req UpdateBookRequest) (*Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.NewBadRequest("Title and author are required")
		}
		book.Title = title
	}
	if req.Author != nil {
		author := strings.TrimSpace(*req.Author)
		if author == "" {
			return nil, apperror.NewBadRequest("Title and author are required")
		}
		book.Author = author
	}
	if req.ISBN != nil {
		book.ISBN = strings.TrimSpace(*req.ISBN)
	}
	if req.Genre != nil {
		book.Genre = strings.TrimSpace(*req.Genre)
	}
	if req.Rating != nil {
		if err := validateRating(*req.Rating); err != nil {
			return nil, err
		}
		book.Rating = *req.Rating
	}
	if req.Notes != nil {
		notes, err := cleanText(*req.Notes, "notes")
		if err != nil {
			return nil, err
		}
		book.Notes = notes
	}
	if req.Pages != nil {
		if err := validatePages(*req.Pages); err != nil {
			return nil, err
		}
		book.Pages = *req.Pages
	}
	if req.CoverImageURL != nil {
		book.CoverImageURL = strings.TrimSpace(*req.CoverImageURL)
	}
	if req.DateFinished != nil {
		finished, err := parseDateFinished(*req.DateFinished)
		if err != nil {
			return nil, err
		}
		book.DateFinished = finished
	}
	if req.FavouriteQuote != nil {
		quote, err := cleanText(*req.FavouriteQuote, "favourite quote")
		if err != nil {
			return nil, err
		}
		book.FavouriteQuote = quote
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, book.ID)
}

// Delete removes a book.
func (s *bookService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns the filtered, ordered catalogue.
func (s *bookService) List(ctx context.Context, filter ListFilter) ([]Book, error) {
	return s.repo.List(ctx, filter)
}

// ListQuotes returns books carrying a favourite quote.
func (s *bookService) ListQuotes(ctx context.Context) ([]Book, error) {
	return s.repo.ListWithQuotes(ctx)
}

// --- Validation helpers ---

// validateRating enforces the 0-5 star range.
func validateRating(rating int) error {
	if rating < 0 || rating > 5 {
		return apperror.NewBadRequest("Rating must be between 0 and 5")
	}
	return nil
}

// validatePages rejects negative page counts; zero means "unknown".
func validatePages(pages int) error {
	if pages < 0 {
		return apperror.NewBadRequest("Pages cannot be negative")
	}
	return nil
}

// parseDateFinished parses a "2006-01-02" date string. Empty clears the date.
func parseDateFinished(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, apperror.NewBadRequest("dateFinished must be a YYYY-MM-DD date")
	}
	return &t, nil
}

// cleanText strips markup from a free-text field and bounds its length.
func cleanText(raw, field string) (string, error) {
	cleaned := sanitize.Text(raw)
	if len(cleaned) > maxTextField {
		return "", apperror.NewBadRequest("The " + field + " field is too long")
	}
	return cleaned, nil
}

package books

import (
	"context"
	"errors"
	"testing"
	"time"

	"humblespace/internal/apperror"
)

// --- Mock Repository ---

// mockBookRepo implements BookRepository for testing.
type mockBookRepo struct {
	createFn         func(ctx context.Context, book *Book) error
	findByIDFn       func(ctx context.Context, id string) (*Book, error)
	updateFn         func(ctx context.Context, book *Book) error
	deleteFn         func(ctx context.Context, id string) error
	listFn           func(ctx context.Context, filter ListFilter) ([]Book, error)
	listWithQuotesFn func(ctx context.Context) ([]Book, error)
}

func (m *mockBookRepo) Create(ctx context.Context, book *Book) error {
	if m.createFn != nil {
		return m.createFn(ctx, book)
	}
	return nil
}

func (m *mockBookRepo) FindByID(ctx context.Context, id string) (*Book, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("book not found")
}

func (m *mockBookRepo) Update(ctx context.Context, book *Book) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, book)
	}
	return nil
}

func (m *mockBookRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockBookRepo) List(ctx context.Context, filter ListFilter) ([]Book, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockBookRepo) ListWithQuotes(ctx context.Context) ([]Book, error) {
	if m.listWithQuotesFn != nil {
		return m.listWithQuotesFn(ctx)
	}
	return nil, nil
}

// --- Test Helpers ---

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// echoRepo wires createFn/updateFn captures so FindByID returns whatever was
// last written, mimicking a round trip through the database.
func echoRepo() *mockBookRepo {
	var stored *Book
	return &mockBookRepo{
		createFn: func(ctx context.Context, book *Book) error {
			stored = book
			return nil
		},
		updateFn: func(ctx context.Context, book *Book) error {
			stored = book
			return nil
		},
		findByIDFn: func(ctx context.Context, id string) (*Book, error) {
			if stored == nil || stored.ID != id {
				return nil, apperror.NewNotFound("book not found")
			}
			return stored, nil
		},
	}
}

// sampleBook creates a book for update tests.
func sampleBook() *Book {
	finished := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	return &Book{
		ID:             "book-123",
		Title:          "The Dispossessed",
		Author:         "Ursula K. Le Guin",
		ISBN:           "9780060512750",
		Genre:          "Science Fiction",
		Rating:         5,
		Notes:          "An ambiguous utopia.",
		Pages:          387,
		DateFinished:   &finished,
		FavouriteQuote: "You cannot buy the revolution.",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// --- Create Tests ---

func TestCreate_Success(t *testing.T) {
	repo := echoRepo()
	svc := NewBookService(repo)

	book, err := svc.Create(context.Background(), CreateBookRequest{
		Title:        "  Piranesi ",
		Author:       "Susanna Clarke",
		Genre:        "Fantasy",
		Rating:       4,
		Pages:        245,
		DateFinished: "2026-01-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.ID == "" {
		t.Error("expected ID to be generated")
	}
	if book.Title != "Piranesi" {
		t.Errorf("expected trimmed title, got %q", book.Title)
	}
	if book.DateFinished == nil || book.DateFinished.Format("2006-01-02") != "2026-01-15" {
		t.Errorf("expected parsed dateFinished, got %v", book.DateFinished)
	}
}

func TestCreate_MissingTitle(t *testing.T) {
	svc := NewBookService(&mockBookRepo{})
	_, err := svc.Create(context.Background(), CreateBookRequest{
		Author: "Somebody",
	})
	assertAppError(t, err, 400)
}

func TestCreate_MissingAuthor(t *testing.T) {
	svc := NewBookService(&mockBookRepo{})
	_, err := svc.Create(context.Background(), CreateBookRequest{
		Title: "Something",
	})
	assertAppError(t, err, 400)
}

func TestCreate_WhitespaceOnlyTitle(t *testing.T) {
	svc := NewBookService(&mockBookRepo{})
	_, err := svc.Create(context.Background(), CreateBookRequest{
		Title:  "   ",
		Author: "Somebody",
	})
	assertAppError(t, err, 400)
}

func TestCreate_RatingOutOfRange(t *testing.T) {
	svc := NewBookService(&mockBookRepo{})
	for _, rating := range []int{-1, 6, 10} {
		_, err := svc.Create(context.Background(), CreateBookRequest{
			Title:  "Something",
			Author: "Somebody",
			Rating: rating,
		})
		assertAppError(t, err, 400)
	}
}

func TestCreate_NegativePages(t *testing.T) {
	svc := NewBookService(&mockBookRepo{})
	_, err := svc.Create(context.Background(), CreateBookRequest{
		Title:  "Something",
		Author: "Somebody",
		Pages:  -1,
	})
	assertAppError(t, err, 400)
}

func TestCreate_InvalidDateFinished(t *testing.T) {
	svc := NewBookService(&mockBookRepo{})
	_, err := svc.Create(context.Background(), CreateBookRequest{
		Title:        "Something",
		Author:       "Somebody",
		DateFinished: "15/01/2026",
	})
	assertAppError(t, err, 400)
}

func TestCreate_EmptyDateFinished(t *testing.T) {
	repo := echoRepo()
	svc := NewBookService(repo)

	book, err := svc.Create(context.Background(), CreateBookRequest{
		Title:  "Something",
		Author: "Somebody",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.DateFinished != nil {
		t.Errorf("expected nil dateFinished, got %v", book.DateFinished)
	}
}

func TestCreate_StripsMarkupFromNotes(t *testing.T) {
	repo := echoRepo()
	svc := NewBookService(repo)

	book, err := svc.Create(context.Background(), CreateBookRequest{
		Title:          "Something",
		Author:         "Somebody",
		Notes:          "<b>loved</b> it<script>alert(1)</script>",
		FavouriteQuote: `<img src=x onerror=alert(1)>words`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.Notes != "loved it" {
		t.Errorf("expected markup stripped from notes, got %q", book.Notes)
	}
	if book.FavouriteQuote != "words" {
		t.Errorf("expected markup stripped from quote, got %q", book.FavouriteQuote)
	}
}

func TestCreate_RepoError(t *testing.T) {
	repo := &mockBookRepo{
		createFn: func(ctx context.Context, book *Book) error {
			return errors.New("db error")
		},
	}
	svc := NewBookService(repo)
	_, err := svc.Create(context.Background(), CreateBookRequest{
		Title:  "Something",
		Author: "Somebody",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// --- Update Tests ---

func TestUpdate_PartialFields(t *testing.T) {
	existing := sampleBook()
	repo := &mockBookRepo{
		findByIDFn: func(ctx context.Context, id string) (*Book, error) {
			return existing, nil
		},
	}
	svc := NewBookService(repo)

	newRating := 3
	newNotes := "Re-read, holds up."
	book, err := svc.Update(context.Background(), "book-123", UpdateBookRequest{
		Rating: &newRating,
		Notes:  &newNotes,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.Rating != 3 {
		t.Errorf("expected rating 3, got %d", book.Rating)
	}
	if book.Notes != "Re-read, holds up." {
		t.Errorf("unexpected notes: %q", book.Notes)
	}
	// Untouched fields keep their values.
	if book.Title != "The Dispossessed" {
		t.Errorf("expected title unchanged, got %q", book.Title)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewBookService(&mockBookRepo{})
	newTitle := "Whatever"
	_, err := svc.Update(context.Background(), "nonexistent", UpdateBookRequest{
		Title: &newTitle,
	})
	assertAppError(t, err, 404)
}

func TestUpdate_EmptyTitleRejected(t *testing.T) {
	existing := sampleBook()
	repo := &mockBookRepo{
		findByIDFn: func(ctx context.Context, id string) (*Book, error) {
			return existing, nil
		},
	}
	svc := NewBookService(repo)

	empty := "  "
	_, err := svc.Update(context.Background(), "book-123", UpdateBookRequest{
		Title: &empty,
	})
	assertAppError(t, err, 400)
}

func TestUpdate_ClearDateFinished(t *testing.T) {
	existing := sampleBook()
	repo := &mockBookRepo{
		findByIDFn: func(ctx context.Context, id string) (*Book, error) {
			return existing, nil
		},
	}
	svc := NewBookService(repo)

	empty := ""
	book, err := svc.Update(context.Background(), "book-123", UpdateBookRequest{
		DateFinished: &empty,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.DateFinished != nil {
		t.Errorf("expected dateFinished cleared, got %v", book.DateFinished)
	}
}

func TestUpdate_IdenticalValuesSucceeds(t *testing.T) {
	// Resubmitting a book's current values is a valid no-op update, even
	// though the database reports zero changed rows for it. Existence is
	// decided by the initial read, not by the update's row count.
	existing := sampleBook()
	repo := &mockBookRepo{
		findByIDFn: func(ctx context.Context, id string) (*Book, error) {
			return existing, nil
		},
	}
	svc := NewBookService(repo)

	sameTitle := existing.Title
	sameRating := existing.Rating
	book, err := svc.Update(context.Background(), "book-123", UpdateBookRequest{
		Title:  &sameTitle,
		Rating: &sameRating,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.Title != existing.Title || book.Rating != existing.Rating {
		t.Errorf("expected unchanged book, got %+v", book)
	}
}

func TestUpdate_RatingOutOfRange(t *testing.T) {
	existing := sampleBook()
	repo := &mockBookRepo{
		findByIDFn: func(ctx context.Context, id string) (*Book, error) {
			return existing, nil
		},
	}
	svc := NewBookService(repo)

	bad := 9
	_, err := svc.Update(context.Background(), "book-123", UpdateBookRequest{
		Rating: &bad,
	})
	assertAppError(t, err, 400)
}

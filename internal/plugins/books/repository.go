package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"humblespace/internal/apperror"
)

// BookRepository defines the data access contract for book records.
type BookRepository interface {
	Create(ctx context.Context, book *Book) error
	FindByID(ctx context.Context, id string) (*Book, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id string) error

	// List returns books matching the filter, ordered per filter.Sort.
	List(ctx context.Context, filter ListFilter) ([]Book, error)

	// ListWithQuotes returns books that have a non-empty favourite quote,
	// newest first.
	ListWithQuotes(ctx context.Context) ([]Book, error)
}

// bookRepository is the MariaDB implementation of BookRepository.
type bookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new MariaDB-backed book repository.
func NewBookRepository(db *sql.DB) BookRepository {
	return &bookRepository{db: db}
}

// bookColumns is the SELECT column list for book queries.
const bookColumns = `id, title, author, isbn, genre, rating, notes, pages,
	cover_image_url, date_finished, favourite_quote, created_at, updated_at`

// Create inserts a new book into the database.
func (r *bookRepository) Create(ctx context.Context, book *Book) error {
	query := `INSERT INTO books
		(id, title, author, isbn, genre, rating, notes, pages,
		 cover_image_url, date_finished, favourite_quote)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		book.ID, book.Title, book.Author, book.ISBN, book.Genre,
		book.Rating, book.Notes, book.Pages,
		book.CoverImageURL, book.DateFinished, book.FavouriteQuote,
	)
	if err != nil {
		return fmt.Errorf("inserting book: %w", err)
	}
	return nil
}

// FindByID retrieves a book by its ID.
func (r *bookRepository) FindByID(ctx context.Context, id string) (*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`

	b := &Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Genre,
		&b.Rating, &b.Notes, &b.Pages,
		&b.CoverImageURL, &b.DateFinished, &b.FavouriteQuote,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("book not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning book: %w", err)
	}
	return b, nil
}

// Update saves changes to an existing book. Callers load the record first
// (FindByID), which is where a missing id surfaces as 404. RowsAffected is
// not consulted here: MySQL reports zero changed rows when an update
// resubmits identical values, so it cannot distinguish "missing" from
// "unchanged".
func (r *bookRepository) Update(ctx context.Context, book *Book) error {
	query := `UPDATE books
		SET title = ?, author = ?, isbn = ?, genre = ?, rating = ?,
		    notes = ?, pages = ?, cover_image_url = ?, date_finished = ?,
		    favourite_quote = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.ISBN, book.Genre, book.Rating,
		book.Notes, book.Pages, book.CoverImageURL, book.DateFinished,
		book.FavouriteQuote, book.ID,
	)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	return nil
}

// Delete removes a book from the database.
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("book not found")
	}
	return nil
}

// List returns books matching the filter. The WHERE clause is assembled from
// the filter fields; all user input travels through placeholders, and the
// ORDER BY column comes from a fixed whitelist.
func (r *bookRepository) List(ctx context.Context, filter ListFilter) ([]Book, error) {
	var (
		conds []string
		args  []any
	)

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		conds = append(conds, `(title LIKE ? OR author LIKE ? OR isbn LIKE ? OR notes LIKE ?)`)
		args = append(args, like, like, like, like)
	}
	if filter.Genre != "" {
		conds = append(conds, `genre = ?`)
		args = append(args, filter.Genre)
	}
	if filter.MinRating > 0 {
		conds = append(conds, `rating >= ?`)
		args = append(args, filter.MinRating)
	}

	query := `SELECT ` + bookColumns + ` FROM books`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY ` + orderClause(filter.Sort)

	return r.scanBooks(ctx, query, args...)
}

// ListWithQuotes returns books carrying a favourite quote, newest first.
func (r *bookRepository) ListWithQuotes(ctx context.Context) ([]Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books
		WHERE favourite_quote <> ''
		ORDER BY created_at DESC`
	return r.scanBooks(ctx, query)
}

// orderClause maps a sort name to its ORDER BY expression. Only values from
// this whitelist ever reach the SQL text.
func orderClause(sort string) string {
	switch sort {
	case SortOldest:
		return "created_at ASC"
	case SortTitle:
		return "title ASC"
	case SortAuthor:
		return "author ASC"
	case SortRating:
		return "rating DESC, created_at DESC"
	default: // SortNewest and anything unknown
		return "created_at DESC"
	}
}

// scanBooks runs a query and scans multiple book rows.
func (r *bookRepository) scanBooks(ctx context.Context, query string, args ...any) ([]Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b := Book{}
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Genre,
			&b.Rating, &b.Notes, &b.Pages,
			&b.CoverImageURL, &b.DateFinished, &b.FavouriteQuote,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning book row: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Package books implements the book collection for humblespace: the domain
// model, MariaDB persistence, validation, and HTTP handlers. Listing the
// catalogue is public; every mutation is gated behind the auth plugin's
// RequireAdmin middleware at route registration.
package books

import "time"

// Book represents a single entry in the library. Only Title and Author are
// mandatory; everything else is optional colour. JSON field names match what
// the library client binds to.
type Book struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	ISBN           string     `json:"isbn"`
	Genre          string     `json:"genre"`
	Rating         int        `json:"rating"`
	Notes          string     `json:"notes"`
	Pages          int        `json:"pages"`
	CoverImageURL  string     `json:"coverImageUrl"`
	DateFinished   *time.Time `json:"dateFinished,omitempty"`
	FavouriteQuote string     `json:"favouriteQuote"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// --- Request DTOs (bound from HTTP requests) ---

// CreateBookRequest holds the data submitted when adding a book.
// DateFinished is a "2006-01-02" date string; empty means not finished.
type CreateBookRequest struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	ISBN           string `json:"isbn"`
	Genre          string `json:"genre"`
	Rating         int    `json:"rating"`
	Notes          string `json:"notes"`
	Pages          int    `json:"pages"`
	CoverImageURL  string `json:"coverImageUrl"`
	DateFinished   string `json:"dateFinished"`
	FavouriteQuote string `json:"favouriteQuote"`
}

// UpdateBookRequest holds a partial update. Nil fields are left unchanged;
// a present-but-empty DateFinished clears the date.
type UpdateBookRequest struct {
	Title          *string `json:"title,omitempty"`
	Author         *string `json:"author,omitempty"`
	ISBN           *string `json:"isbn,omitempty"`
	Genre          *string `json:"genre,omitempty"`
	Rating         *int    `json:"rating,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Pages          *int    `json:"pages,omitempty"`
	CoverImageURL  *string `json:"coverImageUrl,omitempty"`
	DateFinished   *string `json:"dateFinished,omitempty"`
	FavouriteQuote *string `json:"favouriteQuote,omitempty"`
}

// --- Listing ---

// Sort orders accepted by the list endpoint. Newest is the default and
// matches the catalogue's front page ordering.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
	SortAuthor = "author"
	SortRating = "rating"
)

// ListFilter narrows and orders the catalogue listing. The zero value means
// "everything, newest first".
type ListFilter struct {
	// Query matches case-insensitively against title, author, ISBN, and notes.
	Query string

	// Genre filters to an exact genre when non-empty.
	Genre string

	// MinRating keeps only books rated at or above this value.
	MinRating int

	// Sort is one of the Sort* constants; unknown values fall back to newest.
	Sort string
}

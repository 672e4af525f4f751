package covers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultSearchBaseURL = "https://openlibrary.org"
	coversBaseURL        = "https://covers.openlibrary.org"
)

// errUpstreamStatus signals a non-2xx response from the search API. It is
// handled differently from transport failures: the lookup reports "none"
// rather than "error".
var errUpstreamStatus = errors.New("openlibrary: unexpected status")

// Client queries the Open Library search API for cover art.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an Open Library client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		baseURL: defaultSearchBaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Docs []searchDoc `json:"docs"`
}

type searchDoc struct {
	CoverID int64 `json:"cover_i"`
}

// SearchCoverID looks up the first search result carrying a cover for the
// given title and author. It returns found=false when no result has one.
func (c *Client) SearchCoverID(ctx context.Context, title, author string) (int64, bool, error) {
	query := strings.TrimSpace(title + " " + author)

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "5")
	params.Set("fields", "cover_i,title,author_name")
	searchURL := c.baseURL + "/search.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return 0, false, fmt.Errorf("building search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("searching open library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("%w: %d", errUpstreamStatus, resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, false, fmt.Errorf("decoding search response: %w", err)
	}

	for _, doc := range result.Docs {
		if doc.CoverID != 0 {
			return doc.CoverID, true, nil
		}
	}
	return 0, false, nil
}

// CoverURLByID builds the medium cover image URL for a cover id.
func CoverURLByID(id int64) string {
	return fmt.Sprintf("%s/b/id/%d-M.jpg", coversBaseURL, id)
}

// CoverURLByISBN builds the medium cover image URL for an ISBN.
func CoverURLByISBN(isbn string) string {
	return fmt.Sprintf("%s/b/isbn/%s-M.jpg", coversBaseURL, isbn)
}

package covers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result is the outcome of a cover lookup. Source is one of
// "Open Library", "Open Library ISBN", "none", or "error". Lookups never
// fail the request: upstream trouble degrades to an empty cover.
type Result struct {
	CoverURL string `json:"coverUrl"`
	Source   string `json:"source"`
}

const (
	sourceSearch = "Open Library"
	sourceISBN   = "Open Library ISBN"
	sourceNone   = "none"
	sourceError  = "error"
)

// Service resolves cover art for books, caching results in Redis so
// repeated lookups for the same book skip the upstream round trip.
type Service struct {
	client *Client
	rdb    *redis.Client
	ttl    time.Duration
}

// NewService creates a covers service. rdb may be nil, in which case
// caching is disabled and every lookup hits Open Library.
func NewService(client *Client, rdb *redis.Client, ttl time.Duration) *Service {
	return &Service{client: client, rdb: rdb, ttl: ttl}
}

// Lookup resolves cover art for a title/author pair, falling back to an
// ISBN-derived URL when the search finds no cover. Transient upstream
// failures are reported via Source, never as an error.
func (s *Service) Lookup(ctx context.Context, title, author, isbn string) Result {
	key := cacheKey(title, author, isbn)

	if cached, ok := s.fromCache(ctx, key); ok {
		return cached
	}

	result := s.resolve(ctx, title, author, isbn)
	if result.Source != sourceError {
		s.toCache(ctx, key, result)
	}
	return result
}

func (s *Service) resolve(ctx context.Context, title, author, isbn string) Result {
	coverID, found, err := s.client.SearchCoverID(ctx, title, author)
	if err != nil {
		if errors.Is(err, errUpstreamStatus) {
			return Result{Source: sourceNone}
		}
		slog.Warn("cover lookup failed", "title", title, "error", err)
		return Result{Source: sourceError}
	}
	if found {
		return Result{CoverURL: CoverURLByID(coverID), Source: sourceSearch}
	}
	if isbn != "" {
		return Result{CoverURL: CoverURLByISBN(isbn), Source: sourceISBN}
	}
	return Result{Source: sourceNone}
}

func (s *Service) fromCache(ctx context.Context, key string) (Result, bool) {
	if s.rdb == nil {
		return Result{}, false
	}
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cover cache read failed", "error", err)
		}
		return Result{}, false
	}
	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return Result{}, false
	}
	return result, true
}

func (s *Service) toCache(ctx context.Context, key string, result Result) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		slog.Warn("cover cache write failed", "error", err)
	}
}

func cacheKey(title, author, isbn string) string {
	return "covers:" + strings.ToLower(strings.Join([]string{title, author, isbn}, "|"))
}

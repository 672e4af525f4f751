package covers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// fakeOpenLibrary stands in for the search API. Each call increments
// hits so cache behavior can be asserted.
type fakeOpenLibrary struct {
	status int
	body   string
	hits   int
}

func (f *fakeOpenLibrary) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.hits++
		if f.status != 0 && f.status != http.StatusOK {
			w.WriteHeader(f.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.body))
	}
}

func newTestService(t *testing.T, upstream *fakeOpenLibrary, withCache bool) *Service {
	t.Helper()

	srv := httptest.NewServer(upstream.handler())
	t.Cleanup(srv.Close)

	client := NewClient(5 * time.Second)
	client.baseURL = srv.URL

	var rdb *redis.Client
	if withCache {
		mr := miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}
	return NewService(client, rdb, time.Hour)
}

func TestLookup_SearchHit(t *testing.T) {
	upstream := &fakeOpenLibrary{
		body: `{"docs":[{"title":"no cover"},{"cover_i":12345,"title":"hit"}]}`,
	}
	svc := newTestService(t, upstream, false)

	got := svc.Lookup(context.Background(), "Piranesi", "Susanna Clarke", "")
	if got.Source != "Open Library" {
		t.Errorf("expected source Open Library, got %q", got.Source)
	}
	if got.CoverURL != "https://covers.openlibrary.org/b/id/12345-M.jpg" {
		t.Errorf("unexpected cover URL %q", got.CoverURL)
	}
}

func TestLookup_ISBNFallback(t *testing.T) {
	upstream := &fakeOpenLibrary{body: `{"docs":[{"title":"no cover"}]}`}
	svc := newTestService(t, upstream, false)

	got := svc.Lookup(context.Background(), "Obscure Book", "", "9780060512750")
	if got.Source != "Open Library ISBN" {
		t.Errorf("expected source Open Library ISBN, got %q", got.Source)
	}
	if got.CoverURL != "https://covers.openlibrary.org/b/isbn/9780060512750-M.jpg" {
		t.Errorf("unexpected cover URL %q", got.CoverURL)
	}
}

func TestLookup_NoCoverNoISBN(t *testing.T) {
	upstream := &fakeOpenLibrary{body: `{"docs":[]}`}
	svc := newTestService(t, upstream, false)

	got := svc.Lookup(context.Background(), "Obscure Book", "", "")
	if got.Source != "none" || got.CoverURL != "" {
		t.Errorf("expected empty none result, got %+v", got)
	}
}

func TestLookup_UpstreamStatusIsNone(t *testing.T) {
	// A non-200 from the search API degrades to "none", and the ISBN
	// fallback is not attempted.
	upstream := &fakeOpenLibrary{status: http.StatusServiceUnavailable}
	svc := newTestService(t, upstream, false)

	got := svc.Lookup(context.Background(), "Obscure Book", "", "9780060512750")
	if got.Source != "none" || got.CoverURL != "" {
		t.Errorf("expected empty none result, got %+v", got)
	}
}

func TestLookup_TransportErrorIsError(t *testing.T) {
	upstream := &fakeOpenLibrary{body: `{}`}
	svc := newTestService(t, upstream, false)
	// Point the client at a closed server to force a transport failure.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	svc.client.baseURL = srv.URL

	got := svc.Lookup(context.Background(), "Obscure Book", "", "")
	if got.Source != "error" || got.CoverURL != "" {
		t.Errorf("expected empty error result, got %+v", got)
	}
}

func TestLookup_CachesResult(t *testing.T) {
	upstream := &fakeOpenLibrary{body: `{"docs":[{"cover_i":777}]}`}
	svc := newTestService(t, upstream, true)

	first := svc.Lookup(context.Background(), "Piranesi", "Susanna Clarke", "")
	second := svc.Lookup(context.Background(), "Piranesi", "Susanna Clarke", "")

	if first != second {
		t.Errorf("expected identical results, got %+v then %+v", first, second)
	}
	if upstream.hits != 1 {
		t.Errorf("expected one upstream call, got %d", upstream.hits)
	}
}

func TestLookup_ErrorResultNotCached(t *testing.T) {
	upstream := &fakeOpenLibrary{body: `{"docs":[{"cover_i":777}]}`}
	svc := newTestService(t, upstream, true)

	// First lookup fails at transport level and must not be cached.
	goodBase := svc.client.baseURL
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	svc.client.baseURL = srv.URL

	got := svc.Lookup(context.Background(), "Piranesi", "", "")
	if got.Source != "error" {
		t.Fatalf("expected error result, got %+v", got)
	}

	// Once upstream recovers the lookup succeeds.
	svc.client.baseURL = goodBase
	got = svc.Lookup(context.Background(), "Piranesi", "", "")
	if got.Source != "Open Library" {
		t.Errorf("expected recovery to Open Library, got %+v", got)
	}
}

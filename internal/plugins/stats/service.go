package stats

import (
	"context"
	"math"
	"sort"
	"time"

	"humblespace/internal/plugins/books"
)

const monthKey = "2006-01"

// BookSource provides the books the statistics are computed from.
// books.BookRepository satisfies it.
type BookSource interface {
	List(ctx context.Context, filter books.ListFilter) ([]books.Book, error)
}

// Service computes library statistics on demand. The catalogue is small
// enough that recomputing from a full scan per request is fine.
type Service struct {
	source BookSource
	now    func() time.Time
}

// NewService creates a stats service reading from the given book source.
func NewService(source BookSource) *Service {
	return &Service{source: source, now: time.Now}
}

// Compute builds the full stats payload from the current catalogue.
func (s *Service) Compute(ctx context.Context) (*Stats, error) {
	all, err := s.source.List(ctx, books.ListFilter{})
	if err != nil {
		return nil, err
	}

	out := &Stats{
		TotalBooks: len(all),
		Monthly:    []MonthCount{},
		Genres:     []GenreCount{},
	}

	ratedCount := 0
	ratingSum := 0
	for _, b := range all {
		out.TotalPages += b.Pages
		if b.Rating > 0 {
			ratedCount++
			ratingSum += b.Rating
		}
	}
	if len(all) > 0 {
		out.AvgPagesPerBook = int(math.Round(float64(out.TotalPages) / float64(len(all))))
	}
	if ratedCount > 0 {
		out.AvgRating = math.Round(float64(ratingSum)/float64(ratedCount)*10) / 10
	}

	out.Monthly = monthlySeries(all)
	out.Streaks = streaks(all, s.now())
	out.Genres = genreBreakdown(all)
	return out, nil
}

// monthlySeries buckets books by the month they were added. When the
// series spans more than one month, months with no additions between the
// first and last are included with a zero count.
func monthlySeries(all []books.Book) []MonthCount {
	counts := map[string]int{}
	for _, b := range all {
		if b.CreatedAt.IsZero() {
			continue
		}
		counts[b.CreatedAt.Format(monthKey)]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) <= 1 {
		series := make([]MonthCount, 0, len(keys))
		for _, k := range keys {
			series = append(series, MonthCount{Month: k, Count: counts[k]})
		}
		return series
	}

	start, _ := time.Parse(monthKey, keys[0])
	end, _ := time.Parse(monthKey, keys[len(keys)-1])

	var series []MonthCount
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		key := cur.Format(monthKey)
		series = append(series, MonthCount{Month: key, Count: counts[key]})
	}
	return series
}

// streaks finds the longest run of consecutive active months and the
// length of the trailing run. The trailing run only counts as the
// current streak while the latest active month is this month or last
// month.
func streaks(all []books.Book, now time.Time) Streaks {
	active := map[string]bool{}
	for _, b := range all {
		if b.CreatedAt.IsZero() {
			continue
		}
		active[b.CreatedAt.Format(monthKey)] = true
	}

	keys := make([]string, 0, len(active))
	for k := range active {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return Streaks{}
	}

	longest, current := 1, 1
	for i := 1; i < len(keys); i++ {
		prev, _ := time.Parse(monthKey, keys[i-1])
		if prev.AddDate(0, 1, 0).Format(monthKey) == keys[i] {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}

	thisMonth := now.Format(monthKey)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := firstOfMonth.AddDate(0, -1, 0).Format(monthKey)
	latest := keys[len(keys)-1]
	if latest != thisMonth && latest != lastMonth {
		current = 0
	}
	return Streaks{Current: current, Longest: longest}
}

// genreBreakdown returns the top six genres by count, largest first.
// Ties break alphabetically so the output is stable.
func genreBreakdown(all []books.Book) []GenreCount {
	counts := map[string]int{}
	for _, b := range all {
		genre := b.Genre
		if genre == "" {
			genre = "Uncategorized"
		}
		counts[genre]++
	}

	breakdown := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		breakdown = append(breakdown, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Genre < breakdown[j].Genre
	})

	if len(breakdown) > 6 {
		breakdown = breakdown[:6]
	}
	return breakdown
}

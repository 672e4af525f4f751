package stats

// Stats is the aggregate view of the library returned by GET /api/stats.
type Stats struct {
	TotalBooks      int          `json:"totalBooks"`
	TotalPages      int          `json:"totalPages"`
	AvgPagesPerBook int          `json:"avgPagesPerBook"`
	AvgRating       float64      `json:"avgRating"`
	Monthly         []MonthCount `json:"monthly"`
	Streaks         Streaks      `json:"streaks"`
	Genres          []GenreCount `json:"genres"`
}

// MonthCount is the number of books added in one month. Month is keyed
// as YYYY-MM; gaps between the first and last active month are filled
// with zero counts so charts render a continuous series.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Streaks tracks runs of consecutive months with at least one book added.
// Current drops to zero when the latest active month is older than last
// month.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// GenreCount is one slice of the genre breakdown. Books without a genre
// are grouped under "Uncategorized".
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

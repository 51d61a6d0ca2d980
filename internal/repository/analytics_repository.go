package repository

import (
	"context"
	"database/sql"
	"math"
	"time"
)

// AnalyticsRepo derives the back-office dashboard from the stored records.
// Everything is recomputed from the base tables on every call; there is no
// materialized state.
type AnalyticsRepo struct {
	db *sql.DB
}

// NewAnalyticsRepo constructs an AnalyticsRepo with the given DB handle.
func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// Overview carries the headline dashboard counters.
type Overview struct {
	TotalMovies       int64   `json:"totalMovies"`
	PublishedMovies   int64   `json:"publishedMovies"`
	DraftMovies       int64   `json:"draftMovies"`
	TotalCategories   int64   `json:"totalCategories"`
	TotalFeedback     int64   `json:"totalFeedback"`
	PendingFeedback   int64   `json:"pendingFeedback"`
	TotalViews        int64   `json:"totalViews"`
	MoviesLastMonth   int64   `json:"moviesLastMonth"`
	FeedbackLastMonth int64   `json:"feedbackLastMonth"`
	MoviesGrowth      float64 `json:"moviesGrowth"`
	FeedbackGrowth    float64 `json:"feedbackGrowth"`
}

// MovieCard is the reduced movie shape used in dashboard lists.
type MovieCard struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Poster       string    `json:"poster"`
	Views        uint64    `json:"views"`
	Status       string    `json:"status"`
	CategoryName string    `json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FeedbackCard is the reduced feedback shape used in dashboard lists.
type FeedbackCard struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Status     string    `json:"status"`
	MovieTitle string    `json:"movieTitle"`
	MovieSlug  string    `json:"movieSlug"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LabelCount is one bucket of a grouped count.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// MonthCount is one calendar-month bucket of the creation histogram.
type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// CategoryRating is the average approved rating of one category's movies.
type CategoryRating struct {
	Category  string  `json:"category"`
	AvgRating float64 `json:"avgRating"`
	Count     int64   `json:"count"`
}

// Dashboard is the full snapshot returned by the analytics endpoint.
type Dashboard struct {
	Overview        Overview         `json:"overview"`
	MostViewed      []MovieCard      `json:"mostViewedMovies"`
	Recent          []MovieCard      `json:"recentMovies"`
	Trending        []MovieCard      `json:"trendingMovies"`
	ByCategory      []LabelCount     `json:"moviesByCategory"`
	ByGenre         []LabelCount     `json:"moviesByGenre"`
	ByQuality       []LabelCount     `json:"moviesByQuality"`
	ByType          []LabelCount     `json:"moviesByType"`
	RecentFeedback  []FeedbackCard   `json:"recentFeedback"`
	PerMonth        []MonthCount     `json:"moviesPerMonth"`
	RatingsByCat    []CategoryRating `json:"avgRatingByCategory"`
}

// Growth is the month-over-month growth percentage, rounded to one decimal.
// A zero previous period with any current activity reads as 100% growth.
func Growth(current, previous int64) float64 {
	if previous <= 0 {
		return 100
	}
	g := float64(current-previous) / float64(previous) * 100
	return math.Round(g*10) / 10
}

// Dashboard computes the snapshot. Every call runs the full set of
// aggregations against the live tables.
func (r *AnalyticsRepo) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}

	counts := []struct {
		dst *int64
		q   string
	}{
		{&d.Overview.TotalMovies, `SELECT COUNT(*) FROM movies`},
		{&d.Overview.PublishedMovies, `SELECT COUNT(*) FROM movies WHERE status = 'published'`},
		{&d.Overview.DraftMovies, `SELECT COUNT(*) FROM movies WHERE status = 'draft'`},
		{&d.Overview.TotalCategories, `SELECT COUNT(*) FROM categories`},
		{&d.Overview.TotalFeedback, `SELECT COUNT(*) FROM feedback`},
		{&d.Overview.PendingFeedback, `SELECT COUNT(*) FROM feedback WHERE status = 'pending'`},
		{&d.Overview.TotalViews, `SELECT COALESCE(SUM(views), 0) FROM movies`},
		{&d.Overview.MoviesLastMonth, `SELECT COUNT(*) FROM movies WHERE created_at >= NOW() - INTERVAL 30 DAY`},
		{&d.Overview.FeedbackLastMonth, `SELECT COUNT(*) FROM feedback WHERE created_at >= NOW() - INTERVAL 30 DAY`},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.q).Scan(c.dst); err != nil {
			return nil, err
		}
	}

	var moviesPrev, feedbackPrev int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies WHERE created_at >= NOW() - INTERVAL 60 DAY AND created_at < NOW() - INTERVAL 30 DAY`).
		Scan(&moviesPrev); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback WHERE created_at >= NOW() - INTERVAL 60 DAY AND created_at < NOW() - INTERVAL 30 DAY`).
		Scan(&feedbackPrev); err != nil {
		return nil, err
	}
	d.Overview.MoviesGrowth = Growth(d.Overview.MoviesLastMonth, moviesPrev)
	d.Overview.FeedbackGrowth = Growth(d.Overview.FeedbackLastMonth, feedbackPrev)

	var err error
	if d.MostViewed, err = r.movieCards(ctx, `SELECT m.id, m.title, m.slug, m.poster, m.views, m.status, COALESCE(c.name, ''), m.created_at
		FROM movies m LEFT JOIN categories c ON c.id = m.category_id
		WHERE m.status = 'published' ORDER BY m.views DESC LIMIT 5`); err != nil {
		return nil, err
	}
	if d.Recent, err = r.movieCards(ctx, `SELECT m.id, m.title, m.slug, m.poster, m.views, m.status, COALESCE(c.name, ''), m.created_at
		FROM movies m LEFT JOIN categories c ON c.id = m.category_id
		ORDER BY m.created_at DESC LIMIT 5`); err != nil {
		return nil, err
	}
	// Trending: published movies touched in the last 7 days, by views.
	if d.Trending, err = r.movieCards(ctx, `SELECT m.id, m.title, m.slug, m.poster, m.views, m.status, COALESCE(c.name, ''), m.created_at
		FROM movies m LEFT JOIN categories c ON c.id = m.category_id
		WHERE m.status = 'published' AND m.updated_at >= NOW() - INTERVAL 7 DAY
		ORDER BY m.views DESC LIMIT 10`); err != nil {
		return nil, err
	}

	if d.ByCategory, err = r.labelCounts(ctx, `SELECT COALESCE(c.name, 'Unknown'), COUNT(*)
		FROM movies m LEFT JOIN categories c ON c.id = m.category_id
		WHERE m.status = 'published' GROUP BY c.name ORDER BY COUNT(*) DESC LIMIT 10`); err != nil {
		return nil, err
	}
	if d.ByGenre, err = r.labelCounts(ctx, `SELECT g.genre, COUNT(*)
		FROM movie_genres g JOIN movies m ON m.id = g.movie_id
		WHERE m.status = 'published' GROUP BY g.genre ORDER BY COUNT(*) DESC LIMIT 10`); err != nil {
		return nil, err
	}
	if d.ByQuality, err = r.labelCounts(ctx, `SELECT quality, COUNT(*)
		FROM movies WHERE status = 'published' GROUP BY quality ORDER BY COUNT(*) DESC`); err != nil {
		return nil, err
	}
	if d.ByType, err = r.labelCounts(ctx, `SELECT type, COUNT(*)
		FROM movies WHERE status = 'published' GROUP BY type`); err != nil {
		return nil, err
	}

	if d.RecentFeedback, err = r.feedbackCards(ctx); err != nil {
		return nil, err
	}
	if d.PerMonth, err = r.perMonth(ctx); err != nil {
		return nil, err
	}
	if d.RatingsByCat, err = r.ratingsByCategory(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// MovieStats are the per-movie analytics.
type MovieStats struct {
	Views            uint64  `json:"views"`
	TotalFeedback    int64   `json:"totalFeedback"`
	ApprovedFeedback int64   `json:"approvedFeedback"`
	AverageRating    float64 `json:"averageRating"`
}

// MovieStats aggregates feedback statistics for one movie.
func (r *AnalyticsRepo) MovieStats(ctx context.Context, movieID uint64) (*MovieStats, error) {
	s := &MovieStats{}
	if err := r.db.QueryRowContext(ctx,
		`SELECT views FROM movies WHERE id = ?`, movieID).Scan(&s.Views); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback WHERE movie_id = ?`, movieID).Scan(&s.TotalFeedback); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM feedback WHERE movie_id = ? AND status = 'approved'`,
		movieID).Scan(&s.ApprovedFeedback, &s.AverageRating); err != nil {
		return nil, err
	}
	s.AverageRating = math.Round(s.AverageRating*10) / 10
	return s, nil
}

func (r *AnalyticsRepo) movieCards(ctx context.Context, q string) ([]MovieCard, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MovieCard{}
	for rows.Next() {
		var c MovieCard
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Poster, &c.Views,
			&c.Status, &c.CategoryName, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) labelCounts(ctx context.Context, q string) ([]LabelCount, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LabelCount{}
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) feedbackCards(ctx context.Context) ([]FeedbackCard, error) {
	const q = `SELECT f.id, f.name, f.rating, f.comment, f.status,
			COALESCE(m.title, ''), COALESCE(m.slug, ''), f.created_at
		FROM feedback f LEFT JOIN movies m ON m.id = f.movie_id
		ORDER BY f.created_at DESC LIMIT 5`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []FeedbackCard{}
	for rows.Next() {
		var c FeedbackCard
		if err := rows.Scan(&c.ID, &c.Name, &c.Rating, &c.Comment, &c.Status,
			&c.MovieTitle, &c.MovieSlug, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// perMonth buckets movie creations by calendar month over the trailing six
// months.
func (r *AnalyticsRepo) perMonth(ctx context.Context) ([]MonthCount, error) {
	const q = `SELECT YEAR(created_at), MONTH(created_at), COUNT(*)
		FROM movies WHERE created_at >= NOW() - INTERVAL 6 MONTH
		GROUP BY YEAR(created_at), MONTH(created_at)
		ORDER BY YEAR(created_at) ASC, MONTH(created_at) ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MonthCount{}
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Year, &mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) ratingsByCategory(ctx context.Context) ([]CategoryRating, error) {
	const q = `SELECT COALESCE(c.name, 'Unknown'), ROUND(AVG(f.rating), 1), COUNT(*)
		FROM feedback f
		JOIN movies m ON m.id = f.movie_id
		LEFT JOIN categories c ON c.id = m.category_id
		WHERE f.status = 'approved'
		GROUP BY c.name ORDER BY AVG(f.rating) DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CategoryRating{}
	for rows.Next() {
		var cr CategoryRating
		if err := rows.Scan(&cr.Category, &cr.AvgRating, &cr.Count); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

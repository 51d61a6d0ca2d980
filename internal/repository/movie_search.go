package repository

import (
	"context"
	"strings"

	"github.com/moviesmod/movie-catalog/internal/model"
)

// MovieListQuery defines filters, sort and pagination for movie listings.
// All filters are optional and conjunctive. Status empty means unrestricted
// (admin listings); public callers pass "published".
type MovieListQuery struct {
	Status       string
	CategorySlug string
	Genre        string
	Year         int
	Quality      string
	Featured     bool
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// sortClause maps the public sort keys onto ORDER BY clauses. Unrecognized
// keys silently fall back to newest-first.
func sortClause(key string) string {
	switch key {
	case "views":
		return "m.views DESC"
	case "rating":
		return "m.rating DESC"
	case "year":
		return "m.release_year DESC"
	case "title":
		return "m.title ASC"
	default:
		return "m.created_at DESC"
	}
}

// List runs the filtered, sorted, paginated movie query and returns the
// page items plus the total match count. An out-of-range page yields an
// empty slice, not an error.
func (r *MovieRepo) List(ctx context.Context, q MovieListQuery) ([]*model.Movie, int64, error) {
	where := []string{}
	args := []any{}

	if q.Status != "" {
		where = append(where, "m.status = ?")
		args = append(args, q.Status)
	}
	if q.CategorySlug != "" {
		where = append(where, "c.slug = ?")
		args = append(args, q.CategorySlug)
	}
	if q.Genre != "" {
		where = append(where, "EXISTS (SELECT 1 FROM movie_genres g WHERE g.movie_id = m.id AND g.genre = ?)")
		args = append(args, q.Genre)
	}
	if q.Year != 0 {
		where = append(where, "m.release_year = ?")
		args = append(args, q.Year)
	}
	if q.Quality != "" {
		where = append(where, "m.quality = ?")
		args = append(args, q.Quality)
	}
	if q.Featured {
		where = append(where, "m.featured = 1")
	}
	if q.Search != "" {
		// The store's native text index over title/description/tags.
		where = append(where, "MATCH(m.title, m.description, m.search_tags) AGAINST (? IN NATURAL LANGUAGE MODE)")
		args = append(args, q.Search)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*)` + movieFrom + `WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT ` + movieCols + movieFrom + `WHERE ` + cond +
		` ORDER BY ` + sortClause(q.Sort) + ` LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := collectMovies(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachGenres(ctx, out); err != nil {
		return nil, 0, err
	}
	if out == nil {
		out = []*model.Movie{}
	}
	return out, total, nil
}

// Trending returns published movies updated within the last 7 days, ranked
// by views descending.
func (r *MovieRepo) Trending(ctx context.Context, limit int) ([]*model.Movie, error) {
	q := `SELECT ` + movieCols + movieFrom + `
		WHERE m.status = ? AND m.updated_at >= NOW() - INTERVAL 7 DAY
		ORDER BY m.views DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, model.StatusPublished, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := collectMovies(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachGenres(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

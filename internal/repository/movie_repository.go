package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/moviesmod/movie-catalog/internal/model"
)

// MovieRepo manages persistence for movies. Slice-valued fields are stored
// as JSON text columns; genres are mirrored into the movie_genres table so
// filtering and grouping by genre stays plain SQL. The search_tags column is
// a comma-joined copy of tags feeding the FULLTEXT index.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need transactions
// spanning repositories.
func (r *MovieRepo) DB() *sql.DB { return r.db }

// movieCols is the canonical select list; every movie query joins the
// category for its display name and slug.
const movieCols = `m.id, m.title, m.slug, m.description, m.poster, m.poster_url, m.thumbnail,
	m.trailer_url, m.release_year, m.duration, m.type, m.total_seasons, m.total_episodes,
	m.rating, m.imdb_rating, m.category_id, COALESCE(c.name, ''), COALESCE(c.slug, ''),
	m.` + "`cast`" + `, m.director, m.languages, m.quality, m.download_links, m.streaming_platforms,
	m.screenshots, m.views, m.featured, m.status, m.tags, m.meta_title, m.meta_description,
	m.meta_keywords, m.created_at, m.updated_at`

const movieFrom = ` FROM movies m LEFT JOIN categories c ON c.id = m.category_id `

func scanMovie(scan func(dest ...any) error) (*model.Movie, error) {
	var (
		m                               model.Movie
		cast, langs, links, platforms   []byte
		screenshots, tags, metaKeywords []byte
	)
	err := scan(
		&m.ID, &m.Title, &m.Slug, &m.Description, &m.Poster, &m.PosterURL, &m.Thumbnail,
		&m.TrailerURL, &m.ReleaseYear, &m.Duration, &m.Type, &m.TotalSeasons, &m.TotalEpisodes,
		&m.Rating, &m.IMDBRating, &m.CategoryID, &m.CategoryName, &m.CategorySlug,
		&cast, &m.Director, &langs, &m.Quality, &links, &platforms,
		&screenshots, &m.Views, &m.Featured, &m.Status, &tags, &m.MetaTitle, &m.MetaDesc,
		&metaKeywords, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Cast = decodeStrings(cast)
	m.Languages = decodeStrings(langs)
	m.Platforms = decodeStrings(platforms)
	m.Screenshots = decodeStrings(screenshots)
	m.Tags = decodeStrings(tags)
	m.MetaKeywords = decodeStrings(metaKeywords)
	m.DownloadLinks = decodeLinks(links)
	m.Genres = []string{}
	return &m, nil
}

func decodeStrings(b []byte) []string {
	out := []string{}
	if len(b) > 0 {
		_ = json.Unmarshal(b, &out)
	}
	return out
}

func decodeLinks(b []byte) []model.DownloadLink {
	out := []model.DownloadLink{}
	if len(b) > 0 {
		_ = json.Unmarshal(b, &out)
	}
	return out
}

func encodeJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// Create inserts a movie and its genre rows in one transaction, then
// re-selects the row to populate DB-default fields (views, timestamps).
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO movies
		(title, slug, description, poster, poster_url, thumbnail, trailer_url, release_year,
		 duration, type, total_seasons, total_episodes, rating, imdb_rating, category_id,
		 ` + "`cast`" + `, director, languages, quality, download_links, streaming_platforms, screenshots,
		 featured, status, tags, search_tags, meta_title, meta_description, meta_keywords)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, q,
		m.Title, m.Slug, m.Description, m.Poster, m.PosterURL, m.Thumbnail, m.TrailerURL,
		m.ReleaseYear, m.Duration, m.Type, m.TotalSeasons, m.TotalEpisodes, m.Rating,
		m.IMDBRating, m.CategoryID, encodeJSON(m.Cast), m.Director, encodeJSON(m.Languages),
		m.Quality, encodeJSON(m.DownloadLinks), encodeJSON(m.Platforms), encodeJSON(m.Screenshots),
		m.Featured, m.Status, encodeJSON(m.Tags), strings.Join(m.Tags, ","),
		m.MetaTitle, m.MetaDesc, encodeJSON(m.MetaKeywords))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	if err := replaceGenresTx(ctx, tx, m.ID, m.Genres); err != nil {
		return err
	}
	const sel = `SELECT views, created_at, updated_at FROM movies WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, m.ID).Scan(&m.Views, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites every column from the merged record and replaces the genre
// rows. The caller (upsert service) guarantees the record was merged onto
// the stored state first, so a full-column write preserves partial-update
// semantics.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `UPDATE movies SET
		title=?, slug=?, description=?, poster=?, poster_url=?, thumbnail=?, trailer_url=?,
		release_year=?, duration=?, type=?, total_seasons=?, total_episodes=?, rating=?,
		imdb_rating=?, category_id=?, ` + "`cast`" + `=?, director=?, languages=?, quality=?,
		download_links=?, streaming_platforms=?, screenshots=?, featured=?, status=?,
		tags=?, search_tags=?, meta_title=?, meta_description=?, meta_keywords=?
		WHERE id=?`
	if _, err := tx.ExecContext(ctx, q,
		m.Title, m.Slug, m.Description, m.Poster, m.PosterURL, m.Thumbnail, m.TrailerURL,
		m.ReleaseYear, m.Duration, m.Type, m.TotalSeasons, m.TotalEpisodes, m.Rating,
		m.IMDBRating, m.CategoryID, encodeJSON(m.Cast), m.Director, encodeJSON(m.Languages),
		m.Quality, encodeJSON(m.DownloadLinks), encodeJSON(m.Platforms), encodeJSON(m.Screenshots),
		m.Featured, m.Status, encodeJSON(m.Tags), strings.Join(m.Tags, ","),
		m.MetaTitle, m.MetaDesc, encodeJSON(m.MetaKeywords), m.ID); err != nil {
		return err
	}
	if err := replaceGenresTx(ctx, tx, m.ID, m.Genres); err != nil {
		return err
	}
	const sel = `SELECT updated_at FROM movies WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, m.ID).Scan(&m.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceGenresTx(ctx context.Context, tx *sql.Tx, movieID uint64, genres []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = ?`, movieID); err != nil {
		return err
	}
	for _, g := range genres {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO movie_genres (movie_id, genre) VALUES (?, ?)`, movieID, g); err != nil {
			return err
		}
	}
	return nil
}

// FindByID returns the movie with its genres, or (nil, nil) when absent.
func (r *MovieRepo) FindByID(ctx context.Context, id uint64) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movieCols+movieFrom+`WHERE m.id = ?`, id)
	m, err := scanMovie(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachGenres(ctx, []*model.Movie{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// GetBySlug returns a movie by slug. When publishedOnly is set, drafts and
// archived movies behave as missing. Returns ErrMovieNotFound when absent.
func (r *MovieRepo) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Movie, error) {
	q := `SELECT ` + movieCols + movieFrom + `WHERE m.slug = ?`
	args := []any{slug}
	if publishedOnly {
		q += ` AND m.status = ?`
		args = append(args, model.StatusPublished)
	}
	row := r.db.QueryRowContext(ctx, q, args...)
	m, err := scanMovie(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	if err := r.attachGenres(ctx, []*model.Movie{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// SlugTaken reports whether another movie already owns the slug.
func (r *MovieRepo) SlugTaken(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies WHERE slug = ? AND id <> ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}

// Delete removes a movie and its genre rows. Returns ErrMovieNotFound when
// no row matched.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return tx.Commit()
}

// IncrementViews bumps the view counter. Callers treat it as fire-and-forget;
// failures are logged by the caller, never surfaced to the reader.
func (r *MovieRepo) IncrementViews(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE movies SET views = views + 1 WHERE id = ?`, id)
	return err
}

// Related returns other published movies sharing the category or at least
// one genre, excluding the movie itself, capped at limit.
func (r *MovieRepo) Related(ctx context.Context, m *model.Movie, limit int) ([]*model.Movie, error) {
	q := `SELECT DISTINCT ` + movieCols + movieFrom + `
		LEFT JOIN movie_genres g ON g.movie_id = m.id
		WHERE m.id <> ? AND m.status = ? AND (m.category_id = ?`
	args := []any{m.ID, model.StatusPublished, m.CategoryID}
	if len(m.Genres) > 0 {
		q += ` OR g.genre IN (?` + strings.Repeat(",?", len(m.Genres)-1) + `)`
		for _, g := range m.Genres {
			args = append(args, g)
		}
	}
	q += `) LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
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

// Suggestion is the light row returned by the search autocomplete.
type Suggestion struct {
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Poster string `json:"poster"`
}

// Suggest returns up to limit published movies whose title contains q.
func (r *MovieRepo) Suggest(ctx context.Context, q string, limit int) ([]Suggestion, error) {
	const sel = `SELECT title, slug, poster FROM movies
		WHERE status = ? AND title LIKE ? ORDER BY views DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, sel, model.StatusPublished, "%"+q+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Suggestion, 0, limit)
	for rows.Next() {
		var s Suggestion
		if err := rows.Scan(&s.Title, &s.Slug, &s.Poster); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountByCategory returns how many movies reference a category.
func (r *MovieRepo) CountByCategory(ctx context.Context, categoryID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movies WHERE category_id = ?`, categoryID).Scan(&n)
	return n, err
}

func collectMovies(rows *sql.Rows) ([]*model.Movie, error) {
	var out []*model.Movie
	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// attachGenres bulk-loads genre rows for the given movies.
func (r *MovieRepo) attachGenres(ctx context.Context, movies []*model.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	idx := make(map[uint64]*model.Movie, len(movies))
	args := make([]any, 0, len(movies))
	for _, m := range movies {
		idx[m.ID] = m
		args = append(args, m.ID)
	}
	q := `SELECT movie_id, genre FROM movie_genres WHERE movie_id IN (?` +
		strings.Repeat(",?", len(movies)-1) + `) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var g string
		if err := rows.Scan(&id, &g); err != nil {
			return err
		}
		if m, ok := idx[id]; ok {
			m.Genres = append(m.Genres, g)
		}
	}
	return rows.Err()
}

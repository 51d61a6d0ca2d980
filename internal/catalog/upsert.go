package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/moviesmod/movie-catalog/internal/model"
)

// MovieStore is the persistence surface the upsert service needs. Lookup
// methods return (nil, nil) when nothing matches; the service owns turning
// that into a typed not-found error.
type MovieStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Movie, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint64) (bool, error)
	Create(ctx context.Context, m *model.Movie) error
	Update(ctx context.Context, m *model.Movie) error
}

// CategoryStore resolves category references. FindByKey matches slug first,
// then display name, both case-insensitively, and returns (nil, nil) when
// neither matches.
type CategoryStore interface {
	FindByID(ctx context.Context, id uint64) (*model.Category, error)
	FindByKey(ctx context.Context, key string) (*model.Category, error)
}

// Service orchestrates movie creation and update on top of the normalizer.
// All multi-step flows are single-document writes at the store level; there
// is no cross-document transaction (a category deleted between resolution
// and write surfaces as a not-found on a later read).
type Service struct {
	movies     MovieStore
	categories CategoryStore
	now        func() time.Time
}

func NewService(movies MovieStore, categories CategoryStore) *Service {
	return &Service{movies: movies, categories: categories, now: time.Now}
}

// Create validates the normalized input, derives the slug, and persists a
// new movie. Every violated constraint is reported in one ValidationError;
// a slug collision is reported as ErrSlugExists.
func (s *Service) Create(ctx context.Context, in *MovieInput, posterPath string) (*model.Movie, error) {
	var violations []string

	if in.Title == nil || *in.Title == "" {
		violations = append(violations, "Title is required")
	}
	if in.Description == nil || *in.Description == "" {
		violations = append(violations, "Description is required")
	}
	if in.ReleaseYear == nil || !s.validYear(*in.ReleaseYear) {
		violations = append(violations, "Valid release year is required")
	}
	if len(in.Genres) == 0 {
		violations = append(violations, "At least one genre is required")
	}
	if in.CategoryRef == nil || *in.CategoryRef == "" {
		violations = append(violations, "Valid category is required")
	}
	violations = append(violations, enumViolations(in)...)

	// Poster precedence: uploaded file wins, then posterUrl.
	poster := posterPath
	if poster == "" && in.PosterURL != nil {
		poster = *in.PosterURL
	}
	if poster == "" && in.Poster != nil {
		poster = *in.Poster
	}
	if poster == "" {
		violations = append(violations, "Poster is required")
	}

	if err := newValidationError(violations); err != nil {
		return nil, err
	}

	cat, err := s.resolveCategory(ctx, *in.CategoryRef)
	if err != nil {
		return nil, err
	}

	m := &model.Movie{
		Title:       *in.Title,
		Slug:        SlugOrFallback(*in.Title),
		Description: *in.Description,
		Poster:      poster,
		ReleaseYear: *in.ReleaseYear,
		Type:        model.TypeMovie,
		Quality:     "1080p",
		Status:      model.StatusPublished,
		CategoryID:  cat.ID,
		Genres:      in.Genres,
	}
	applyOptional(m, in)

	taken, err := s.movies.SlugTaken(ctx, m.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugExists
	}
	if err := s.movies.Create(ctx, m); err != nil {
		return nil, err
	}
	m.CategoryName, m.CategorySlug = cat.Name, cat.Slug
	return m, nil
}

// Update loads the movie, merges submitted fields onto it, re-derives the
// slug only when the title changed, persists, and returns the record with
// its category resolved to a display-ready form.
func (s *Service) Update(ctx context.Context, id uint64, in *MovieInput, posterPath string) (*model.Movie, error) {
	m, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMovieNotFound
	}

	var violations []string
	if in.Title != nil && *in.Title == "" {
		violations = append(violations, "Title is required")
	}
	if in.Description != nil && *in.Description == "" {
		violations = append(violations, "Description is required")
	}
	if in.ReleaseYear != nil && !s.validYear(*in.ReleaseYear) {
		violations = append(violations, "Valid release year is required")
	}
	if in.Genres != nil && len(in.Genres) == 0 {
		violations = append(violations, "At least one genre is required")
	}
	violations = append(violations, enumViolations(in)...)
	if err := newValidationError(violations); err != nil {
		return nil, err
	}

	if in.CategoryRef != nil && *in.CategoryRef != "" {
		cat, err := s.resolveCategory(ctx, *in.CategoryRef)
		if err != nil {
			return nil, err
		}
		m.CategoryID = cat.ID
	}

	titleChanged := in.Title != nil && *in.Title != m.Title
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.ReleaseYear != nil {
		m.ReleaseYear = *in.ReleaseYear
	}
	if in.Genres != nil {
		m.Genres = in.Genres
	}
	// Poster precedence on update: an uploaded file wins, then a submitted
	// posterUrl; with neither, the stored poster is left untouched.
	if posterPath != "" {
		m.Poster = posterPath
	} else if in.PosterURL != nil && *in.PosterURL != "" {
		m.Poster = *in.PosterURL
	}
	applyOptional(m, in)

	if titleChanged {
		slug := SlugOrFallback(m.Title)
		if slug != m.Slug {
			taken, err := s.movies.SlugTaken(ctx, slug, m.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrSlugExists
			}
			m.Slug = slug
		}
	}

	if err := s.movies.Update(ctx, m); err != nil {
		return nil, err
	}
	// Second read to attach the display-ready category reference.
	if cat, err := s.categories.FindByID(ctx, m.CategoryID); err == nil && cat != nil {
		m.CategoryName, m.CategorySlug = cat.Name, cat.Slug
	}
	return m, nil
}

// BulkFailure records one rejected element of a batch import.
type BulkFailure struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

// BulkResult is the partial-success report of a batch import.
type BulkResult struct {
	Succeeded []*model.Movie `json:"succeeded"`
	Failed    []BulkFailure  `json:"failed"`
}

// BulkImport applies Create once per record, sequentially, continuing past
// per-record failures. It never aborts the batch and never rolls back
// records that already succeeded.
func (s *Service) BulkImport(ctx context.Context, records []json.RawMessage) *BulkResult {
	res := &BulkResult{Succeeded: []*model.Movie{}, Failed: []BulkFailure{}}
	for i, raw := range records {
		title := recordTitle(raw, i)
		in, err := NormalizeJSON(raw)
		if err != nil {
			res.Failed = append(res.Failed, BulkFailure{Title: title, Error: err.Error()})
			continue
		}
		m, err := s.Create(ctx, in, "")
		if err != nil {
			res.Failed = append(res.Failed, BulkFailure{Title: title, Error: err.Error()})
			continue
		}
		res.Succeeded = append(res.Succeeded, m)
	}
	return res
}

func (s *Service) validYear(y int) bool {
	return y >= 1900 && y <= s.now().Year()+5
}

// resolveCategory accepts a numeric id or a slug/name and returns the
// matching category, or an error wrapping ErrCategoryNotFound.
func (s *Service) resolveCategory(ctx context.Context, ref string) (*model.Category, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		cat, err := s.categories.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, ref)
		}
		return cat, nil
	}
	cat, err := s.categories.FindByKey(ctx, ref)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, ref)
	}
	return cat, nil
}

// enumViolations checks the closed-set fields a submission may carry.
func enumViolations(in *MovieInput) []string {
	var v []string
	if in.Type != nil && *in.Type != "" && *in.Type != model.TypeMovie && *in.Type != model.TypeSeries {
		v = append(v, "type must be movie or series")
	}
	if in.Status != nil && *in.Status != "" &&
		*in.Status != model.StatusDraft && *in.Status != model.StatusPublished && *in.Status != model.StatusArchived {
		v = append(v, "status must be draft, published or archived")
	}
	if in.Quality != nil && *in.Quality != "" && !model.Qualities[*in.Quality] {
		v = append(v, "quality is not a known value")
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 10) {
		v = append(v, "rating must be between 0 and 10")
	}
	if in.Seasons != nil && *in.Seasons < 0 {
		v = append(v, "totalSeasons cannot be negative")
	}
	if in.Episodes != nil && *in.Episodes < 0 {
		v = append(v, "totalEpisodes cannot be negative")
	}
	return v
}

// applyOptional copies the simple optional fields shared by create and
// update. Required fields, genres, slug and poster are handled by the
// callers because their rules differ between the two paths.
func applyOptional(m *model.Movie, in *MovieInput) {
	if in.Duration != nil {
		m.Duration = *in.Duration
	}
	if in.Type != nil && *in.Type != "" {
		m.Type = *in.Type
	}
	if in.Seasons != nil {
		m.TotalSeasons = *in.Seasons
	}
	if in.Episodes != nil {
		m.TotalEpisodes = *in.Episodes
	}
	if in.Rating != nil {
		m.Rating = *in.Rating
	}
	if in.IMDBRating != nil {
		m.IMDBRating = *in.IMDBRating
	}
	if in.Director != nil {
		m.Director = *in.Director
	}
	if in.Quality != nil && *in.Quality != "" {
		m.Quality = *in.Quality
	}
	if in.Status != nil && *in.Status != "" {
		m.Status = *in.Status
	}
	if in.Featured != nil {
		m.Featured = *in.Featured
	}
	if in.TrailerURL != nil {
		m.TrailerURL = *in.TrailerURL
	}
	if in.PosterURL != nil {
		m.PosterURL = *in.PosterURL
	}
	if in.Thumbnail != nil {
		m.Thumbnail = *in.Thumbnail
	}
	if in.MetaTitle != nil {
		m.MetaTitle = *in.MetaTitle
	}
	if in.MetaDesc != nil {
		m.MetaDesc = *in.MetaDesc
	}
	if in.Cast != nil {
		m.Cast = in.Cast
	}
	if in.Languages != nil {
		m.Languages = in.Languages
	}
	if in.Screenshots != nil {
		m.Screenshots = in.Screenshots
	}
	if in.Tags != nil {
		m.Tags = in.Tags
	}
	if in.MetaKeywords != nil {
		m.MetaKeywords = in.MetaKeywords
	}
	if in.platformsSet {
		m.Platforms = in.Platforms
	}
	if in.DownloadLinks != nil {
		m.DownloadLinks = in.DownloadLinks
	}
}

// recordTitle extracts a best-effort identifying title from a raw bulk
// record for failure reporting.
func recordTitle(raw json.RawMessage, index int) string {
	var probe struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Title != "" {
		return probe.Title
	}
	return fmt.Sprintf("record %d", index+1)
}

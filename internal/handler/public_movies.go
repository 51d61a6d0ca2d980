package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/model"
	"github.com/moviesmod/movie-catalog/internal/queue"
	"github.com/moviesmod/movie-catalog/internal/repository"
)

// PublicMovieHandler serves the visitor-facing movie endpoints. Only
// published movies are ever visible here.
type PublicMovieHandler struct {
	Movies    *repository.MovieRepo
	Publisher *queue.ViewPublisher
}

func NewPublicMovieHandler(movies *repository.MovieRepo, pub *queue.ViewPublisher) *PublicMovieHandler {
	return &PublicMovieHandler{Movies: movies, Publisher: pub}
}

// List answers GET /api/movies with filters, sort and pagination.
func (h *PublicMovieHandler) List(c echo.Context) error {
	page, limit := pageParams(c, 20, 100)
	q := repository.MovieListQuery{
		Status:       model.StatusPublished,
		CategorySlug: c.QueryParam("category"),
		Genre:        c.QueryParam("genre"),
		Year:         intParam(c.QueryParam("year"), 0),
		Quality:      c.QueryParam("quality"),
		Featured:     c.QueryParam("featured") == "true",
		Search:       c.QueryParam("search"),
		Sort:         c.QueryParam("sort"),
		Page:         page,
		PageSize:     limit,
	}
	movies, total, err := h.Movies.List(c.Request().Context(), q)
	if err != nil {
		return respondMapped(c, err)
	}
	return respondPage(c, movies, NewPagination(page, limit, total))
}

// Trending answers GET /api/movies/trending: published movies touched within
// the last week, ranked by views.
func (h *PublicMovieHandler) Trending(c echo.Context) error {
	limit := intParam(c.QueryParam("limit"), 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}
	movies, err := h.Movies.Trending(c.Request().Context(), limit)
	if err != nil {
		return respondMapped(c, err)
	}
	if movies == nil {
		movies = []*model.Movie{}
	}
	return respondData(c, http.StatusOK, movies)
}

// Suggest answers GET /api/movies/search-suggestions, the search autocomplete.
func (h *PublicMovieHandler) Suggest(c echo.Context) error {
	q := c.QueryParam("q")
	if len(q) < 2 {
		return respondData(c, http.StatusOK, []repository.Suggestion{})
	}
	out, err := h.Movies.Suggest(c.Request().Context(), q, 10)
	if err != nil {
		return respondMapped(c, err)
	}
	return respondData(c, http.StatusOK, out)
}

// GetBySlug answers GET /api/movies/:slug. Serving the page also records a
// view, asynchronously, so the response never waits on the counter.
func (h *PublicMovieHandler) GetBySlug(c echo.Context) error {
	m, err := h.Movies.GetBySlug(c.Request().Context(), c.Param("slug"), true)
	if err != nil {
		return respondMapped(c, err)
	}
	h.recordView(c, m)
	return respondData(c, http.StatusOK, m)
}

// Related answers GET /api/movies/:slug/related: published movies sharing
// the category or a genre.
func (h *PublicMovieHandler) Related(c echo.Context) error {
	m, err := h.Movies.GetBySlug(c.Request().Context(), c.Param("slug"), true)
	if err != nil {
		return respondMapped(c, err)
	}
	related, err := h.Movies.Related(c.Request().Context(), m, 8)
	if err != nil {
		return respondMapped(c, err)
	}
	if related == nil {
		related = []*model.Movie{}
	}
	return respondData(c, http.StatusOK, related)
}

// recordView publishes a movie.viewed event; if the broker is unreachable
// the increment runs directly in a goroutine. Either way failures only get
// logged, the visitor's response is already on its way.
func (h *PublicMovieHandler) recordView(c echo.Context, m *model.Movie) {
	ev := queue.MovieViewedEvent{
		MovieID:  m.ID,
		Slug:     m.Slug,
		Title:    m.Title,
		ViewedAt: time.Now().UTC().Format(time.RFC3339),
	}
	logger := c.Logger()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Publisher.Publish(ctx, ev); err == nil {
			return
		}
		if err := h.Movies.IncrementViews(ctx, ev.MovieID); err != nil {
			logger.Warnf("view increment failed for movie %d: %v", ev.MovieID, err)
		}
	}()
}

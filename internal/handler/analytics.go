package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/repository"
)

// AnalyticsHandler serves the back-office dashboard numbers.
type AnalyticsHandler struct {
	Analytics *repository.AnalyticsRepo
}

func NewAnalyticsHandler(a *repository.AnalyticsRepo) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: a}
}

// Dashboard answers GET /api/analytics/dashboard. The snapshot is
// recomputed from the live tables on every request.
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	d, err := h.Analytics.Dashboard(c.Request().Context())
	if err != nil {
		return respondMapped(c, err)
	}
	return respondData(c, http.StatusOK, d)
}

// MovieStats answers GET /api/analytics/movies/:id.
func (h *AnalyticsHandler) MovieStats(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Movie not found")
	}
	s, err := h.Analytics.MovieStats(c.Request().Context(), id)
	if err != nil {
		return respondMapped(c, err)
	}
	return respondData(c, http.StatusOK, s)
}

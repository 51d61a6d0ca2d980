// Package handler implements the HTTP layer. Every response uses the same
// envelope: {"success": bool, "data"?: ..., "message"?: ..., "pagination"?: ...}.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/catalog"
	"github.com/moviesmod/movie-catalog/internal/repository"
)

// Pagination is the page metadata attached to list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count from a total and a page size.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func respondMessage(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, echo.Map{"success": true, "data": data, "message": message})
}

func respondPage(c echo.Context, data any, p Pagination) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data, "pagination": p})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// respondMapped translates service and repository errors to HTTP statuses:
// validation and conflicts to 400, not-found sentinels to 404, and anything
// unrecognized to a generic 500 without leaking internals.
func respondMapped(c echo.Context, err error) error {
	var vErr *catalog.ValidationError
	if errors.As(err, &vErr) {
		return respondError(c, http.StatusBadRequest, vErr.Error())
	}
	var inUse *repository.CategoryInUseError
	if errors.As(err, &inUse) {
		return respondError(c, http.StatusBadRequest, inUse.Error())
	}
	switch {
	case errors.Is(err, catalog.ErrMovieNotFound),
		errors.Is(err, repository.ErrMovieNotFound):
		return respondError(c, http.StatusNotFound, "Movie not found")
	case errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, repository.ErrCategoryNotFound):
		return respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrFeedbackNotFound):
		return respondError(c, http.StatusNotFound, "Feedback not found")
	case errors.Is(err, repository.ErrAdSlotNotFound):
		return respondError(c, http.StatusNotFound, "Ad slot not found")
	case errors.Is(err, catalog.ErrSlugExists),
		errors.Is(err, repository.ErrCategoryExists),
		errors.Is(err, repository.ErrAdSlotExists):
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	c.Logger().Errorf("internal error: %v", err)
	return respondError(c, http.StatusInternalServerError, "Internal server error")
}

// pageParams reads page/limit query parameters with bounds applied.
func pageParams(c echo.Context, defaultLimit, maxLimit int) (page, limit int) {
	page = intParam(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	limit = intParam(c.QueryParam("limit"), defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/repository"
)

// PublicCategoryHandler serves the visitor-facing category endpoints.
type PublicCategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewPublicCategoryHandler(categories *repository.CategoryRepo) *PublicCategoryHandler {
	return &PublicCategoryHandler{Categories: categories}
}

// List answers GET /api/categories: every category with its movie count,
// ordered for display.
func (h *PublicCategoryHandler) List(c echo.Context) error {
	cats, err := h.Categories.ListWithCounts(c.Request().Context())
	if err != nil {
		return respondMapped(c, err)
	}
	return respondData(c, http.StatusOK, cats)
}

// GetBySlug answers GET /api/categories/:slug.
func (h *PublicCategoryHandler) GetBySlug(c echo.Context) error {
	cat, err := h.Categories.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondMapped(c, err)
	}
	return respondData(c, http.StatusOK, cat)
}

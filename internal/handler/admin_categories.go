package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/catalog"
	"github.com/moviesmod/movie-catalog/internal/model"
	"github.com/moviesmod/movie-catalog/internal/repository"
)

// AdminCategoryHandler manages categories in the back office.
type AdminCategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewAdminCategoryHandler(categories *repository.CategoryRepo) *AdminCategoryHandler {
	return &AdminCategoryHandler{Categories: categories}
}

type categoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       *int   `json:"order"`
}

// Create answers POST /api/admin/categories. The slug derives from the name
// by the same rules as movie slugs.
func (h *AdminCategoryHandler) Create(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return respondError(c, http.StatusBadRequest, "Name is required")
	}

	cat := &model.Category{
		Name:        req.Name,
		Slug:        catalog.SlugOrFallback(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if req.Order != nil {
		cat.Order = *req.Order
	}
	if err := h.Categories.Create(c.Request().Context(), cat); err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusCreated, cat, "Category created successfully")
}

// Update answers PUT /api/admin/categories/:id. A changed name re-derives
// the slug.
func (h *AdminCategoryHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Category not found")
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		return respondMapped(c, err)
	}
	if name := strings.TrimSpace(req.Name); name != "" && name != cat.Name {
		cat.Name = name
		cat.Slug = catalog.SlugOrFallback(name)
	}
	if req.Description != "" {
		cat.Description = strings.TrimSpace(req.Description)
	}
	if req.Order != nil {
		cat.Order = *req.Order
	}
	if err := h.Categories.Update(ctx, cat); err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusOK, cat, "Category updated successfully")
}

// Delete answers DELETE /api/admin/categories/:id. Deletion is blocked while
// movies still reference the category.
func (h *AdminCategoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Category not found")
	}
	if err := h.Categories.Delete(c.Request().Context(), id); err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusOK, nil, "Category deleted successfully")
}

// List answers GET /api/admin/categories with movie counts.
func (h *AdminCategoryHandler) List(c echo.Context) error {
	cats, err := h.Categories.ListWithCounts(c.Request().Context())
	if err != nil {
		return respondMapped(c, err)
	}
	return respondData(c, http.StatusOK, cats)
}

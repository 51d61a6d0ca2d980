package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/catalog"
	"github.com/moviesmod/movie-catalog/internal/repository"
	"github.com/moviesmod/movie-catalog/internal/upload"
)

// AdminMovieHandler is the back-office movie surface: create, update,
// delete, listing across all statuses, and bulk import.
type AdminMovieHandler struct {
	Service *catalog.Service
	Movies  *repository.MovieRepo
	Uploads *upload.Store
}

func NewAdminMovieHandler(svc *catalog.Service, movies *repository.MovieRepo, uploads *upload.Store) *AdminMovieHandler {
	return &AdminMovieHandler{Service: svc, Movies: movies, Uploads: uploads}
}

// movieInput normalizes the request body: JSON for API clients, multipart or
// urlencoded form for the admin panel. The returned posterPath is non-empty
// only when a file was uploaded.
func (h *AdminMovieHandler) movieInput(c echo.Context) (*catalog.MovieInput, string, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return nil, "", err
		}
		in, err := catalog.NormalizeJSON(body)
		return in, "", err
	}

	values, err := c.FormParams()
	if err != nil {
		return nil, "", err
	}
	in, err := catalog.NormalizeForm(values)
	if err != nil {
		return nil, "", err
	}

	posterPath := ""
	if fh, err := c.FormFile("poster"); err == nil && fh != nil {
		posterPath, err = h.Uploads.SavePoster(fh)
		if err != nil {
			return nil, "", err
		}
	}
	return in, posterPath, nil
}

// Create answers POST /api/admin/movies.
func (h *AdminMovieHandler) Create(c echo.Context) error {
	in, posterPath, err := h.movieInput(c)
	if err != nil {
		return respondUploadOr(c, err)
	}
	m, err := h.Service.Create(c.Request().Context(), in, posterPath)
	if err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusCreated, m, "Movie created successfully")
}

// Update answers PUT /api/admin/movies/:id with partial-merge semantics:
// fields absent from the submission keep their stored values.
func (h *AdminMovieHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Movie not found")
	}
	in, posterPath, err := h.movieInput(c)
	if err != nil {
		return respondUploadOr(c, err)
	}
	m, err := h.Service.Update(c.Request().Context(), id, in, posterPath)
	if err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusOK, m, "Movie updated successfully")
}

// Delete answers DELETE /api/admin/movies/:id.
func (h *AdminMovieHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Movie not found")
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusOK, nil, "Movie deleted successfully")
}

// List answers GET /api/admin/movies: all statuses unless ?status= narrows
// it, with the same filters as the public listing.
func (h *AdminMovieHandler) List(c echo.Context) error {
	page, limit := pageParams(c, 20, 100)
	q := repository.MovieListQuery{
		Status:       c.QueryParam("status"),
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

// Get answers GET /api/admin/movies/:id, any status.
func (h *AdminMovieHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Movie not found")
	}
	m, err := h.Movies.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondMapped(c, err)
	}
	if m == nil {
		return respondError(c, http.StatusNotFound, "Movie not found")
	}
	return respondData(c, http.StatusOK, m)
}

type bulkImportReq struct {
	Movies []json.RawMessage `json:"movies"`
}

// BulkImport answers POST /api/admin/movies/bulk. Records are applied
// sequentially and independently; the report lists what succeeded and what
// failed with its reason. The batch is never rolled back.
func (h *AdminMovieHandler) BulkImport(c echo.Context) error {
	var req bulkImportReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if len(req.Movies) == 0 {
		return respondError(c, http.StatusBadRequest, "movies must be a non-empty array")
	}
	res := h.Service.BulkImport(c.Request().Context(), req.Movies)
	msg := strconv.Itoa(len(res.Succeeded)) + " imported, " + strconv.Itoa(len(res.Failed)) + " failed"
	return respondMessage(c, http.StatusOK, res, msg)
}

// respondUploadOr maps upload and normalization failures; everything else
// falls through to the shared error mapping.
func respondUploadOr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, upload.ErrTooLarge), errors.Is(err, upload.ErrBadType):
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	return respondMapped(c, err)
}

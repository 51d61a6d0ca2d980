package handler

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/model"
	"github.com/moviesmod/movie-catalog/internal/repository"
)

// PublicFeedbackHandler accepts visitor reviews and serves the approved ones.
type PublicFeedbackHandler struct {
	Feedback *repository.FeedbackRepo
	Movies   *repository.MovieRepo
}

func NewPublicFeedbackHandler(fb *repository.FeedbackRepo, movies *repository.MovieRepo) *PublicFeedbackHandler {
	return &PublicFeedbackHandler{Feedback: fb, Movies: movies}
}

type feedbackReq struct {
	MovieID uint64 `json:"movie"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// validateFeedback returns every violated constraint of a submission.
func validateFeedback(req *feedbackReq) []string {
	var v []string
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Comment = strings.TrimSpace(req.Comment)

	if req.MovieID == 0 {
		v = append(v, "movie is required")
	}
	if req.Name == "" || len(req.Name) > 100 {
		v = append(v, "name is required and must be at most 100 characters")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		v = append(v, "a valid email is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		v = append(v, "rating must be between 1 and 5")
	}
	if len(req.Comment) < 10 || len(req.Comment) > 1000 {
		v = append(v, "comment must be between 10 and 1000 characters")
	}
	return v
}

// Create answers POST /api/feedback. The submission lands in the moderation
// queue as pending; it never appears publicly until approved.
func (h *PublicFeedbackHandler) Create(c echo.Context) error {
	var req feedbackReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if v := validateFeedback(&req); len(v) > 0 {
		return respondError(c, http.StatusBadRequest, strings.Join(v, ", "))
	}

	ctx := c.Request().Context()
	m, err := h.Movies.FindByID(ctx, req.MovieID)
	if err != nil {
		return respondMapped(c, err)
	}
	if m == nil || m.Status != model.StatusPublished {
		return respondError(c, http.StatusNotFound, "Movie not found")
	}

	f := &model.Feedback{
		MovieID:   req.MovieID,
		Name:      req.Name,
		Email:     req.Email,
		Rating:    req.Rating,
		Comment:   req.Comment,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if err := h.Feedback.Create(ctx, f); err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusCreated, f,
		"Thank you for your feedback! It will appear after moderation.")
}

// ListForMovie answers GET /api/feedback/:movieId: the approved feedback
// page for one published movie.
func (h *PublicFeedbackHandler) ListForMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("movieId"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Movie not found")
	}
	m, err := h.Movies.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondMapped(c, err)
	}
	if m == nil || m.Status != model.StatusPublished {
		return respondError(c, http.StatusNotFound, "Movie not found")
	}
	page, limit := pageParams(c, 10, 50)
	items, total, err := h.Feedback.ListApproved(c.Request().Context(), m.ID, page, limit)
	if err != nil {
		return respondMapped(c, err)
	}
	return respondPage(c, items, NewPagination(page, limit, total))
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/model"
	"github.com/moviesmod/movie-catalog/internal/repository"
)

// AdminFeedbackHandler is the moderation queue.
type AdminFeedbackHandler struct {
	Feedback *repository.FeedbackRepo
}

func NewAdminFeedbackHandler(fb *repository.FeedbackRepo) *AdminFeedbackHandler {
	return &AdminFeedbackHandler{Feedback: fb}
}

// List answers GET /api/admin/feedback, newest first, with audit fields and
// the movie reference attached. ?status= narrows the queue.
func (h *AdminFeedbackHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", model.FeedbackPending, model.FeedbackApproved, model.FeedbackRejected:
	default:
		return respondError(c, http.StatusBadRequest, "status must be pending, approved or rejected")
	}
	page, limit := pageParams(c, 20, 100)
	items, total, err := h.Feedback.ListAll(c.Request().Context(), status, page, limit)
	if err != nil {
		return respondMapped(c, err)
	}
	return respondPage(c, adminFeedbackViews(items), NewPagination(page, limit, total))
}

// SetStatus answers PUT /api/admin/feedback/:id/status.
func (h *AdminFeedbackHandler) SetStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Feedback not found")
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	switch req.Status {
	case model.FeedbackPending, model.FeedbackApproved, model.FeedbackRejected:
	default:
		return respondError(c, http.StatusBadRequest, "status must be pending, approved or rejected")
	}
	f, err := h.Feedback.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusOK, f, "Feedback "+req.Status)
}

// Delete answers DELETE /api/admin/feedback/:id.
func (h *AdminFeedbackHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Feedback not found")
	}
	if err := h.Feedback.Delete(c.Request().Context(), id); err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusOK, nil, "Feedback deleted successfully")
}

// adminFeedbackView widens the JSON shape with the audit fields that the
// model hides from public responses.
type adminFeedbackView struct {
	*model.Feedback
	IPAddress string `json:"ipAddress"`
	UserAgent string `json:"userAgent"`
}

func adminFeedbackViews(items []*model.Feedback) []adminFeedbackView {
	out := make([]adminFeedbackView, 0, len(items))
	for _, f := range items {
		out = append(out, adminFeedbackView{Feedback: f, IPAddress: f.IPAddress, UserAgent: f.UserAgent})
	}
	return out
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/model"
	"github.com/moviesmod/movie-catalog/internal/repository"
)

// PublicAdSlotHandler serves the ad placements a page should render.
type PublicAdSlotHandler struct {
	AdSlots *repository.AdSlotRepo
}

func NewPublicAdSlotHandler(slots *repository.AdSlotRepo) *PublicAdSlotHandler {
	return &PublicAdSlotHandler{AdSlots: slots}
}

// List answers GET /api/ad-slots: active slots only, optionally filtered by
// ?position=, sorted by display order. An unknown position is an empty list,
// not an error.
func (h *PublicAdSlotHandler) List(c echo.Context) error {
	position := c.QueryParam("position")
	if position != "" && !model.AdPositions[position] {
		return respondData(c, http.StatusOK, []*model.AdSlot{})
	}
	slots, err := h.AdSlots.ListActive(c.Request().Context(), position)
	if err != nil {
		return respondMapped(c, err)
	}
	return respondData(c, http.StatusOK, slots)
}

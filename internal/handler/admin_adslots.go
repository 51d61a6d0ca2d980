package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/model"
	"github.com/moviesmod/movie-catalog/internal/repository"
)

// AdminAdSlotHandler manages ad placements in the back office.
type AdminAdSlotHandler struct {
	AdSlots *repository.AdSlotRepo
}

func NewAdminAdSlotHandler(slots *repository.AdSlotRepo) *AdminAdSlotHandler {
	return &AdminAdSlotHandler{AdSlots: slots}
}

type adSlotReq struct {
	Name       string            `json:"name"`
	Position   string            `json:"position"`
	AdCode     string            `json:"adCode"`
	IsActive   *bool             `json:"isActive"`
	Dimensions *model.Dimensions `json:"dimensions"`
	Order      *int              `json:"order"`
}

func validateAdSlot(req *adSlotReq) []string {
	var v []string
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		v = append(v, "name is required")
	}
	if !model.AdPositions[req.Position] {
		v = append(v, "position is not a known placement")
	}
	if strings.TrimSpace(req.AdCode) == "" {
		v = append(v, "adCode is required")
	}
	return v
}

// Create answers POST /api/admin/ad-slots. New slots default to active.
func (h *AdminAdSlotHandler) Create(c echo.Context) error {
	var req adSlotReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if v := validateAdSlot(&req); len(v) > 0 {
		return respondError(c, http.StatusBadRequest, strings.Join(v, ", "))
	}

	slot := &model.AdSlot{
		Name:     req.Name,
		Position: req.Position,
		AdCode:   req.AdCode,
		IsActive: true,
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}
	if req.Dimensions != nil {
		slot.Dimensions = *req.Dimensions
	}
	if req.Order != nil {
		slot.Order = *req.Order
	}
	if err := h.AdSlots.Create(c.Request().Context(), slot); err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusCreated, slot, "Ad slot created successfully")
}

// Update answers PUT /api/admin/ad-slots/:id.
func (h *AdminAdSlotHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Ad slot not found")
	}
	var req adSlotReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if v := validateAdSlot(&req); len(v) > 0 {
		return respondError(c, http.StatusBadRequest, strings.Join(v, ", "))
	}

	slot := &model.AdSlot{
		ID:       id,
		Name:     req.Name,
		Position: req.Position,
		AdCode:   req.AdCode,
		IsActive: true,
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}
	if req.Dimensions != nil {
		slot.Dimensions = *req.Dimensions
	}
	if req.Order != nil {
		slot.Order = *req.Order
	}
	if err := h.AdSlots.Update(c.Request().Context(), slot); err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusOK, slot, "Ad slot updated successfully")
}

// Delete answers DELETE /api/admin/ad-slots/:id.
func (h *AdminAdSlotHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusNotFound, "Ad slot not found")
	}
	if err := h.AdSlots.Delete(c.Request().Context(), id); err != nil {
		return respondMapped(c, err)
	}
	return respondMessage(c, http.StatusOK, nil, "Ad slot deleted successfully")
}

// List answers GET /api/admin/ad-slots: every slot, active or not.
func (h *AdminAdSlotHandler) List(c echo.Context) error {
	slots, err := h.AdSlots.ListAll(c.Request().Context())
	if err != nil {
		return respondMapped(c, err)
	}
	return respondData(c, http.StatusOK, slots)
}

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	DB       *sql.DB
	SiteName string
}

// Health answers GET /api/health. The database check uses a short timeout so
// a wedged pool shows up as degraded instead of hanging the probe.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.DB.PingContext(ctx); err != nil {
		dbStatus = "down"
	}
	return respondData(c, http.StatusOK, echo.Map{
		"service":  h.SiteName,
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

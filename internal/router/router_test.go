package router

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRouteMap(t *testing.T) {
	e := echo.New()
	pass := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	Register(e, Handlers{}, Options{
		JWTSecret: "secret",
		UploadDir: t.TempDir(),
		RateLimit: pass,
		Cache:     pass,
	})

	routes := map[string]bool{}
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /api/health",
		"GET /api/movies",
		"GET /api/movies/trending",
		"GET /api/movies/search-suggestions",
		"GET /api/movies/:slug",
		"GET /api/movies/:slug/related",
		"GET /api/categories",
		"GET /api/categories/:slug",
		"POST /api/feedback",
		"GET /api/feedback/:movieId",
		"GET /api/ad-slots",
		"POST /api/auth/login",
		"POST /api/auth/refresh",
		"POST /api/auth/logout",
		"POST /api/auth/register",
		"GET /api/auth/me",
		"GET /api/admin/movies",
		"POST /api/admin/movies",
		"POST /api/admin/movies/bulk",
		"PUT /api/admin/movies/:id",
		"DELETE /api/admin/movies/:id",
		"PUT /api/admin/feedback/:id/status",
		"GET /api/analytics/dashboard",
		"GET /api/analytics/movies/:id",
	}
	for _, w := range want {
		assert.True(t, routes[w], "missing route %s", w)
	}

	// Analytics lives at the top level, not under the admin prefix, and
	// feedback moderation is a PUT.
	assert.False(t, routes["GET /api/admin/analytics/dashboard"])
	assert.False(t, routes["PATCH /api/admin/feedback/:id/status"])
}

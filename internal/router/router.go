// Package router wires handlers, middleware and the role matrix onto Echo.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/moviesmod/movie-catalog/internal/handler"
	"github.com/moviesmod/movie-catalog/internal/middleware"
	"github.com/moviesmod/movie-catalog/internal/model"
)

// Handlers carries every handler the route map needs.
type Handlers struct {
	Health           *handler.HealthHandler
	Auth             *handler.AuthHandler
	PublicMovies     *handler.PublicMovieHandler
	PublicCategories *handler.PublicCategoryHandler
	PublicFeedback   *handler.PublicFeedbackHandler
	PublicAdSlots    *handler.PublicAdSlotHandler
	AdminMovies      *handler.AdminMovieHandler
	AdminCategories  *handler.AdminCategoryHandler
	AdminFeedback    *handler.AdminFeedbackHandler
	AdminAdSlots     *handler.AdminAdSlotHandler
	Analytics        *handler.AnalyticsHandler
}

// Options carries cross-cutting route configuration.
type Options struct {
	JWTSecret string
	UploadDir string
	RateLimit echo.MiddlewareFunc // applied to the public surface
	Cache     echo.MiddlewareFunc // applied to public GETs
}

// Register lays out the full route map.
//
// Role matrix: movie writes need admin or editor, movie deletion admin only;
// categories and ad slots are admin only; feedback moderation takes admin or
// moderator; analytics takes admin or editor.
func Register(e *echo.Echo, h Handlers, opts Options) {
	e.GET("/api/health", h.Health.Health)
	e.Static("/uploads", opts.UploadDir)

	// Public surface: rate limited, listings cached.
	pub := e.Group("/api", opts.RateLimit)
	cached := pub.Group("", opts.Cache)

	cached.GET("/movies", h.PublicMovies.List)
	cached.GET("/movies/trending", h.PublicMovies.Trending)
	pub.GET("/movies/search-suggestions", h.PublicMovies.Suggest)
	pub.GET("/movies/:slug", h.PublicMovies.GetBySlug) // uncached: records a view
	cached.GET("/movies/:slug/related", h.PublicMovies.Related)

	cached.GET("/categories", h.PublicCategories.List)
	cached.GET("/categories/:slug", h.PublicCategories.GetBySlug)

	pub.POST("/feedback", h.PublicFeedback.Create)
	pub.GET("/feedback/:movieId", h.PublicFeedback.ListForMovie)

	cached.GET("/ad-slots", h.PublicAdSlots.List)

	// Auth.
	auth := e.Group("/api/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	authed := e.Group("/api/auth", middleware.JWTAuth(opts.JWTSecret))
	authed.GET("/me", h.Auth.Me)
	authed.POST("/register", h.Auth.Register,
		middleware.RequireRole(model.RoleAdmin))

	// Back office.
	admin := e.Group("/api/admin", middleware.JWTAuth(opts.JWTSecret))

	movies := admin.Group("/movies", middleware.RequireRole(model.RoleAdmin, model.RoleEditor))
	movies.GET("", h.AdminMovies.List)
	movies.POST("", h.AdminMovies.Create)
	movies.POST("/bulk", h.AdminMovies.BulkImport)
	movies.GET("/:id", h.AdminMovies.Get)
	movies.PUT("/:id", h.AdminMovies.Update)
	movies.DELETE("/:id", h.AdminMovies.Delete, middleware.RequireRole(model.RoleAdmin))

	categories := admin.Group("/categories", middleware.RequireRole(model.RoleAdmin))
	categories.GET("", h.AdminCategories.List)
	categories.POST("", h.AdminCategories.Create)
	categories.PUT("/:id", h.AdminCategories.Update)
	categories.DELETE("/:id", h.AdminCategories.Delete)

	feedback := admin.Group("/feedback", middleware.RequireRole(model.RoleAdmin, model.RoleModerator))
	feedback.GET("", h.AdminFeedback.List)
	feedback.PUT("/:id/status", h.AdminFeedback.SetStatus)
	feedback.DELETE("/:id", h.AdminFeedback.Delete)

	adSlots := admin.Group("/ad-slots", middleware.RequireRole(model.RoleAdmin))
	adSlots.GET("", h.AdminAdSlots.List)
	adSlots.POST("", h.AdminAdSlots.Create)
	adSlots.PUT("/:id", h.AdminAdSlots.Update)
	adSlots.DELETE("/:id", h.AdminAdSlots.Delete)

	analytics := e.Group("/api/analytics", middleware.JWTAuth(opts.JWTSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleEditor))
	analytics.GET("/dashboard", h.Analytics.Dashboard)
	analytics.GET("/movies/:id", h.Analytics.MovieStats)
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/moviesmod/movie-catalog/internal/catalog"
	"github.com/moviesmod/movie-catalog/internal/config"
	"github.com/moviesmod/movie-catalog/internal/database"
	"github.com/moviesmod/movie-catalog/internal/handler"
	"github.com/moviesmod/movie-catalog/internal/middleware"
	"github.com/moviesmod/movie-catalog/internal/queue"
	"github.com/moviesmod/movie-catalog/internal/repository"
	"github.com/moviesmod/movie-catalog/internal/router"
	"github.com/moviesmod/movie-catalog/internal/upload"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema apply failed: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	uploads, err := upload.NewStore(cfg.UploadDir, cfg.MaxUploadBytes, cfg.AllowedImage)
	if err != nil {
		log.Fatalf("upload store init failed: %v", err)
	}

	movieRepo := repository.NewMovieRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)
	adSlotRepo := repository.NewAdSlotRepo(db)
	analyticsRepo := repository.NewAnalyticsRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	svc := catalog.NewService(movieRepo, categoryRepo)
	publisher := queue.NewViewPublisher()
	defer publisher.Close()

	// The consumer applies view increments off the request path. It runs its
	// own reconnect loop for the lifetime of the process.
	go func() {
		if err := queue.StartViewConsumer(movieRepo); err != nil {
			log.Printf("view consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())

	router.Register(e, router.Handlers{
		Health:           &handler.HealthHandler{DB: db, SiteName: cfg.SiteName},
		Auth:             handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		PublicMovies:     handler.NewPublicMovieHandler(movieRepo, publisher),
		PublicCategories: handler.NewPublicCategoryHandler(categoryRepo),
		PublicFeedback:   handler.NewPublicFeedbackHandler(feedbackRepo, movieRepo),
		PublicAdSlots:    handler.NewPublicAdSlotHandler(adSlotRepo),
		AdminMovies:      handler.NewAdminMovieHandler(svc, movieRepo, uploads),
		AdminCategories:  handler.NewAdminCategoryHandler(categoryRepo),
		AdminFeedback:    handler.NewAdminFeedbackHandler(feedbackRepo),
		AdminAdSlots:     handler.NewAdminAdSlotHandler(adSlotRepo),
		Analytics:        handler.NewAnalyticsHandler(analyticsRepo),
	}, router.Options{
		JWTSecret: cfg.JWTSecret,
		UploadDir: cfg.UploadDir,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Cache:     middleware.NewResponseCache(config.LoadCacheConfig(), rdb),
	})

	addr := ":" + cfg.Port
	log.Printf("%s listening on %s (env=%s)", cfg.SiteName, addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

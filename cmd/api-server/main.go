package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"
	"reviewhub/internal/mailer"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	smtpMailer := mailer.NewSMTPMailer(cfg)
	authService := service.NewAuthService(userRepo, smtpMailer, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	genreHandler := handler.NewGenreHandler(genreService)
	titleHandler := handler.NewTitleHandler(titleService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(commentService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Identify(authService))

	authLimiter := middleware.NewKeyedRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(authLimiter))
	authHandler.RegisterRoutes(auth)

	userHandler.RegisterRoutes(api.Group("/users"))
	categoryHandler.RegisterRoutes(api.Group("/categories"))
	genreHandler.RegisterRoutes(api.Group("/genres"))

	titles := api.Group("/titles")
	titleHandler.RegisterRoutes(titles)
	reviewHandler.RegisterRoutes(titles.Group("/:title_id/reviews"))
	commentHandler.RegisterRoutes(titles.Group("/:title_id/reviews/:review_id/comments"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting http server", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

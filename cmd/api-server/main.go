package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"bizdir/database"
	"bizdir/internal/api/handler"
	"bizdir/internal/api/middleware"
	"bizdir/internal/api/repository"
	"bizdir/internal/api/service"
	"bizdir/internal/cache"
	"bizdir/internal/config"
	"bizdir/internal/geo"
	"bizdir/internal/pricing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

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
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	// Redis is optional; without it filter options are computed per request.
	filterCache, err := cache.NewFilterCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, filter option caching disabled", "error", err)
		filterCache = nil
	}

	geocoder := geo.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
	advisor := pricing.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepo(db)
	searchRepo := repository.NewSearchRepo(db)
	reviewRepo := repository.NewReviewRepository(db)
	imageRepo := repository.NewImageRepo(db)
	hoursRepo := repository.NewHoursRepo(db)
	pricingRepo := repository.NewPricingRepo(db)

	authService := service.NewAuthService(userRepo, cfg)
	businessService := service.NewBusinessService(businessRepo, imageRepo, hoursRepo, geocoder, filterCache, logger)
	searchService := service.NewSearchService(searchRepo, businessRepo, filterCache)
	reviewService := service.NewReviewService(reviewRepo, businessRepo)
	pricingService := service.NewPricingService(pricingRepo, businessRepo, businessService, advisor, logger)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.NewRateLimiter(20, 40).Middleware())

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/api")
	authed := r.Group("/api")
	authed.Use(middleware.AuthMiddleware(authService))

	handler.NewAuthHandler(authService).RegisterRoutes(public, authed)
	handler.NewBusinessHandler(businessService, cfg.UploadDir, cfg.UploadMaxSize).RegisterRoutes(public, authed)
	handler.NewSearchHandler(searchService).RegisterRoutes(public)
	handler.NewReviewHandler(reviewService).RegisterRoutes(public, authed)
	handler.NewPricingHandler(pricingService).RegisterRoutes(public, authed)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

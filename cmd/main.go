package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mysterymeet/backend/internal/api"
	"github.com/mysterymeet/backend/internal/auth"
	"github.com/mysterymeet/backend/internal/config"
	"github.com/mysterymeet/backend/internal/event"
	"github.com/mysterymeet/backend/internal/feed"
	"github.com/mysterymeet/backend/internal/participation"
	"github.com/mysterymeet/backend/internal/ratelimit"
	"github.com/mysterymeet/backend/internal/social"
	"github.com/mysterymeet/backend/internal/storage"
	"github.com/mysterymeet/backend/pkg/logger"
	"github.com/mysterymeet/backend/pkg/validator"
)

// store is the union of persistence contracts a backend must satisfy.
type store interface {
	auth.Store
	event.Store
	participation.Store
	social.Store
	api.Pinger
	Close() error
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("ENV"))
	appLogger.Info("Starting MysteryMeet server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize storage
	var dataStore store
	switch cfg.Storage.Backend {
	case "memory":
		appLogger.Warn("Using in-memory storage; capacity enforcement only holds with a single instance")
		dataStore = storage.NewMemoryStore()
	default:
		pg, err := storage.NewPostgresStore(cfg.Storage.PostgresURL)
		if err != nil {
			appLogger.Error("Failed to connect to Postgres", "error", err)
			os.Exit(1)
		}
		dataStore = pg
		appLogger.Info("Connected to Postgres")
	}
	defer dataStore.Close()

	// Initialize rate limiter (redis-backed when available)
	var rateLimiter ratelimit.RateLimiter = ratelimit.NoopLimiter{}
	if cfg.Redis.Enabled {
		redisClient, err := storage.NewRedisClient(cfg)
		if err != nil {
			appLogger.Warn("Redis unavailable, rate limiting disabled", "error", err)
		} else {
			defer redisClient.Close()
			rateLimiter = ratelimit.NewLimiter(redisClient, cfg.RateLimit)
			appLogger.Info("Connected to Redis", "address", cfg.RedisAddr())
		}
	}
	rateLimitMiddleware := ratelimit.NewMiddleware(rateLimiter)

	// Initialize services
	authService := auth.NewService(dataStore, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	joinController := participation.NewController(dataStore)
	eventService := event.NewService(dataStore, joinController, cfg.Location.MaxOffsetDegrees, cfg.Location.AreaCellPrecision)
	socialService := social.NewService(dataStore)
	ranker := feed.NewRanker(cfg.Location.NearRadiusKm)
	val := validator.NewValidator()

	apiHandler := api.NewHandler(
		authService,
		eventService,
		joinController,
		socialService,
		ranker,
		rateLimiter,
		val,
		dataStore,
	)

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	// Add logging middleware
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		appLogger.Info("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", duration,
			"ip", c.ClientIP(),
		)
	})

	// Setup routes
	api.SetupRoutes(router, apiHandler, authService, rateLimitMiddleware)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("Server starting", "address", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server stopped")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/flicknest/backend/internal/cache"
	"github.com/flicknest/backend/internal/config"
	"github.com/flicknest/backend/internal/engine"
	"github.com/flicknest/backend/internal/handlers"
	"github.com/flicknest/backend/internal/logger"
	"github.com/flicknest/backend/internal/metrics"
	"github.com/flicknest/backend/internal/middleware"
	"github.com/flicknest/backend/internal/movies"
	"github.com/flicknest/backend/internal/store"
	"github.com/flicknest/backend/internal/tracking"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("recommendation API starting", zap.String("port", cfg.Port))

	metrics.Initialize()

	// Catalog and rating log
	st, err := store.Connect(context.Background(), cfg.MongoURI, cfg.MoviesDB, cfg.InteractionsDB, logger.Log)
	if err != nil {
		logger.Log.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(ctx); err != nil {
			logger.Log.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	// Impression/click tracking
	tracker, err := tracking.Open(cfg.TrackingDB, logger.Log)
	if err != nil {
		logger.Log.Fatal("failed to open tracking db", zap.Error(err))
	}

	// Redis is optional: without it search results simply skip the cache.
	redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		logger.Log.Warn("redis unavailable, search caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	eng := engine.New(engine.DefaultConfig(), engine.WithLogger(logger.Log))

	h := handlers.NewHandlers(st, eng)
	h.SetTracker(tracker)
	h.SetRedisClient(redisClient)
	h.SetMoviesClient(movies.NewClient(cfg.MoviesAPIURL))

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		recs := api.Group("/recommendations")
		{
			recs.GET("", h.GetRecommendations)
			recs.POST("/click", h.TrackRecommendationClick)
			recs.GET("/ctr", h.GetCTRMetrics)
		}

		moviesGroup := api.Group("/movies")
		{
			moviesGroup.GET("/random", h.GetRandomMovies)
			moviesGroup.GET("/search/:query", h.SearchMovies)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("server exited")
}

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mercato/comparison-service/config"
	_ "github.com/mercato/comparison-service/docs"
	"github.com/mercato/comparison-service/internal/catalog"
	"github.com/mercato/comparison-service/internal/comparison"
	"github.com/mercato/comparison-service/internal/database"
	"github.com/mercato/comparison-service/internal/handlers"
	"github.com/mercato/comparison-service/internal/importer"
	"github.com/mercato/comparison-service/internal/middleware"
	"github.com/mercato/comparison-service/internal/sweepers"
	"github.com/mercato/comparison-service/internal/telemetry"
)

// @title Comparison Service API
// @version 1.0
// @description Internal API for cross-market price comparison, basket aggregation, and catalog management.
// @BasePath /
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting comparison service")

	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}

	ctx := context.Background()
	if err := database.Connect(
		ctx,
		dbURL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	telemetryCleanup, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "",
		Endpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}

	source := catalog.NewPG(database.Pool())
	service := comparison.NewService(source, &comparison.Config{
		MaxBasketItems: cfg.Comparison.MaxBasketItems,
		MaxResults:     cfg.Comparison.MaxResults,
	})
	handlers.InitComparison(service)
	handlers.InitImporter(importer.NewImporter(database.Pool()))

	// Imports that never get approved should not pile up forever.
	offerSweeper := sweepers.NewPendingOfferSweeper(database.Pool(), logger, time.Hour, 90*24*time.Hour)
	go offerSweeper.Start(ctx)

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware())
	internal.Use(middleware.ServiceRateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize))
	{
		internal.GET("/health", handlers.HealthCheck)

		comp := internal.Group("/comparison")
		{
			comp.POST("/compare", handlers.CompareMarkets)
			comp.POST("/full-basket", handlers.FullBasket)
		}

		markets := internal.Group("/markets")
		{
			markets.GET("", handlers.ListMarkets)
			markets.GET("/:marketId/offers", handlers.GetMarketOffers)
		}

		products := internal.Group("/products")
		{
			products.GET("/search", handlers.SearchProducts)
		}

		admin := internal.Group("/admin")
		{
			admin.POST("/offers/import/:marketId", handlers.ImportOffers)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	offerSweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := telemetryCleanup(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to shut down telemetry")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "comparison-service").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}

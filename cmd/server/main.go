// Command server runs the GreenScore analytics API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gulnaramus-data/greenfintech/internal/config"
	"github.com/gulnaramus-data/greenfintech/internal/handlers"
	"github.com/gulnaramus-data/greenfintech/internal/ingest"
	"github.com/gulnaramus-data/greenfintech/internal/middleware"
	"github.com/gulnaramus-data/greenfintech/internal/repositories"
	"github.com/gulnaramus-data/greenfintech/internal/services"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg)

	repo := repositories.NewDatasetRepository()
	metrics := services.NewPrometheusMetrics()
	scoring := services.NewScoringService()
	trend := services.NewTrendService()
	benefits := services.NewBenefitsService()
	recommendations := services.NewRecommendationService(scoring)
	generator := services.NewDemoGenerator(cfg.Data.DemoSeed)
	loader := ingest.NewLoader()
	datasetService := services.NewDatasetService(loader, generator, scoring, repo, metrics)

	if err := loadInitialDataset(datasetService, cfg.Data); err != nil {
		slog.Error("initial dataset load failed", "error", err)
		os.Exit(1)
	}

	e := buildServer(cfg, repo, scoring, trend, benefits, recommendations, metrics, datasetService)

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		slog.Info("server starting", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func loadInitialDataset(dataset services.DatasetServiceInterface, cfg config.DataConfig) error {
	if cfg.UseDemoData {
		now := time.Now().UTC()
		return dataset.LoadDemo(cfg.DemoUsers, cfg.DemoTransactionsPerUser, now.AddDate(-1, 0, 0), now)
	}
	return dataset.LoadFromFiles(cfg.TransactionsPath, cfg.ReferencePath)
}

func buildServer(
	cfg *config.Config,
	repo repositories.DatasetRepositoryInterface,
	scoring services.ScoringServiceInterface,
	trend services.TrendServiceInterface,
	benefits services.BenefitsServiceInterface,
	recommendations services.RecommendationServiceInterface,
	metrics services.MetricsRecorderInterface,
	datasetService services.DatasetServiceInterface,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDevelopment()
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))

	healthHandler := handlers.NewHealthCheckHandler(repo)
	dashboardHandler := handlers.NewDashboardHandler(
		repo, scoring, trend, metrics,
		cfg.Scoring.ActiveThreshold, cfg.Scoring.TargetScore,
	)
	clientHandler := handlers.NewClientHandler(repo, scoring, trend, benefits, recommendations, metrics)
	datasetHandler := handlers.NewDatasetHandler(datasetService, cfg.Data)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/dashboard", dashboardHandler.GetDashboard)
	api.GET("/trend", dashboardHandler.GetTrend)
	api.GET("/users", clientHandler.ListUsers)
	api.GET("/users/:id/profile", clientHandler.GetProfile)
	api.GET("/users/:id/benefits", clientHandler.GetBenefits)
	api.GET("/users/:id/recommendations", clientHandler.GetRecommendations)
	api.GET("/users/:id/trend", clientHandler.GetTrend)
	api.POST("/dataset/reload", datasetHandler.Reload)

	return e
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/weatherexplorer/backend/internal/api/http"
	"github.com/weatherexplorer/backend/internal/config"
	"github.com/weatherexplorer/backend/internal/scheduler"
	"github.com/weatherexplorer/backend/internal/store"
	"github.com/weatherexplorer/backend/internal/weather"
	"github.com/weatherexplorer/backend/internal/weather/providers"
)

const (
	geoBaseURL       = "https://api.openweathermap.org/geo/1.0"
	weatherBaseURL   = "https://api.openweathermap.org/data/2.5"
	openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"
)

func main() {
	slogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(slogger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Provider adapters with resilience (backoff + circuit breaker).
	geocoder := providers.NewOpenWeatherGeocoder(httpClient, geoBaseURL, cfg.OpenWeatherAPIKey, cfg.SuggestRPS, slogger)
	current := providers.NewOpenWeatherProvider(httpClient, weatherBaseURL, cfg.OpenWeatherAPIKey)
	forecast := providers.NewOpenMeteoProvider(httpClient, openMeteoBaseURL)

	// Normalization seam and lookup pipeline.
	normalizer := weather.NewNormalizer(cfg.FeelsLikeOffsets)
	service := weather.NewService(geocoder, current, forecast, normalizer, cfg.HorizonHours, cfg.ForecastDays, slogger)

	// Orchestrator cache with staleness window, plus a janitor sweeping it.
	cache := store.NewMemoryCache()
	orchestrator := weather.NewOrchestrator(cache, service.Fetch, cfg.Staleness, slogger)

	janitor := scheduler.New(orchestrator, cfg.SweepInterval, slogger)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start cache janitor: %v", err)
	}
	defer janitor.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-explorer",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-explorer",
		})
	})

	httpapi.RegisterRoutes(app, orchestrator, service, cfg.SuggestLimit)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slogger.Error("fiber server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slogger.Error("error during shutdown", "error", err)
	}
}

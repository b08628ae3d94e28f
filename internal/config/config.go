package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/weatherexplorer/backend/internal/weather"
)

// AppConfig carries every tunable the process needs, including values that
// could have been constants (staleness window, horizon, feels-like offsets),
// so tests can inject zero windows and fake credentials instead of patching
// globals.
type AppConfig struct {
	// OpenWeatherAPIKey authorizes geocoding and current-conditions calls.
	OpenWeatherAPIKey string

	// Staleness is how long a successful lookup short-circuits refetching.
	Staleness time.Duration

	// HorizonHours caps the hourly series length.
	HorizonHours int

	// ForecastDays is the day count requested from the forecast provider.
	ForecastDays int

	// SuggestLimit caps geocoding suggestion results.
	SuggestLimit int

	// SuggestRPS bounds outbound suggestion traffic.
	SuggestRPS float64

	// FeelsLikeOffsets derive night/evening/morning feels-like figures.
	FeelsLikeOffsets weather.FeelsLikeOffsets

	// SweepInterval is how often the cache janitor runs.
	SweepInterval time.Duration

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		HorizonHours:      getenvInt("FORECAST_HORIZON_HOURS", 24),
		ForecastDays:      getenvInt("FORECAST_DAYS", 7),
		SuggestLimit:      getenvInt("SUGGEST_LIMIT", 5),
		SuggestRPS:        getenvFloat("SUGGEST_RPS", 5),
		FeelsLikeOffsets:  weather.DefaultFeelsLikeOffsets,
		Port:              getenvDefault("PORT", "8080"),
	}

	staleness, err := getenvDuration("FORECAST_STALENESS", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_STALENESS: %w", err)
	}
	cfg.Staleness = staleness

	sweep, err := getenvDuration("CACHE_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SWEEP_INTERVAL: %w", err)
	}
	cfg.SweepInterval = sweep

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	if cfg.HorizonHours <= 0 {
		return nil, fmt.Errorf("FORECAST_HORIZON_HOURS must be positive")
	}
	if cfg.ForecastDays <= 0 {
		return nil, fmt.Errorf("FORECAST_DAYS must be positive")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}

package weather

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Service runs one full forecast lookup: resolve the query to coordinates,
// fetch both providers in parallel, and normalize the raw payloads into a
// ForecastBundle. It holds no state; caching and coalescing live in the
// Orchestrator.
type Service struct {
	geocoder   Geocoder
	current    CurrentProvider
	forecast   ForecastProvider
	normalizer *Normalizer

	horizonHours int
	forecastDays int
	logger       *slog.Logger
}

// NewService creates a Service. current may be nil when no current-conditions
// adapter is configured; the resulting bundles then carry no current data,
// which is a reportable state rather than an error (the forecast provider
// has no current fallback to offer).
func NewService(geocoder Geocoder, current CurrentProvider, forecast ForecastProvider,
	normalizer *Normalizer, horizonHours, forecastDays int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		geocoder:     geocoder,
		current:      current,
		forecast:     forecast,
		normalizer:   normalizer,
		horizonHours: horizonHours,
		forecastDays: forecastDays,
		logger:       logger,
	}
}

// Fetch performs the lookup pipeline for a query. Both provider calls run
// concurrently once the location is resolved; if either fails the whole
// lookup fails with that error, wrapped with its stage tag. No partial
// bundle is ever produced.
func (s *Service) Fetch(ctx context.Context, query string) (*ForecastBundle, error) {
	loc, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}

	var (
		rawCurrent  *CurrentPayload
		rawForecast *ForecastPayload
	)

	g, gctx := errgroup.WithContext(ctx)

	if s.current != nil {
		g.Go(func() error {
			p, err := s.current.FetchCurrent(gctx, loc.Latitude, loc.Longitude)
			if err != nil {
				return fmt.Errorf("current: %w", err)
			}
			rawCurrent = p
			return nil
		})
	}

	g.Go(func() error {
		p, err := s.forecast.FetchForecast(gctx, loc.Latitude, loc.Longitude, s.forecastDays)
		if err != nil {
			return fmt.Errorf("forecast: %w", err)
		}
		rawForecast = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle, err := s.normalizer.Bundle(loc, rawCurrent, rawForecast, s.horizonHours)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "forecast normalized",
		"query", query,
		"location", loc.DisplayName,
		"hourly", len(bundle.Hourly),
		"daily", len(bundle.Daily),
		"hasCurrent", bundle.Current != nil,
	)
	return bundle, nil
}

// Suggest delegates to the geocoder's best-effort suggestion lookup.
func (s *Service) Suggest(ctx context.Context, partial string, limit int) []string {
	return s.geocoder.Suggest(ctx, partial, limit)
}

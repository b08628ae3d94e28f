package weather

import (
	"context"
	"time"
)

// Geocoder resolves free-text place names against the primary provider's
// geocoding endpoint.
type Geocoder interface {
	// Resolve returns the highest-confidence match for a non-empty query.
	// Fails with ErrNotFound on zero matches and ErrUpstream on transport
	// or HTTP failure.
	Resolve(ctx context.Context, query string) (Location, error)

	// Suggest returns display strings for a partial query, best effort.
	// It never fails: any upstream problem yields an empty slice.
	Suggest(ctx context.Context, partial string, limit int) []string
}

// CurrentProvider fetches the primary provider's raw current-conditions
// payload for a coordinate pair.
type CurrentProvider interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (*CurrentPayload, error)
}

// ForecastProvider fetches the secondary provider's raw parallel-array
// forecast payload for a coordinate pair.
type ForecastProvider interface {
	FetchForecast(ctx context.Context, lat, lon float64, days int) (*ForecastPayload, error)
}

// Cache is the per-key entry store backing the orchestrator. Implementations
// must make Get/Put atomic with respect to each other.
type Cache interface {
	Get(key string) (Entry, bool)
	Put(key string, e Entry)
	Delete(key string)

	// PruneStale removes terminal entries fetched before the cutoff and
	// returns how many were evicted. Loading entries are never pruned.
	PruneStale(cutoff time.Time) int
}

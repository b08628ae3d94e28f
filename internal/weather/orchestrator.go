package weather

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle state of a query key.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Entry is one query key's cached state.
type Entry struct {
	Status    Status
	Bundle    *ForecastBundle
	Err       error
	FetchedAt time.Time
}

// FetchFunc runs a full forecast lookup for a query. Service.Fetch satisfies it.
type FetchFunc func(ctx context.Context, query string) (*ForecastBundle, error)

// Orchestrator owns the per-key state machine
// Idle -> Loading -> Success | Error. Successes younger than the staleness
// window are served from cache without a network call; errors are never
// cached. Concurrent lookups for the same key are coalesced into a single
// upstream round-trip, and a flight's result is only ever written to its own
// key's entry, so a superseded key cannot clobber another key's state.
type Orchestrator struct {
	cache     Cache
	fetch     FetchFunc
	staleness time.Duration
	group     singleflight.Group
	logger    *slog.Logger

	// now is injectable so tests can drive the staleness window.
	now func() time.Time
}

// NewOrchestrator creates an Orchestrator. staleness is the window during
// which a success short-circuits refetching; zero means every lookup
// refetches.
func NewOrchestrator(cache Cache, fetch FetchFunc, staleness time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cache:     cache,
		fetch:     fetch,
		staleness: staleness,
		logger:    logger,
		now:       time.Now,
	}
}

// NormalizeKey canonicalizes a query into its cache key.
func NormalizeKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Forecast returns the bundle for a query, from cache when fresh. Blank
// queries fail with ErrEmptyQuery without touching any state.
func (o *Orchestrator) Forecast(ctx context.Context, query string) (*ForecastBundle, error) {
	key := NormalizeKey(query)
	if key == "" {
		return nil, ErrEmptyQuery
	}

	if bundle, ok := o.fresh(key); ok {
		return bundle, nil
	}

	v, err, shared := o.group.Do(key, func() (interface{}, error) {
		// A racer may have stored a fresh success between the outer check
		// and this flight starting.
		if bundle, ok := o.fresh(key); ok {
			return bundle, nil
		}

		o.cache.Put(key, Entry{Status: StatusLoading})

		bundle, err := o.fetch(ctx, key)
		if err != nil {
			o.cache.Put(key, Entry{Status: StatusError, Err: err})
			return nil, err
		}

		o.cache.Put(key, Entry{Status: StatusSuccess, Bundle: bundle, FetchedAt: o.now()})
		return bundle, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		o.logger.DebugContext(ctx, "coalesced forecast lookup", "key", key)
	}
	return v.(*ForecastBundle), nil
}

// State reports the current lifecycle state for a query key. Unknown keys
// are Idle.
func (o *Orchestrator) State(query string) Entry {
	key := NormalizeKey(query)
	if key == "" {
		return Entry{Status: StatusIdle}
	}
	if e, ok := o.cache.Get(key); ok {
		return e
	}
	return Entry{Status: StatusIdle}
}

// Invalidate drops a key's cached state so the next lookup refetches.
func (o *Orchestrator) Invalidate(query string) {
	key := NormalizeKey(query)
	if key == "" {
		return
	}
	o.cache.Delete(key)
}

// PruneStale evicts terminal entries older than the staleness window.
// Returns the number evicted.
func (o *Orchestrator) PruneStale() int {
	return o.cache.PruneStale(o.now().Add(-o.staleness))
}

func (o *Orchestrator) fresh(key string) (*ForecastBundle, bool) {
	e, ok := o.cache.Get(key)
	if !ok || e.Status != StatusSuccess {
		return nil, false
	}
	if o.now().Sub(e.FetchedAt) >= o.staleness {
		return nil, false
	}
	return e.Bundle, true
}

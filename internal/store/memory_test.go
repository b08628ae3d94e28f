package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherexplorer/backend/internal/weather"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()

	_, ok := c.Get("london")
	assert.False(t, ok)

	e := weather.Entry{
		Status:    weather.StatusSuccess,
		Bundle:    &weather.ForecastBundle{Location: weather.Location{DisplayName: "London"}},
		FetchedAt: time.Now(),
	}
	c.Put("london", e)

	got, ok := c.Get("london")
	require.True(t, ok)
	assert.Equal(t, weather.StatusSuccess, got.Status)
	assert.Same(t, e.Bundle, got.Bundle)

	c.Delete("london")
	_, ok = c.Get("london")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryCachePutReplaces(t *testing.T) {
	c := NewMemoryCache()

	c.Put("berlin", weather.Entry{Status: weather.StatusLoading})
	c.Put("berlin", weather.Entry{Status: weather.StatusError, Err: weather.ErrUpstream})

	got, ok := c.Get("berlin")
	require.True(t, ok)
	assert.Equal(t, weather.StatusError, got.Status)
	assert.ErrorIs(t, got.Err, weather.ErrUpstream)
	assert.Equal(t, 1, c.Len())
}

func TestPruneStaleKeepsLoadingAndFresh(t *testing.T) {
	c := NewMemoryCache()
	now := time.Now()

	c.Put("old", weather.Entry{Status: weather.StatusSuccess, FetchedAt: now.Add(-time.Hour)})
	c.Put("fresh", weather.Entry{Status: weather.StatusSuccess, FetchedAt: now})
	c.Put("inflight", weather.Entry{Status: weather.StatusLoading})
	c.Put("failed", weather.Entry{Status: weather.StatusError, Err: weather.ErrUpstream})

	pruned := c.PruneStale(now.Add(-5 * time.Minute))

	assert.Equal(t, 2, pruned, "stale success and error entries go")
	_, ok := c.Get("old")
	assert.False(t, ok)
	_, ok = c.Get("failed")
	assert.False(t, ok)
	_, ok = c.Get("fresh")
	assert.True(t, ok)
	_, ok = c.Get("inflight")
	assert.True(t, ok, "in-flight lookups keep their slot")
}

package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherexplorer/backend/internal/weather"
)

func TestFetchForecastRequestShape(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hourly": {
				"time": ["2026-03-10T00:00", "2026-03-10T01:00"],
				"temperature_2m": [5.1, 4.8],
				"apparent_temperature": [3.0, 2.6],
				"weather_code": [61, 61]
			},
			"daily": {
				"time": ["2026-03-10"],
				"temperature_2m_max": [9.0],
				"temperature_2m_min": [3.0],
				"apparent_temperature_max": [7.5],
				"weather_code": [61]
			}
		}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(testClient(), srv.URL)

	payload, err := p.FetchForecast(context.Background(), 51.5074, -0.1278, 7)
	require.NoError(t, err)

	assert.Equal(t, "UTC", gotQuery.Get("timezone"))
	assert.Equal(t, "7", gotQuery.Get("forecast_days"))
	assert.Equal(t, openMeteoHourlyVars, gotQuery.Get("hourly"))
	assert.Equal(t, openMeteoDailyVars, gotQuery.Get("daily"))
	assert.Empty(t, gotQuery.Get("appid"), "open-meteo takes no key")

	require.Len(t, payload.Hourly.Time, 2)
	assert.Equal(t, []int{61, 61}, payload.Hourly.WeatherCode)
	require.Len(t, payload.Daily.Time, 1)
	assert.InDelta(t, 9.0, payload.Daily.Temperature2mMax[0], 1e-9)
}

func TestFetchForecastUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(testClient(), srv.URL)

	_, err := p.FetchForecast(context.Background(), 0, 0, 7)
	assert.ErrorIs(t, err, weather.ErrUpstream)
}

func TestFetchForecastMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(testClient(), srv.URL)

	_, err := p.FetchForecast(context.Background(), 0, 0, 7)
	assert.ErrorIs(t, err, weather.ErrMalformedPayload)
}

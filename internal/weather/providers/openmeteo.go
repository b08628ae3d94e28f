package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/weatherexplorer/backend/internal/weather"
)

const (
	openMeteoHourlyVars = "temperature_2m,apparent_temperature,weather_code"
	openMeteoDailyVars  = "temperature_2m_max,temperature_2m_min,apparent_temperature_max,weather_code"
)

// OpenMeteoProvider fetches the secondary provider's hourly and daily
// parallel-array series by coordinates. Open-Meteo needs no API key.
type OpenMeteoProvider struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates a forecast adapter against the given base URL
// (production: https://api.open-meteo.com/v1/forecast).
func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: defaultBreaker("openmeteo"),
	}
}

// FetchForecast retrieves the raw forecast series for the requested number
// of days. Timestamps are requested in UTC so the series zips cleanly into
// epoch seconds downstream.
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, lat, lon float64, days int) (*weather.ForecastPayload, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("hourly", openMeteoHourlyVars)
		values.Set("daily", openMeteoDailyVars)
		values.Set("timezone", "UTC")
		values.Set("forecast_days", strconv.Itoa(days))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding forecast response: %v", weather.ErrMalformedPayload, err)
	}

	return &payload, nil
}

var _ weather.ForecastProvider = (*OpenMeteoProvider)(nil)

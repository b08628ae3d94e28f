package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/weatherexplorer/backend/internal/weather"
)

// OpenWeatherGeocoder resolves place names through the primary provider's
// geocoding endpoint. Suggestion lookups are rate limited because they fire
// on keystrokes upstream; resolution shares the same circuit breaker so a
// dead endpoint trips both paths.
type OpenWeatherGeocoder struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewOpenWeatherGeocoder creates a geocoder against the given base URL
// (the production endpoint is https://api.openweathermap.org/geo/1.0).
// suggestRPS bounds best-effort suggestion traffic.
func NewOpenWeatherGeocoder(client *http.Client, baseURL, apiKey string, suggestRPS float64, logger *slog.Logger) *OpenWeatherGeocoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenWeatherGeocoder{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: defaultBreaker("geocoder"),
		limiter: rate.NewLimiter(rate.Limit(suggestRPS), 1),
		logger:  logger,
	}
}

type geoResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (g *OpenWeatherGeocoder) query(ctx context.Context, q string, limit int) ([]geoResult, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", q)
		values.Set("limit", strconv.Itoa(limit))
		values.Set("appid", g.apiKey)

		u := fmt.Sprintf("%s/direct?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var results []geoResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: decoding geocoding response: %v", weather.ErrMalformedPayload, err)
	}
	return results, nil
}

// Resolve returns the first (highest-confidence) match for a query.
func (g *OpenWeatherGeocoder) Resolve(ctx context.Context, query string) (weather.Location, error) {
	results, err := g.query(ctx, query, 1)
	if err != nil {
		return weather.Location{}, err
	}
	if len(results) == 0 {
		return weather.Location{}, fmt.Errorf("%w: %q", weather.ErrNotFound, query)
	}

	first := results[0]
	return weather.Location{
		DisplayName: first.Name,
		Region:      first.Country,
		Latitude:    first.Lat,
		Longitude:   first.Lon,
	}, nil
}

// Suggest returns up to limit display strings for a partial query, formatted
// "City, State, Country" with the state omitted when absent. Suggestions are
// UI sugar, not critical path: any failure, including rate limiting, yields
// an empty slice.
func (g *OpenWeatherGeocoder) Suggest(ctx context.Context, partial string, limit int) []string {
	if strings.TrimSpace(partial) == "" || limit <= 0 {
		return nil
	}
	if !g.limiter.Allow() {
		g.logger.DebugContext(ctx, "suggestion lookup rate limited", "query", partial)
		return nil
	}

	results, err := g.query(ctx, partial, limit)
	if err != nil {
		g.logger.DebugContext(ctx, "suggestion lookup failed", "query", partial, "error", err)
		return nil
	}

	suggestions := make([]string, 0, len(results))
	for _, r := range results {
		parts := []string{r.Name}
		if r.State != "" {
			parts = append(parts, r.State)
		}
		parts = append(parts, r.Country)
		suggestions = append(suggestions, strings.Join(parts, ", "))
	}
	return suggestions
}

var _ weather.Geocoder = (*OpenWeatherGeocoder)(nil)

package weather

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	loc Location
	err error
}

func (f *fakeGeocoder) Resolve(ctx context.Context, query string) (Location, error) {
	if f.err != nil {
		return Location{}, f.err
	}
	return f.loc, nil
}

func (f *fakeGeocoder) Suggest(ctx context.Context, partial string, limit int) []string {
	return nil
}

type fakeCurrentProvider struct {
	payload *CurrentPayload
	err     error
}

func (f *fakeCurrentProvider) FetchCurrent(ctx context.Context, lat, lon float64) (*CurrentPayload, error) {
	return f.payload, f.err
}

type fakeForecastProvider struct {
	payload *ForecastPayload
	err     error
}

func (f *fakeForecastProvider) FetchForecast(ctx context.Context, lat, lon float64, days int) (*ForecastPayload, error) {
	return f.payload, f.err
}

func londonForecastPayload() *ForecastPayload {
	p := &ForecastPayload{Hourly: hourlySeries(24), Daily: dailySeries(7)}
	p.Daily.WeatherCode[0] = 61
	return p
}

func TestFetchLondonScenario(t *testing.T) {
	geocoder := &fakeGeocoder{loc: Location{
		DisplayName: "London", Region: "GB", Latitude: 51.5074, Longitude: -0.1278,
	}}
	current := &fakeCurrentProvider{payload: validCurrentPayload()}
	forecast := &fakeForecastProvider{payload: londonForecastPayload()}

	svc := NewService(geocoder, current, forecast, NewNormalizer(DefaultFeelsLikeOffsets), 24, 7, nil)

	bundle, err := svc.Fetch(context.Background(), "London")
	require.NoError(t, err)

	assert.Equal(t, 51.5074, bundle.Location.Latitude)
	assert.Equal(t, -0.1278, bundle.Location.Longitude)

	// Current conditions keep the primary provider's native icon.
	require.NotNil(t, bundle.Current)
	assert.Equal(t, "03d", bundle.Current.Condition.Icon)

	// Daily code 61 maps through the table to "rain" on the "10" base.
	require.NotEmpty(t, bundle.Daily)
	assert.Equal(t, "rain", bundle.Daily[0].Condition.Description)
	assert.True(t, strings.HasPrefix(bundle.Daily[0].Condition.Icon, "10"))
}

func TestFetchStageTags(t *testing.T) {
	normalizer := NewNormalizer(DefaultFeelsLikeOffsets)
	goodGeo := &fakeGeocoder{loc: Location{DisplayName: "London"}}

	t.Run("location", func(t *testing.T) {
		geocoder := &fakeGeocoder{err: fmt.Errorf("%w: %q", ErrNotFound, "atlantis")}
		svc := NewService(geocoder, nil, &fakeForecastProvider{payload: londonForecastPayload()}, normalizer, 24, 7, nil)

		_, err := svc.Fetch(context.Background(), "Atlantis")
		require.ErrorIs(t, err, ErrNotFound)
		assert.True(t, strings.HasPrefix(err.Error(), "location:"), "got %q", err)
	})

	t.Run("current", func(t *testing.T) {
		current := &fakeCurrentProvider{err: fmt.Errorf("%w: status 503", ErrUpstream)}
		svc := NewService(goodGeo, current, &fakeForecastProvider{payload: londonForecastPayload()}, normalizer, 24, 7, nil)

		_, err := svc.Fetch(context.Background(), "London")
		require.ErrorIs(t, err, ErrUpstream)
		assert.Contains(t, err.Error(), "current:")
	})

	t.Run("forecast", func(t *testing.T) {
		forecast := &fakeForecastProvider{err: fmt.Errorf("%w: status 500", ErrUpstream)}
		svc := NewService(goodGeo, &fakeCurrentProvider{payload: validCurrentPayload()}, forecast, normalizer, 24, 7, nil)

		_, err := svc.Fetch(context.Background(), "London")
		require.ErrorIs(t, err, ErrUpstream)
		assert.Contains(t, err.Error(), "forecast:")
	})
}

func TestFetchFailFastNoPartialBundle(t *testing.T) {
	geocoder := &fakeGeocoder{loc: Location{DisplayName: "London"}}
	current := &fakeCurrentProvider{err: fmt.Errorf("%w: status 502", ErrUpstream)}
	forecast := &fakeForecastProvider{payload: londonForecastPayload()}

	svc := NewService(geocoder, current, forecast, NewNormalizer(DefaultFeelsLikeOffsets), 24, 7, nil)

	bundle, err := svc.Fetch(context.Background(), "London")
	require.Error(t, err)
	assert.Nil(t, bundle, "either provider failing yields no bundle at all")
}

func TestFetchWithoutCurrentProvider(t *testing.T) {
	geocoder := &fakeGeocoder{loc: Location{DisplayName: "London"}}
	forecast := &fakeForecastProvider{payload: londonForecastPayload()}

	svc := NewService(geocoder, nil, forecast, NewNormalizer(DefaultFeelsLikeOffsets), 24, 7, nil)

	bundle, err := svc.Fetch(context.Background(), "London")
	require.NoError(t, err)
	assert.Nil(t, bundle.Current)
	assert.Len(t, bundle.Hourly, 24)
	assert.Len(t, bundle.Daily, 7)
}

func TestFetchMalformedForecastPayload(t *testing.T) {
	geocoder := &fakeGeocoder{loc: Location{DisplayName: "London"}}
	bad := londonForecastPayload()
	bad.Hourly.Temperature2m = bad.Hourly.Temperature2m[:3]
	forecast := &fakeForecastProvider{payload: bad}

	svc := NewService(geocoder, nil, forecast, NewNormalizer(DefaultFeelsLikeOffsets), 24, 7, nil)

	_, err := svc.Fetch(context.Background(), "London")
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestServiceThroughOrchestrator(t *testing.T) {
	geocoder := &fakeGeocoder{loc: Location{
		DisplayName: "London", Region: "GB", Latitude: 51.5074, Longitude: -0.1278,
	}}
	svc := NewService(geocoder, &fakeCurrentProvider{payload: validCurrentPayload()},
		&fakeForecastProvider{payload: londonForecastPayload()},
		NewNormalizer(DefaultFeelsLikeOffsets), 24, 7, nil)

	o := NewOrchestrator(newTestCache(), svc.Fetch, 5*time.Minute, nil)

	bundle, err := o.Forecast(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, "rain", bundle.Daily[0].Condition.Description)
	assert.Equal(t, StatusSuccess, o.State("london").Status)
}

package weather

import (
	"fmt"
	"math"
	"time"
)

// Timestamp layouts used by the secondary provider when asked for UTC times.
const (
	hourlyTimeLayout = "2006-01-02T15:04"
	dailyTimeLayout  = "2006-01-02"
)

// FeelsLikeOffsets derives the night/evening/morning feels-like figures from
// the single daily apparent temperature the secondary provider exposes. The
// defaults are an explicit approximation with no meteorological source; they
// are configuration precisely so nobody has to treat them as ground truth.
type FeelsLikeOffsets struct {
	NightC   float64
	EveningC float64
	MorningC float64
}

// DefaultFeelsLikeOffsets are the stock derivation offsets.
var DefaultFeelsLikeOffsets = FeelsLikeOffsets{NightC: -2, EveningC: -1, MorningC: -1}

// Normalizer turns raw provider payloads into the unified forecast model.
// It preserves full numeric precision; rounding for display belongs to
// presentation.
type Normalizer struct {
	offsets FeelsLikeOffsets

	// hourOf extracts the local hour from epoch seconds for the day/night
	// icon decision. Injectable for tests.
	hourOf func(int64) int
}

// NewNormalizer creates a Normalizer with the given offsets.
func NewNormalizer(offsets FeelsLikeOffsets) *Normalizer {
	return &Normalizer{
		offsets: offsets,
		hourOf:  utcHourOf,
	}
}

func utcHourOf(epoch int64) int {
	return time.Unix(epoch, 0).UTC().Hour()
}

// NormalizeCurrent projects the primary provider's payload onto
// CurrentConditions. The condition comes straight from the provider's own
// description and icon; the code mapper is not involved. Returns
// ErrMalformedPayload when a required numeric field is absent or NaN.
func (n *Normalizer) NormalizeCurrent(loc Location, raw *CurrentPayload) (*CurrentConditions, error) {
	required := map[string]*float64{
		"main.temp":       raw.Main.Temp,
		"main.feels_like": raw.Main.FeelsLike,
		"main.humidity":   raw.Main.Humidity,
		"main.pressure":   raw.Main.Pressure,
		"wind.speed":      raw.Wind.Speed,
	}
	for field, v := range required {
		if v == nil || math.IsNaN(*v) {
			return nil, fmt.Errorf("%w: current field %s missing", ErrMalformedPayload, field)
		}
	}
	if len(raw.Weather) == 0 {
		return nil, fmt.Errorf("%w: current weather array empty", ErrMalformedPayload)
	}

	return &CurrentConditions{
		Location:         loc,
		TemperatureC:     *raw.Main.Temp,
		FeelsLikeC:       *raw.Main.FeelsLike,
		HumidityPct:      *raw.Main.Humidity,
		PressureHPa:      *raw.Main.Pressure,
		WindSpeedMS:      *raw.Wind.Speed,
		WindDirectionDeg: raw.Wind.Deg,
		Condition: Condition{
			Description: raw.Weather[0].Description,
			Icon:        raw.Weather[0].Icon,
		},
		SunriseEpoch: raw.Sys.Sunrise,
		SunsetEpoch:  raw.Sys.Sunset,
	}, nil
}

// NormalizeHourly zips the hourly parallel arrays into HourlyPoints,
// truncated to horizonHours entries. Mismatched array lengths yield
// ErrMalformedPayload and no partial result.
func (n *Normalizer) NormalizeHourly(raw *ForecastPayload, horizonHours int) ([]HourlyPoint, error) {
	h := raw.Hourly
	if len(h.Time) != len(h.Temperature2m) ||
		len(h.Time) != len(h.ApparentTemperature) ||
		len(h.Time) != len(h.WeatherCode) {
		return nil, fmt.Errorf("%w: hourly series lengths diverge (time=%d temp=%d apparent=%d code=%d)",
			ErrMalformedPayload, len(h.Time), len(h.Temperature2m), len(h.ApparentTemperature), len(h.WeatherCode))
	}

	count := len(h.Time)
	if horizonHours > 0 && count > horizonHours {
		count = horizonHours
	}

	points := make([]HourlyPoint, 0, count)
	for i := 0; i < count; i++ {
		ts, err := time.ParseInLocation(hourlyTimeLayout, h.Time[i], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: hourly time %q: %v", ErrMalformedPayload, h.Time[i], err)
		}
		epoch := ts.Unix()

		points = append(points, HourlyPoint{
			EpochSeconds: epoch,
			TemperatureC: h.Temperature2m[i],
			FeelsLikeC:   h.ApparentTemperature[i],
			Condition:    ConditionFor(h.WeatherCode[i], IsDaytime(epoch, n.hourOf)),
		})
	}
	return points, nil
}

// NormalizeDaily zips the daily parallel arrays into DailyPoints. The day
// temperature is the min/max midpoint and the non-day feels-like figures are
// offset from the daily apparent maximum; both are documented
// approximations. Daily icons always use the daytime suffix, since a daily
// point stands for the whole day.
func (n *Normalizer) NormalizeDaily(raw *ForecastPayload) ([]DailyPoint, error) {
	d := raw.Daily
	if len(d.Time) != len(d.Temperature2mMax) ||
		len(d.Time) != len(d.Temperature2mMin) ||
		len(d.Time) != len(d.ApparentTemperatureMax) ||
		len(d.Time) != len(d.WeatherCode) {
		return nil, fmt.Errorf("%w: daily series lengths diverge (time=%d max=%d min=%d apparent=%d code=%d)",
			ErrMalformedPayload, len(d.Time), len(d.Temperature2mMax), len(d.Temperature2mMin),
			len(d.ApparentTemperatureMax), len(d.WeatherCode))
	}

	points := make([]DailyPoint, 0, len(d.Time))
	for i := range d.Time {
		day, err := time.ParseInLocation(dailyTimeLayout, d.Time[i], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: daily time %q: %v", ErrMalformedPayload, d.Time[i], err)
		}

		feelsDay := d.ApparentTemperatureMax[i]
		points = append(points, DailyPoint{
			EpochSeconds:    day.Add(12 * time.Hour).Unix(),
			TempMinC:        d.Temperature2mMin[i],
			TempMaxC:        d.Temperature2mMax[i],
			TempDayC:        (d.Temperature2mMax[i] + d.Temperature2mMin[i]) / 2,
			FeelsLikeDayC:   feelsDay,
			FeelsLikeNightC: feelsDay + n.offsets.NightC,
			FeelsLikeEveC:   feelsDay + n.offsets.EveningC,
			FeelsLikeMornC:  feelsDay + n.offsets.MorningC,
			Condition:       ConditionFor(d.WeatherCode[i], true),
		})
	}
	return points, nil
}

// Bundle merges both providers' payloads into one ForecastBundle. The
// primary provider's current payload is preferred when present; when it is
// nil the bundle simply carries no current conditions, because the secondary
// provider supplies forecast series only.
func (n *Normalizer) Bundle(loc Location, current *CurrentPayload, forecast *ForecastPayload, horizonHours int) (*ForecastBundle, error) {
	hourly, err := n.NormalizeHourly(forecast, horizonHours)
	if err != nil {
		return nil, err
	}
	daily, err := n.NormalizeDaily(forecast)
	if err != nil {
		return nil, err
	}
	if len(hourly) == 0 || len(daily) == 0 {
		return nil, fmt.Errorf("%w: forecast series empty", ErrMalformedPayload)
	}

	bundle := &ForecastBundle{
		Location: loc,
		Hourly:   hourly,
		Daily:    daily,
	}

	if current != nil {
		cc, err := n.NormalizeCurrent(loc, current)
		if err != nil {
			return nil, err
		}
		bundle.Current = cc
	}

	return bundle, nil
}

package weather

// Location is a resolved place. It is created once per search by the
// geocoder and never mutated afterwards.
type Location struct {
	DisplayName string  `json:"displayName"`
	Region      string  `json:"region"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Condition is the unified weather-condition shape every consumer sees,
// regardless of which upstream produced it. Icon is always a two-digit
// base followed by a "d" or "n" suffix.
type Condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentConditions holds the normalized current-weather view.
// Temperatures are Celsius, timestamps epoch seconds UTC.
type CurrentConditions struct {
	Location         Location  `json:"location"`
	TemperatureC     float64   `json:"temperatureC"`
	FeelsLikeC       float64   `json:"feelsLikeC"`
	HumidityPct      float64   `json:"humidityPct"`
	PressureHPa      float64   `json:"pressureHPa"`
	WindSpeedMS      float64   `json:"windSpeedMs"`
	WindDirectionDeg float64   `json:"windDirectionDeg"`
	Condition        Condition `json:"condition"`
	SunriseEpoch     int64     `json:"sunriseEpoch"`
	SunsetEpoch      int64     `json:"sunsetEpoch"`
}

// HourlyPoint is one step of the hourly forecast series.
type HourlyPoint struct {
	EpochSeconds int64     `json:"epochSeconds"`
	TemperatureC float64   `json:"temperatureC"`
	FeelsLikeC   float64   `json:"feelsLikeC"`
	Condition    Condition `json:"condition"`
}

// DailyPoint is one day of the daily forecast series. EpochSeconds is
// anchored at midday. TempDayC and the non-day feels-like figures are
// derived approximations; see Normalizer.
type DailyPoint struct {
	EpochSeconds    int64     `json:"epochSeconds"`
	TempMinC        float64   `json:"tempMinC"`
	TempMaxC        float64   `json:"tempMaxC"`
	TempDayC        float64   `json:"tempDayC"`
	FeelsLikeDayC   float64   `json:"feelsLikeDayC"`
	FeelsLikeNightC float64   `json:"feelsLikeNightC"`
	FeelsLikeEveC   float64   `json:"feelsLikeEveningC"`
	FeelsLikeMornC  float64   `json:"feelsLikeMorningC"`
	Condition       Condition `json:"condition"`
}

// ForecastBundle is the unified model handed to presentation. Hourly and
// Daily are non-empty on success and ordered ascending by time. Current is
// nil when the primary provider had no current-conditions payload; that is
// an observable state of the model, not an error.
type ForecastBundle struct {
	Location Location           `json:"location"`
	Current  *CurrentConditions `json:"current"`
	Hourly   []HourlyPoint      `json:"hourly"`
	Daily    []DailyPoint       `json:"daily"`
}

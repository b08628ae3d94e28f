package weather

// Raw upstream payload shapes. The two providers are structurally
// incompatible; these types are the only place their schemas appear.
// Everything downstream of the normalizer sees the unified model.

// CurrentPayload mirrors the primary provider's current-conditions response.
// Required numeric fields are pointers so the normalizer can tell an absent
// field from a zero value.
type CurrentPayload struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
		Pressure  *float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed *float64 `json:"speed"`
		Deg   float64  `json:"deg"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

// ForecastPayload mirrors the secondary provider's parallel-array time
// series. Each series is zipped index-by-index during normalization.
type ForecastPayload struct {
	Hourly HourlySeries `json:"hourly"`
	Daily  DailySeries  `json:"daily"`
}

// HourlySeries holds the hourly parallel arrays.
type HourlySeries struct {
	Time                []string  `json:"time"`
	Temperature2m       []float64 `json:"temperature_2m"`
	ApparentTemperature []float64 `json:"apparent_temperature"`
	WeatherCode         []int     `json:"weather_code"`
}

// DailySeries holds the daily parallel arrays.
type DailySeries struct {
	Time                   []string  `json:"time"`
	Temperature2mMax       []float64 `json:"temperature_2m_max"`
	Temperature2mMin       []float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax []float64 `json:"apparent_temperature_max"`
	WeatherCode            []int     `json:"weather_code"`
}

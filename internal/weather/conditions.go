package weather

// The secondary provider classifies weather with small integer WMO codes,
// while icons follow the primary provider's scheme: a two-digit base plus a
// "d"/"n" day-night suffix. This table is the single place where numeric
// codes become the unified condition shape. Lookups are total: any code
// outside the table falls back to "unknown" with the mist base "50".

type codeRange struct {
	min, max    int
	description string
	iconBase    string
}

// conditionTable maps contiguous code bands to shared descriptions.
// Rows are ordered ascending and scanned linearly.
var conditionTable = []codeRange{
	{0, 0, "clear sky", "01"},
	{1, 2, "partly cloudy", "02"},
	{3, 3, "overcast", "04"},
	{45, 48, "fog", "50"},
	{51, 57, "drizzle", "09"},
	{61, 67, "rain", "10"},
	{71, 77, "snow", "13"},
	{80, 82, "rain showers", "09"},
	{85, 86, "snow showers", "13"},
	{95, 99, "thunderstorm", "11"},
}

const (
	unknownDescription = "unknown"
	unknownIconBase    = "50"
)

// Describe returns the human description for a weather code.
// Defined for every integer; unmapped codes yield "unknown".
func Describe(code int) string {
	for _, r := range conditionTable {
		if code >= r.min && code <= r.max {
			return r.description
		}
	}
	return unknownDescription
}

// IconBase returns the two-digit icon base for a weather code.
// Defined for every integer; unmapped codes yield "50".
func IconBase(code int) string {
	for _, r := range conditionTable {
		if code >= r.min && code <= r.max {
			return r.iconBase
		}
	}
	return unknownIconBase
}

// Icon returns the full icon token for a weather code.
func Icon(code int, daytime bool) string {
	if daytime {
		return IconBase(code) + "d"
	}
	return IconBase(code) + "n"
}

// ConditionFor builds the unified condition for a weather code.
func ConditionFor(code int, daytime bool) Condition {
	return Condition{
		Description: Describe(code),
		Icon:        Icon(code, daytime),
	}
}

// IsDaytime reports whether the local hour of the given timestamp falls in
// [6, 18). hourOf extracts the local hour from epoch seconds, which keeps
// the rule testable without wall-clock coupling. This is a deliberate
// approximation: forecast points get no real sunrise/sunset lookup.
func IsDaytime(epochSeconds int64, hourOf func(int64) int) bool {
	h := hourOf(epochSeconds)
	return h >= 6 && h < 18
}

package weather

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown    Condition = "unknown"
	ConditionClear      Condition = "clear"
	ConditionClouds     Condition = "clouds"
	ConditionRain       Condition = "rain"
	ConditionStorm      Condition = "storm"
	ConditionSnow       Condition = "snow"
	ConditionAtmosphere Condition = "atmosphere"
)

// ClassifyCondition maps the provider's weather[0].main group to a Condition.
func ClassifyCondition(main string) Condition {
	switch main {
	case "Clear":
		return ConditionClear
	case "Clouds":
		return ConditionClouds
	case "Rain", "Drizzle":
		return ConditionRain
	case "Thunderstorm":
		return ConditionStorm
	case "Snow":
		return ConditionSnow
	case "Mist", "Smoke", "Haze", "Dust", "Fog", "Sand", "Ash", "Squall", "Tornado":
		return ConditionAtmosphere
	default:
		return ConditionUnknown
	}
}

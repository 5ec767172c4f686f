// codes.go - WMO weather-code to condition vocabulary mapping.

package weather

// Condition vocabulary served to the dashboard.
const (
	ConditionClear        = "Clear"
	ConditionCloudy       = "Cloudy"
	ConditionFog          = "Fog"
	ConditionRain         = "Rain"
	ConditionSnow         = "Snow"
	ConditionThunderstorm = "Thunderstorm"
	ConditionUnknown      = "Unknown"
)

// ConditionFromCode maps a numeric WMO weather code to the fixed condition
// vocabulary using coarse code ranges.
func ConditionFromCode(code int) string {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code >= 45 && code <= 48:
		return ConditionFog
	case code >= 51 && code <= 67:
		return ConditionRain
	case code >= 71 && code <= 77:
		return ConditionSnow
	case code >= 80 && code <= 82:
		return ConditionRain
	case code >= 85 && code <= 86:
		return ConditionSnow
	case code >= 95 && code <= 99:
		return ConditionThunderstorm
	default:
		return ConditionUnknown
	}
}

package weather

const (
	heavyPrecipitationMM = 3.0
	overcastCloudCover   = 80
	clearSkyCloudCover   = 20
)

// Condition classifies precipitation (mm) and cloud cover (%) into a label
func Condition(precipitation float64, cloudCover int, isDay bool) string {
	switch {
	case precipitation >= heavyPrecipitationMM:
		return "Rainy"
	case cloudCover >= overcastCloudCover:
		return "Cloudy"
	case isDay && cloudCover <= clearSkyCloudCover:
		return "Sunny"
	default:
		return "Clear"
	}
}

// Icon returns the emoji matching Condition for the same inputs
func Icon(precipitation float64, cloudCover int, isDay bool) string {
	switch {
	case precipitation >= heavyPrecipitationMM:
		return "🌧"
	case cloudCover >= overcastCloudCover:
		return "☁️"
	case isDay && cloudCover <= clearSkyCloudCover:
		return "☀️"
	default:
		return "🌤"
	}
}

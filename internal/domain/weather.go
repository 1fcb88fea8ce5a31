package domain

import "time"

// CurrentWeather is a snapshot of conditions at one point
type CurrentWeather struct {
	TemperatureC  float64
	FeelsLikeC    float64
	Humidity      int
	WindSpeedKph  float64
	Precipitation float64
	RainChance    int
	CloudCover    int
	UVIndex       float64
	IsDay         bool
	Condition     string
	Icon          string
}

// HourlyForecast is one forecast hour
type HourlyForecast struct {
	Time          time.Time
	TemperatureC  float64
	FeelsLikeC    float64
	Humidity      int
	WindSpeedKph  float64
	Precipitation float64
	RainChance    int
	CloudCover    int
	UVIndex       float64
	IsDay         bool
	Condition     string
	Icon          string
}

// DailyForecast is one forecast day
type DailyForecast struct {
	Date            time.Time
	TemperatureMaxC float64
	TemperatureMinC float64
	Precipitation   float64
	RainChance      int
	CloudCover      int
	Condition       string
	Icon            string
}

// Weather bundles everything one forecast call returns
type Weather struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Current   CurrentWeather
	Hourly    []HourlyForecast
	Daily     []DailyForecast
}

// Place is the result of reverse geocoding
type Place struct {
	City    string
	Country string
}

package testutil

import (
	"time"

	"nastaran/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user, optionally with a saved location
func NewTestUser(telegramID int64, firstName string, loc *domain.UserLocation) *domain.User {
	return &domain.User{
		ID:         "00000000-0000-0000-0000-000000000001",
		TelegramID: telegramID,
		FirstName:  firstName,
		Timezone:   "UTC",
		Location:   loc,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// NewTestInspiration creates a test inspiration
func NewTestInspiration(id string, telegramID int64, content string) *domain.Inspiration {
	return &domain.Inspiration{
		ID:          id,
		TelegramID:  telegramID,
		ImageFileID: "photo-" + id,
		Content:     content,
		Tags:        []string{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// NewTestWeather creates a forecast with one hour and one day
func NewTestWeather() *domain.Weather {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Weather{
		Latitude:  35.7,
		Longitude: 51.4,
		Timezone:  "UTC",
		Current: domain.CurrentWeather{
			TemperatureC: 12.5,
			FeelsLikeC:   10.1,
			Humidity:     40,
			WindSpeedKph: 8.4,
			RainChance:   5,
			CloudCover:   10,
			UVIndex:      2.5,
			IsDay:        true,
			Condition:    "Sunny",
			Icon:         "☀️",
		},
		Hourly: []domain.HourlyForecast{
			{Time: now, TemperatureC: 12, FeelsLikeC: 10, Humidity: 40, WindSpeedKph: 8, RainChance: 5, Condition: "Sunny", Icon: "☀️"},
		},
		Daily: []domain.DailyForecast{
			{Date: now, TemperatureMaxC: 14, TemperatureMinC: 4, RainChance: 10, Condition: "Sunny", Icon: "☀️"},
		},
	}
}

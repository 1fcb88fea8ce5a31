package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"nastaran/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const forecastJSON = `{
  "latitude": 35.7,
  "longitude": 51.4,
  "timezone": "UTC",
  "current": {
    "time": "2025-03-01T10:15",
    "temperature_2m": 12.5,
    "relative_humidity_2m": 40,
    "apparent_temperature": 10.1,
    "is_day": 1,
    "precipitation": 0.2,
    "cloud_cover": 10,
    "wind_speed_10m": 8.4
  },
  "hourly": {
    "time": ["2025-03-01T09:00", "2025-03-01T10:00", "2025-03-01T11:00", "2025-03-02T10:00"],
    "temperature_2m": [11.0, 12.0, 13.0, 9.0],
    "relative_humidity_2m": [45, 40, 38, 70],
    "apparent_temperature": [9.5, 10.0, 11.2, 7.0],
    "precipitation_probability": [0, 5, 10, 90],
    "precipitation": [0.0, 0.1, 0.0, 4.2],
    "cloud_cover": [20, 10, 30, 90],
    "wind_speed_10m": [7.0, 8.0, 9.0, 20.0],
    "uv_index": [1.5, 2.5, 3.0, 0.5],
    "is_day": [1, 1, 1, 1]
  },
  "daily": {
    "time": ["2025-03-01", "2025-03-02"],
    "temperature_2m_max": [14.0, 10.0],
    "temperature_2m_min": [4.0, 6.0],
    "precipitation_sum": [0.1, 5.0],
    "precipitation_probability_max": [10, 90]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(time.Minute, zap.NewNop()).WithBaseURLs(
		server.URL+"/forecast",
		server.URL+"/search",
		server.URL+"/reverse",
	)
	client.now = func() time.Time { return time.Date(2025, 3, 1, 10, 20, 0, 0, time.UTC) }
	return client
}

func TestClient_Forecast(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "auto", r.URL.Query().Get("timezone"))
		assert.Equal(t, "35.7000", r.URL.Query().Get("latitude"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(forecastJSON))
	})

	w, err := client.Forecast(context.Background(), 35.7, 51.4)
	require.NoError(t, err)

	assert.Equal(t, 12.5, w.Current.TemperatureC)
	assert.Equal(t, 40, w.Current.Humidity)
	assert.Equal(t, 2.5, w.Current.UVIndex, "uv comes from the nearest hour")
	assert.Equal(t, 5, w.Current.RainChance)
	assert.Equal(t, "Sunny", w.Current.Condition)
	assert.Equal(t, "☀️", w.Current.Icon)

	// hours before the current one are dropped
	require.Len(t, w.Hourly, 3)
	assert.Equal(t, 10, w.Hourly[0].Time.Hour())
	assert.Equal(t, "Rainy", w.Hourly[2].Condition)

	require.Len(t, w.Daily, 2)
	assert.Equal(t, 20, w.Daily[0].CloudCover)
	assert.Equal(t, "Sunny", w.Daily[0].Condition)
	assert.Equal(t, "Rainy", w.Daily[1].Condition)
	assert.Equal(t, 90, w.Daily[1].RainChance)

	_, err = client.Forecast(context.Background(), 35.7, 51.4)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call must be served from cache")
}

func TestClient_ForecastCacheHitIsTrimmedCopy(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(forecastJSON))
	})

	first, err := client.Forecast(context.Background(), 35.7, 51.4)
	require.NoError(t, err)
	require.Len(t, first.Hourly, 3)

	// callers may scribble on their copy
	first.Hourly[0].TemperatureC = -99
	first.Daily[0].Condition = "changed"

	// an hour later the cached response no longer offers 10:00
	client.now = func() time.Time { return time.Date(2025, 3, 1, 11, 30, 0, 0, time.UTC) }

	second, err := client.Forecast(context.Background(), 35.7, 51.4)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	require.Len(t, second.Hourly, 2)
	assert.Equal(t, 11, second.Hourly[0].Time.Hour())
	assert.Equal(t, 13.0, second.Hourly[0].TemperatureC)
	assert.Equal(t, "Sunny", second.Daily[0].Condition)
}

func TestClient_ForecastHalfHourZone(t *testing.T) {
	tehran, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		t.Skip("tzdata not available")
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
  "timezone": "Asia/Tehran",
  "current": {"time": "2025-03-01T10:15"},
  "hourly": {"time": ["2025-03-01T09:00", "2025-03-01T10:00", "2025-03-01T11:00"]},
  "daily": {"time": ["2025-03-01"]}
}`))
	})
	client.now = func() time.Time { return time.Date(2025, 3, 1, 10, 40, 0, 0, tehran) }

	w, err := client.Forecast(context.Background(), 35.7, 51.4)
	require.NoError(t, err)

	require.Len(t, w.Hourly, 2)
	assert.Equal(t, 10, w.Hourly[0].Time.Hour())
}

func TestClient_ForecastErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	w, err := client.Forecast(context.Background(), 1, 1)

	assert.Error(t, err)
	assert.Nil(t, w)
}

func TestClient_SearchCity(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		body        string
		expected    *domain.UserLocation
		expectedErr error
	}{
		{
			name:     "found",
			query:    "Tehran",
			body:     `{"results":[{"name":"Tehran","country":"Iran","latitude":35.69,"longitude":51.42}]}`,
			expected: &domain.UserLocation{City: "Tehran", Country: "Iran", Lat: 35.69, Lon: 51.42},
		},
		{
			name:        "no results",
			query:       "Nowhereville",
			body:        `{}`,
			expectedErr: domain.ErrNotFound,
		},
		{
			name:        "blank name",
			query:       "  ",
			expectedErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, tt.query, r.URL.Query().Get("name"))
				assert.Equal(t, "1", r.URL.Query().Get("count"))
				w.Write([]byte(tt.body))
			})

			loc, err := client.SearchCity(context.Background(), tt.query)

			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr))
				assert.Nil(t, loc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestClient_ReverseGeocode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected domain.Place
	}{
		{
			name:     "city",
			body:     `{"address":{"city":"Shiraz","country":"Iran"}}`,
			expected: domain.Place{City: "Shiraz", Country: "Iran"},
		},
		{
			name:     "town fallback",
			body:     `{"address":{"town":"Kashan","country":"Iran"}}`,
			expected: domain.Place{City: "Kashan", Country: "Iran"},
		},
		{
			name:     "village fallback",
			body:     `{"address":{"village":"Abyaneh"}}`,
			expected: domain.Place{City: "Abyaneh"},
		},
		{
			name:     "no address",
			body:     `{"error":"Unable to geocode"}`,
			expected: domain.Place{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/reverse", r.URL.Path)
				assert.Equal(t, "10", r.URL.Query().Get("zoom"))
				assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
				w.Write([]byte(tt.body))
			})

			place, err := client.ReverseGeocode(context.Background(), 29.6, 52.5)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, place)
		})
	}
}

func TestCondition(t *testing.T) {
	tests := []struct {
		name          string
		precipitation float64
		cloudCover    int
		isDay         bool
		expected      string
		expectedIcon  string
	}{
		{name: "heavy rain wins", precipitation: 3, cloudCover: 95, isDay: true, expected: "Rainy", expectedIcon: "🌧"},
		{name: "overcast", precipitation: 1, cloudCover: 80, isDay: true, expected: "Cloudy", expectedIcon: "☁️"},
		{name: "clear day", precipitation: 0, cloudCover: 20, isDay: true, expected: "Sunny", expectedIcon: "☀️"},
		{name: "clear night", precipitation: 0, cloudCover: 5, isDay: false, expected: "Clear", expectedIcon: "🌤"},
		{name: "partly cloudy day", precipitation: 0, cloudCover: 50, isDay: true, expected: "Clear", expectedIcon: "🌤"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Condition(tt.precipitation, tt.cloudCover, tt.isDay))
			assert.Equal(t, tt.expectedIcon, Icon(tt.precipitation, tt.cloudCover, tt.isDay))
		})
	}
}

// Package weather fetches forecasts from Open-Meteo and place names from Nominatim.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nastaran/internal/domain"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultReverseURL   = "https://nominatim.openstreetmap.org/reverse"

	userAgent     = "NastaranBot/1.0"
	forecastDays  = 7
	cleanupFactor = 3

	currentVars = "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,precipitation,cloud_cover,wind_speed_10m"
	hourlyVars  = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation_probability,precipitation,cloud_cover,wind_speed_10m,uv_index,is_day"
	dailyVars   = "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max"

	hourLayout = "2006-01-02T15:04"
	dayLayout  = "2006-01-02"
)

// Client talks to the weather and geocoding APIs. Responses are cached.
type Client struct {
	client       *http.Client
	forecastURL  string
	geocodingURL string
	reverseURL   string
	cache        *gocache.Cache
	logger       *zap.Logger
	now          func() time.Time
}

// cachedForecast keeps every hour of a response; callers get a trimmed copy
type cachedForecast struct {
	weather  domain.Weather
	observed time.Time
}

// New creates a client whose cached responses live for cacheTTL
func New(cacheTTL time.Duration, logger *zap.Logger) *Client {
	return &Client{
		client:       &http.Client{Timeout: 10 * time.Second},
		forecastURL:  defaultForecastURL,
		geocodingURL: defaultGeocodingURL,
		reverseURL:   defaultReverseURL,
		cache:        gocache.New(cacheTTL, cacheTTL*cleanupFactor),
		logger:       logger,
		now:          time.Now,
	}
}

// WithBaseURLs overrides the API endpoints (for testing)
func (c *Client) WithBaseURLs(forecast, geocoding, reverse string) *Client {
	c.forecastURL = forecast
	c.geocodingURL = geocoding
	c.reverseURL = reverse
	return c
}

// Forecast returns current conditions plus hourly (from the current hour on)
// and daily forecasts for a point
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*domain.Weather, error) {
	key := fmt.Sprintf("forecast:%.3f:%.3f", lat, lon)
	if cached, ok := c.cache.Get(key); ok {
		if entry, ok := cached.(cachedForecast); ok {
			c.logger.Debug("Forecast cache hit", zap.String("key", key))
			return c.snapshot(entry), nil
		}
	}

	q := url.Values{}
	q.Set("latitude", formatCoord(lat))
	q.Set("longitude", formatCoord(lon))
	q.Set("current", currentVars)
	q.Set("hourly", hourlyVars)
	q.Set("daily", dailyVars)
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(forecastDays))

	var resp forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}

	w, observed, err := resp.toDomain()
	if err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}

	entry := cachedForecast{weather: *w, observed: observed}
	c.cache.SetDefault(key, entry)
	return c.snapshot(entry), nil
}

// snapshot copies a cached forecast, keeping hours from the current one on.
// The clock is read in the forecast's zone so half-hour offsets line up.
func (c *Client) snapshot(entry cachedForecast) *domain.Weather {
	w := entry.weather

	now := c.now().In(entry.observed.Location())
	if now.Before(entry.observed) {
		now = entry.observed
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())

	w.Hourly = make([]domain.HourlyForecast, 0, len(entry.weather.Hourly))
	for _, h := range entry.weather.Hourly {
		if !h.Time.Before(start) {
			w.Hourly = append(w.Hourly, h)
		}
	}
	w.Daily = append([]domain.DailyForecast(nil), entry.weather.Daily...)

	return &w
}

// SearchCity resolves a city name to coordinates.
// It returns domain.ErrNotFound when the name matches nothing.
func (c *Client) SearchCity(ctx context.Context, name string) (*domain.UserLocation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty city name: %w", domain.ErrInvalidInput)
	}

	key := "city:" + strings.ToLower(name)
	if cached, ok := c.cache.Get(key); ok {
		if loc, ok := cached.(domain.UserLocation); ok {
			return &loc, nil
		}
	}

	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "1")
	q.Set("language", "en")

	var resp geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search city %q: %w", name, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("city %q: %w", name, domain.ErrNotFound)
	}

	r := resp.Results[0]
	loc := domain.UserLocation{
		City:    r.Name,
		Country: r.Country,
		Lat:     r.Latitude,
		Lon:     r.Longitude,
	}
	c.cache.SetDefault(key, loc)
	return &loc, nil
}

// ReverseGeocode finds the city and country around a point.
// Missing address parts come back empty.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.Place, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("zoom", "10")
	q.Set("addressdetails", "1")

	var resp reverseResponse
	if err := c.getJSON(ctx, c.reverseURL+"?"+q.Encode(), &resp); err != nil {
		return domain.Place{}, fmt.Errorf("reverse geocode: %w", err)
	}

	return domain.Place{
		City:    firstNonEmpty(resp.Address.City, resp.Address.Town, resp.Address.Village, resp.Address.Municipality),
		Country: resp.Address.Country,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Weather API returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("host", req.URL.Host),
		)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type forecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   struct {
		Time          string  `json:"time"`
		Temperature   float64 `json:"temperature_2m"`
		Humidity      int     `json:"relative_humidity_2m"`
		FeelsLike     float64 `json:"apparent_temperature"`
		IsDay         int     `json:"is_day"`
		Precipitation float64 `json:"precipitation"`
		CloudCover    int     `json:"cloud_cover"`
		WindSpeed     float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		Humidity      []int     `json:"relative_humidity_2m"`
		FeelsLike     []float64 `json:"apparent_temperature"`
		RainChance    []int     `json:"precipitation_probability"`
		Precipitation []float64 `json:"precipitation"`
		CloudCover    []int     `json:"cloud_cover"`
		WindSpeed     []float64 `json:"wind_speed_10m"`
		UVIndex       []float64 `json:"uv_index"`
		IsDay         []int     `json:"is_day"`
	} `json:"hourly"`
	Daily struct {
		Time          []string  `json:"time"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		Precipitation []float64 `json:"precipitation_sum"`
		RainChance    []int     `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// toDomain converts the response with every hour kept and also returns
// the observation time of the current block
func (r *forecastResponse) toDomain() (*domain.Weather, time.Time, error) {
	loc := time.UTC
	if r.Timezone != "" {
		if l, err := time.LoadLocation(r.Timezone); err == nil {
			loc = l
		}
	}

	now, err := time.ParseInLocation(hourLayout, r.Current.Time, loc)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("current time %q: %w", r.Current.Time, err)
	}

	w := &domain.Weather{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
		Current: domain.CurrentWeather{
			TemperatureC:  r.Current.Temperature,
			FeelsLikeC:    r.Current.FeelsLike,
			Humidity:      r.Current.Humidity,
			WindSpeedKph:  r.Current.WindSpeed,
			Precipitation: r.Current.Precipitation,
			CloudCover:    r.Current.CloudCover,
			IsDay:         r.Current.IsDay == 1,
		},
	}

	nearest := -1
	minDiff := time.Duration(math.MaxInt64)
	cloudByDay := make(map[string][]int)

	for i, ts := range r.Hourly.Time {
		t, err := time.ParseInLocation(hourLayout, ts, loc)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("hourly time %q: %w", ts, err)
		}

		h := domain.HourlyForecast{
			Time:          t,
			TemperatureC:  floatAt(r.Hourly.Temperature, i),
			FeelsLikeC:    floatAt(r.Hourly.FeelsLike, i),
			Humidity:      intAt(r.Hourly.Humidity, i),
			WindSpeedKph:  floatAt(r.Hourly.WindSpeed, i),
			Precipitation: floatAt(r.Hourly.Precipitation, i),
			RainChance:    intAt(r.Hourly.RainChance, i),
			CloudCover:    intAt(r.Hourly.CloudCover, i),
			UVIndex:       floatAt(r.Hourly.UVIndex, i),
			IsDay:         intAt(r.Hourly.IsDay, i) == 1,
		}
		h.Condition = Condition(h.Precipitation, h.CloudCover, h.IsDay)
		h.Icon = Icon(h.Precipitation, h.CloudCover, h.IsDay)

		day := t.Format(dayLayout)
		cloudByDay[day] = append(cloudByDay[day], h.CloudCover)

		if diff := absDuration(t.Sub(now)); diff < minDiff {
			minDiff = diff
			nearest = i
		}

		w.Hourly = append(w.Hourly, h)
	}

	if nearest >= 0 {
		w.Current.UVIndex = floatAt(r.Hourly.UVIndex, nearest)
		w.Current.RainChance = intAt(r.Hourly.RainChance, nearest)
	}
	w.Current.Condition = Condition(w.Current.Precipitation, w.Current.CloudCover, w.Current.IsDay)
	w.Current.Icon = Icon(w.Current.Precipitation, w.Current.CloudCover, w.Current.IsDay)

	for i, ds := range r.Daily.Time {
		date, err := time.ParseInLocation(dayLayout, ds, loc)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("daily time %q: %w", ds, err)
		}

		d := domain.DailyForecast{
			Date:            date,
			TemperatureMaxC: floatAt(r.Daily.TempMax, i),
			TemperatureMinC: floatAt(r.Daily.TempMin, i),
			Precipitation:   floatAt(r.Daily.Precipitation, i),
			RainChance:      intAt(r.Daily.RainChance, i),
			CloudCover:      average(cloudByDay[ds]),
		}
		d.Condition = Condition(d.Precipitation, d.CloudCover, true)
		d.Icon = Icon(d.Precipitation, d.CloudCover, true)
		w.Daily = append(w.Daily, d)
	}

	return w, now, nil
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type reverseResponse struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		Country      string `json:"country"`
	} `json:"address"`
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func floatAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func intAt(values []int, i int) int {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func average(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package handler

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"nastaran/internal/domain"

	"go.uber.org/zap"
)

const (
	minCityNameLength = 2

	weatherFetchErrorText = "⚠️ Failed to fetch weather data."
	cityNotFoundText      = "⚠️ I couldn't find weather information for that city. Try something like: London"
	shareLocationText     = "Please share your location:"
)

// handleWeather handles "/weather" and "/weather <city>"
func (h *Handler) handleWeather(ctx context.Context, u domain.Update) error {
	_, city := cutWord(u.Text)
	if city != "" {
		return h.sendCityWeather(ctx, u.ChatID, city, true)
	}

	user, err := h.users.GetByTelegramID(ctx, u.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.logger.Warn("Failed to load user for weather", zap.Error(err), zap.Int64("user_id", u.UserID))
	}
	if !user.HasLocation() {
		if err := h.send(ctx, u.ChatID, "To show weather at your location, please tap the button below:", requestLocationMarkup()); err != nil {
			return err
		}
	}

	return h.send(ctx, u.ChatID, "Choose a weather option:", weatherMenuMarkup())
}

func (h *Handler) canHandleWeatherCallback(u domain.Update) bool {
	return u.Callback != nil && strings.HasPrefix(u.Callback.Data, weatherPrefix)
}

func (h *Handler) handleWeatherCallback(ctx context.Context, u domain.Update) error {
	cb := u.Callback
	h.answer(ctx, cb)

	if cb.Data == ActWeatherSearch {
		h.edits.Clear(u.UserID)
		h.citySearch.Enable(u.UserID)
		return h.send(ctx, u.ChatID, "Send the city name:", nil)
	}

	var format func(*domain.Weather) string
	switch cb.Data {
	case ActWeatherCurrent:
		format = func(w *domain.Weather) string { return formatCurrent(w.Current) }
	case ActWeatherHourly:
		format = func(w *domain.Weather) string { return formatHourly(w.Hourly) }
	case ActWeatherDaily:
		format = func(w *domain.Weather) string { return formatDaily(w.Daily) }
	case ActWeatherWeekly:
		format = func(w *domain.Weather) string { return formatWeekly(w.Daily) }
	default:
		h.logger.Debug("Unknown weather action", zap.String("data", cb.Data))
		return nil
	}

	user, err := h.users.GetByTelegramID(ctx, u.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.logger.Error("Failed to load user for weather", zap.Error(err), zap.Int64("user_id", u.UserID))
		return h.send(ctx, u.ChatID, weatherFetchErrorText, nil)
	}
	if !user.HasLocation() {
		return h.send(ctx, u.ChatID, shareLocationText, requestLocationMarkup())
	}

	weather, err := h.weather.Forecast(ctx, user.Location.Lat, user.Location.Lon)
	if err != nil {
		h.logger.Error("Weather callback handling error",
			zap.Error(err),
			zap.Int64("user_id", u.UserID),
			zap.String("data", cb.Data),
		)
		return h.send(ctx, u.ChatID, weatherFetchErrorText, nil)
	}

	return h.sendMarkdown(ctx, u.ChatID, format(weather), nil)
}

func (h *Handler) canHandleLocation(u domain.Update) bool {
	return u.Kind() == domain.KindLocation
}

// handleLocation saves the shared location and replies with a full report
func (h *Handler) handleLocation(ctx context.Context, u domain.Update) error {
	lat, lon := u.Location.Lat, u.Location.Lon

	if _, err := h.users.GetByTelegramID(ctx, u.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.send(ctx, u.ChatID, "⚠️ Please use /start first.", nil)
		}
		h.logger.Error("Failed to load user", zap.Error(err), zap.Int64("user_id", u.UserID))
		return h.send(ctx, u.ChatID, "⚠️ Something went wrong while fetching weather.", nil)
	}

	place, err := h.weather.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		h.logger.Warn("Reverse geocoding failed", zap.Error(err), zap.Int64("user_id", u.UserID))
	}

	loc := domain.UserLocation{City: place.City, Country: place.Country, Lat: lat, Lon: lon}
	if err := h.users.UpdateLocation(ctx, u.UserID, loc); err != nil {
		h.logger.Error("Failed to save location", zap.Error(err), zap.Int64("user_id", u.UserID))
		return h.send(ctx, u.ChatID, "⚠️ Something went wrong while fetching weather.", nil)
	}

	weather, err := h.weather.Forecast(ctx, lat, lon)
	if err != nil {
		h.logger.Error("Error handling location weather", zap.Error(err), zap.Int64("user_id", u.UserID))
		return h.send(ctx, u.ChatID, "⚠️ Something went wrong while fetching weather.", removeKeyboardMarkup())
	}

	if err := h.sendMarkdown(ctx, u.ChatID, formatFull(loc.DisplayCity(), weather.Current), nil); err != nil {
		return err
	}
	return h.send(ctx, u.ChatID, "Done ✔", removeKeyboardMarkup())
}

func (h *Handler) canHandleCitySearch(u domain.Update) bool {
	return u.Kind() == domain.KindText &&
		utf8.RuneCountInString(strings.TrimSpace(u.Text)) >= minCityNameLength &&
		h.citySearch.Pending(u.UserID)
}

// handleCitySearch answers the city name sent after "Search city".
// The search state is consumed up front so a failed lookup never leaves it armed.
func (h *Handler) handleCitySearch(ctx context.Context, u domain.Update) error {
	if !h.citySearch.Consume(u.UserID) {
		return nil
	}
	return h.sendCityWeather(ctx, u.ChatID, strings.TrimSpace(u.Text), false)
}

// sendCityWeather geocodes a city and sends its weather, the full report or the short summary
func (h *Handler) sendCityWeather(ctx context.Context, chatID int64, city string, full bool) error {
	loc, err := h.weather.SearchCity(ctx, city)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			h.logger.Info("City not found", zap.String("city", city))
		} else {
			h.logger.Error("Failed to geocode city", zap.Error(err), zap.String("city", city))
		}
		return h.send(ctx, chatID, cityNotFoundText, nil)
	}

	weather, err := h.weather.Forecast(ctx, loc.Lat, loc.Lon)
	if err != nil {
		h.logger.Error("Failed to fetch weather for city", zap.Error(err), zap.String("city", city))
		return h.send(ctx, chatID, weatherFetchErrorText, nil)
	}

	name := loc.DisplayCity()
	if loc.City == "" {
		name = city
	}
	if full {
		return h.sendMarkdown(ctx, chatID, formatFull(name, weather.Current), nil)
	}
	return h.sendMarkdown(ctx, chatID, formatCitySummary(name, weather.Current), nil)
}

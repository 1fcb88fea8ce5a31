package handler

import (
	"context"

	"nastaran/internal/bot"
	"nastaran/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Messenger is everything handlers need to talk back to the chat
type Messenger interface {
	bot.Sender
	SendMarkdown(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error
	SendPhoto(ctx context.Context, chatID int64, fileRef, caption string, markup *tele.ReplyMarkup) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	EditMarkup(ctx context.Context, chatID int64, messageID int, markup *tele.ReplyMarkup) error
}

// UserService manages bot users
type UserService interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Register(ctx context.Context, telegramID int64, username, firstName string) (*domain.User, error)
	UpdateLocation(ctx context.Context, telegramID int64, loc domain.UserLocation) error
}

// IdeaService stores ideas
type IdeaService interface {
	Add(ctx context.Context, telegramID int64, content string) (*domain.Idea, error)
	List(ctx context.Context, telegramID int64) ([]domain.Idea, error)
}

// NoteService stores notes
type NoteService interface {
	Add(ctx context.Context, telegramID int64, content string) (*domain.Note, error)
	ListRecent(ctx context.Context, telegramID int64) ([]domain.Note, error)
}

// InspirationService stores inspirations
type InspirationService interface {
	Add(ctx context.Context, telegramID int64, imageFileID, caption string) (*domain.Inspiration, error)
	GetByID(ctx context.Context, telegramID int64, id string) (*domain.Inspiration, error)
	Page(ctx context.Context, telegramID int64, page int) (domain.Page[domain.Inspiration], error)
	UpdateContent(ctx context.Context, telegramID int64, id, content string) error
	UpdateTags(ctx context.Context, telegramID int64, id string, tags []string) error
	UpdateLabel(ctx context.Context, telegramID int64, id, label string) error
	ToggleFavorite(ctx context.Context, telegramID int64, id string) (bool, error)
	Delete(ctx context.Context, telegramID int64, id string) error
}

// WeatherProvider fetches forecasts and resolves places
type WeatherProvider interface {
	Forecast(ctx context.Context, lat, lon float64) (*domain.Weather, error)
	SearchCity(ctx context.Context, name string) (*domain.UserLocation, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (domain.Place, error)
}

package testutil

import (
	"context"

	"nastaran/internal/domain"

	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLocation(ctx context.Context, telegramID int64, loc domain.UserLocation) error {
	args := m.Called(ctx, telegramID, loc)
	return args.Error(0)
}

// MockIdeaRepository is a mock for IdeaRepository
type MockIdeaRepository struct {
	mock.Mock
}

func (m *MockIdeaRepository) Create(ctx context.Context, idea *domain.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *MockIdeaRepository) ListByUser(ctx context.Context, telegramID int64, limit int) ([]domain.Idea, error) {
	args := m.Called(ctx, telegramID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Idea), args.Error(1)
}

// MockNoteRepository is a mock for NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) ListRecent(ctx context.Context, telegramID int64, limit int) ([]domain.Note, error) {
	args := m.Called(ctx, telegramID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Note), args.Error(1)
}

// MockInspirationRepository is a mock for InspirationRepository
type MockInspirationRepository struct {
	mock.Mock
}

func (m *MockInspirationRepository) Create(ctx context.Context, insp *domain.Inspiration) error {
	args := m.Called(ctx, insp)
	return args.Error(0)
}

func (m *MockInspirationRepository) GetByID(ctx context.Context, telegramID int64, id string) (*domain.Inspiration, error) {
	args := m.Called(ctx, telegramID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspiration), args.Error(1)
}

func (m *MockInspirationRepository) List(ctx context.Context, telegramID int64, limit, offset int) ([]domain.Inspiration, error) {
	args := m.Called(ctx, telegramID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Inspiration), args.Error(1)
}

func (m *MockInspirationRepository) Count(ctx context.Context, telegramID int64) (int, error) {
	args := m.Called(ctx, telegramID)
	return args.Int(0), args.Error(1)
}

func (m *MockInspirationRepository) UpdateContent(ctx context.Context, telegramID int64, id, content string) error {
	args := m.Called(ctx, telegramID, id, content)
	return args.Error(0)
}

func (m *MockInspirationRepository) UpdateTags(ctx context.Context, telegramID int64, id string, tags []string) error {
	args := m.Called(ctx, telegramID, id, tags)
	return args.Error(0)
}

func (m *MockInspirationRepository) UpdateLabel(ctx context.Context, telegramID int64, id, label string) error {
	args := m.Called(ctx, telegramID, id, label)
	return args.Error(0)
}

func (m *MockInspirationRepository) ToggleFavorite(ctx context.Context, telegramID int64, id string) (bool, error) {
	args := m.Called(ctx, telegramID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockInspirationRepository) Delete(ctx context.Context, telegramID int64, id string) error {
	args := m.Called(ctx, telegramID, id)
	return args.Error(0)
}

// MockUserService is a mock for the handler's user port
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, telegramID int64, username, firstName string) (*domain.User, error) {
	args := m.Called(ctx, telegramID, username, firstName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateLocation(ctx context.Context, telegramID int64, loc domain.UserLocation) error {
	args := m.Called(ctx, telegramID, loc)
	return args.Error(0)
}

// MockIdeaService is a mock for the handler's idea port
type MockIdeaService struct {
	mock.Mock
}

func (m *MockIdeaService) Add(ctx context.Context, telegramID int64, content string) (*domain.Idea, error) {
	args := m.Called(ctx, telegramID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Idea), args.Error(1)
}

func (m *MockIdeaService) List(ctx context.Context, telegramID int64) ([]domain.Idea, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Idea), args.Error(1)
}

// MockNoteService is a mock for the handler's note port
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) Add(ctx context.Context, telegramID int64, content string) (*domain.Note, error) {
	args := m.Called(ctx, telegramID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *MockNoteService) ListRecent(ctx context.Context, telegramID int64) ([]domain.Note, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Note), args.Error(1)
}

// MockInspirationService is a mock for the handler's inspiration port
type MockInspirationService struct {
	mock.Mock
}

func (m *MockInspirationService) Add(ctx context.Context, telegramID int64, imageFileID, caption string) (*domain.Inspiration, error) {
	args := m.Called(ctx, telegramID, imageFileID, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspiration), args.Error(1)
}

func (m *MockInspirationService) GetByID(ctx context.Context, telegramID int64, id string) (*domain.Inspiration, error) {
	args := m.Called(ctx, telegramID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspiration), args.Error(1)
}

func (m *MockInspirationService) Page(ctx context.Context, telegramID int64, page int) (domain.Page[domain.Inspiration], error) {
	args := m.Called(ctx, telegramID, page)
	return args.Get(0).(domain.Page[domain.Inspiration]), args.Error(1)
}

func (m *MockInspirationService) UpdateContent(ctx context.Context, telegramID int64, id, content string) error {
	args := m.Called(ctx, telegramID, id, content)
	return args.Error(0)
}

func (m *MockInspirationService) UpdateTags(ctx context.Context, telegramID int64, id string, tags []string) error {
	args := m.Called(ctx, telegramID, id, tags)
	return args.Error(0)
}

func (m *MockInspirationService) UpdateLabel(ctx context.Context, telegramID int64, id, label string) error {
	args := m.Called(ctx, telegramID, id, label)
	return args.Error(0)
}

func (m *MockInspirationService) ToggleFavorite(ctx context.Context, telegramID int64, id string) (bool, error) {
	args := m.Called(ctx, telegramID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockInspirationService) Delete(ctx context.Context, telegramID int64, id string) error {
	args := m.Called(ctx, telegramID, id)
	return args.Error(0)
}

// MockWeatherProvider is a mock for the weather client
type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) Forecast(ctx context.Context, lat, lon float64) (*domain.Weather, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Weather), args.Error(1)
}

func (m *MockWeatherProvider) SearchCity(ctx context.Context, name string) (*domain.UserLocation, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserLocation), args.Error(1)
}

func (m *MockWeatherProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.Place, error) {
	args := m.Called(ctx, lat, lon)
	return args.Get(0).(domain.Place), args.Error(1)
}

// MockMessenger is a mock for the outbound chat port
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Send(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	args := m.Called(ctx, chatID, text, markup)
	return args.Error(0)
}

func (m *MockMessenger) SendMarkdown(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) error {
	args := m.Called(ctx, chatID, text, markup)
	return args.Error(0)
}

func (m *MockMessenger) SendPhoto(ctx context.Context, chatID int64, fileRef, caption string, markup *tele.ReplyMarkup) error {
	args := m.Called(ctx, chatID, fileRef, caption, markup)
	return args.Error(0)
}

func (m *MockMessenger) AnswerCallback(ctx context.Context, callbackID, text string) error {
	args := m.Called(ctx, callbackID, text)
	return args.Error(0)
}

func (m *MockMessenger) EditMarkup(ctx context.Context, chatID int64, messageID int, markup *tele.ReplyMarkup) error {
	args := m.Called(ctx, chatID, messageID, markup)
	return args.Error(0)
}

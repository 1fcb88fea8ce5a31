package repository

import (
	"context"

	"nastaran/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateLocation(ctx context.Context, telegramID int64, loc domain.UserLocation) error
}

// IdeaRepository defines idea data operations
type IdeaRepository interface {
	Create(ctx context.Context, idea *domain.Idea) error
	ListByUser(ctx context.Context, telegramID int64, limit int) ([]domain.Idea, error)
}

// NoteRepository defines note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	ListRecent(ctx context.Context, telegramID int64, limit int) ([]domain.Note, error)
}

// InspirationRepository defines inspiration data operations.
// Every lookup is scoped to the owning Telegram user.
type InspirationRepository interface {
	Create(ctx context.Context, insp *domain.Inspiration) error
	GetByID(ctx context.Context, telegramID int64, id string) (*domain.Inspiration, error)
	List(ctx context.Context, telegramID int64, limit, offset int) ([]domain.Inspiration, error)
	Count(ctx context.Context, telegramID int64) (int, error)
	UpdateContent(ctx context.Context, telegramID int64, id, content string) error
	UpdateTags(ctx context.Context, telegramID int64, id string, tags []string) error
	UpdateLabel(ctx context.Context, telegramID int64, id, label string) error
	ToggleFavorite(ctx context.Context, telegramID int64, id string) (bool, error)
	Delete(ctx context.Context, telegramID int64, id string) error
}

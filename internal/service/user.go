package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nastaran/internal/domain"
	"nastaran/internal/repository"

	"github.com/google/uuid"
)

const defaultTimezone = "UTC"

// UserService handles user accounts and saved locations
type UserService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// GetByTelegramID returns domain.ErrNotFound for users who never ran /start
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// Register creates a user record for a Telegram account
func (s *UserService) Register(ctx context.Context, telegramID int64, username, firstName string) (*domain.User, error) {
	if telegramID == 0 {
		return nil, fmt.Errorf("telegram id is required: %w", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:         uuid.NewString(),
		TelegramID: telegramID,
		Username:   strings.TrimSpace(username),
		FirstName:  strings.TrimSpace(firstName),
		Timezone:   defaultTimezone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateLocation stores the last location the user shared
func (s *UserService) UpdateLocation(ctx context.Context, telegramID int64, loc domain.UserLocation) error {
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lon < -180 || loc.Lon > 180 {
		return fmt.Errorf("coordinates out of range: %w", domain.ErrInvalidInput)
	}
	if err := s.userRepo.UpdateLocation(ctx, telegramID, loc); err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

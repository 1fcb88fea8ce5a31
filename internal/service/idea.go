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

// IdeaListLimit caps how many ideas a listing returns
const IdeaListLimit = 20

// IdeaService handles idea-related business logic
type IdeaService struct {
	ideaRepo repository.IdeaRepository
	now      func() time.Time
}

// NewIdeaService creates a new idea service
func NewIdeaService(ideaRepo repository.IdeaRepository) *IdeaService {
	return &IdeaService{ideaRepo: ideaRepo, now: time.Now}
}

// Add saves a new idea
func (s *IdeaService) Add(ctx context.Context, telegramID int64, content string) (*domain.Idea, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("idea content cannot be empty: %w", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	idea := &domain.Idea{
		ID:         uuid.NewString(),
		TelegramID: telegramID,
		Content:    content,
		Tags:       []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	return idea, nil
}

// List returns the user's most recent ideas
func (s *IdeaService) List(ctx context.Context, telegramID int64) ([]domain.Idea, error) {
	return s.ideaRepo.ListByUser(ctx, telegramID, IdeaListLimit)
}

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

// InspirationPageSize is how many inspirations one list page shows
const InspirationPageSize = 5

// InspirationService handles inspiration-related business logic
type InspirationService struct {
	inspRepo repository.InspirationRepository
	now      func() time.Time
}

// NewInspirationService creates a new inspiration service
func NewInspirationService(inspRepo repository.InspirationRepository) *InspirationService {
	return &InspirationService{inspRepo: inspRepo, now: time.Now}
}

// Add saves an image with its caption
func (s *InspirationService) Add(ctx context.Context, telegramID int64, imageFileID, caption string) (*domain.Inspiration, error) {
	caption = strings.TrimSpace(caption)
	if imageFileID == "" {
		return nil, fmt.Errorf("image is required: %w", domain.ErrInvalidInput)
	}
	if caption == "" {
		return nil, fmt.Errorf("caption cannot be empty: %w", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	insp := &domain.Inspiration{
		ID:          uuid.NewString(),
		TelegramID:  telegramID,
		ImageFileID: imageFileID,
		Content:     caption,
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.inspRepo.Create(ctx, insp); err != nil {
		return nil, fmt.Errorf("create inspiration: %w", err)
	}
	return insp, nil
}

// GetByID returns one of the user's inspirations
func (s *InspirationService) GetByID(ctx context.Context, telegramID int64, id string) (*domain.Inspiration, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.inspRepo.GetByID(ctx, telegramID, id)
}

// Page returns a zero-based page of the user's inspirations
func (s *InspirationService) Page(ctx context.Context, telegramID int64, page int) (domain.Page[domain.Inspiration], error) {
	req, err := domain.NewPageRequest(page, InspirationPageSize)
	if err != nil {
		return domain.Page[domain.Inspiration]{}, err
	}

	items, err := s.inspRepo.List(ctx, telegramID, req.Take(), req.Skip())
	if err != nil {
		return domain.Page[domain.Inspiration]{}, fmt.Errorf("list inspirations: %w", err)
	}

	total, err := s.inspRepo.Count(ctx, telegramID)
	if err != nil {
		return domain.Page[domain.Inspiration]{}, fmt.Errorf("count inspirations: %w", err)
	}

	return domain.NewPage(req, items, total), nil
}

// UpdateContent replaces the caption text
func (s *InspirationService) UpdateContent(ctx context.Context, telegramID int64, id, content string) error {
	if err := validateID(id); err != nil {
		return err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("content cannot be empty: %w", domain.ErrInvalidInput)
	}
	return s.inspRepo.UpdateContent(ctx, telegramID, id, content)
}

// UpdateTags replaces the tag list. An empty list clears all tags.
func (s *InspirationService) UpdateTags(ctx context.Context, telegramID int64, id string, tags []string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	return s.inspRepo.UpdateTags(ctx, telegramID, id, tags)
}

// UpdateLabel replaces the label
func (s *InspirationService) UpdateLabel(ctx context.Context, telegramID int64, id, label string) error {
	if err := validateID(id); err != nil {
		return err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("label cannot be empty: %w", domain.ErrInvalidInput)
	}
	return s.inspRepo.UpdateLabel(ctx, telegramID, id, label)
}

// ToggleFavorite flips the favorite flag and returns the new value
func (s *InspirationService) ToggleFavorite(ctx context.Context, telegramID int64, id string) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}
	return s.inspRepo.ToggleFavorite(ctx, telegramID, id)
}

// Delete removes an inspiration
func (s *InspirationService) Delete(ctx context.Context, telegramID int64, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.inspRepo.Delete(ctx, telegramID, id)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("inspiration id %q: %w", id, domain.ErrInvalidInput)
	}
	return nil
}

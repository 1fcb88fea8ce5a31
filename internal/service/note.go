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

// NoteListLimit caps how many notes a listing returns
const NoteListLimit = 10

// NoteService handles note-related business logic
type NoteService struct {
	noteRepo repository.NoteRepository
	now      func() time.Time
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo, now: time.Now}
}

// Add saves a new note
func (s *NoteService) Add(ctx context.Context, telegramID int64, content string) (*domain.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("note content cannot be empty: %w", domain.ErrInvalidInput)
	}

	note := &domain.Note{
		ID:         uuid.NewString(),
		TelegramID: telegramID,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// ListRecent returns the user's latest notes
func (s *NoteService) ListRecent(ctx context.Context, telegramID int64) ([]domain.Note, error) {
	return s.noteRepo.ListRecent(ctx, telegramID, NoteListLimit)
}

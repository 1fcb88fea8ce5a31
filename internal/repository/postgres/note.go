package postgres

import (
	"context"
	"database/sql"

	"nastaran/internal/domain"
)

// NoteRepo implements repository.NoteRepository
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new note repository
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// Create saves a note
func (r *NoteRepo) Create(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (id, telegram_id, content, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, note.ID, note.TelegramID, note.Content, note.CreatedAt)
	return err
}

// ListRecent returns up to limit notes, newest first
func (r *NoteRepo) ListRecent(ctx context.Context, telegramID int64, limit int) ([]domain.Note, error) {
	query := `
		SELECT id, telegram_id, content, created_at
		FROM notes
		WHERE telegram_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, telegramID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.TelegramID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"nastaran/internal/domain"

	"github.com/lib/pq"
)

// InspirationRepo implements repository.InspirationRepository
type InspirationRepo struct {
	db *sql.DB
}

// NewInspirationRepo creates a new inspiration repository
func NewInspirationRepo(db *sql.DB) *InspirationRepo {
	return &InspirationRepo{db: db}
}

const inspirationColumns = `id, telegram_id, image_file_id, content, label, tags, favorite, created_at, updated_at`

// Create saves an inspiration
func (r *InspirationRepo) Create(ctx context.Context, insp *domain.Inspiration) error {
	query := `
		INSERT INTO inspirations (` + inspirationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		insp.ID,
		insp.TelegramID,
		insp.ImageFileID,
		insp.Content,
		insp.Label,
		pq.Array(nonNilTags(insp.Tags)),
		insp.Favorite,
		insp.CreatedAt,
		insp.UpdatedAt,
	)
	return err
}

// GetByID returns domain.ErrNotFound if the inspiration does not exist or
// belongs to someone else
func (r *InspirationRepo) GetByID(ctx context.Context, telegramID int64, id string) (*domain.Inspiration, error) {
	query := `
		SELECT ` + inspirationColumns + `
		FROM inspirations
		WHERE id = $1 AND telegram_id = $2
	`

	var insp domain.Inspiration
	err := r.db.QueryRowContext(ctx, query, id, telegramID).Scan(
		&insp.ID, &insp.TelegramID, &insp.ImageFileID, &insp.Content, &insp.Label,
		pq.Array(&insp.Tags), &insp.Favorite, &insp.CreatedAt, &insp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &insp, nil
}

// List returns one page of inspirations, newest first
func (r *InspirationRepo) List(ctx context.Context, telegramID int64, limit, offset int) ([]domain.Inspiration, error) {
	query := `
		SELECT ` + inspirationColumns + `
		FROM inspirations
		WHERE telegram_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, telegramID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Inspiration
	for rows.Next() {
		var insp domain.Inspiration
		if err := rows.Scan(
			&insp.ID, &insp.TelegramID, &insp.ImageFileID, &insp.Content, &insp.Label,
			pq.Array(&insp.Tags), &insp.Favorite, &insp.CreatedAt, &insp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, insp)
	}

	return items, rows.Err()
}

// Count returns the total number of inspirations a user has
func (r *InspirationRepo) Count(ctx context.Context, telegramID int64) (int, error) {
	query := `SELECT COUNT(*) FROM inspirations WHERE telegram_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, telegramID).Scan(&count)
	return count, err
}

// UpdateContent replaces the caption text
func (r *InspirationRepo) UpdateContent(ctx context.Context, telegramID int64, id, content string) error {
	query := `
		UPDATE inspirations
		SET content = $3, updated_at = NOW()
		WHERE id = $1 AND telegram_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, telegramID, content)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// UpdateTags replaces the whole tag list
func (r *InspirationRepo) UpdateTags(ctx context.Context, telegramID int64, id string, tags []string) error {
	query := `
		UPDATE inspirations
		SET tags = $3, updated_at = NOW()
		WHERE id = $1 AND telegram_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, telegramID, pq.Array(nonNilTags(tags)))
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// UpdateLabel replaces the label
func (r *InspirationRepo) UpdateLabel(ctx context.Context, telegramID int64, id, label string) error {
	query := `
		UPDATE inspirations
		SET label = $3, updated_at = NOW()
		WHERE id = $1 AND telegram_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, telegramID, label)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// ToggleFavorite flips the flag in one statement and returns the new value
func (r *InspirationRepo) ToggleFavorite(ctx context.Context, telegramID int64, id string) (bool, error) {
	query := `
		UPDATE inspirations
		SET favorite = NOT favorite, updated_at = NOW()
		WHERE id = $1 AND telegram_id = $2
		RETURNING favorite
	`

	var favorite bool
	err := r.db.QueryRowContext(ctx, query, id, telegramID).Scan(&favorite)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	return favorite, err
}

// Delete removes an inspiration
func (r *InspirationRepo) Delete(ctx context.Context, telegramID int64, id string) error {
	query := `DELETE FROM inspirations WHERE id = $1 AND telegram_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, telegramID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// tags columns are NOT NULL; a nil slice would be sent as NULL
func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

package postgres

import (
	"context"
	"database/sql"

	"nastaran/internal/domain"

	"github.com/lib/pq"
)

// IdeaRepo implements repository.IdeaRepository
type IdeaRepo struct {
	db *sql.DB
}

// NewIdeaRepo creates a new idea repository
func NewIdeaRepo(db *sql.DB) *IdeaRepo {
	return &IdeaRepo{db: db}
}

// Create saves an idea
func (r *IdeaRepo) Create(ctx context.Context, idea *domain.Idea) error {
	query := `
		INSERT INTO ideas (id, telegram_id, content, label, tags, favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		idea.ID,
		idea.TelegramID,
		idea.Content,
		idea.Label,
		pq.Array(nonNilTags(idea.Tags)),
		idea.Favorite,
		idea.CreatedAt,
		idea.UpdatedAt,
	)
	return err
}

// ListByUser returns the newest ideas first
func (r *IdeaRepo) ListByUser(ctx context.Context, telegramID int64, limit int) ([]domain.Idea, error) {
	query := `
		SELECT id, telegram_id, content, label, tags, favorite, created_at, updated_at
		FROM ideas
		WHERE telegram_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, telegramID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []domain.Idea
	for rows.Next() {
		var i domain.Idea
		if err := rows.Scan(
			&i.ID, &i.TelegramID, &i.Content, &i.Label, pq.Array(&i.Tags),
			&i.Favorite, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ideas = append(ideas, i)
	}

	return ideas, rows.Err()
}

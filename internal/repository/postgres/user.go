package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nastaran/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByTelegramID returns domain.ErrNotFound for unknown users
func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, timezone,
		       city, country, latitude, longitude, created_at, updated_at
		FROM users
		WHERE telegram_id = $1
	`

	var (
		u        domain.User
		city     sql.NullString
		country  sql.NullString
		lat, lon sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, query, telegramID).Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.Timezone,
		&city, &country, &lat, &lon, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Location is only meaningful once coordinates were saved
	if lat.Valid && lon.Valid {
		u.Location = &domain.UserLocation{
			City:    city.String,
			Country: country.String,
			Lat:     lat.Float64,
			Lon:     lon.Float64,
		}
	}

	return &u, nil
}

// Create inserts a user; an existing telegram_id is left untouched
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, telegram_id, username, first_name, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (telegram_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.Timezone,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// UpdateLocation saves the last shared location
func (r *UserRepo) UpdateLocation(ctx context.Context, telegramID int64, loc domain.UserLocation) error {
	query := `
		UPDATE users
		SET city = $2, country = $3, latitude = $4, longitude = $5, updated_at = NOW()
		WHERE telegram_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, telegramID, loc.City, loc.Country, loc.Lat, loc.Lon)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// expectAffected maps "no row matched" to domain.ErrNotFound
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LocationRepository handles database operations for locations
type LocationRepository struct {
	db *pgxpool.Pool
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, user_id, couple_id, latitude, longitude, accuracy, is_sharing, updated_at`

func scanLocation(row pgx.Row) (*models.Location, error) {
	var l models.Location
	err := row.Scan(
		&l.ID, &l.UserID, &l.CoupleID, &l.Latitude, &l.Longitude,
		&l.Accuracy, &l.IsSharing, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Upsert inserts or overwrites the user's location row, keyed by user.
// Writes are idempotent overwrites, so a direct response and a push
// echo of the same write converge regardless of arrival order.
func (r *LocationRepository) Upsert(ctx context.Context, location *models.Location) (*models.Location, error) {
	query := `
		INSERT INTO locations (id, user_id, couple_id, latitude, longitude, accuracy, is_sharing, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE
		SET latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude,
		    accuracy = EXCLUDED.accuracy, is_sharing = EXCLUDED.is_sharing,
		    updated_at = now()
		RETURNING ` + locationColumns + `
	`
	loc, err := scanLocation(r.db.QueryRow(ctx, query,
		location.ID, location.UserID, location.CoupleID,
		location.Latitude, location.Longitude, location.Accuracy, location.IsSharing,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert location: %w", err)
	}
	return loc, nil
}

// SetSharing flips the sharing flag for the user's location row
func (r *LocationRepository) SetSharing(ctx context.Context, userID string, sharing bool) (*models.Location, error) {
	query := `
		UPDATE locations
		SET is_sharing = $1, updated_at = now()
		WHERE user_id = $2
		RETURNING ` + locationColumns + `
	`
	loc, err := scanLocation(r.db.QueryRow(ctx, query, sharing, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("location for user %s: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update sharing flag: %w", err)
	}
	return loc, nil
}

// ListByCoupleID retrieves both partners' location rows
func (r *LocationRepository) ListByCoupleID(ctx context.Context, coupleID string) ([]*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE couple_id = $1`
	rows, err := r.db.Query(ctx, query, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		var l models.Location
		err := rows.Scan(
			&l.ID, &l.UserID, &l.CoupleID, &l.Latitude, &l.Longitude,
			&l.Accuracy, &l.IsSharing, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}
	return locations, nil
}

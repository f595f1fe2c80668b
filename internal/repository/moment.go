package repository

import (
	"context"
	"errors"
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MomentRepository handles database operations for moments
type MomentRepository struct {
	db *pgxpool.Pool
}

// NewMomentRepository creates a new moment repository
func NewMomentRepository(db *pgxpool.Pool) *MomentRepository {
	return &MomentRepository{db: db}
}

const momentColumns = `id, couple_id, author_id, media_url, media_type, mime_type,
	thumbnail_url, caption, file_size_bytes, width, height, created_at`

// ListByCoupleID retrieves moments newest-first with pagination
func (r *MomentRepository) ListByCoupleID(ctx context.Context, coupleID string, limit, offset int) ([]*models.Moment, error) {
	query := `
		SELECT ` + momentColumns + `
		FROM moments
		WHERE couple_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, coupleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list moments: %w", err)
	}
	defer rows.Close()

	var moments []*models.Moment
	for rows.Next() {
		var m models.Moment
		err := rows.Scan(
			&m.ID, &m.CoupleID, &m.AuthorID, &m.MediaURL, &m.MediaType, &m.MimeType,
			&m.ThumbnailURL, &m.Caption, &m.FileSizeBytes, &m.Width, &m.Height, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan moment: %w", err)
		}
		moments = append(moments, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating moments: %w", err)
	}
	return moments, nil
}

// GetByID retrieves a moment by ID
func (r *MomentRepository) GetByID(ctx context.Context, id string) (*models.Moment, error) {
	query := `SELECT ` + momentColumns + ` FROM moments WHERE id = $1`
	var m models.Moment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.CoupleID, &m.AuthorID, &m.MediaURL, &m.MediaType, &m.MimeType,
		&m.ThumbnailURL, &m.Caption, &m.FileSizeBytes, &m.Width, &m.Height, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("moment %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get moment: %w", err)
	}
	return &m, nil
}

// Create creates a new moment record
func (r *MomentRepository) Create(ctx context.Context, moment *models.Moment) error {
	query := `
		INSERT INTO moments (id, couple_id, author_id, media_url, media_type, mime_type,
			thumbnail_url, caption, file_size_bytes, width, height, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		moment.ID, moment.CoupleID, moment.AuthorID, moment.MediaURL, moment.MediaType,
		moment.MimeType, moment.ThumbnailURL, moment.Caption, moment.FileSizeBytes,
		moment.Width, moment.Height, moment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create moment: %w", err)
	}
	return nil
}

// Delete deletes a moment by ID
func (r *MomentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM moments WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete moment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("moment %s: %w", id, models.ErrNotFound)
	}
	return nil
}

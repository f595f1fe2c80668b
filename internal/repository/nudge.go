package repository

import (
	"context"
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NudgeRepository handles database operations for nudges
type NudgeRepository struct {
	db *pgxpool.Pool
}

// NewNudgeRepository creates a new nudge repository
func NewNudgeRepository(db *pgxpool.Pool) *NudgeRepository {
	return &NudgeRepository{db: db}
}

const nudgeColumns = `id, couple_id, sender_id, receiver_id, pattern, pattern_name, emoji, is_read, created_at`

func scanNudges(rows pgx.Rows) ([]*models.Nudge, error) {
	defer rows.Close()

	var nudges []*models.Nudge
	for rows.Next() {
		var n models.Nudge
		err := rows.Scan(
			&n.ID, &n.CoupleID, &n.SenderID, &n.ReceiverID,
			&n.Pattern, &n.PatternName, &n.Emoji, &n.IsRead, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nudge: %w", err)
		}
		nudges = append(nudges, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nudges: %w", err)
	}
	return nudges, nil
}

// ListRecent retrieves the couple's newest nudges up to limit
func (r *NudgeRepository) ListRecent(ctx context.Context, coupleID string, limit int) ([]*models.Nudge, error) {
	query := `
		SELECT ` + nudgeColumns + `
		FROM nudges
		WHERE couple_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, coupleID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list nudges: %w", err)
	}
	return scanNudges(rows)
}

// ListUnread retrieves unread nudges addressed to the receiver
func (r *NudgeRepository) ListUnread(ctx context.Context, receiverID string) ([]*models.Nudge, error) {
	query := `
		SELECT ` + nudgeColumns + `
		FROM nudges
		WHERE receiver_id = $1 AND NOT is_read
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread nudges: %w", err)
	}
	return scanNudges(rows)
}

// Create creates a new nudge
func (r *NudgeRepository) Create(ctx context.Context, nudge *models.Nudge) error {
	query := `
		INSERT INTO nudges (id, couple_id, sender_id, receiver_id, pattern, pattern_name, emoji, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		nudge.ID, nudge.CoupleID, nudge.SenderID, nudge.ReceiverID,
		nudge.Pattern, nudge.PatternName, nudge.Emoji, nudge.IsRead, nudge.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create nudge: %w", err)
	}
	return nil
}

// MarkRead marks a single nudge read; only the receiver may do so
func (r *NudgeRepository) MarkRead(ctx context.Context, id, receiverID string) error {
	query := `UPDATE nudges SET is_read = TRUE WHERE id = $1 AND receiver_id = $2`
	result, err := r.db.Exec(ctx, query, id, receiverID)
	if err != nil {
		return fmt.Errorf("failed to mark nudge read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("nudge %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// MarkAllRead marks every unread nudge for the receiver as read
func (r *NudgeRepository) MarkAllRead(ctx context.Context, receiverID string) error {
	query := `UPDATE nudges SET is_read = TRUE WHERE receiver_id = $1 AND NOT is_read`
	_, err := r.db.Exec(ctx, query, receiverID)
	if err != nil {
		return fmt.Errorf("failed to mark nudges read: %w", err)
	}
	return nil
}

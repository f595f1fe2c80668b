package repository

import (
	"context"
	"errors"
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StreakRepository handles database operations for streaks
type StreakRepository struct {
	db *pgxpool.Pool
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(db *pgxpool.Pool) *StreakRepository {
	return &StreakRepository{db: db}
}

// GetByCoupleID retrieves a couple's streak
func (r *StreakRepository) GetByCoupleID(ctx context.Context, coupleID string) (*models.Streak, error) {
	query := `
		SELECT id, couple_id, current_streak, longest_streak, last_active_date, updated_at
		FROM streaks
		WHERE couple_id = $1
	`
	var s models.Streak
	err := r.db.QueryRow(ctx, query, coupleID).Scan(
		&s.ID, &s.CoupleID, &s.CurrentStreak, &s.LongestStreak, &s.LastActiveDate, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("streak for couple %s: %w", coupleID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return &s, nil
}

// Update overwrites the streak counters and last active date
func (r *StreakRepository) Update(ctx context.Context, streak *models.Streak) error {
	query := `
		UPDATE streaks
		SET current_streak = $1, longest_streak = $2, last_active_date = $3, updated_at = now()
		WHERE id = $4
	`
	result, err := r.db.Exec(ctx, query,
		streak.CurrentStreak, streak.LongestStreak, streak.LastActiveDate, streak.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("streak %s: %w", streak.ID, models.ErrNotFound)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CalendarRepository handles database operations for calendar events
type CalendarRepository struct {
	db *pgxpool.Pool
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(db *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// ListByCoupleID retrieves all events for a couple ordered by date
func (r *CalendarRepository) ListByCoupleID(ctx context.Context, coupleID string) ([]*models.CalendarEvent, error) {
	query := `
		SELECT id, couple_id, author_id, title, description, event_date, event_time, color, created_at
		FROM calendar_events
		WHERE couple_id = $1
		ORDER BY event_date ASC, created_at ASC
	`
	rows, err := r.db.Query(ctx, query, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer rows.Close()

	var events []*models.CalendarEvent
	for rows.Next() {
		var e models.CalendarEvent
		err := rows.Scan(
			&e.ID, &e.CoupleID, &e.AuthorID, &e.Title, &e.Description,
			&e.EventDate, &e.EventTime, &e.Color, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar events: %w", err)
	}
	return events, nil
}

// GetByID retrieves a single event
func (r *CalendarRepository) GetByID(ctx context.Context, id string) (*models.CalendarEvent, error) {
	query := `
		SELECT id, couple_id, author_id, title, description, event_date, event_time, color, created_at
		FROM calendar_events
		WHERE id = $1
	`
	var e models.CalendarEvent
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.CoupleID, &e.AuthorID, &e.Title, &e.Description,
		&e.EventDate, &e.EventTime, &e.Color, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("calendar event %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get calendar event: %w", err)
	}
	return &e, nil
}

// Create creates a new event
func (r *CalendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (id, couple_id, author_id, title, description, event_date, event_time, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		event.ID, event.CoupleID, event.AuthorID, event.Title, event.Description,
		event.EventDate, event.EventTime, event.Color, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

// Delete deletes an event scoped to the couple
func (r *CalendarRepository) Delete(ctx context.Context, id, coupleID string) error {
	query := `DELETE FROM calendar_events WHERE id = $1 AND couple_id = $2`
	result, err := r.db.Exec(ctx, query, id, coupleID)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("calendar event %s: %w", id, models.ErrNotFound)
	}
	return nil
}

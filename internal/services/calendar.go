package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/repository"

	"github.com/google/uuid"
)

const defaultEventColor = "#FF6B9D"

// CalendarService handles shared calendar business logic
type CalendarService struct {
	events repository.CalendarStore
	now    func() time.Time
}

// NewCalendarService creates a new calendar service
func NewCalendarService(events repository.CalendarStore) *CalendarService {
	return &CalendarService{
		events: events,
		now:    time.Now,
	}
}

// List retrieves the couple's events ordered by date
func (s *CalendarService) List(ctx context.Context, coupleID string) ([]*models.CalendarEvent, error) {
	return s.events.ListByCoupleID(ctx, coupleID)
}

// Add creates an event. The title is trimmed and must be non-empty;
// the color defaults when omitted.
func (s *CalendarService) Add(ctx context.Context, coupleID, authorID, title string,
	date time.Time, eventTime *string, color, description string) (*models.CalendarEvent, error) {

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("event title is required: %w", models.ErrValidation)
	}
	if color == "" {
		color = defaultEventColor
	}

	event := &models.CalendarEvent{
		ID:          uuid.New().String(),
		CoupleID:    coupleID,
		AuthorID:    &authorID,
		Title:       title,
		Description: description,
		EventDate:   date,
		EventTime:   eventTime,
		Color:       color,
		CreatedAt:   s.now(),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event. Either partner may delete any of the
// couple's events; the couple scope in the delete prevents reaching
// into another couple's calendar.
func (s *CalendarService) Delete(ctx context.Context, coupleID, eventID string) error {
	return s.events.Delete(ctx, eventID, coupleID)
}

package services

import (
	"context"
	"fmt"
	"time"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	maxPatternSegments = 20
	recentNudgeLimit   = 50
)

// NudgeService handles vibration-pattern messaging business logic
type NudgeService struct {
	nudges   repository.NudgeStore
	profiles repository.ProfileStore
	now      func() time.Time
}

// NewNudgeService creates a new nudge service
func NewNudgeService(nudges repository.NudgeStore, profiles repository.ProfileStore) *NudgeService {
	return &NudgeService{
		nudges:   nudges,
		profiles: profiles,
		now:      time.Now,
	}
}

// ValidatePattern checks a vibration pattern: 1 to 20 segments, each a
// non-negative millisecond duration. Validation happens before any
// network or storage call.
func ValidatePattern(pattern []int32) error {
	if len(pattern) == 0 {
		return fmt.Errorf("pattern is empty: %w", models.ErrValidation)
	}
	if len(pattern) > maxPatternSegments {
		return fmt.Errorf("pattern has %d segments, maximum is %d: %w",
			len(pattern), maxPatternSegments, models.ErrValidation)
	}
	for i, d := range pattern {
		if d < 0 {
			return fmt.Errorf("pattern segment %d is negative: %w", i, models.ErrValidation)
		}
	}
	return nil
}

// Send creates a nudge addressed to the caller's partner. The partner
// must exist; the pattern is validated first.
func (s *NudgeService) Send(ctx context.Context, coupleID, senderID string,
	pattern []int32, patternName, emoji string) (*models.Nudge, error) {

	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}
	if patternName == "" {
		patternName = "Custom"
	}
	if emoji == "" {
		emoji = "✨"
	}

	partner, err := s.profiles.GetPartner(ctx, coupleID, senderID)
	if err != nil {
		return nil, fmt.Errorf("no partner to nudge: %w", models.ErrNotPaired)
	}

	nudge := &models.Nudge{
		ID:          uuid.New().String(),
		CoupleID:    coupleID,
		SenderID:    senderID,
		ReceiverID:  partner.ID,
		Pattern:     pattern,
		PatternName: patternName,
		Emoji:       emoji,
		CreatedAt:   s.now(),
	}

	if err := s.nudges.Create(ctx, nudge); err != nil {
		return nil, err
	}
	return nudge, nil
}

// SendPreset sends a built-in pattern by key
func (s *NudgeService) SendPreset(ctx context.Context, coupleID, senderID, presetKey string) (*models.Nudge, error) {
	preset, ok := models.PresetByKey(presetKey)
	if !ok {
		return nil, fmt.Errorf("unknown nudge preset %q: %w", presetKey, models.ErrValidation)
	}
	return s.Send(ctx, coupleID, senderID, preset.Pattern, preset.Name, preset.Emoji)
}

// List retrieves the couple's recent activity log (bounded) plus the
// caller's unread subset.
func (s *NudgeService) List(ctx context.Context, coupleID, userID string) (recent, unread []*models.Nudge, err error) {
	recent, err = s.nudges.ListRecent(ctx, coupleID, recentNudgeLimit)
	if err != nil {
		return nil, nil, err
	}
	unread, err = s.nudges.ListUnread(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return recent, unread, nil
}

// MarkRead marks one nudge read for its receiver
func (s *NudgeService) MarkRead(ctx context.Context, userID, nudgeID string) error {
	return s.nudges.MarkRead(ctx, nudgeID, userID)
}

// MarkAllRead marks every unread nudge for the caller as read
func (s *NudgeService) MarkAllRead(ctx context.Context, userID string) error {
	return s.nudges.MarkAllRead(ctx, userID)
}

package services

import (
	"context"
	"time"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/repository"
)

const streakBonusEvery = 7

// StreakService handles activity streak business logic. Calendar-day
// comparisons use a single configured location so day boundaries are
// deterministic server-side rather than per-device.
type StreakService struct {
	streaks repository.StreakStore
	loc     *time.Location
	now     func() time.Time
}

// NewStreakService creates a new streak service
func NewStreakService(streaks repository.StreakStore, loc *time.Location) *StreakService {
	if loc == nil {
		loc = time.UTC
	}
	return &StreakService{
		streaks: streaks,
		loc:     loc,
		now:     time.Now,
	}
}

// Get retrieves the couple's streak
func (s *StreakService) Get(ctx context.Context, coupleID string) (*models.Streak, error) {
	return s.streaks.GetByCoupleID(ctx, coupleID)
}

// dateOf truncates a time to its calendar date in loc, stored as a
// UTC-midnight value so stored dates compare cleanly.
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nextStreak computes the new consecutive-day count: unchanged when
// already checked in today, incremented when the last active day was
// yesterday, reset to 1 otherwise. The second return is false when
// today's check-in already happened.
func nextStreak(current int, lastActive *time.Time, today time.Time) (int, bool) {
	if lastActive != nil {
		last := lastActive.Format("2006-01-02")
		if last == today.Format("2006-01-02") {
			return current, false
		}
		if last == today.AddDate(0, 0, -1).Format("2006-01-02") {
			return current + 1, true
		}
	}
	return 1, true
}

// CheckIn records today's activity for the couple. Idempotent per
// calendar day. Returns the streak and whether this check-in landed on
// a 7-day milestone (the caller grants the streak_bonus reward).
func (s *StreakService) CheckIn(ctx context.Context, coupleID string) (*models.Streak, bool, error) {
	streak, err := s.streaks.GetByCoupleID(ctx, coupleID)
	if err != nil {
		return nil, false, err
	}

	today := dateOf(s.now(), s.loc)
	next, changed := nextStreak(streak.CurrentStreak, streak.LastActiveDate, today)
	if !changed {
		return streak, false, nil
	}

	streak.CurrentStreak = next
	if next > streak.LongestStreak {
		streak.LongestStreak = next
	}
	streak.LastActiveDate = &today

	if err := s.streaks.Update(ctx, streak); err != nil {
		return nil, false, err
	}

	bonus := next > 0 && next%streakBonusEvery == 0
	return streak, bonus, nil
}

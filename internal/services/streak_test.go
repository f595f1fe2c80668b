package services

import (
	"context"
	"testing"
	"time"

	"couple-companion-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStreakService(streak *models.Streak, now time.Time, updated **models.Streak) *StreakService {
	svc := NewStreakService(&mockStreakStore{
		getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Streak, error) {
			return streak, nil
		},
		updateFn: func(ctx context.Context, s *models.Streak) error {
			if updated != nil {
				*updated = s
			}
			return nil
		},
	}, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestStreakService_CheckIn_First(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	streak := &models.Streak{ID: "s1", CoupleID: "couple-1"}

	var updated *models.Streak
	svc := newStreakService(streak, now, &updated)

	got, bonus, err := svc.CheckIn(context.Background(), "couple-1")
	require.NoError(t, err)
	assert.False(t, bonus)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 1, got.LongestStreak)
	require.NotNil(t, got.LastActiveDate)
	assert.Equal(t, *dayPtr(2026, 3, 10), *got.LastActiveDate)
	require.NotNil(t, updated)
}

func TestStreakService_CheckIn_SameDayIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	streak := &models.Streak{
		ID: "s1", CoupleID: "couple-1",
		CurrentStreak: 4, LongestStreak: 9,
		LastActiveDate: dayPtr(2026, 3, 10),
	}

	svc := NewStreakService(&mockStreakStore{
		getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Streak, error) {
			return streak, nil
		},
		updateFn: func(ctx context.Context, s *models.Streak) error {
			t.Fatal("Update must not be called for a same-day check-in")
			return nil
		},
	}, time.UTC)
	svc.now = func() time.Time { return now }

	got, bonus, err := svc.CheckIn(context.Background(), "couple-1")
	require.NoError(t, err)
	assert.False(t, bonus)
	assert.Equal(t, 4, got.CurrentStreak)
}

func TestStreakService_CheckIn_ConsecutiveDayWithBonus(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	streak := &models.Streak{
		ID: "s1", CoupleID: "couple-1",
		CurrentStreak: 6, LongestStreak: 6,
		LastActiveDate: dayPtr(2026, 3, 9),
	}

	svc := newStreakService(streak, now, nil)

	got, bonus, err := svc.CheckIn(context.Background(), "couple-1")
	require.NoError(t, err)
	assert.True(t, bonus, "day 7 is a milestone")
	assert.Equal(t, 7, got.CurrentStreak)
	assert.Equal(t, 7, got.LongestStreak)
}

func TestStreakService_CheckIn_GapResets(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	streak := &models.Streak{
		ID: "s1", CoupleID: "couple-1",
		CurrentStreak: 13, LongestStreak: 13,
		LastActiveDate: dayPtr(2026, 3, 8),
	}

	svc := newStreakService(streak, now, nil)

	got, bonus, err := svc.CheckIn(context.Background(), "couple-1")
	require.NoError(t, err)
	assert.False(t, bonus, "a reset day never pays a bonus")
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 13, got.LongestStreak, "longest survives the reset")
}

func TestStreakService_CheckIn_DayBoundaryUsesLocation(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	// 23:30 UTC on March 9 is already March 10 in Warsaw.
	now := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)
	streak := &models.Streak{
		ID: "s1", CoupleID: "couple-1",
		CurrentStreak: 2, LongestStreak: 2,
		LastActiveDate: dayPtr(2026, 3, 9),
	}

	var updated *models.Streak
	svc := NewStreakService(&mockStreakStore{
		getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Streak, error) {
			return streak, nil
		},
		updateFn: func(ctx context.Context, s *models.Streak) error {
			updated = s
			return nil
		},
	}, warsaw)
	svc.now = func() time.Time { return now }

	got, _, err := svc.CheckIn(context.Background(), "couple-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStreak)
	require.NotNil(t, updated)
	assert.Equal(t, *dayPtr(2026, 3, 10), *updated.LastActiveDate)
}

func TestNextStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	lastWeek := today.AddDate(0, 0, -7)

	tests := []struct {
		name       string
		current    int
		lastActive *time.Time
		want       int
		changed    bool
	}{
		{"never active", 0, nil, 1, true},
		{"already today", 5, &today, 5, false},
		{"yesterday", 5, &yesterday, 6, true},
		{"stale", 5, &lastWeek, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := nextStreak(tt.current, tt.lastActive, today)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

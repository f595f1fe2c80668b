package services

import (
	"context"
	"testing"

	"couple-companion-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern []int32
		wantErr bool
	}{
		{"single segment", []int32{200}, false},
		{"kiss preset shape", []int32{50, 50, 50, 50, 300}, false},
		{"zero-length pause allowed", []int32{100, 0, 100}, false},
		{"empty", nil, true},
		{"negative segment", []int32{100, -1}, true},
		{"twenty segments", make([]int32, 20), false},
		{"twenty-one segments", make([]int32, 21), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePattern(tt.pattern)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNudgeService_Send(t *testing.T) {
	partner := &models.Profile{ID: "user-2"}

	t.Run("addresses the partner and fills defaults", func(t *testing.T) {
		var created *models.Nudge
		svc := NewNudgeService(&mockNudgeStore{
			createFn: func(ctx context.Context, n *models.Nudge) error {
				created = n
				return nil
			},
		}, &mockProfileStore{
			getPartnerFn: func(ctx context.Context, coupleID, userID string) (*models.Profile, error) {
				return partner, nil
			},
		})

		nudge, err := svc.Send(context.Background(), "couple-1", "user-1", []int32{100, 50, 100}, "", "")
		require.NoError(t, err)
		assert.Equal(t, "user-2", nudge.ReceiverID)
		assert.Equal(t, "user-1", nudge.SenderID)
		assert.Equal(t, "Custom", nudge.PatternName)
		assert.Equal(t, "✨", nudge.Emoji)
		assert.False(t, nudge.IsRead)
		require.NotNil(t, created)
	})

	t.Run("invalid pattern never reaches the store", func(t *testing.T) {
		svc := NewNudgeService(&mockNudgeStore{
			createFn: func(ctx context.Context, n *models.Nudge) error {
				t.Fatal("Create must not be called for an invalid pattern")
				return nil
			},
		}, &mockProfileStore{
			getPartnerFn: func(ctx context.Context, coupleID, userID string) (*models.Profile, error) {
				t.Fatal("GetPartner must not be called for an invalid pattern")
				return nil, nil
			},
		})

		_, err := svc.Send(context.Background(), "couple-1", "user-1", make([]int32, 21), "", "")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("no partner", func(t *testing.T) {
		svc := NewNudgeService(&mockNudgeStore{}, &mockProfileStore{})

		_, err := svc.Send(context.Background(), "couple-1", "user-1", []int32{100}, "", "")
		assert.ErrorIs(t, err, models.ErrNotPaired)
	})
}

func TestNudgeService_SendPreset(t *testing.T) {
	svc := NewNudgeService(&mockNudgeStore{}, &mockProfileStore{
		getPartnerFn: func(ctx context.Context, coupleID, userID string) (*models.Profile, error) {
			return &models.Profile{ID: "user-2"}, nil
		},
	})

	nudge, err := svc.SendPreset(context.Background(), "couple-1", "user-1", "kiss")
	require.NoError(t, err)
	assert.Equal(t, []int32{50, 50, 50, 50, 300}, nudge.Pattern)
	assert.Equal(t, "Kiss", nudge.PatternName)

	_, err = svc.SendPreset(context.Background(), "couple-1", "user-1", "airhorn")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestNudgeService_List(t *testing.T) {
	recent := []*models.Nudge{{ID: "n1"}, {ID: "n2"}}
	unread := []*models.Nudge{{ID: "n2"}}

	var recentLimit int
	svc := NewNudgeService(&mockNudgeStore{
		listRecentFn: func(ctx context.Context, coupleID string, limit int) ([]*models.Nudge, error) {
			recentLimit = limit
			return recent, nil
		},
		listUnreadFn: func(ctx context.Context, receiverID string) ([]*models.Nudge, error) {
			return unread, nil
		},
	}, &mockProfileStore{})

	gotRecent, gotUnread, err := svc.List(context.Background(), "couple-1", "user-2")
	require.NoError(t, err)
	assert.Equal(t, recentNudgeLimit, recentLimit)
	assert.Len(t, gotRecent, 2)
	assert.Len(t, gotUnread, 1)
}

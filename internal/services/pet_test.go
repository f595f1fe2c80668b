package services

import (
	"context"
	"testing"
	"time"

	"couple-companion-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPet(lastFed, lastPet time.Time) *models.Pet {
	return &models.Pet{
		ID:        "pet-1",
		CoupleID:  "couple-1",
		Name:      "Mochi",
		Happiness: 80,
		Hunger:    40,
		OutfitID:  "none",
		LastFedAt: lastFed,
		LastPetAt: lastPet,
	}
}

func TestPetService_Feed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pet := newTestPet(now.Add(-time.Hour), now.Add(-time.Hour))

	var updated *models.Pet
	svc := NewPetService(&mockPetStore{
		getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Pet, error) {
			return pet, nil
		},
		updateFn: func(ctx context.Context, p *models.Pet) error {
			updated = p
			return nil
		},
	}, &mockOutfitStore{})
	svc.now = func() time.Time { return now }

	got, fed, err := svc.Feed(context.Background(), "couple-1")
	require.NoError(t, err)
	assert.True(t, fed)
	assert.Equal(t, 20, got.Hunger)
	assert.Equal(t, 85, got.Happiness)
	assert.Equal(t, now, got.LastFedAt)
	require.NotNil(t, updated)
}

func TestPetService_Feed_WithinCooldown(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pet := newTestPet(now.Add(-10*time.Minute), now.Add(-time.Hour))

	svc := NewPetService(&mockPetStore{
		getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Pet, error) {
			return pet, nil
		},
		updateFn: func(ctx context.Context, p *models.Pet) error {
			t.Fatal("Update must not be called inside the cooldown")
			return nil
		},
	}, &mockOutfitStore{})
	svc.now = func() time.Time { return now }

	got, fed, err := svc.Feed(context.Background(), "couple-1")
	require.NoError(t, err)
	assert.False(t, fed)
	assert.Equal(t, 40, got.Hunger)
	assert.Equal(t, 80, got.Happiness)
}

func TestPetService_Feed_ClampsAtBounds(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pet := newTestPet(now.Add(-time.Hour), now.Add(-time.Hour))
	pet.Hunger = 5
	pet.Happiness = 98

	svc := NewPetService(&mockPetStore{
		getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Pet, error) {
			return pet, nil
		},
	}, &mockOutfitStore{})
	svc.now = func() time.Time { return now }

	got, fed, err := svc.Feed(context.Background(), "couple-1")
	require.NoError(t, err)
	assert.True(t, fed)
	assert.Equal(t, 0, got.Hunger)
	assert.Equal(t, 100, got.Happiness)
}

func TestPetService_Pat(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("outside cooldown", func(t *testing.T) {
		pet := newTestPet(now.Add(-time.Hour), now.Add(-6*time.Minute))
		svc := NewPetService(&mockPetStore{
			getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Pet, error) {
				return pet, nil
			},
		}, &mockOutfitStore{})
		svc.now = func() time.Time { return now }

		got, patted, err := svc.Pat(context.Background(), "couple-1")
		require.NoError(t, err)
		assert.True(t, patted)
		assert.Equal(t, 90, got.Happiness)
		assert.Equal(t, now, got.LastPetAt)
	})

	t.Run("within cooldown", func(t *testing.T) {
		pet := newTestPet(now.Add(-time.Hour), now.Add(-time.Minute))
		svc := NewPetService(&mockPetStore{
			getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Pet, error) {
				return pet, nil
			},
		}, &mockOutfitStore{})
		svc.now = func() time.Time { return now }

		got, patted, err := svc.Pat(context.Background(), "couple-1")
		require.NoError(t, err)
		assert.False(t, patted)
		assert.Equal(t, 80, got.Happiness)
	})
}

func TestPetService_Rename(t *testing.T) {
	pet := newTestPet(time.Time{}, time.Time{})
	svc := NewPetService(&mockPetStore{
		getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Pet, error) {
			return pet, nil
		},
	}, &mockOutfitStore{})

	got, err := svc.Rename(context.Background(), "couple-1", "  Pierogi  ")
	require.NoError(t, err)
	assert.Equal(t, "Pierogi", got.Name)

	_, err = svc.Rename(context.Background(), "couple-1", "   ")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Rename(context.Background(), "couple-1", "a very long pet name over limit")
	assert.ErrorIs(t, err, models.ErrValidation)

	// 20 runes exactly is allowed, also for multibyte names.
	got, err = svc.Rename(context.Background(), "couple-1", "もももももももももももももももももももも")
	require.NoError(t, err)
	assert.Len(t, []rune(got.Name), 20)
}

func TestPetService_EquipOutfit(t *testing.T) {
	pet := newTestPet(time.Time{}, time.Time{})
	svc := NewPetService(&mockPetStore{
		getByCoupleIDFn: func(ctx context.Context, coupleID string) (*models.Pet, error) {
			return pet, nil
		},
	}, &mockOutfitStore{
		isOwnedFn: func(ctx context.Context, coupleID, outfitID string) (bool, error) {
			return outfitID == "red_scarf", nil
		},
	})

	got, err := svc.EquipOutfit(context.Background(), "couple-1", "red_scarf")
	require.NoError(t, err)
	assert.Equal(t, "red_scarf", got.OutfitID)

	_, err = svc.EquipOutfit(context.Background(), "couple-1", "royal_crown")
	assert.ErrorIs(t, err, models.ErrOutfitNotOwned)

	// The bare look never requires a purchase.
	got, err = svc.EquipOutfit(context.Background(), "couple-1", "none")
	require.NoError(t, err)
	assert.Equal(t, "none", got.OutfitID)
}

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"couple-companion-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := generateCode()
		assert.Len(t, code, codeLength)
		for _, c := range code {
			assert.Contains(t, codeChars, string(c))
		}
		seen[code] = true
	}
	// 100 draws from a 36^6 space colliding down to a handful would
	// mean a broken generator.
	assert.Greater(t, len(seen), 90)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB12CD", NormalizeCode("  ab12cd "))
	assert.Equal(t, "AB12CD", NormalizeCode("AB12CD"))
}

func TestCoupleService_CreateCouple(t *testing.T) {
	t.Run("creates couple with pet, wallet and streak", func(t *testing.T) {
		var created struct {
			couple *models.Couple
			pet    *models.Pet
			wallet *models.KissWallet
			streak *models.Streak
		}
		svc := NewCoupleService(&mockCoupleStore{
			createWithDefaultsFn: func(ctx context.Context, couple *models.Couple, creatorID string,
				pet *models.Pet, wallet *models.KissWallet, streak *models.Streak) error {
				created.couple = couple
				created.pet = pet
				created.wallet = wallet
				created.streak = streak
				return nil
			},
		}, &mockProfileStore{
			getByIDFn: func(ctx context.Context, id string) (*models.Profile, error) {
				return &models.Profile{ID: id, Role: models.RolePending}, nil
			},
		})

		anniversary := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		couple, err := svc.CreateCouple(context.Background(), "user-1", anniversary)
		require.NoError(t, err)
		assert.Len(t, couple.PairingCode, codeLength)
		assert.Equal(t, anniversary, couple.AnniversaryDate)

		require.NotNil(t, created.pet)
		assert.Equal(t, defaultPetName, created.pet.Name)
		assert.Equal(t, 80, created.pet.Happiness)
		assert.Equal(t, 20, created.pet.Hunger)
		assert.Equal(t, "none", created.pet.OutfitID)
		require.NotNil(t, created.wallet)
		assert.Equal(t, 0, created.wallet.Balance)
		require.NotNil(t, created.streak)
		assert.Equal(t, 0, created.streak.CurrentStreak)
	})

	t.Run("already paired", func(t *testing.T) {
		coupleID := "existing"
		svc := NewCoupleService(&mockCoupleStore{}, &mockProfileStore{
			getByIDFn: func(ctx context.Context, id string) (*models.Profile, error) {
				return &models.Profile{ID: id, CoupleID: &coupleID}, nil
			},
		})

		_, err := svc.CreateCouple(context.Background(), "user-1", time.Now())
		assert.ErrorIs(t, err, models.ErrAlreadyPaired)
	})
}

func TestCoupleService_JoinCouple(t *testing.T) {
	couple := &models.Couple{ID: "couple-1", PairingCode: "AB12CD"}

	freeProfile := &mockProfileStore{
		getByIDFn: func(ctx context.Context, id string) (*models.Profile, error) {
			return &models.Profile{ID: id, Role: models.RolePending}, nil
		},
	}

	t.Run("code is normalized before lookup", func(t *testing.T) {
		var lookedUp string
		svc := NewCoupleService(&mockCoupleStore{
			getByPairingCodeFn: func(ctx context.Context, code string) (*models.Couple, error) {
				lookedUp = code
				return couple, nil
			},
		}, freeProfile)

		got, err := svc.JoinCouple(context.Background(), "user-2", " ab12cd ")
		require.NoError(t, err)
		assert.Equal(t, "AB12CD", lookedUp)
		assert.Equal(t, "couple-1", got.ID)
	})

	t.Run("unknown code", func(t *testing.T) {
		svc := NewCoupleService(&mockCoupleStore{}, freeProfile)

		_, err := svc.JoinCouple(context.Background(), "user-2", "ZZZZZZ")
		assert.ErrorIs(t, err, models.ErrCoupleNotFound)
	})

	t.Run("full couple rejects a third member", func(t *testing.T) {
		svc := NewCoupleService(&mockCoupleStore{
			getByPairingCodeFn: func(ctx context.Context, code string) (*models.Couple, error) {
				return couple, nil
			},
			joinFn: func(ctx context.Context, coupleID, userID string) error {
				return models.ErrCoupleFull
			},
		}, freeProfile)

		_, err := svc.JoinCouple(context.Background(), "user-3", "AB12CD")
		assert.ErrorIs(t, err, models.ErrCoupleFull)
	})

	t.Run("already paired caller", func(t *testing.T) {
		other := "other-couple"
		svc := NewCoupleService(&mockCoupleStore{}, &mockProfileStore{
			getByIDFn: func(ctx context.Context, id string) (*models.Profile, error) {
				return &models.Profile{ID: id, CoupleID: &other}, nil
			},
		})

		_, err := svc.JoinCouple(context.Background(), "user-2", "AB12CD")
		assert.ErrorIs(t, err, models.ErrAlreadyPaired)
	})
}

func TestCoupleService_DaysTogether(t *testing.T) {
	svc := NewCoupleService(&mockCoupleStore{}, &mockProfileStore{})
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	assert.Equal(t, 100, svc.DaysTogether(&models.Couple{
		AnniversaryDate: now.AddDate(0, 0, -100),
	}))
	assert.Equal(t, 0, svc.DaysTogether(&models.Couple{
		AnniversaryDate: now.AddDate(0, 0, 5),
	}), "future anniversaries floor at zero")
}

func TestGenerateUniqueCode_RetriesOnCollision(t *testing.T) {
	calls := 0
	svc := NewCoupleService(&mockCoupleStore{
		codeExistsFn: func(ctx context.Context, code string) (bool, error) {
			calls++
			return calls < 3, nil
		},
	}, &mockProfileStore{})

	code, err := svc.GenerateUniqueCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, strings.ToUpper(code), code)
}

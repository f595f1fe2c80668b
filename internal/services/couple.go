package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	codeLength     = 6
	codeChars      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	defaultPetName = "Mochi"
)

// CoupleService handles pairing business logic
type CoupleService struct {
	couples  repository.CoupleStore
	profiles repository.ProfileStore
	now      func() time.Time
}

// NewCoupleService creates a new couple service
func NewCoupleService(couples repository.CoupleStore, profiles repository.ProfileStore) *CoupleService {
	return &CoupleService{
		couples:  couples,
		profiles: profiles,
		now:      time.Now,
	}
}

// GenerateUniqueCode generates a unique 6-character pairing code
func (s *CoupleService) GenerateUniqueCode(ctx context.Context) (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		code := generateCode()
		exists, err := s.couples.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code existence: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique code after %d attempts", maxAttempts)
}

// generateCode generates a random 6-character code
func generateCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		code[i] = codeChars[n.Int64()]
	}
	return string(code)
}

// NormalizeCode canonicalizes user-entered pairing codes so lookups
// are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateCouple creates a couple with the given anniversary date and
// assigns the caller partner_a. The couple's pet, wallet and streak are
// created with it. Returns the couple carrying the pairing code.
func (s *CoupleService) CreateCouple(ctx context.Context, userID string, anniversaryDate time.Time) (*models.Couple, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.CoupleID != nil {
		return nil, models.ErrAlreadyPaired
	}

	code, err := s.GenerateUniqueCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate pairing code: %w", err)
	}

	now := s.now()
	couple := &models.Couple{
		ID:              uuid.New().String(),
		PairingCode:     code,
		AnniversaryDate: anniversaryDate,
		CreatedAt:       now,
	}
	pet := &models.Pet{
		ID:        uuid.New().String(),
		CoupleID:  couple.ID,
		Name:      defaultPetName,
		Happiness: 80,
		Hunger:    20,
		OutfitID:  "none",
		LastFedAt: now,
		LastPetAt: now,
		CreatedAt: now,
	}
	wallet := &models.KissWallet{
		ID:       uuid.New().String(),
		CoupleID: couple.ID,
	}
	streak := &models.Streak{
		ID:       uuid.New().String(),
		CoupleID: couple.ID,
	}

	if err := s.couples.CreateWithDefaults(ctx, couple, userID, pet, wallet, streak); err != nil {
		return nil, fmt.Errorf("failed to create couple: %w", err)
	}
	return couple, nil
}

// JoinCouple looks up a couple by pairing code and assigns the caller
// partner_b. Fails with ErrCoupleNotFound for an unknown code and
// ErrCoupleFull when two profiles already reference the couple; in
// both cases the caller's profile is left untouched.
func (s *CoupleService) JoinCouple(ctx context.Context, userID, pairingCode string) (*models.Couple, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.CoupleID != nil {
		return nil, models.ErrAlreadyPaired
	}

	couple, err := s.couples.GetByPairingCode(ctx, NormalizeCode(pairingCode))
	if err != nil {
		return nil, err
	}

	if err := s.couples.Join(ctx, couple.ID, userID); err != nil {
		return nil, err
	}
	return couple, nil
}

// DaysTogether returns the whole days elapsed since the anniversary,
// floored at zero for future dates.
func (s *CoupleService) DaysTogether(couple *models.Couple) int {
	days := int(s.now().Sub(couple.AnniversaryDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

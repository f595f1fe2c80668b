package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/repository"
)

const (
	feedCooldown = 30 * time.Minute
	patCooldown  = 5 * time.Minute

	feedHungerDelta    = 20
	feedHappinessDelta = 5
	patHappinessDelta  = 10

	maxPetNameLength = 20
)

// PetService handles virtual pet business logic
type PetService struct {
	pets    repository.PetStore
	outfits repository.OutfitStore
	now     func() time.Time
}

// NewPetService creates a new pet service
func NewPetService(pets repository.PetStore, outfits repository.OutfitStore) *PetService {
	return &PetService{
		pets:    pets,
		outfits: outfits,
		now:     time.Now,
	}
}

// cooldownElapsed reports whether at least threshold has passed since
// last. Kept as a pure function so cooldown gates can be exercised
// with an injected clock.
func cooldownElapsed(last, now time.Time, threshold time.Duration) bool {
	return now.Sub(last) >= threshold
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Get retrieves the couple's pet
func (s *PetService) Get(ctx context.Context, coupleID string) (*models.Pet, error) {
	return s.pets.GetByCoupleID(ctx, coupleID)
}

// Feed feeds the pet: hunger -20 (floor 0), happiness +5 (cap 100).
// Within the 30-minute cooldown the call is a silent no-op and fed is
// false; the caller grants the feed_pet reward only when fed is true.
func (s *PetService) Feed(ctx context.Context, coupleID string) (*models.Pet, bool, error) {
	pet, err := s.pets.GetByCoupleID(ctx, coupleID)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	if !cooldownElapsed(pet.LastFedAt, now, feedCooldown) {
		return pet, false, nil
	}

	pet.Hunger = clamp(pet.Hunger-feedHungerDelta, 0, 100)
	pet.Happiness = clamp(pet.Happiness+feedHappinessDelta, 0, 100)
	pet.LastFedAt = now

	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, false, err
	}
	return pet, true, nil
}

// Pat pets the pet: happiness +10 (cap 100), 5-minute cooldown.
// No-op within the cooldown, mirroring Feed.
func (s *PetService) Pat(ctx context.Context, coupleID string) (*models.Pet, bool, error) {
	pet, err := s.pets.GetByCoupleID(ctx, coupleID)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	if !cooldownElapsed(pet.LastPetAt, now, patCooldown) {
		return pet, false, nil
	}

	pet.Happiness = clamp(pet.Happiness+patHappinessDelta, 0, 100)
	pet.LastPetAt = now

	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, false, err
	}
	return pet, true, nil
}

// Rename changes the pet's name. Empty names and names over 20
// characters are rejected.
func (s *PetService) Rename(ctx context.Context, coupleID, name string) (*models.Pet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("pet name is required: %w", models.ErrValidation)
	}
	if len([]rune(name)) > maxPetNameLength {
		return nil, fmt.Errorf("pet name must be at most %d characters: %w", maxPetNameLength, models.ErrValidation)
	}

	pet, err := s.pets.GetByCoupleID(ctx, coupleID)
	if err != nil {
		return nil, err
	}

	pet.Name = name
	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// EquipOutfit sets the pet's equipped outfit. The outfit must be in
// the couple's owned set; equipping the already-equipped outfit is
// allowed.
func (s *PetService) EquipOutfit(ctx context.Context, coupleID, outfitID string) (*models.Pet, error) {
	owned, err := s.outfits.IsOwned(ctx, coupleID, outfitID)
	if err != nil {
		return nil, err
	}
	if !owned && outfitID != "none" {
		return nil, fmt.Errorf("outfit %s: %w", outfitID, models.ErrOutfitNotOwned)
	}

	pet, err := s.pets.GetByCoupleID(ctx, coupleID)
	if err != nil {
		return nil, err
	}

	pet.OutfitID = outfitID
	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

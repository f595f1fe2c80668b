package handlers

import (
	"encoding/json"
	"net/http"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PetHandler handles virtual pet HTTP requests
type PetHandler struct {
	petService    *services.PetService
	walletService *services.WalletService
	authService   *services.AuthService
	wsHub         *services.WSHub
}

// NewPetHandler creates a new pet handler
func NewPetHandler(petService *services.PetService, walletService *services.WalletService, authService *services.AuthService, wsHub *services.WSHub) *PetHandler {
	return &PetHandler{
		petService:    petService,
		walletService: walletService,
		authService:   authService,
		wsHub:         wsHub,
	}
}

// PetResponse carries a pet together with its derived mood
type PetResponse struct {
	Pet  *models.Pet    `json:"pet"`
	Mood models.PetMood `json:"mood"`
}

// InteractionResponse reports a care action with its reward outcome
type InteractionResponse struct {
	Pet      *models.Pet        `json:"pet"`
	Mood     models.PetMood     `json:"mood"`
	Rewarded bool               `json:"rewarded"`
	Wallet   *models.KissWallet `json:"wallet,omitempty"`
}

// GetPet handles GET /api/v1/pet
func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	pet, err := h.petService.Get(ctx, *profile.CoupleID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Msg("Failed to load pet")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, PetResponse{Pet: pet, Mood: pet.Mood()})
}

// FeedPet handles POST /api/v1/pet/feed
func (h *PetHandler) FeedPet(w http.ResponseWriter, r *http.Request) {
	h.interact(w, r, "feed")
}

// PatPet handles POST /api/v1/pet/pat
func (h *PetHandler) PatPet(w http.ResponseWriter, r *http.Request) {
	h.interact(w, r, "pat")
}

// interact runs a care action and, when it landed outside the
// cooldown, grants the matching kiss reward and fans out the change.
func (h *PetHandler) interact(w http.ResponseWriter, r *http.Request, action string) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	coupleID := *profile.CoupleID

	var (
		pet      *models.Pet
		rewarded bool
		reason   models.KissReason
	)
	switch action {
	case "feed":
		pet, rewarded, err = h.petService.Feed(ctx, coupleID)
		reason = models.ReasonFeedPet
	default:
		pet, rewarded, err = h.petService.Pat(ctx, coupleID)
		reason = models.ReasonPetPet
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Str("action", action).
			Msg("Failed to interact with pet")
		respondDomainError(w, err)
		return
	}

	resp := InteractionResponse{Pet: pet, Mood: pet.Mood(), Rewarded: rewarded}

	audience := coupleAudience(ctx, h.authService, coupleID, userID)
	if rewarded {
		wallet, err := h.walletService.Earn(ctx, coupleID, userID, reason)
		if err != nil {
			log.Error().
				Err(err).
				Str("couple_id", coupleID).
				Str("reason", string(reason)).
				Msg("Failed to grant care reward")
		} else {
			resp.Wallet = wallet
			h.wsHub.Broadcast(audience, services.NewEvent(services.EventWalletUpdated, wallet))
		}
		h.wsHub.Broadcast(audience, services.NewEvent(services.EventPetUpdated, resp.Pet))
	}

	respondJSON(w, http.StatusOK, resp)
}

// RenamePetRequest represents the request body for renaming the pet
type RenamePetRequest struct {
	Name string `json:"name"`
}

// RenamePet handles PUT /api/v1/pet/name
func (h *PetHandler) RenamePet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req RenamePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pet, err := h.petService.Rename(ctx, *profile.CoupleID, req.Name)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	audience := coupleAudience(ctx, h.authService, *profile.CoupleID, userID)
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventPetUpdated, pet))

	respondJSON(w, http.StatusOK, PetResponse{Pet: pet, Mood: pet.Mood()})
}

// EquipOutfitRequest represents the request body for dressing the pet
type EquipOutfitRequest struct {
	OutfitID string `json:"outfit_id"`
}

// EquipOutfit handles PUT /api/v1/pet/outfit
func (h *PetHandler) EquipOutfit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req EquipOutfitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.OutfitID == "" {
		respondError(w, "outfit_id is required", http.StatusBadRequest)
		return
	}

	pet, err := h.petService.EquipOutfit(ctx, *profile.CoupleID, req.OutfitID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Str("outfit_id", req.OutfitID).
			Msg("Failed to equip outfit")
		respondDomainError(w, err)
		return
	}

	audience := coupleAudience(ctx, h.authService, *profile.CoupleID, userID)
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventPetUpdated, pet))

	respondJSON(w, http.StatusOK, PetResponse{Pet: pet, Mood: pet.Mood()})
}

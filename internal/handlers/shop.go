package handlers

import (
	"encoding/json"
	"net/http"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ShopHandler handles outfit shop HTTP requests
type ShopHandler struct {
	walletService *services.WalletService
	authService   *services.AuthService
	wsHub         *services.WSHub
}

// NewShopHandler creates a new shop handler
func NewShopHandler(walletService *services.WalletService, authService *services.AuthService, wsHub *services.WSHub) *ShopHandler {
	return &ShopHandler{
		walletService: walletService,
		authService:   authService,
		wsHub:         wsHub,
	}
}

// ListOutfits handles GET /api/v1/shop/outfits
func (h *ShopHandler) ListOutfits(w http.ResponseWriter, r *http.Request) {
	outfits, err := h.walletService.Catalog(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list outfit catalog")
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, outfits)
}

// ListOwned handles GET /api/v1/shop/owned
func (h *ShopHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	owned, err := h.walletService.OwnedOutfits(ctx, *profile.CoupleID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Msg("Failed to list owned outfits")
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, owned)
}

// PurchaseRequest represents the request body for buying an outfit
type PurchaseRequest struct {
	OutfitID string `json:"outfit_id"`
}

// PurchaseResponse reports the purchase outcome and the debited wallet
type PurchaseResponse struct {
	Success bool               `json:"success"`
	Wallet  *models.KissWallet `json:"wallet,omitempty"`
}

// Purchase handles POST /api/v1/shop/purchase
func (h *ShopHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	coupleID := *profile.CoupleID

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.OutfitID == "" {
		respondError(w, "outfit_id is required", http.StatusBadRequest)
		return
	}

	ok, err := h.walletService.PurchaseOutfit(ctx, coupleID, userID, req.OutfitID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Str("outfit_id", req.OutfitID).
			Msg("Failed to purchase outfit")
		respondDomainError(w, err)
		return
	}
	if !ok {
		respondError(w, "insufficient balance", http.StatusConflict)
		return
	}

	log.Info().
		Str("couple_id", coupleID).
		Str("outfit_id", req.OutfitID).
		Str("user_id", userID).
		Msg("Outfit purchased")

	wallet, err := h.walletService.Get(ctx, coupleID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Msg("Failed to reload wallet after purchase")
		respondDomainError(w, err)
		return
	}

	audience := coupleAudience(ctx, h.authService, coupleID, userID)
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventOutfitPurchased, map[string]string{
		"outfit_id":    req.OutfitID,
		"purchased_by": userID,
	}))
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventWalletUpdated, wallet))

	respondJSON(w, http.StatusOK, PurchaseResponse{Success: true, Wallet: wallet})
}

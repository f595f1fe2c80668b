package handlers

import (
	"encoding/json"
	"net/http"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// WalletHandler handles kiss wallet HTTP requests
type WalletHandler struct {
	walletService *services.WalletService
	authService   *services.AuthService
	wsHub         *services.WSHub
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *services.WalletService, authService *services.AuthService, wsHub *services.WSHub) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		authService:   authService,
		wsHub:         wsHub,
	}
}

// GetWallet handles GET /api/v1/wallet
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	wallet, err := h.walletService.Get(ctx, *profile.CoupleID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Msg("Failed to load wallet")
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wallet)
}

// ListTransactions handles GET /api/v1/wallet/transactions
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	transactions, err := h.walletService.Transactions(ctx, *profile.CoupleID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Msg("Failed to list transactions")
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

// EarnRequest represents the request body for claiming a reward
type EarnRequest struct {
	Reason string `json:"reason"`
}

// Earn handles POST /api/v1/kisses/earn. The reward amount comes from
// the server-side table only; zero-amount reasons are accepted as
// no-ops.
func (h *WalletHandler) Earn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	coupleID := *profile.CoupleID

	var req EarnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	wallet, err := h.walletService.Earn(ctx, coupleID, userID, models.KissReason(req.Reason))
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Str("reason", req.Reason).
			Msg("Failed to earn kisses")
		respondDomainError(w, err)
		return
	}

	audience := coupleAudience(ctx, h.authService, coupleID, userID)
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventWalletUpdated, wallet))

	respondJSON(w, http.StatusOK, wallet)
}

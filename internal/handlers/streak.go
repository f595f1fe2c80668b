package handlers

import (
	"net/http"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// StreakHandler handles streak HTTP requests
type StreakHandler struct {
	streakService *services.StreakService
	walletService *services.WalletService
	authService   *services.AuthService
	wsHub         *services.WSHub
}

// NewStreakHandler creates a new streak handler
func NewStreakHandler(streakService *services.StreakService, walletService *services.WalletService, authService *services.AuthService, wsHub *services.WSHub) *StreakHandler {
	return &StreakHandler{
		streakService: streakService,
		walletService: walletService,
		authService:   authService,
		wsHub:         wsHub,
	}
}

// StreakResponse reports a check-in with its reward outcome
type StreakResponse struct {
	Streak       *models.Streak     `json:"streak"`
	BonusAwarded bool               `json:"bonus_awarded"`
	Wallet       *models.KissWallet `json:"wallet,omitempty"`
}

// GetStreak handles GET /api/v1/streak
func (h *StreakHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	streak, err := h.streakService.Get(ctx, *profile.CoupleID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Msg("Failed to load streak")
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, streak)
}

// CheckIn handles POST /api/v1/streak/checkin
func (h *StreakHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	coupleID := *profile.CoupleID

	streak, bonus, err := h.streakService.CheckIn(ctx, coupleID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Msg("Failed to check in streak")
		respondDomainError(w, err)
		return
	}

	resp := StreakResponse{Streak: streak, BonusAwarded: bonus}

	audience := coupleAudience(ctx, h.authService, coupleID, userID)
	if bonus {
		wallet, err := h.walletService.Earn(ctx, coupleID, userID, models.ReasonStreakBonus)
		if err != nil {
			log.Error().
				Err(err).
				Str("couple_id", coupleID).
				Msg("Failed to grant streak bonus")
		} else {
			resp.Wallet = wallet
			h.wsHub.Broadcast(audience, services.NewEvent(services.EventWalletUpdated, wallet))
		}
	}
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventStreakUpdated, streak))

	respondJSON(w, http.StatusOK, resp)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// NudgeHandler handles nudge HTTP requests
type NudgeHandler struct {
	nudgeService  *services.NudgeService
	walletService *services.WalletService
	authService   *services.AuthService
	pushService   *services.PushService
	wsHub         *services.WSHub
}

// NewNudgeHandler creates a new nudge handler
func NewNudgeHandler(nudgeService *services.NudgeService, walletService *services.WalletService, authService *services.AuthService, pushService *services.PushService, wsHub *services.WSHub) *NudgeHandler {
	return &NudgeHandler{
		nudgeService:  nudgeService,
		walletService: walletService,
		authService:   authService,
		pushService:   pushService,
		wsHub:         wsHub,
	}
}

// NudgeListResponse carries recent history plus the unread queue
type NudgeListResponse struct {
	Recent []*models.Nudge `json:"recent"`
	Unread []*models.Nudge `json:"unread"`
}

// ListNudges handles GET /api/v1/nudges
func (h *NudgeHandler) ListNudges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	recent, unread, err := h.nudgeService.List(ctx, *profile.CoupleID, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Msg("Failed to list nudges")
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, NudgeListResponse{Recent: recent, Unread: unread})
}

// ListPresets handles GET /api/v1/nudges/presets
func (h *NudgeHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.NudgePresets)
}

// SendNudgeRequest represents the request body for sending a nudge
type SendNudgeRequest struct {
	Preset      string  `json:"preset"`
	Pattern     []int32 `json:"pattern"`
	PatternName string  `json:"pattern_name"`
	Emoji       string  `json:"emoji"`
}

// SendNudge handles POST /api/v1/nudges. Either a preset key or a raw
// pattern must be supplied.
func (h *NudgeHandler) SendNudge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	coupleID := *profile.CoupleID

	var req SendNudgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var nudge *models.Nudge
	if req.Preset != "" {
		nudge, err = h.nudgeService.SendPreset(ctx, coupleID, userID, req.Preset)
	} else {
		nudge, err = h.nudgeService.Send(ctx, coupleID, userID, req.Pattern, req.PatternName, req.Emoji)
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Str("user_id", userID).
			Msg("Failed to send nudge")
		respondDomainError(w, err)
		return
	}

	log.Info().
		Str("couple_id", coupleID).
		Str("nudge_id", nudge.ID).
		Str("receiver_id", nudge.ReceiverID).
		Msg("Nudge sent")

	audience := coupleAudience(ctx, h.authService, coupleID, userID)
	if wallet, err := h.walletService.Earn(ctx, coupleID, userID, models.ReasonSendKiss); err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Msg("Failed to grant nudge reward")
	} else {
		h.wsHub.Broadcast(audience, services.NewEvent(services.EventWalletUpdated, wallet))
	}
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventNudgeCreated, nudge))

	// Offline partners get an APNs alert instead of the socket event.
	if !h.wsHub.IsOnline(nudge.ReceiverID) && h.pushService.Enabled() {
		if partner, err := h.authService.Partner(ctx, coupleID, userID); err == nil &&
			partner != nil && partner.PushToken != nil {
			if err := h.pushService.SendNudgeAlert(*partner.PushToken, profile.DisplayName, nudge); err != nil {
				log.Warn().
					Err(err).
					Str("receiver_id", nudge.ReceiverID).
					Msg("Failed to push nudge alert")
			}
		}
	}

	respondJSON(w, http.StatusCreated, nudge)
}

// MarkNudgeRead handles POST /api/v1/nudges/{nudge_id}/read
func (h *NudgeHandler) MarkNudgeRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	nudgeID := chi.URLParam(r, "nudge_id")

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.nudgeService.MarkRead(ctx, userID, nudgeID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("nudge_id", nudgeID).
			Msg("Failed to mark nudge read")
		respondDomainError(w, err)
		return
	}

	audience := coupleAudience(ctx, h.authService, *profile.CoupleID, userID)
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventNudgeRead, map[string]string{
		"nudge_id": nudgeID,
	}))

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllNudgesRead handles POST /api/v1/nudges/read
func (h *NudgeHandler) MarkAllNudgesRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	if _, err := h.authService.RequireCouple(ctx, userID); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.nudgeService.MarkAllRead(ctx, userID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to mark nudges read")
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// CoupleHandler handles couple pairing HTTP requests
type CoupleHandler struct {
	coupleService *services.CoupleService
	authService   *services.AuthService
	wsHub         *services.WSHub
}

// NewCoupleHandler creates a new couple handler
func NewCoupleHandler(coupleService *services.CoupleService, authService *services.AuthService, wsHub *services.WSHub) *CoupleHandler {
	return &CoupleHandler{
		coupleService: coupleService,
		authService:   authService,
		wsHub:         wsHub,
	}
}

// CreateCoupleRequest represents the request body for creating a couple
type CreateCoupleRequest struct {
	AnniversaryDate *time.Time `json:"anniversary_date"`
}

// CoupleResponse carries a couple plus the derived day counter
type CoupleResponse struct {
	Couple       *models.Couple `json:"couple"`
	DaysTogether int            `json:"days_together"`
}

// CreateCouple handles POST /api/v1/couples
func (h *CoupleHandler) CreateCouple(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateCoupleRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	anniversary := time.Now().UTC()
	if req.AnniversaryDate != nil {
		anniversary = *req.AnniversaryDate
	}

	couple, err := h.coupleService.CreateCouple(ctx, userID, anniversary)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to create couple")
		respondDomainError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("couple_id", couple.ID).
		Msg("Couple created")

	respondJSON(w, http.StatusCreated, CoupleResponse{
		Couple:       couple,
		DaysTogether: h.coupleService.DaysTogether(couple),
	})
}

// JoinCoupleRequest represents the request body for joining a couple
type JoinCoupleRequest struct {
	PairingCode string `json:"pairing_code"`
}

// JoinCouple handles POST /api/v1/couples/join
func (h *CoupleHandler) JoinCouple(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req JoinCoupleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.PairingCode == "" {
		respondError(w, "pairing_code is required", http.StatusBadRequest)
		return
	}

	couple, err := h.coupleService.JoinCouple(ctx, userID, req.PairingCode)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to join couple")
		respondDomainError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("couple_id", couple.ID).
		Msg("Couple joined")

	// Tell partner_a their other half has arrived.
	if partner, err := h.authService.Partner(ctx, couple.ID, userID); err == nil && partner != nil {
		joiner, err := h.authService.FetchProfile(ctx, userID)
		if err == nil {
			ev := services.NewEvent(services.EventCoupleJoined, joiner.Profile)
			if err := h.wsHub.SendToUser(partner.ID, ev); err != nil {
				log.Warn().
					Err(err).
					Str("partner_id", partner.ID).
					Msg("Failed to notify partner about join")
			}
		}
	}

	respondJSON(w, http.StatusOK, CoupleResponse{
		Couple:       couple,
		DaysTogether: h.coupleService.DaysTogether(couple),
	})
}

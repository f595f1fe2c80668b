package handlers

import (
	"encoding/json"
	"net/http"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// LocationHandler handles live location HTTP requests
type LocationHandler struct {
	locationService *services.LocationService
	authService     *services.AuthService
	wsHub           *services.WSHub
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *services.LocationService, authService *services.AuthService, wsHub *services.WSHub) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		authService:     authService,
		wsHub:           wsHub,
	}
}

// GetLocations handles GET /api/v1/locations
func (h *LocationHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	locations, err := h.locationService.ForCouple(ctx, *profile.CoupleID, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Msg("Failed to load locations")
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, locations)
}

// UpdateLocationRequest represents the request body for a location fix
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// UpdateLocation handles PUT /api/v1/locations/me
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	coupleID := *profile.CoupleID

	var req UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	location, err := h.locationService.UpdateMine(ctx, coupleID, userID, req.Latitude, req.Longitude, req.Accuracy)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// Only the partner cares; the caller already has this fix.
	if partner, err := h.authService.Partner(ctx, coupleID, userID); err == nil && partner != nil {
		if err := h.wsHub.SendToUser(partner.ID, services.NewEvent(services.EventLocationUpdated, location)); err != nil {
			log.Debug().
				Err(err).
				Str("partner_id", partner.ID).
				Msg("Partner offline for location update")
		}
	}

	respondJSON(w, http.StatusOK, location)
}

// SetSharingRequest represents the request body for the sharing toggle
type SetSharingRequest struct {
	IsSharing bool `json:"is_sharing"`
}

// SetSharing handles PUT /api/v1/locations/sharing
func (h *LocationHandler) SetSharing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req SetSharingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	location, err := h.locationService.SetSharing(ctx, userID, req.IsSharing)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to toggle location sharing")
		respondDomainError(w, err)
		return
	}

	if partner, err := h.authService.Partner(ctx, *profile.CoupleID, userID); err == nil && partner != nil {
		if err := h.wsHub.SendToUser(partner.ID, services.NewEvent(services.EventLocationUpdated, location)); err != nil {
			log.Debug().
				Err(err).
				Str("partner_id", partner.ID).
				Msg("Partner offline for sharing toggle")
		}
	}

	respondJSON(w, http.StatusOK, location)
}

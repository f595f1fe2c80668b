package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrOutfitNotOwned):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrCoupleNotFound),
		errors.Is(err, models.ErrOutfitNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrCoupleFull),
		errors.Is(err, models.ErrAlreadyPaired),
		errors.Is(err, models.ErrNotPaired),
		errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrAlreadyOwned),
		errors.Is(err, models.ErrInsufficientBalance):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError sends an error response with the mapped status.
// Internal errors are masked so database details never reach clients.
func respondDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	respondError(w, message, status)
}

// coupleAudience returns the user ids that should receive realtime
// events for a couple: the caller and, when present, the partner.
func coupleAudience(ctx context.Context, auth *services.AuthService, coupleID, userID string) []string {
	ids := []string{userID}
	partner, err := auth.Partner(ctx, coupleID, userID)
	if err == nil && partner != nil {
		ids = append(ids, partner.ID)
	}
	return ids
}

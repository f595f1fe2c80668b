package handlers

import (
	"encoding/json"
	"net/http"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication and profile HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUpRequest represents the request body for registration
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// SignInRequest represents the request body for login
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the profile and a bearer token
type AuthResponse struct {
	Profile any    `json:"profile"`
	Token   string `json:"token"`
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, token, err := h.authService.SignUp(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		log.Error().
			Err(err).
			Str("email", req.Email).
			Msg("Failed to sign up")
		respondDomainError(w, err)
		return
	}

	log.Info().
		Str("user_id", profile.ID).
		Msg("User signed up")

	respondJSON(w, http.StatusCreated, AuthResponse{Profile: profile, Token: token})
}

// SignIn handles POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, token, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		log.Warn().
			Err(err).
			Str("email", req.Email).
			Msg("Failed to sign in")
		respondDomainError(w, err)
		return
	}

	log.Info().
		Str("user_id", profile.ID).
		Msg("User signed in")

	respondJSON(w, http.StatusOK, AuthResponse{Profile: profile, Token: token})
}

// GetMe handles GET /api/v1/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	bundle, err := h.authService.FetchProfile(ctx, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to fetch profile")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bundle)
}

// UpdatePushTokenRequest represents the request body for push token updates
type UpdatePushTokenRequest struct {
	PushToken *string `json:"push_token"`
}

// UpdatePushToken handles PUT /api/v1/me/push-token
func (h *AuthHandler) UpdatePushToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UpdatePushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.authService.UpdatePushToken(ctx, userID, req.PushToken); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to update push token")
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"io"
	"net/http"
	"strconv"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes bounds a single moment upload (50 MB).
const maxUploadBytes = 50 << 20

// MomentHandler handles moment HTTP requests
type MomentHandler struct {
	momentService *services.MomentService
	walletService *services.WalletService
	authService   *services.AuthService
	wsHub         *services.WSHub
}

// NewMomentHandler creates a new moment handler
func NewMomentHandler(momentService *services.MomentService, walletService *services.WalletService, authService *services.AuthService, wsHub *services.WSHub) *MomentHandler {
	return &MomentHandler{
		momentService: momentService,
		walletService: walletService,
		authService:   authService,
		wsHub:         wsHub,
	}
}

// MomentsPage is one page of the couple's feed
type MomentsPage struct {
	Moments []*models.Moment `json:"moments"`
	HasMore bool             `json:"has_more"`
}

// ListMoments handles GET /api/v1/moments
func (h *MomentHandler) ListMoments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	limit := services.MomentPageSize
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil {
			limit = parsedLimit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil {
			offset = parsedOffset
		}
	}

	moments, hasMore, err := h.momentService.List(ctx, *profile.CoupleID, limit, offset)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Msg("Failed to list moments")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MomentsPage{Moments: moments, HasMore: hasMore})
}

// UploadMoment handles POST /api/v1/moments. The request is multipart
// with a "media" file part plus optional caption/width/height fields.
func (h *MomentHandler) UploadMoment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	coupleID := *profile.CoupleID

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, "Invalid multipart body", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		respondError(w, "media file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, "Failed to read media file", http.StatusBadRequest)
		return
	}

	caption := r.FormValue("caption")
	width, _ := strconv.Atoi(r.FormValue("width"))
	height, _ := strconv.Atoi(r.FormValue("height"))
	contentType := header.Header.Get("Content-Type")

	moment, err := h.momentService.Upload(ctx, coupleID, userID, header.Filename, contentType, data, caption, width, height)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Str("filename", header.Filename).
			Msg("Failed to upload moment")
		respondDomainError(w, err)
		return
	}

	log.Info().
		Str("couple_id", coupleID).
		Str("moment_id", moment.ID).
		Str("media_type", moment.MediaType).
		Msg("Moment uploaded")

	audience := coupleAudience(ctx, h.authService, coupleID, userID)
	if wallet, err := h.walletService.Earn(ctx, coupleID, userID, models.ReasonUploadMoment); err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Msg("Failed to grant upload reward")
	} else {
		h.wsHub.Broadcast(audience, services.NewEvent(services.EventWalletUpdated, wallet))
	}
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventMomentCreated, moment))

	respondJSON(w, http.StatusCreated, moment)
}

// DeleteMoment handles DELETE /api/v1/moments/{moment_id}
func (h *MomentHandler) DeleteMoment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	momentID := chi.URLParam(r, "moment_id")

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	moment, err := h.momentService.Delete(ctx, userID, momentID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("moment_id", momentID).
			Msg("Failed to delete moment")
		respondDomainError(w, err)
		return
	}

	audience := coupleAudience(ctx, h.authService, *profile.CoupleID, userID)
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventMomentDeleted, map[string]string{
		"moment_id": moment.ID,
	}))

	w.WriteHeader(http.StatusNoContent)
}

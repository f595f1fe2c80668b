package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"couple-companion-backend/internal/middleware"
	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CalendarHandler handles shared calendar HTTP requests
type CalendarHandler struct {
	calendarService *services.CalendarService
	walletService   *services.WalletService
	authService     *services.AuthService
	wsHub           *services.WSHub
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *services.CalendarService, walletService *services.WalletService, authService *services.AuthService, wsHub *services.WSHub) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		walletService:   walletService,
		authService:     authService,
		wsHub:           wsHub,
	}
}

// ListEvents handles GET /api/v1/calendar/events
func (h *CalendarHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	events, err := h.calendarService.List(ctx, *profile.CoupleID)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", *profile.CoupleID).
			Msg("Failed to list calendar events")
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// CreateEventRequest represents the request body for adding an event
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	EventTime   *string   `json:"event_time"`
	Color       string    `json:"color"`
}

// CreateEvent handles POST /api/v1/calendar/events
func (h *CalendarHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	coupleID := *profile.CoupleID

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.EventDate.IsZero() {
		respondError(w, "event_date is required", http.StatusBadRequest)
		return
	}

	event, err := h.calendarService.Add(ctx, coupleID, userID, req.Title, req.EventDate, req.EventTime, req.Color, req.Description)
	if err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Msg("Failed to create calendar event")
		respondDomainError(w, err)
		return
	}

	log.Info().
		Str("couple_id", coupleID).
		Str("event_id", event.ID).
		Msg("Calendar event created")

	audience := coupleAudience(ctx, h.authService, coupleID, userID)
	if wallet, err := h.walletService.Earn(ctx, coupleID, userID, models.ReasonCalendarEvent); err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Msg("Failed to grant calendar reward")
	} else {
		h.wsHub.Broadcast(audience, services.NewEvent(services.EventWalletUpdated, wallet))
	}

	// Calendar consumers refetch the whole month, so the event payload
	// stays empty.
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventCalendarChanged, nil))

	respondJSON(w, http.StatusCreated, event)
}

// DeleteEvent handles DELETE /api/v1/calendar/events/{event_id}
func (h *CalendarHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	eventID := chi.URLParam(r, "event_id")

	profile, err := h.authService.RequireCouple(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	coupleID := *profile.CoupleID

	if err := h.calendarService.Delete(ctx, coupleID, eventID); err != nil {
		log.Error().
			Err(err).
			Str("couple_id", coupleID).
			Str("event_id", eventID).
			Msg("Failed to delete calendar event")
		respondDomainError(w, err)
		return
	}

	audience := coupleAudience(ctx, h.authService, coupleID, userID)
	h.wsHub.Broadcast(audience, services.NewEvent(services.EventCalendarChanged, nil))

	w.WriteHeader(http.StatusNoContent)
}

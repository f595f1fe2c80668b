package handlers

import (
	"encoding/json"
	"net/http"

	"couple-companion-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for MVP
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub         *services.WSHub
	authService *services.AuthService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub, authService *services.AuthService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
	}
}

// HandleWebSocket handles GET /api/v1/ws. Auth rides in the token
// query parameter because browsers cannot set headers on upgrades.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	userID, err := h.authService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)

	// Exchange presence with the partner, both directions.
	ctx := r.Context()
	var partnerID string
	if profile, err := h.authService.RequireCouple(ctx, userID); err == nil {
		if partner, err := h.authService.Partner(ctx, *profile.CoupleID, userID); err == nil && partner != nil {
			partnerID = partner.ID
			h.hub.NotifyPartnerStatus(partnerID, true)

			online := h.hub.IsOnline(partnerID)
			ev := services.NewEvent(services.EventPartnerStatus, nil)
			ev.Online = &online
			if err := h.hub.SendToUser(userID, ev); err != nil {
				log.Error().
					Err(err).
					Str("user_id", userID).
					Msg("Failed to send partner status")
			}
		}
	}

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSEvent
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(conn, "Invalid message format")
			continue
		}

		h.handleMessage(userID, msg, conn)
	}

	if partnerID != "" {
		h.hub.NotifyPartnerStatus(partnerID, false)
	}

	log.Info().Str("user_id", userID).Msg("WebSocket connection closed")
}

// handleMessage processes incoming WebSocket messages. The protocol is
// push-heavy; clients only send keepalives.
func (h *WebSocketHandler) handleMessage(userID string, msg services.WSEvent, conn *websocket.Conn) {
	switch msg.Type {
	case "ping":
		if err := h.hub.SendToUser(userID, services.NewEvent("pong", nil)); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to send pong")
		}
	default:
		h.sendError(conn, "Unknown message type")
	}
}

// sendError sends an error event to the WebSocket connection
func (h *WebSocketHandler) sendError(conn *websocket.Conn, message string) {
	ev := services.NewEvent(services.EventError, nil)
	ev.Message = message
	data, _ := json.Marshal(ev)
	conn.WriteMessage(websocket.TextMessage, data)
}

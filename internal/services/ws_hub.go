package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event types pushed to clients. Each mutation publishes the
// server-confirmed row, so a push echo and the direct response
// converge by upsert-by-id regardless of arrival order.
const (
	EventPetUpdated      = "pet_updated"
	EventWalletUpdated   = "wallet_updated"
	EventStreakUpdated   = "streak_updated"
	EventOutfitPurchased = "outfit_purchased"
	EventCalendarChanged = "calendar_changed"
	EventMomentCreated   = "moment_created"
	EventMomentDeleted   = "moment_deleted"
	EventNudgeCreated    = "nudge_created"
	EventNudgeRead       = "nudge_read"
	EventLocationUpdated = "location_updated"
	EventPartnerStatus   = "partner_status"
	EventCoupleJoined    = "couple_joined"
	EventError           = "error"
)

// WSEvent represents a realtime message pushed to a client
type WSEvent struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp,omitempty"`
	Online    *bool       `json:"online,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// NewEvent builds a timestamped event carrying a payload row
func NewEvent(eventType string, data interface{}) WSEvent {
	return WSEvent{
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// WSHub manages websocket connections keyed by user ID
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewWSHub creates a new websocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a connection for a user, replacing any existing one
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, exists := h.connections[userID]; exists {
		existing.Close()
	}
	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a user's connection if conn is still the active one
func (h *WSHub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, exists := h.connections[userID]; exists && current == conn {
		current.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends an event to a specific user
func (h *WSHub) SendToUser(userID string, event WSEvent) error {
	h.mu.RLock()
	conn, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(userID, conn)
		return fmt.Errorf("failed to send event: %w", err)
	}
	return nil
}

// IsOnline checks if a user has a live connection
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

// Broadcast delivers an event to every listed user that is online.
// Offline members are skipped; they reconcile on their next fetch.
func (h *WSHub) Broadcast(userIDs []string, event WSEvent) {
	for _, id := range userIDs {
		if !h.IsOnline(id) {
			continue
		}
		if err := h.SendToUser(id, event); err != nil {
			log.Error().Err(err).Str("user_id", id).Str("type", event.Type).Msg("Failed to push event")
		}
	}
}

// NotifyPartnerStatus tells a partner the user went online or offline
func (h *WSHub) NotifyPartnerStatus(partnerID string, online bool) {
	if partnerID == "" || !h.IsOnline(partnerID) {
		return
	}

	event := WSEvent{
		Type:      EventPartnerStatus,
		Timestamp: time.Now().UnixMilli(),
		Online:    &online,
	}
	if err := h.SendToUser(partnerID, event); err != nil {
		log.Error().Err(err).Str("user_id", partnerID).Msg("Failed to notify partner status")
	}
}

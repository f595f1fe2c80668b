package services

import (
	"fmt"

	"couple-companion-backend/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// PushService delivers APNs notifications for nudges whose receiver
// has no live websocket. A nil-client service is a silent no-op, so
// push stays optional in local setups.
type PushService struct {
	client *apns2.Client
	topic  string
}

// NewPushService creates an APNs push service using token-based auth.
// An empty keyFile disables push.
func NewPushService(keyFile, keyID, teamID, topic string, production bool) (*PushService, error) {
	if keyFile == "" {
		return &PushService{}, nil
	}

	authKey, err := token.AuthKeyFromFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs auth key: %w", err)
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   keyID,
		TeamID:  teamID,
	})
	if production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	return &PushService{client: client, topic: topic}, nil
}

// Enabled reports whether push delivery is configured
func (s *PushService) Enabled() bool {
	return s.client != nil
}

// SendNudgeAlert notifies a device about an incoming nudge
func (s *PushService) SendNudgeAlert(deviceToken, senderName string, nudge *models.Nudge) error {
	if s.client == nil {
		return nil
	}

	p := payload.NewPayload().
		AlertTitle(fmt.Sprintf("%s %s", nudge.Emoji, senderName)).
		AlertBody(fmt.Sprintf("Sent you a nudge: %s", nudge.PatternName)).
		Sound("default").
		Custom("nudge_id", nudge.ID).
		Custom("pattern", nudge.Pattern)

	notification := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       s.topic,
		Payload:     p,
	}

	res, err := s.client.Push(notification)
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	if !res.Sent() {
		return fmt.Errorf("push rejected: %s", res.Reason)
	}

	log.Debug().Str("nudge_id", nudge.ID).Str("apns_id", res.ApnsID).Msg("Push delivered")
	return nil
}

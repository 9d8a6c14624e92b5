// internal/services/events.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inklight/bookip-backend/internal/models"
)

// EventRecorder writes the gateway's append-only audit events. Events
// are recorded synchronously inside the call they describe so the
// observable trail stays consistent with the call's outcome.
type EventRecorder struct {
	store GatewayStore
}

func NewEventRecorder(store GatewayStore) *EventRecorder {
	return &EventRecorder{store: store}
}

func (r *EventRecorder) Record(eventType models.EventType, actor models.Principal, assetID string, payload models.JSONB) error {
	event := &models.GatewayEvent{
		Type:    eventType,
		Actor:   actor,
		AssetID: assetID,
		Payload: payload,
	}
	if err := r.store.AppendEvent(event); err != nil {
		return fmt.Errorf("failed to record %s event: %w", eventType, err)
	}

	logrus.WithFields(logrus.Fields{
		"event":    eventType,
		"actor":    actor,
		"asset_id": assetID,
	}).Info("Gateway event recorded")
	return nil
}

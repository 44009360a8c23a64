package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/renholt/sidecodec-core/internal/hda"
)

// Publisher is the subset of Client the event publisher needs.
// Narrowed to an interface so tests can capture publishes without a broker.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// EventPublisher forwards controller amplifier events to per-slot MQTT
// topics. It satisfies the controller's event sink interface.
type EventPublisher struct {
	client Publisher
	qos    byte
}

// ampEventPayload is the wire format for amp event messages.
type ampEventPayload struct {
	Kind   string `json:"kind"`
	Slot   int    `json:"slot"`
	Device string `json:"device"`
	Action string `json:"action,omitempty"`
	Value  uint32 `json:"value,omitempty"`
	At     string `json:"timestamp"`
}

// NewEventPublisher creates an event publisher over the given client.
//
// Parameters:
//   - client: Connected MQTT client (or a test double)
//   - qos: QoS level for event messages
func NewEventPublisher(client Publisher, qos byte) *EventPublisher {
	return &EventPublisher{client: client, qos: qos}
}

// RecordAmpEvent publishes one controller event to its slot's event topic.
//
// Events are transient, so messages are not retained; a subscriber that
// was offline missed the event.
func (p *EventPublisher) RecordAmpEvent(_ context.Context, ev hda.Event) error {
	payload := ampEventPayload{
		Kind:   ev.Kind,
		Slot:   ev.Slot,
		Device: ev.Device,
		At:     ev.At.UTC().Format(time.RFC3339),
	}
	switch ev.Kind {
	case hda.EventPCMAction:
		payload.Action = ev.Action.String()
	case hda.EventPlatformNotify:
		payload.Value = ev.NotifyValue
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling amp event: %w", err)
	}

	return p.client.Publish(Topics{}.AmpEvent(ev.Slot), data, p.qos, false)
}

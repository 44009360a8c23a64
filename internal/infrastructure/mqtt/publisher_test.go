package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/renholt/sidecodec-core/internal/component"
	"github.com/renholt/sidecodec-core/internal/hda"
)

var _ hda.EventSink = (*EventPublisher)(nil)

// capturingPublisher records publishes instead of hitting a broker.
type capturingPublisher struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
	err      error
}

func (p *capturingPublisher) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if p.err != nil {
		return p.err
	}
	p.topic = topic
	p.payload = payload
	p.qos = qos
	p.retained = retained
	return nil
}

func TestEventPublisher_PCMAction(t *testing.T) {
	capture := &capturingPublisher{}
	pub := NewEventPublisher(capture, 1)

	ev := hda.Event{
		Kind:   hda.EventPCMAction,
		Slot:   2,
		Device: "amp.2",
		Action: component.ActionOpen,
		At:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := pub.RecordAmpEvent(context.Background(), ev); err != nil {
		t.Fatalf("RecordAmpEvent() error = %v", err)
	}

	if capture.topic != "sidecodec/amp/2/event" {
		t.Errorf("published topic = %q, want sidecodec/amp/2/event", capture.topic)
	}
	if capture.qos != 1 || capture.retained {
		t.Errorf("qos/retained = %d/%v, want 1/false", capture.qos, capture.retained)
	}

	var payload map[string]any
	if err := json.Unmarshal(capture.payload, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["kind"] != "pcm_action" || payload["action"] != "open" {
		t.Errorf("payload = %v, want pcm_action/open", payload)
	}
	if payload["device"] != "amp.2" {
		t.Errorf("payload device = %v, want amp.2", payload["device"])
	}
	if payload["timestamp"] != "2026-08-01T12:00:00Z" {
		t.Errorf("payload timestamp = %v, want RFC3339 UTC", payload["timestamp"])
	}
}

func TestEventPublisher_PlatformNotify(t *testing.T) {
	capture := &capturingPublisher{}
	pub := NewEventPublisher(capture, 0)

	ev := hda.Event{
		Kind:        hda.EventPlatformNotify,
		Slot:        0,
		Device:      "amp.0",
		NotifyValue: 0x81,
		At:          time.Now(),
	}
	if err := pub.RecordAmpEvent(context.Background(), ev); err != nil {
		t.Fatalf("RecordAmpEvent() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(capture.payload, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if v, ok := payload["value"].(float64); !ok || uint32(v) != 0x81 {
		t.Errorf("payload value = %v, want 0x81", payload["value"])
	}
	if _, present := payload["action"]; present {
		t.Error("notify payload carries an action field")
	}
}

func TestEventPublisher_PropagatesPublishError(t *testing.T) {
	capture := &capturingPublisher{err: errors.New("broker gone")}
	pub := NewEventPublisher(capture, 1)

	ev := hda.Event{Kind: hda.EventPCMAction, At: time.Now()}
	if err := pub.RecordAmpEvent(context.Background(), ev); err == nil {
		t.Error("RecordAmpEvent() swallowed publish failure")
	}
}

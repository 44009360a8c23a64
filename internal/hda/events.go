package hda

import (
	"context"
	"time"

	"github.com/renholt/sidecodec-core/internal/component"
)

// Event kinds emitted by the controller.
const (
	EventPCMAction      = "pcm_action"
	EventPlatformNotify = "platform_notify"
	EventSuspend        = "suspend"
	EventResume         = "resume"
)

// Event describes one controller-observed amplifier event.
type Event struct {
	// Kind is one of the Event* constants.
	Kind string

	// Slot is the component slot the event concerns.
	Slot int

	// Device is the bound device name at the time of the event.
	Device string

	// Action is set for EventPCMAction events.
	Action component.Action

	// NotifyValue is set for EventPlatformNotify events.
	NotifyValue uint32

	// At is the event timestamp.
	At time.Time
}

// EventSink receives controller events. Implementations must tolerate
// being called from the audio dispatch path: return fast, do real work
// asynchronously if needed.
type EventSink interface {
	RecordAmpEvent(ctx context.Context, ev Event) error
}

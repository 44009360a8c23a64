package max98390

import "github.com/renholt/sidecodec-core/internal/component"

// streamState tracks whether a playback stream currently holds the amp.
type streamState int

const (
	streamClosed streamState = iota
	streamOpen
)

// PlaybackHook reacts to PCM stream lifecycle events for this amplifier.
//
// Open powers the path up (global enable, then speaker enable); Close
// powers it down in the reverse order. Prepare and Cleanup touch no
// registers: the part needs no reconfiguration between streams with the
// same link format. All writes are best-effort so a flaky amp never
// stalls the audio stream.
func (d *Device) PlaybackHook(action component.Action) {
	switch action {
	case component.ActionOpen:
		d.writeBestEffort(RegGlobalEnable, valGlobalEnableOn, "GLOBAL_EN")
		d.writeBestEffort(RegAmpEnable, valAmpEnableOn, "AMP_EN")
		d.mu.Lock()
		d.stream = streamOpen
		d.mu.Unlock()
	case component.ActionClose:
		d.writeBestEffort(RegAmpEnable, valAmpEnableOff, "AMP_EN")
		d.writeBestEffort(RegGlobalEnable, valGlobalEnableOff, "GLOBAL_EN")
		d.mu.Lock()
		d.stream = streamClosed
		d.mu.Unlock()
	case component.ActionPrepare, component.ActionCleanup:
		// No register work between open and close.
	}

	d.log.Debug("playback action handled",
		"name", d.name,
		"slot", d.slot,
		"action", action.String(),
	)
}

// StreamOpen reports whether a playback stream currently holds the amp.
func (d *Device) StreamOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stream == streamOpen
}

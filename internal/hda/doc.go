// Package hda implements the audio controller side of the side-codec
// arrangement: it owns the component registry amplifier drivers bind
// into, and fans PCM stream lifecycle actions and platform notifications
// out to every bound slot.
//
// Hook invocation works on registry snapshots. The registry mutex is
// never held across a hook call, so a slow or misbehaving amplifier
// cannot block bind and unbind traffic.
//
// Each dispatched action is also emitted as an Event to the configured
// sinks (event journal, MQTT publisher). Sink failures are logged and
// never interfere with audio.
package hda

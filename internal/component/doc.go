// Package component provides the shared component registry that binds
// independently probed amplifier instances to the audio controller.
//
// The registry is a fixed table of four slots, one per physical speaker.
// Each amplifier driver instance resolves its slot index at probe time and
// binds its identity, name and playback hooks into that slot. The audio
// controller later walks the table to invoke per-slot hooks at PCM stream
// lifecycle points, without any compile-time linkage to the driver.
//
// # Key Types
//
//   - Registry: the mutex-guarded slot table
//   - Component: one slot's bound identity, name and hook set
//   - Hooks: the pre/playback/post hook functions plus platform notification
//   - Action: a PCM stream lifecycle event (Open, Prepare, Cleanup, Close)
//
// # Thread Safety
//
// All Registry operations hold the registry mutex for their full duration.
// Lookup returns a snapshot copy of the slot; callers must invoke hooks from
// that snapshot, never from a live slot pointer, so a concurrent Unbind
// cannot clear a hook mid-call.
//
// # Binding Semantics
//
// Bind performs no occupancy check: a second Bind to an occupied slot
// overwrites it (last writer wins) and logs a warning. Unbind clears a slot
// only when the caller's identity matches the current occupant, making it
// safe to call from teardown paths that may race a re-probe.
package component

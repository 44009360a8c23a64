package component

import (
	"fmt"
	"sync"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry is the fixed-capacity component table shared between the audio
// controller and the amplifier driver instances bound into it.
//
// One registry exists per controller instance; it is created at controller
// initialisation and lives until controller teardown.
//
// All public methods are thread-safe and hold the registry mutex for their
// full duration.
type Registry struct {
	mu     sync.Mutex
	slots  [MaxComponents]Component
	logger Logger
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Bind stores a device identity, name and hook set into the given slot.
//
// The slot's previous contents are overwritten unconditionally: the registry
// performs no occupancy check, so the last writer wins. An overwrite of an
// occupied slot is logged as a warning since it usually indicates two
// devices resolving to the same index.
//
// Names longer than MaxNameSize are truncated.
//
// Parameters:
//   - index: Slot index, must be in [0, MaxComponents)
//   - dev: Opaque, comparable device identity (must be non-nil)
//   - name: Bus-specific device name
//   - hooks: Playback hook set (fields may be nil)
//
// Returns:
//   - error: ErrInvalidIndex if index is out of range, nil otherwise
func (r *Registry) Bind(index int, dev Device, name string, hooks Hooks) error {
	if index < 0 || index >= MaxComponents {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	if len(name) > MaxNameSize {
		name = name[:MaxNameSize]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slots[index].Bound() && r.slots[index].Device != dev {
		r.logger.Warn("component slot overwritten",
			"slot", index,
			"previous", r.slots[index].Name,
			"new", name,
		)
	}

	r.slots[index] = Component{
		Device: dev,
		Name:   name,
		Hooks:  hooks,
	}

	r.logger.Info("component bound", "slot", index, "name", name)
	return nil
}

// Lookup returns a snapshot copy of the slot's current contents.
//
// The second return value is false when the index is out of range or the
// slot is empty. Callers invoke hooks from the returned copy; a concurrent
// Unbind cannot clear a hook out from under them.
func (r *Registry) Lookup(index int) (Component, bool) {
	if index < 0 || index >= MaxComponents {
		return Component{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.slots[index]
	if !c.Bound() {
		return Component{}, false
	}
	return c, true
}

// Unbind clears the slot only if its current occupant matches dev.
//
// A mismatched identity leaves the slot untouched, so a driver tearing down
// after losing its slot to a re-probe cannot clear the new occupant.
// Unbinding an empty or out-of-range slot is a no-op; the call is idempotent.
func (r *Registry) Unbind(index int, dev Device) {
	if index < 0 || index >= MaxComponents {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.slots[index].Bound() || r.slots[index].Device != dev {
		return
	}

	name := r.slots[index].Name
	r.slots[index] = Component{}
	r.logger.Info("component unbound", "slot", index, "name", name)
}

// Snapshot returns a copy of all slots taken under a single lock
// acquisition. The audio controller uses this to iterate hooks without
// holding the registry mutex across hook invocations.
func (r *Registry) Snapshot() [MaxComponents]Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots
}

// BoundCount returns the number of occupied slots.
func (r *Registry) BoundCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for i := range r.slots {
		if r.slots[i].Bound() {
			n++
		}
	}
	return n
}

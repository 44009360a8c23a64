package component

// Registry capacity constants.
const (
	// MaxComponents is the number of slots in the registry, one per
	// physical speaker position.
	MaxComponents = 4

	// MaxNameSize is the maximum stored length of a component name.
	// Longer names are truncated on Bind.
	MaxNameSize = 50
)

// Action is a PCM stream lifecycle event delivered to playback hooks.
type Action int

// PCM stream lifecycle actions, in the order the audio controller
// issues them over a stream's life.
const (
	ActionOpen Action = iota
	ActionPrepare
	ActionCleanup
	ActionClose
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionPrepare:
		return "prepare"
	case ActionCleanup:
		return "cleanup"
	case ActionClose:
		return "close"
	default:
		return "unknown"
	}
}

// Device is the opaque identity of a bound amplifier instance.
//
// The registry compares identities with ==, so bound values must be
// comparable; driver packages bind their instance pointer.
type Device any

// Hook is a playback lifecycle callback. The return value of the underlying
// work is not observed by the controller, so hooks return nothing; failures
// are the hook owner's to log.
type Hook func(action Action)

// NotifyFunc is a platform (ACPI) notification callback.
type NotifyFunc func(event uint32)

// Hooks is the set of callbacks a driver binds into its slot.
// Any of the fields may be nil.
type Hooks struct {
	// PrePlayback runs before the main playback hook of every slot.
	PrePlayback Hook

	// Playback is the main per-action hook.
	Playback Hook

	// PostPlayback runs after the main playback hook of every slot.
	PostPlayback Hook

	// Notify receives platform notification events when
	// NotifySupported is true.
	Notify NotifyFunc

	// NotifySupported reports whether the bound device accepts
	// platform notifications.
	NotifySupported bool
}

// Component is one registry slot: the bound device identity, its name and
// its hook set. A zero Component (nil Device) is an empty slot.
type Component struct {
	Device Device
	Name   string
	Hooks  Hooks
}

// Bound reports whether the slot has a device bound to it.
func (c Component) Bound() bool {
	return c.Device != nil
}

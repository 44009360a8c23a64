package max98390

import (
	"fmt"
	"sync"
	"time"

	"github.com/renholt/sidecodec-core/internal/component"
	"github.com/renholt/sidecodec-core/internal/regmap"
)

// BusType tags the bus an amplifier instance was enumerated on.
type BusType int

// Supported bus types. The MAX98390 side codec is only instantiated
// over I2C.
const (
	BusTypeI2C BusType = iota
)

// String returns the bus type name for logging.
func (b BusType) String() string {
	if b == BusTypeI2C {
		return "i2c"
	}
	return "unknown"
}

// PowerState is the driver's view of the amplifier's power path.
type PowerState int

const (
	// PowerActive: normal operation, register access hits hardware.
	PowerActive PowerState = iota

	// PowerSuspended: the amp is disabled and register access is
	// deferred to the cache mirror.
	PowerSuspended
)

// String returns the power state name for logging.
func (s PowerState) String() string {
	if s == PowerSuspended {
		return "suspended"
	}
	return "active"
}

// Logger defines the logging interface used by the driver.
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

// Default settle delays from the datasheet power-up sequence.
const (
	defaultResetSettle  = 20 * time.Millisecond
	defaultEnableSettle = 50 * time.Millisecond
)

// Options carries everything enumeration hands the driver for one
// amplifier instance.
type Options struct {
	// Name is the bus-specific device name. A trailing ".N" suffix
	// selects the component slot directly.
	Name string

	// IRQ is the interrupt line, or 0 if none was assigned.
	IRQ int

	// Regmap is the device's register access handle. Exclusively owned
	// by this instance once New succeeds.
	Regmap *regmap.Regmap

	// BusType tags the enumeration bus.
	BusType BusType

	// Address is the secondary (I2C) address, used for slot resolution.
	Address uint8

	// Logger is optional; a no-op logger is used when nil.
	Logger Logger

	// Filters configures the DSM filter chain after base initialisation.
	// Optional; its result never fails a probe.
	Filters FilterConfigurer

	// ResetSettle and EnableSettle override the fixed settle delays.
	// Zero means the hardware defaults (20ms and 50ms).
	ResetSettle  time.Duration
	EnableSettle time.Duration
}

// Device is one probed amplifier instance.
type Device struct {
	name    string
	slot    int
	irq     int
	busType BusType
	addr    uint8

	rm      *regmap.Regmap
	log     Logger
	filters FilterConfigurer

	registry *component.Registry

	resetSettle  time.Duration
	enableSettle time.Duration
	sleep        func(time.Duration)

	mu     sync.Mutex
	power  PowerState
	stream streamState
	bound  bool
}

// New creates driver state for one amplifier instance.
//
// Slot resolution happens here: a device that maps to no slot fails
// immediately and leaves no state behind. Register access is not touched.
//
// Parameters:
//   - registry: The controller's component registry this instance will
//     bind into at Probe time
//   - opts: Enumeration-supplied device details
//
// Returns:
//   - *Device: Driver state, ready for Probe
//   - error: ErrNoRegmap or ErrUnmappedAddress
func New(registry *component.Registry, opts Options) (*Device, error) {
	if opts.Regmap == nil {
		return nil, ErrNoRegmap
	}

	slot, err := ResolveSlot(opts.Name, opts.Address)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = noopLogger{}
	}
	filters := opts.Filters
	if filters == nil {
		filters = noopFilters{}
	}
	resetSettle := opts.ResetSettle
	if resetSettle <= 0 {
		resetSettle = defaultResetSettle
	}
	enableSettle := opts.EnableSettle
	if enableSettle <= 0 {
		enableSettle = defaultEnableSettle
	}

	return &Device{
		name:         opts.Name,
		slot:         slot,
		irq:          opts.IRQ,
		busType:      opts.BusType,
		addr:         opts.Address,
		rm:           opts.Regmap,
		log:          log,
		filters:      filters,
		registry:     registry,
		resetSettle:  resetSettle,
		enableSettle: enableSettle,
		sleep:        time.Sleep,
		power:        PowerActive,
	}, nil
}

// Probe runs the power-on register sequence and binds the instance into
// its component slot.
//
// The revision ID read is the only fatal register access; every later
// write is best-effort. A bind rejection rolls the probe back with a
// best-effort amplifier disable. Remove may be called after a failed
// Probe and will still attempt to disable the amp.
func (d *Device) Probe() error {
	if err := d.initDevice(); err != nil {
		return err
	}

	hooks := component.Hooks{
		Playback: d.PlaybackHook,
	}
	if err := d.registry.Bind(d.slot, d, d.name, hooks); err != nil {
		d.writeBestEffort(RegAmpEnable, valAmpEnableOff, "AMP_EN")
		return fmt.Errorf("%w: %w", ErrBindFailed, err)
	}

	d.mu.Lock()
	d.bound = true
	d.mu.Unlock()

	d.log.Info("amplifier probed",
		"name", d.name,
		"slot", d.slot,
		"bus", d.busType.String(),
		"addr", fmt.Sprintf("%#02x", d.addr),
		"irq", d.irq,
	)
	return nil
}

// Remove tears the instance down.
//
// The amplifier disable is attempted unconditionally, even after a
// partial or failed probe: leaving a speaker amp powered with no driver
// attached is worse than a redundant register write.
func (d *Device) Remove() {
	d.mu.Lock()
	bound := d.bound
	d.bound = false
	d.mu.Unlock()

	if bound {
		d.registry.Unbind(d.slot, d)
	}

	d.writeBestEffort(RegAmpEnable, valAmpEnableOff, "AMP_EN")
	d.log.Info("amplifier removed", "name", d.name, "slot", d.slot)
}

// Name returns the bus-specific device name.
func (d *Device) Name() string { return d.name }

// Slot returns the resolved component slot index.
func (d *Device) Slot() int { return d.slot }

// Power returns the current power state.
func (d *Device) Power() PowerState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.power
}

// writeBestEffort writes a register and logs any failure without
// propagating it. The non-fatal arm of the error policy.
func (d *Device) writeBestEffort(reg uint16, val uint8, what string) {
	if err := d.rm.Write(reg, val); err != nil {
		d.log.Error("register write failed",
			"name", d.name,
			"register", what,
			"reg", fmt.Sprintf("%#04x", reg),
			"value", fmt.Sprintf("%#02x", val),
			"error", err,
		)
	}
}

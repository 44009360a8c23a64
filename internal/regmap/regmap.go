package regmap

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Bus is the hardware transport under a Regmap. Implementations perform a
// single addressed register access per call.
type Bus interface {
	ReadRegister(reg uint16) (uint8, error)
	WriteRegister(reg uint16, val uint8) error
}

// CacheMode describes how register traffic relates to the in-memory mirror.
type CacheMode int

const (
	// CacheDisabled: no mirror; every access touches hardware.
	CacheDisabled CacheMode = iota

	// CacheSynced: writes reach hardware and the mirror; the mirror is clean.
	CacheSynced

	// CacheOnly: hardware is not touched; writes accumulate in the mirror
	// as dirty entries until the next Sync.
	CacheOnly
)

// Observer receives a callback for every hardware register access.
// Used to feed I/O metrics; implementations must not block.
type Observer interface {
	ObserveRegisterIO(op string, reg uint16, elapsed time.Duration, err error)
}

// Option configures a Regmap.
type Option func(*Regmap)

// WithCache enables the register mirror. Required for cache-only operation
// across suspend.
func WithCache() Option {
	return func(rm *Regmap) {
		rm.cache = make(map[uint16]uint8)
		rm.dirty = make(map[uint16]struct{})
	}
}

// WithObserver attaches an I/O observer.
func WithObserver(o Observer) Option {
	return func(rm *Regmap) {
		rm.observer = o
	}
}

// Regmap provides serialised register access to one device, with an
// optional cache mirror for suspend/resume support.
type Regmap struct {
	mu  sync.Mutex
	bus Bus

	// cache mirrors the last known value per register; nil when the
	// mirror is disabled. dirty tracks addresses whose mirrored value
	// has not reached hardware.
	cache map[uint16]uint8
	dirty map[uint16]struct{}

	cacheOnly bool
	observer  Observer
}

// New creates a Regmap over the given bus.
func New(bus Bus, opts ...Option) *Regmap {
	rm := &Regmap{bus: bus}
	for _, opt := range opts {
		opt(rm)
	}
	return rm
}

// Mode returns the current cache mode.
func (rm *Regmap) Mode() CacheMode {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	switch {
	case rm.cache == nil:
		return CacheDisabled
	case rm.cacheOnly:
		return CacheOnly
	default:
		return CacheSynced
	}
}

// Read returns the value of a register.
//
// In cache-only mode the value is served from the mirror; an address that
// was never seen returns ErrCacheMiss. Otherwise the read goes to hardware
// and, when the mirror is enabled, refreshes it.
func (rm *Regmap) Read(reg uint16) (uint8, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.cacheOnly {
		val, ok := rm.cache[reg]
		if !ok {
			return 0, fmt.Errorf("%w: %#04x", ErrCacheMiss, reg)
		}
		return val, nil
	}

	val, err := rm.busRead(reg)
	if err != nil {
		return 0, err
	}
	if rm.cache != nil {
		rm.cache[reg] = val
	}
	return val, nil
}

// Write sets the value of a register.
//
// In cache-only mode the value lands in the mirror and is marked dirty for
// the next Sync; hardware is not touched. Otherwise the write goes to
// hardware and, on success, refreshes the mirror.
func (rm *Regmap) Write(reg uint16, val uint8) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.cacheOnly {
		rm.cache[reg] = val
		rm.dirty[reg] = struct{}{}
		return nil
	}

	if err := rm.busWrite(reg, val); err != nil {
		return err
	}
	if rm.cache != nil {
		rm.cache[reg] = val
		delete(rm.dirty, reg)
	}
	return nil
}

// SetCacheOnly switches the regmap into or out of cache-only mode.
//
// Entering cache-only requires the mirror to be enabled. Leaving cache-only
// does not replay anything; call Sync for that.
func (rm *Regmap) SetCacheOnly(enable bool) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if enable && rm.cache == nil {
		return ErrCacheDisabled
	}
	rm.cacheOnly = enable
	return nil
}

// MarkDirty flags every mirrored register as needing a hardware write on
// the next Sync. Called when entering suspend, where the hardware may lose
// register state while the mirror keeps it.
func (rm *Regmap) MarkDirty() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for reg := range rm.cache {
		rm.dirty[reg] = struct{}{}
	}
}

// Sync replays all dirty mirror entries to hardware in ascending address
// order (last write wins per address). Failed writes stay dirty and their
// errors are joined into the returned error; successful writes continue
// regardless.
//
// Returns ErrCacheOnly if the regmap is still in cache-only mode.
func (rm *Regmap) Sync() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.cacheOnly {
		return ErrCacheOnly
	}
	if len(rm.dirty) == 0 {
		return nil
	}

	regs := make([]uint16, 0, len(rm.dirty))
	for reg := range rm.dirty {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i] < regs[j] })

	var errs []error
	for _, reg := range regs {
		if err := rm.busWrite(reg, rm.cache[reg]); err != nil {
			errs = append(errs, fmt.Errorf("reg %#04x: %w", reg, err))
			continue
		}
		delete(rm.dirty, reg)
	}
	return errors.Join(errs...)
}

// busRead performs an observed hardware read. Caller holds rm.mu.
func (rm *Regmap) busRead(reg uint16) (uint8, error) {
	start := time.Now()
	val, err := rm.bus.ReadRegister(reg)
	if rm.observer != nil {
		rm.observer.ObserveRegisterIO("read", reg, time.Since(start), err)
	}
	return val, err
}

// busWrite performs an observed hardware write. Caller holds rm.mu.
func (rm *Regmap) busWrite(reg uint16, val uint8) error {
	start := time.Now()
	err := rm.bus.WriteRegister(reg, val)
	if rm.observer != nil {
		rm.observer.ObserveRegisterIO("write", reg, time.Since(start), err)
	}
	return err
}

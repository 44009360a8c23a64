package max98390

import (
	"errors"
	"testing"
	"time"

	"github.com/renholt/sidecodec-core/internal/component"
	"github.com/renholt/sidecodec-core/internal/regmap"
)

var errTestNack = errors.New("nack")

func TestSuspendResume(t *testing.T) {
	registry := component.NewRegistry()
	bus := newFakeBus()
	dev := newTestDevice(t, registry, "amp.0", 0x38, bus)

	if err := dev.Probe(); err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	n := len(bus.writes)
	if err := dev.Suspend(); err != nil {
		t.Fatalf("Suspend() error = %v", err)
	}
	if dev.Power() != PowerSuspended {
		t.Errorf("Power() = %v after suspend, want suspended", dev.Power())
	}

	// The disable reaches hardware before access goes cache-only.
	got := bus.writesSince(n)
	if len(got) != 1 || got[0] != (writeRec{RegAmpEnable, valAmpEnableOff}) {
		t.Fatalf("suspend writes = %v, want single amp disable", got)
	}

	// Writes while suspended are deferred.
	n = len(bus.writes)
	dev.PlaybackHook(component.ActionOpen)
	if got := bus.writesSince(n); len(got) != 0 {
		t.Errorf("suspended writes reached hardware: %v", got)
	}

	if err := dev.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if dev.Power() != PowerActive {
		t.Errorf("Power() = %v after resume, want active", dev.Power())
	}

	// Every mirrored register is replayed in ascending address order, with
	// the deferred enable values winning over the probe-time idle values.
	replay := bus.writesSince(n)
	if len(replay) == 0 {
		t.Fatal("resume replayed nothing")
	}
	for i := 1; i < len(replay); i++ {
		if replay[i].reg <= replay[i-1].reg {
			t.Fatalf("replay order not ascending: %#04x after %#04x",
				replay[i].reg, replay[i-1].reg)
		}
	}
	replayed := make(map[uint16]uint8, len(replay))
	for _, w := range replay {
		replayed[w.reg] = w.val
	}
	if replayed[RegGlobalEnable] != valGlobalEnableOn {
		t.Errorf("replayed GLOBAL_EN = %#02x, want %#02x (deferred open wins)",
			replayed[RegGlobalEnable], valGlobalEnableOn)
	}
	if replayed[RegAmpEnable] != valAmpEnableOn {
		t.Errorf("replayed AMP_EN = %#02x, want %#02x (deferred open wins)",
			replayed[RegAmpEnable], valAmpEnableOn)
	}
	if replayed[RegClockMonitor] != valClockMonitor {
		t.Errorf("replayed CLK_MON = %#02x, want probe-time baseline %#02x",
			replayed[RegClockMonitor], valClockMonitor)
	}
}

func TestResume_FailedReplayStaysDirty(t *testing.T) {
	registry := component.NewRegistry()
	bus := newFakeBus()
	dev := newTestDevice(t, registry, "amp.0", 0x38, bus)

	if err := dev.Probe(); err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if err := dev.Suspend(); err != nil {
		t.Fatalf("Suspend() error = %v", err)
	}

	bus.failWrites[RegAmpEnable] = errTestNack
	if err := dev.Resume(); err != nil {
		t.Fatalf("Resume() error = %v, replay failures must not propagate", err)
	}

	// The failed entry is retried on the next explicit sync.
	delete(bus.failWrites, RegAmpEnable)
	n := len(bus.writes)
	if err := dev.rm.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	got := bus.writesSince(n)
	if len(got) != 1 || got[0].reg != RegAmpEnable {
		t.Errorf("retry sync writes = %v, want single AMP_EN replay", got)
	}
}

func TestSuspend_WithoutCacheFails(t *testing.T) {
	registry := component.NewRegistry()
	bus := newFakeBus()

	rm := regmap.New(bus)
	dev, err := New(registry, Options{Name: "amp.0", Address: 0x38, Regmap: rm})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	dev.sleep = func(time.Duration) {}

	if err := dev.Suspend(); !errors.Is(err, regmap.ErrCacheDisabled) {
		t.Errorf("Suspend() error = %v, want ErrCacheDisabled", err)
	}
	if dev.Power() != PowerActive {
		t.Error("failed suspend changed power state")
	}
}

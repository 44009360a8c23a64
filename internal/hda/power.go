package hda

import "context"

// PowerManager is implemented by bound devices that participate in
// suspend/resume. Devices are detected by interface assertion on the
// bound identity, so drivers opt in just by implementing it.
type PowerManager interface {
	Suspend() error
	Resume() error
}

// SuspendAll drives every bound, power-managing device into suspend.
//
// Per-device failures are logged and do not stop the sweep; the
// machine is going down regardless.
func (c *Controller) SuspendAll(ctx context.Context) {
	slots := c.registry.Snapshot()

	for i := range slots {
		comp := slots[i]
		pm, ok := comp.Device.(PowerManager)
		if !comp.Bound() || !ok {
			continue
		}

		if err := pm.Suspend(); err != nil {
			c.logger.Error("device suspend failed",
				"slot", i,
				"device", comp.Name,
				"error", err,
			)
			continue
		}
		c.emit(ctx, Event{
			Kind:   EventSuspend,
			Slot:   i,
			Device: comp.Name,
			At:     c.now(),
		})
	}
}

// ResumeAll drives every bound, power-managing device back to active.
func (c *Controller) ResumeAll(ctx context.Context) {
	slots := c.registry.Snapshot()

	for i := range slots {
		comp := slots[i]
		pm, ok := comp.Device.(PowerManager)
		if !comp.Bound() || !ok {
			continue
		}

		if err := pm.Resume(); err != nil {
			c.logger.Error("device resume failed",
				"slot", i,
				"device", comp.Name,
				"error", err,
			)
			continue
		}
		c.emit(ctx, Event{
			Kind:   EventResume,
			Slot:   i,
			Device: comp.Name,
			At:     c.now(),
		})
	}
}

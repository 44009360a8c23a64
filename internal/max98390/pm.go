package max98390

// Suspend disables the amplifier and switches register access to the
// cache mirror.
//
// The disable write is best-effort: suspend must never block on a dead
// bus. After the switch the whole mirror is marked dirty so Resume
// replays every known register, wiping out anything the part forgot
// while powered down.
//
// Returns:
//   - error: Only when the regmap was built without a cache; register
//     I/O failures are logged, not propagated
func (d *Device) Suspend() error {
	d.writeBestEffort(RegAmpEnable, valAmpEnableOff, "AMP_EN")

	if err := d.rm.SetCacheOnly(true); err != nil {
		return err
	}
	d.rm.MarkDirty()

	d.mu.Lock()
	d.power = PowerSuspended
	d.mu.Unlock()

	d.log.Info("amplifier suspended", "name", d.name, "slot", d.slot)
	return nil
}

// Resume switches register access back to hardware and replays the
// dirty mirror.
//
// Replay failures are logged and left dirty for the next sync; resume
// itself never fails on register I/O.
//
// Returns:
//   - error: Only when the regmap was built without a cache
func (d *Device) Resume() error {
	if err := d.rm.SetCacheOnly(false); err != nil {
		return err
	}

	if err := d.rm.Sync(); err != nil {
		d.log.Error("register sync failed on resume, entries left dirty",
			"name", d.name,
			"slot", d.slot,
			"error", err,
		)
	}

	d.mu.Lock()
	d.power = PowerActive
	d.mu.Unlock()

	d.log.Info("amplifier resumed", "name", d.name, "slot", d.slot)
	return nil
}

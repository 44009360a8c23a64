package max98390

import "fmt"

// initDevice runs the power-on register sequence.
//
// The revision ID read proves the part is present and responding; it is
// the only access allowed to fail the probe alongside the software reset
// write. Everything after the reset settles the part into a known idle
// state and is best-effort.
func (d *Device) initDevice() error {
	rev, err := d.rm.Read(RegRevisionID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIdentityCheck, err)
	}
	d.log.Debug("amplifier identified",
		"name", d.name,
		"revision", fmt.Sprintf("%#02x", rev),
	)

	if err := d.rm.Write(RegSoftwareReset, valSoftwareReset); err != nil {
		return fmt.Errorf("max98390: software reset failed: %w", err)
	}
	d.sleep(d.resetSettle)

	// Known idle baseline. Monitor thresholds, power gating off, both
	// PCM receive channels enabled, boost and FET tuning.
	d.writeBestEffort(RegClockMonitor, valClockMonitor, "CLK_MON")
	d.writeBestEffort(RegDataMonitor, valDataMonitor, "DAT_MON")
	d.writeBestEffort(RegPowerGateControl, valPowerGateControl, "PWR_GATE_CTL")
	d.writeBestEffort(RegPCMRxEnableA, valPCMRxEnableA, "PCM_RX_EN_A")
	d.writeBestEffort(RegEnvTrackVoutHeadroom, valEnvTrackVoutHeadroom, "ENV_TRACK_VOUT_HEADROOM")
	d.writeBestEffort(RegBoostBypass1, valBoostBypass1, "BOOST_BYPASS1")
	d.writeBestEffort(RegFETScaling3, valFETScaling3, "FET_SCALING3")

	// I2S slave format matching the controller's link framing.
	d.writeBestEffort(RegPCMModeConfig, valPCMModeConfig, "PCM_MODE_CFG")
	d.writeBestEffort(RegPCMMasterMode, valPCMMasterMode, "PCM_MASTER_MODE")
	d.writeBestEffort(RegPCMClockSetup, valPCMClockSetup, "PCM_CLK_SETUP")
	d.writeBestEffort(RegPCMSampleRateSetup, valPCMSampleRateSetup, "PCM_SR_SETUP")

	d.writeBestEffort(RegGlobalEnable, valGlobalEnableOff, "GLOBAL_EN")
	d.sleep(d.enableSettle)
	d.writeBestEffort(RegAmpEnable, valAmpEnableOff, "AMP_EN")
	d.writeBestEffort(RegDSPGlobalEnable, valDSPGlobalEnableOff, "DSP_GLOBAL_EN")

	if err := d.filters.Configure(d.rm); err != nil {
		d.log.Warn("filter configuration failed, continuing without DSM filters",
			"name", d.name,
			"error", err,
		)
	}

	return nil
}

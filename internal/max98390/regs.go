package max98390

// MAX98390 register addresses. 16-bit addresses carrying 8-bit values.
const (
	RegSoftwareReset        uint16 = 0x2000
	RegClockMonitor         uint16 = 0x2012
	RegDataMonitor          uint16 = 0x2014
	RegPCMRxEnableA         uint16 = 0x201b
	RegPCMChannelSource1    uint16 = 0x2021
	RegPCMModeConfig        uint16 = 0x2024
	RegPCMMasterMode        uint16 = 0x2025
	RegPCMClockSetup        uint16 = 0x2026
	RegPCMSampleRateSetup   uint16 = 0x2027
	RegAmpEnable            uint16 = 0x203a
	RegPowerGateControl     uint16 = 0x2050
	RegEnvTrackVoutHeadroom uint16 = 0x2076
	RegBoostBypass1         uint16 = 0x207c
	RegFETScaling3          uint16 = 0x2081
	RegDSPGlobalEnable      uint16 = 0x23e1
	RegGlobalEnable         uint16 = 0x23ff
	RegRevisionID           uint16 = 0x24ff
)

// Register values used by the enable sequences. The amp-enable register
// keeps bit 7 set in both states; bit 0 switches the speaker path.
const (
	valSoftwareReset uint8 = 0x01

	valGlobalEnableOn  uint8 = 0x01
	valGlobalEnableOff uint8 = 0x00

	valAmpEnableOn  uint8 = 0x81
	valAmpEnableOff uint8 = 0x80

	valDSPGlobalEnableOff uint8 = 0x00
)

// Baseline configuration written during initialisation, bringing the part
// to a known idle state.
const (
	valClockMonitor         uint8 = 0x6f
	valDataMonitor          uint8 = 0x00
	valPowerGateControl     uint8 = 0x00
	valPCMRxEnableA         uint8 = 0x03
	valEnvTrackVoutHeadroom uint8 = 0x0e
	valBoostBypass1         uint8 = 0x46
	valFETScaling3          uint8 = 0x03
)

// PCM/I2S format configuration: I2S mode with 32-bit samples, the standard
// framing an HDA controller drives over the link.
const (
	valPCMModeConfig      uint8 = 0xc0
	valPCMMasterMode      uint8 = 0x1c
	valPCMClockSetup      uint8 = 0x44
	valPCMSampleRateSetup uint8 = 0x08
)

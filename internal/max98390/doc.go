// Package max98390 drives the MAX98390 smart amplifier as an HDA
// side codec: a satellite speaker amp powered up and down by the audio
// controller around PCM stream lifecycle events.
//
// # Lifecycle
//
// Probe resolves the device's component slot (from its name suffix or I2C
// address), runs the power-on register sequence to bring the part to a
// known idle state, and binds the instance into the controller's component
// registry. From then on the controller calls the bound playback hook at
// stream open/prepare/cleanup/close, and the power-management path drives
// Suspend/Resume independently of stream activity.
//
// # Error Policy
//
// Probe-time failures before and including the revision ID read are fatal
// and roll the probe back. Every later register write is best-effort:
// failures are logged and the sequence continues. A degraded amplifier is
// preferred over interrupted playback or a blocked suspend.
//
// # Slot Resolution
//
// A trailing ".N" instantiation suffix on the device name takes priority.
// Without one, the I2C address maps through a fixed table:
// 0x38→0, 0x39→1, 0x3c→2, 0x3d→3. Anything else fails the probe with
// ErrUnmappedAddress.
package max98390

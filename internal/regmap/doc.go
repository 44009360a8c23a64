// Package regmap provides addressed register access for the MAX98390
// amplifier: 16-bit register addresses carrying 8-bit values, with an
// optional in-memory cache mirror.
//
// # Cache Modes
//
//   - Disabled: every read and write touches hardware; no mirror is kept.
//   - Synced: writes go to hardware and are mirrored; reads hit hardware.
//   - CacheOnly: writes land only in the mirror and are marked dirty;
//     reads are served from the mirror. Used across suspend, when the bus
//     must not be touched.
//
// Sync replays the dirty mirror entries back to hardware (last write wins
// per address, ascending address order) and returns the regmap to synced
// mode. This is how register state accumulated while suspended reaches the
// part again on resume.
//
// # Transport
//
// Hardware access goes through the Bus interface. The production transport
// is I2C: a register write is a single transaction of
// [addr high, addr low, value]; a read writes the two address bytes and
// reads one value byte back.
//
// # Thread Safety
//
// All methods are safe for concurrent use; a single mutex serialises
// register traffic per device, which also preserves the strict write
// ordering the amplifier's enable sequences require.
package regmap

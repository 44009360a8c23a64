package max98390

import (
	"fmt"
	"strconv"
	"strings"
)

// slotByAddress is the fixed I2C address to component slot mapping used
// when the device name carries no instantiation suffix.
var slotByAddress = map[uint8]int{
	0x38: 0,
	0x39: 1,
	0x3c: 2,
	0x3d: 3,
}

// ResolveSlot derives the component slot index for a device.
//
// A trailing ".N" suffix on the name (serial-multi-instantiate style
// naming, e.g. "i2c-MX98390:00-max98390-hda.2") always wins when N parses
// as an integer. Otherwise the I2C address is looked up in the fixed
// table. If both fail, the probe must be aborted: no driver state exists
// yet for such a device.
//
// Parameters:
//   - name: Bus-specific device name
//   - addr: Secondary (I2C) address
//
// Returns:
//   - int: Slot index in [0, 4)
//   - error: ErrUnmappedAddress if nothing resolves
func ResolveSlot(name string, addr uint8) (int, error) {
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		if n, err := strconv.Atoi(name[dot+1:]); err == nil {
			return n, nil
		}
	}

	if index, ok := slotByAddress[addr]; ok {
		return index, nil
	}

	return 0, fmt.Errorf("%w: %q addr %#02x", ErrUnmappedAddress, name, addr)
}

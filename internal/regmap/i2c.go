package regmap

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// I2CBus adapts a drivers.I2C bus plus a device address to the Bus
// interface. The MAX98390 register protocol is two address bytes followed
// by one value byte: a write is a single [addr_hi, addr_lo, value]
// transaction, a read writes the address bytes and reads one byte back.
type I2CBus struct {
	bus  drivers.I2C
	addr uint16
}

var _ Bus = (*I2CBus)(nil)

// NewI2CBus creates an I2C register transport for the device at addr
// (7-bit I2C address).
func NewI2CBus(bus drivers.I2C, addr uint16) *I2CBus {
	return &I2CBus{bus: bus, addr: addr}
}

// ReadRegister reads one register value.
func (b *I2CBus) ReadRegister(reg uint16) (uint8, error) {
	w := []byte{byte(reg >> 8), byte(reg)}
	var r [1]byte
	if err := b.bus.Tx(b.addr, w, r[:]); err != nil {
		return 0, fmt.Errorf("i2c read reg %#04x: %w", reg, err)
	}
	return r[0], nil
}

// WriteRegister writes one register value.
func (b *I2CBus) WriteRegister(reg uint16, val uint8) error {
	w := []byte{byte(reg >> 8), byte(reg), val}
	if err := b.bus.Tx(b.addr, w, nil); err != nil {
		return fmt.Errorf("i2c write reg %#04x: %w", reg, err)
	}
	return nil
}

//go:build !linux

package i2cdev

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned on platforms without i2c-dev.
var ErrUnsupported = errors.New("i2cdev: not supported on this platform")

// Bus is a placeholder on platforms without i2c-dev.
type Bus struct{}

// Open always fails off Linux; tests inject fake buses instead.
func Open(path string) (*Bus, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
}

func (b *Bus) Close() error { return nil }

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	return ErrUnsupported
}

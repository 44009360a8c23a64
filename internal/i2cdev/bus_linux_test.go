//go:build linux

package i2cdev

import (
	"testing"

	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*Bus)(nil)

func TestOpen_MissingAdapter(t *testing.T) {
	if _, err := Open("/dev/i2c-does-not-exist"); err == nil {
		t.Error("Open() succeeded on a missing adapter")
	}
}

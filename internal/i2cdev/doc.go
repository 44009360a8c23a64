// Package i2cdev opens Linux i2c-dev character devices and exposes them
// through the minimal Tx-style bus interface the register access layer
// consumes. One Bus represents one /dev/i2c-N adapter; per-transaction
// target addressing is done with the I2C_SLAVE ioctl.
package i2cdev

//go:build linux

package i2cdev

import (
	"fmt"
	"os"
	"sync"
	"syscall"
)

// i2cSlave is the I2C_SLAVE ioctl request from linux/i2c-dev.h.
const i2cSlave = 0x0703

// Bus is one open i2c-dev adapter. Safe for concurrent use; the slave
// address ioctl and the transfer happen under one lock so transactions
// to different devices cannot interleave.
type Bus struct {
	mu   sync.Mutex
	file *os.File
	addr uint16
}

// Open opens an i2c-dev adapter (e.g. "/dev/i2c-1").
func Open(path string) (*Bus, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening i2c adapter %s: %w", path, err)
	}
	return &Bus{file: file, addr: 0xffff}, nil
}

// Close releases the adapter.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.file.Close()
}

// Tx performs one write-then-read transaction against the device at addr.
// Either buffer may be empty. The write and read are issued as separate
// bus transfers, which is what register-addressed parts expect.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.setAddr(addr); err != nil {
		return err
	}

	if len(w) > 0 {
		if _, err := b.file.Write(w); err != nil {
			return fmt.Errorf("i2c write to %#02x: %w", addr, err)
		}
	}
	if len(r) > 0 {
		if _, err := b.file.Read(r); err != nil {
			return fmt.Errorf("i2c read from %#02x: %w", addr, err)
		}
	}
	return nil
}

// setAddr points the adapter at a target device. Caller holds b.mu.
func (b *Bus) setAddr(addr uint16) error {
	if addr == b.addr {
		return nil
	}
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, b.file.Fd(), i2cSlave, uintptr(addr))
	if errno != 0 {
		return fmt.Errorf("selecting i2c target %#02x: %w", addr, errno)
	}
	b.addr = addr
	return nil
}

package serial

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned by ReadByte when no byte arrived within the
	// read timeout.
	ErrTimeout = errors.New("serial: read timeout")
	// ErrClosed is returned by operations on a closed channel.
	ErrClosed = errors.New("serial: channel closed")
	// ErrInvalidBaudRate is returned for rates a Minitel does not support.
	ErrInvalidBaudRate = errors.New("serial: unsupported baud rate")
	// ErrUnsupportedDriver is returned when a driver is unknown or not
	// available on this platform.
	ErrUnsupportedDriver = errors.New("serial: unsupported driver")
)

// Channel is a byte-oriented duplex serial line.
//
// ReadByte and Write may be called concurrently from different
// goroutines; SetBaudRate and Close may be called from any goroutine.
type Channel interface {
	// ReadByte reads one byte, waiting at most the configured read
	// timeout. It returns ErrTimeout when nothing arrived.
	ReadByte() (byte, error)
	// Write writes p to the line.
	Write(p []byte) (int, error)
	// Flush blocks until written bytes have been transmitted.
	Flush() error
	// SetBaudRate changes the line rate.
	SetBaudRate(baud int) error
	// BaudRate returns the current line rate.
	BaudRate() int
	// Close releases the line.
	Close() error
}

// ValidBaudRate reports whether baud is a Minitel line rate.
func ValidBaudRate(baud int) bool {
	switch baud {
	case 300, 1200, 4800, 9600:
		return true
	default:
		return false
	}
}

func checkBaudRate(baud int) error {
	if !ValidBaudRate(baud) {
		return fmt.Errorf("%w: %d", ErrInvalidBaudRate, baud)
	}

	return nil
}

// Open opens the line described by cfg with the configured driver.
func Open(cfg *Config) (Channel, error) {
	if cfg == nil {
		return nil, errors.New("serial: config is nil")
	}

	switch cfg.driver {
	case DriverTermios:
		return openTermios(cfg)
	case DriverPortable:
		return openPortable(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.driver)
	}
}

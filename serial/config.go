package serial

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/go-minitel/logger"
)

// Driver selects the implementation behind a Channel.
type Driver string

const (
	DriverTermios  Driver = "termios"
	DriverPortable Driver = "portable"
)

const (
	DefaultBaudRate    = 1200
	DefaultReadTimeout = time.Second

	MinReadTimeout = 100 * time.Millisecond
	MaxReadTimeout = 25 * time.Second
)

// Config describes how to open a serial line.
type Config struct {
	device      string
	baudRate    int
	readTimeout time.Duration
	driver      Driver
	logger      logger.Logger
}

// NewConfig creates the configuration of the line at device, for example
// "/dev/ttyUSB0". Options are applied in order.
func NewConfig(device string, opts ...Option) (*Config, error) {
	if device == "" {
		return nil, errors.New("serial: device must not be empty")
	}

	cfg := &Config{
		device:      device,
		baudRate:    DefaultBaudRate,
		readTimeout: DefaultReadTimeout,
		driver:      defaultDriver,
		logger:      logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Device returns the device path.
func (cfg *Config) Device() string { return cfg.device }

// BaudRate returns the initial line rate.
func (cfg *Config) BaudRate() int { return cfg.baudRate }

// ReadTimeout returns the bound of a single byte read.
func (cfg *Config) ReadTimeout() time.Duration { return cfg.readTimeout }

// Driver returns the selected driver.
func (cfg *Config) Driver() Driver { return cfg.driver }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithBaudRate sets the initial line rate: 300, 1200 (default), 4800 or 9600.
func WithBaudRate(baud int) Option {
	return optFunc(func(cfg *Config) error {
		if err := checkBaudRate(baud); err != nil {
			return err
		}
		cfg.baudRate = baud

		return nil
	})
}

// WithReadTimeout sets how long ReadByte waits for a byte.
// The portable driver rounds it up to a multiple of 100ms.
func WithReadTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinReadTimeout || d > MaxReadTimeout {
			return fmt.Errorf("serial: read timeout %v out of range [%v, %v]", d, MinReadTimeout, MaxReadTimeout)
		}
		cfg.readTimeout = d

		return nil
	})
}

// WithDriver selects the driver. The default is DriverTermios on Linux
// and DriverPortable elsewhere.
func WithDriver(d Driver) Option {
	return optFunc(func(cfg *Config) error {
		switch d {
		case DriverTermios, DriverPortable:
			cfg.driver = d
			return nil
		default:
			return fmt.Errorf("%w: %q", ErrUnsupportedDriver, d)
		}
	})
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("serial: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}

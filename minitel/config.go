package minitel

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/go-minitel/logger"
)

// Default timings. One "time unit" of the terminal protocol is the reply
// timeout; escape continuations wait a tenth of it.
const (
	DefaultReplyTimeout  = 1 * time.Second
	DefaultEscapeTimeout = 100 * time.Millisecond
	DefaultCloseTimeout  = DefaultReplyTimeout

	DefaultQueueSize = 256
)

// Timing limits.
const (
	MinReplyTimeout = 10 * time.Millisecond
	MaxReplyTimeout = 30 * time.Second

	MinEscapeTimeout = 1 * time.Millisecond
	MaxEscapeTimeout = 5 * time.Second
)

// Config holds the settings of a Minitel link.
type Config struct {
	replyTimeout  time.Duration
	escapeTimeout time.Duration
	closeTimeout  time.Duration
	pollTimeout   time.Duration

	initialMode Mode
	queueSize   int

	logger logger.Logger
}

// NewConfig creates a link configuration. Options are applied in order.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		replyTimeout:  DefaultReplyTimeout,
		escapeTimeout: DefaultEscapeTimeout,
		pollTimeout:   pollTimeout,
		initialMode:   Videotex,
		queueSize:     DefaultQueueSize,
		logger:        logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	// close waits one time unit unless set explicitly
	if cfg.closeTimeout == 0 {
		cfg.closeTimeout = cfg.replyTimeout
	}

	return cfg, nil
}

// ReplyTimeout returns how long a call waits for each reply byte.
func (cfg *Config) ReplyTimeout() time.Duration { return cfg.replyTimeout }

// EscapeTimeout returns how long ReceiveSequence waits for the byte
// following ESC.
func (cfg *Config) EscapeTimeout() time.Duration { return cfg.escapeTimeout }

// CloseTimeout returns how long Close waits for the I/O goroutines.
func (cfg *Config) CloseTimeout() time.Duration { return cfg.closeTimeout }

// InitialMode returns the mode the terminal is assumed to be in.
func (cfg *Config) InitialMode() Mode { return cfg.initialMode }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithReplyTimeout sets the per-byte wait of calls. Default 1s.
func WithReplyTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinReplyTimeout || d > MaxReplyTimeout {
			return fmt.Errorf("minitel: reply timeout %v out of range [%v, %v]", d, MinReplyTimeout, MaxReplyTimeout)
		}
		cfg.replyTimeout = d

		return nil
	})
}

// WithEscapeTimeout sets the wait for the byte following ESC. Default 100ms.
func WithEscapeTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinEscapeTimeout || d > MaxEscapeTimeout {
			return fmt.Errorf("minitel: escape timeout %v out of range [%v, %v]", d, MinEscapeTimeout, MaxEscapeTimeout)
		}
		cfg.escapeTimeout = d

		return nil
	})
}

// WithCloseTimeout bounds how long Close waits for pending output.
// Default: the reply timeout.
func WithCloseTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("minitel: close timeout must be positive")
		}
		cfg.closeTimeout = d

		return nil
	})
}

// WithInitialMode sets the mode the terminal is assumed to be in when the
// link starts. A Minitel powers on in Videotex mode.
func WithInitialMode(mode Mode) Option {
	return optFunc(func(cfg *Config) error {
		if !mode.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidMode, mode)
		}
		cfg.initialMode = mode

		return nil
	})
}

// WithQueueSize sets the initial capacity of the I/O queues.
func WithQueueSize(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("minitel: queue size %d must be positive", n)
		}
		cfg.queueSize = n

		return nil
	})
}

// WithLogger sets the logger for the link.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("minitel: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}

// Package config loads Minitel link profiles from YAML files.
//
// A profile names the serial device and the link settings:
//
//	device: /dev/ttyUSB0
//	driver: termios
//	baud: 4800
//	read_timeout: 500ms
//	reply_timeout: 1s
//	escape_timeout: 100ms
//	close_timeout: 1s
//	mode: videotex
//	log_level: debug
//
// Only device is required; omitted settings keep the package defaults of
// serial and minitel.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/arloliu/go-minitel/logger"
	"github.com/arloliu/go-minitel/minitel"
	"github.com/arloliu/go-minitel/serial"
	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile is returned for profiles with missing or malformed
// settings.
var ErrInvalidProfile = errors.New("config: invalid profile")

// Profile is the content of a link profile file.
type Profile struct {
	Device        string        `yaml:"device"`
	Driver        string        `yaml:"driver"`
	Baud          int           `yaml:"baud"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	ReplyTimeout  time.Duration `yaml:"reply_timeout"`
	EscapeTimeout time.Duration `yaml:"escape_timeout"`
	CloseTimeout  time.Duration `yaml:"close_timeout"`
	Mode          string        `yaml:"mode"`
	LogLevel      string        `yaml:"log_level"`
}

// Load reads and validates the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read profile %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks the settings without opening anything.
func (p *Profile) Validate() error {
	if p.Device == "" {
		return fmt.Errorf("%w: device is required", ErrInvalidProfile)
	}
	if p.Mode != "" {
		if _, err := minitel.ParseMode(p.Mode); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
		}
	}
	if p.LogLevel != "" {
		if _, ok := logger.ParseLevel(p.LogLevel); !ok {
			return fmt.Errorf("%w: unknown log level %q", ErrInvalidProfile, p.LogLevel)
		}
	}

	// ranges are checked by the options
	l := logger.GetLogger()
	if _, err := p.SerialConfig(l); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if _, err := p.LinkConfig(l); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	return nil
}

// Logger returns a logger at the profile log level, or the default
// logger when the profile sets none.
func (p *Profile) Logger() logger.Logger {
	level, ok := logger.ParseLevel(p.LogLevel)
	if p.LogLevel == "" || !ok {
		return logger.GetLogger()
	}

	return logger.NewSlog(level, false)
}

// SerialConfig builds the serial line configuration, logging to l.
func (p *Profile) SerialConfig(l logger.Logger) (*serial.Config, error) {
	opts := []serial.Option{serial.WithLogger(l)}
	if p.Driver != "" {
		opts = append(opts, serial.WithDriver(serial.Driver(p.Driver)))
	}
	if p.Baud != 0 {
		opts = append(opts, serial.WithBaudRate(p.Baud))
	}
	if p.ReadTimeout != 0 {
		opts = append(opts, serial.WithReadTimeout(p.ReadTimeout))
	}

	return serial.NewConfig(p.Device, opts...)
}

// LinkConfig builds the link configuration, logging to l.
func (p *Profile) LinkConfig(l logger.Logger) (*minitel.Config, error) {
	opts := []minitel.Option{minitel.WithLogger(l)}
	if p.ReplyTimeout != 0 {
		opts = append(opts, minitel.WithReplyTimeout(p.ReplyTimeout))
	}
	if p.EscapeTimeout != 0 {
		opts = append(opts, minitel.WithEscapeTimeout(p.EscapeTimeout))
	}
	if p.CloseTimeout != 0 {
		opts = append(opts, minitel.WithCloseTimeout(p.CloseTimeout))
	}
	if p.Mode != "" {
		mode, err := minitel.ParseMode(p.Mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, minitel.WithInitialMode(mode))
	}

	return minitel.NewConfig(opts...)
}

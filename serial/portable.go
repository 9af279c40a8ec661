package serial

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/arloliu/go-minitel/logger"
	goserial "github.com/jacobsa/go-serial/serial"
)

// portablePort wraps a jacobsa/go-serial port. The library fixes the rate
// at open time, so a rate change closes and reopens the device.
type portablePort struct {
	opts   goserial.OpenOptions
	logger logger.Logger

	mu     sync.RWMutex // guards port; writers reopen it
	port   io.ReadWriteCloser
	closed bool
}

var _ Channel = (*portablePort)(nil)

// openFunc is replaced in tests.
var openFunc = goserial.Open

func openPortable(cfg *Config) (Channel, error) {
	opts := portableOptions(cfg.device, cfg.baudRate, cfg.readTimeout)

	port, err := openFunc(opts)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.device, err)
	}

	p := &portablePort{
		opts:   opts,
		logger: cfg.logger.With("device", cfg.device),
		port:   port,
	}
	p.logger.Debug("serial line opened", "driver", DriverPortable, "baud", cfg.baudRate)

	return p, nil
}

// portableOptions builds 7E1 open options. The inter-character timeout is
// expressed in milliseconds and must be a multiple of 100.
func portableOptions(device string, baud int, readTimeout time.Duration) goserial.OpenOptions {
	ms := uint((readTimeout + 99*time.Millisecond) / (100 * time.Millisecond) * 100)

	return goserial.OpenOptions{
		PortName:              device,
		BaudRate:              uint(baud),
		DataBits:              7,
		StopBits:              1,
		ParityMode:            goserial.PARITY_EVEN,
		RTSCTSFlowControl:     false,
		InterCharacterTimeout: ms,
		MinimumReadSize:       0,
	}
}

func (p *portablePort) ReadByte() (byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrClosed
	}

	var buf [1]byte
	n, err := p.port.Read(buf[:])
	if n == 1 {
		return buf[0], nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		// VTIME expired with nothing to read
		return 0, ErrTimeout
	}

	return 0, fmt.Errorf("serial: read %s: %w", p.opts.PortName, err)
}

func (p *portablePort) Write(b []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrClosed
	}

	n, err := p.port.Write(b)
	if err != nil {
		return n, fmt.Errorf("serial: write %s: %w", p.opts.PortName, err)
	}

	return n, nil
}

// Flush is a no-op: writes on the underlying descriptor are blocking and
// the library exposes no drain primitive.
func (p *portablePort) Flush() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	return nil
}

func (p *portablePort) SetBaudRate(baud int) error {
	if err := checkBaudRate(baud); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if uint(baud) == p.opts.BaudRate {
		return nil
	}

	if err := p.port.Close(); err != nil {
		p.logger.Warn("failed to close port before rate change", "error", err)
	}

	opts := p.opts
	opts.BaudRate = uint(baud)
	port, err := openFunc(opts)
	if err != nil {
		p.closed = true
		return fmt.Errorf("serial: reopen %s at %d bauds: %w", opts.PortName, baud, err)
	}

	p.port = port
	p.opts = opts
	p.logger.Debug("baud rate changed", "baud", baud)

	return nil
}

func (p *portablePort) BaudRate() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return int(p.opts.BaudRate)
}

func (p *portablePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	return p.port.Close()
}

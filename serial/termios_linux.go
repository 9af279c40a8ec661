//go:build linux

package serial

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/go-minitel/logger"
	"golang.org/x/sys/unix"
)

const defaultDriver = DriverTermios

var termiosSpeeds = map[int]uint32{
	300:  unix.B300,
	1200: unix.B1200,
	4800: unix.B4800,
	9600: unix.B9600,
}

// termiosPort drives a tty with termios ioctls. The descriptor stays in
// non-blocking mode; reads and writes wait with poll(2).
type termiosPort struct {
	fd          int
	device      string
	readTimeout time.Duration
	logger      logger.Logger

	mu     sync.Mutex // serialize termios updates
	baud   atomic.Int32
	closed atomic.Bool
}

var _ Channel = (*termiosPort)(nil)

func openTermios(cfg *Config) (Channel, error) {
	fd, err := unix.Open(cfg.device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.device, err)
	}

	p := &termiosPort{
		fd:          fd,
		device:      cfg.device,
		readTimeout: cfg.readTimeout,
		logger:      cfg.logger.With("device", cfg.device),
	}

	if err := p.configure(cfg.baudRate); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	p.logger.Debug("serial line opened", "driver", DriverTermios, "baud", cfg.baudRate)

	return p, nil
}

// configure puts the line in raw 7E1 mode at baud.
func (p *termiosPort) configure(baud int) error {
	speed, ok := termiosSpeeds[baud]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidBaudRate, baud)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := unix.IoctlGetTermios(p.fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("serial: get termios: %w", err)
	}

	t.Iflag = unix.INPCK
	t.Oflag = 0
	t.Lflag = 0
	t.Cflag &^= unix.CBAUD | unix.CSIZE | unix.CSTOPB | unix.CRTSCTS | unix.PARODD
	t.Cflag |= speed | unix.CS7 | unix.PARENB | unix.CREAD | unix.CLOCAL
	t.Ispeed = speed
	t.Ospeed = speed
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(p.fd, unix.TCSETS, t); err != nil {
		return fmt.Errorf("serial: set termios: %w", err)
	}
	// bytes received at the previous rate are garbage
	_ = unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCIFLUSH)

	p.baud.Store(int32(baud))

	return nil
}

func (p *termiosPort) ReadByte() (byte, error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}

	fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(p.readTimeout/time.Millisecond))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, ErrTimeout
		}
		return 0, p.wrap("poll", err)
	}
	if n == 0 {
		return 0, ErrTimeout
	}

	var buf [1]byte
	m, err := unix.Read(p.fd, buf[:])
	switch {
	case errors.Is(err, unix.EAGAIN):
		return 0, ErrTimeout
	case err != nil:
		return 0, p.wrap("read", err)
	case m == 0:
		return 0, ErrTimeout
	}

	return buf[0], nil
}

func (p *termiosPort) Write(b []byte) (int, error) {
	written := 0
	for written < len(b) {
		if p.closed.Load() {
			return written, ErrClosed
		}

		n, err := unix.Write(p.fd, b[written:])
		if n > 0 {
			written += n
		}
		if errors.Is(err, unix.EAGAIN) {
			fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLOUT}}
			if _, err := unix.Poll(fds, int(p.readTimeout/time.Millisecond)); err != nil && !errors.Is(err, unix.EINTR) {
				return written, p.wrap("poll", err)
			}
			continue
		}
		if err != nil {
			return written, p.wrap("write", err)
		}
	}

	return written, nil
}

// Flush waits until the output queue is empty (tcdrain).
func (p *termiosPort) Flush() error {
	if p.closed.Load() {
		return ErrClosed
	}

	if err := unix.IoctlSetInt(p.fd, unix.TCSBRK, 1); err != nil {
		return p.wrap("drain", err)
	}

	return nil
}

func (p *termiosPort) SetBaudRate(baud int) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if err := checkBaudRate(baud); err != nil {
		return err
	}
	if err := p.configure(baud); err != nil {
		return err
	}
	p.logger.Debug("baud rate changed", "baud", baud)

	return nil
}

func (p *termiosPort) BaudRate() int {
	return int(p.baud.Load())
}

func (p *termiosPort) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	return unix.Close(p.fd)
}

func (p *termiosPort) wrap(op string, err error) error {
	if p.closed.Load() {
		return ErrClosed
	}

	return fmt.Errorf("serial: %s %s: %w", op, p.device, err)
}

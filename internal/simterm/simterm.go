// Package simterm simulates a Minitel on the far end of a serial line.
//
// A Terminal implements serial.Channel. Bytes written by the host are
// interpreted like a real terminal would: protocol commands are answered
// with acknowledgements of the real shape, everything else is recorded as
// displayed. Host and terminal only understand each other when their line
// rates match.
package simterm

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/arloliu/go-minitel/internal/queue"
	"github.com/arloliu/go-minitel/serial"
)

// Mode is the display mode of the simulated terminal.
type Mode uint8

const (
	Videotex Mode = iota
	Mixed
	Teleinformatic
)

// Reply codes of status acknowledgements.
const (
	repStatusTerminal byte = 0x71
	repStatusFunction byte = 0x73
	repStatusSpeed    byte = 0x75
	repStatusKeyboard byte = 0x73
	repStatusScreen   byte = 0x63
)

// Terminal is a simulated Minitel. The zero value is not usable; create
// terminals with New.
type Terminal struct {
	mu sync.Mutex

	manufacturer byte
	kind         byte
	version      byte
	maxBaud      int
	refused      map[int]bool
	mute         bool

	baud     int // terminal rate
	hostBaud int // rate the host line is set to
	mode     Mode

	extended  bool
	cursor    bool
	lowercase bool
	echo      bool

	pending     []byte
	display     bytes.Buffer
	rateHistory []int
	commands    int

	toHost      *queue.Blocking[byte]
	readTimeout time.Duration
	closed      bool
}

var _ serial.Channel = (*Terminal)(nil)

// Option configures a Terminal.
type Option func(*Terminal)

// WithIdentity sets the manufacturer, type and version bytes returned by
// the identification request. The default is a Philips Minitel 2 ('B',
// 'v', '4').
func WithIdentity(manufacturer, kind, version byte) Option {
	return func(t *Terminal) {
		t.manufacturer, t.kind, t.version = manufacturer, kind, version
	}
}

// WithBaud sets the rate the terminal runs at. Default 1200.
func WithBaud(baud int) Option {
	return func(t *Terminal) { t.baud = baud }
}

// WithMaxBaud sets the fastest rate the terminal accepts to switch to.
// Default 9600.
func WithMaxBaud(baud int) Option {
	return func(t *Terminal) { t.maxBaud = baud }
}

// WithRefusedSpeeds makes the terminal refuse to switch to the given rates.
func WithRefusedSpeeds(bauds ...int) Option {
	return func(t *Terminal) {
		for _, b := range bauds {
			t.refused[b] = true
		}
	}
}

// WithMode sets the initial display mode. Default Videotex.
func WithMode(mode Mode) Option {
	return func(t *Terminal) { t.mode = mode }
}

// WithReadTimeout sets how long ReadByte waits. Default 20ms.
func WithReadTimeout(d time.Duration) Option {
	return func(t *Terminal) { t.readTimeout = d }
}

// Mute makes the terminal record everything and answer nothing, like a
// device that is not a Minitel.
func Mute() Option {
	return func(t *Terminal) { t.mute = true }
}

// New creates a simulated terminal. The host side of the line starts at
// 1200 bauds.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		manufacturer: 'B',
		kind:         'v',
		version:      '4',
		maxBaud:      9600,
		refused:      map[int]bool{},
		baud:         1200,
		hostBaud:     1200,
		mode:         Videotex,
		toHost:       queue.NewBlocking[byte](64),
		readTimeout:  20 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// ReadByte returns the next byte sent by the terminal.
func (t *Terminal) ReadByte() (byte, error) {
	if t.isClosed() {
		return 0, serial.ErrClosed
	}

	b, ok := t.toHost.Get(t.readTimeout)
	if !ok {
		if t.isClosed() {
			return 0, serial.ErrClosed
		}
		return 0, serial.ErrTimeout
	}

	return b, nil
}

// Write delivers host bytes to the terminal.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, serial.ErrClosed
	}
	if t.hostBaud != t.baud {
		// framing errors: the terminal sees noise
		return len(p), nil
	}

	t.pending = append(t.pending, p...)
	t.process()

	return len(p), nil
}

func (t *Terminal) Flush() error {
	if t.isClosed() {
		return serial.ErrClosed
	}

	return nil
}

// SetBaudRate changes the host side rate.
func (t *Terminal) SetBaudRate(baud int) error {
	if !serial.ValidBaudRate(baud) {
		return fmt.Errorf("%w: %d", serial.ErrInvalidBaudRate, baud)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return serial.ErrClosed
	}
	t.hostBaud = baud
	t.pending = t.pending[:0]
	t.rateHistory = append(t.rateHistory, baud)

	return nil
}

// BaudRate returns the host side rate.
func (t *Terminal) BaudRate() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.hostBaud
}

func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true

	return nil
}

func (t *Terminal) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.closed
}

// Type simulates key presses: b is sent to the host if the rates match.
func (t *Terminal) Type(b ...byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hostBaud == t.baud {
		t.toHost.Put(b...)
	}
}

// Display returns a copy of every byte the terminal displayed.
func (t *Terminal) Display() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]byte{}, t.display.Bytes()...)
}

// ResetDisplay forgets the displayed bytes.
func (t *Terminal) ResetDisplay() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.display.Reset()
}

// RateHistory returns the host rates set, in order.
func (t *Terminal) RateHistory() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]int(nil), t.rateHistory...)
}

// Baud returns the terminal rate.
func (t *Terminal) Baud() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.baud
}

// Mode returns the display mode.
func (t *Terminal) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mode
}

// Keyboard returns the keyboard switches.
func (t *Terminal) Keyboard() (extended, cursor, lowercase bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.extended, t.cursor, t.lowercase
}

// Echo reports whether local echo is on.
func (t *Terminal) Echo() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.echo
}

// Commands returns the number of protocol commands the terminal answered
// or acted on.
func (t *Terminal) Commands() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.commands
}

package minitel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/go-minitel/internal/pool"
	"github.com/arloliu/go-minitel/internal/queue"
	"github.com/arloliu/go-minitel/internal/task"
	"github.com/arloliu/go-minitel/logger"
	"github.com/arloliu/go-minitel/serial"
)

const (
	// pollTimeout bounds the transmitter's wait on the egress queue, which
	// is also how quickly it notices a shutdown request.
	pollTimeout = 50 * time.Millisecond

	// errorBackoff is the pause after a failed read before retrying.
	errorBackoff = 100 * time.Millisecond

	// maxWriteChunk caps the bytes written per transmitter iteration.
	maxWriteChunk = 64
)

// Minitel is a link to one Minitel terminal.
//
// Its methods are safe for concurrent use, although calls are serialized:
// a call holds the link until its reply is read. Receive and
// ReceiveSequence consume the same ingress queue as calls and should not
// run concurrently with them.
type Minitel struct {
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     *Config
	logger  logger.Logger
	channel serial.Channel

	ingress *queue.Blocking[byte]
	egress  *queue.Blocking[byte]

	taskMgr  *task.Manager
	shutdown atomic.Bool
	closed   atomic.Bool

	callMu sync.Mutex

	stateMu    sync.RWMutex
	mode       Mode
	speed      int
	capability Capability

	metrics *LinkMetrics
}

// New starts a link over an already opened channel. A nil cfg uses the
// defaults of NewConfig.
//
// The link assumes the terminal is in the configured initial mode at the
// channel's current rate, with unknown capabilities; call DetectSpeed and
// Identify to learn the actual state.
func New(ctx context.Context, ch serial.Channel, cfg *Config) (*Minitel, error) {
	if ch == nil {
		return nil, errors.New("minitel: channel is nil")
	}
	if cfg == nil {
		var err error
		if cfg, err = NewConfig(); err != nil {
			return nil, err
		}
	}

	m := &Minitel{
		cfg:        cfg,
		logger:     cfg.logger,
		channel:    ch,
		ingress:    queue.NewBlocking[byte](cfg.queueSize),
		egress:     queue.NewJoinable[byte](cfg.queueSize),
		taskMgr:    task.NewManager(ctx, cfg.logger),
		mode:       cfg.initialMode,
		speed:      ch.BaudRate(),
		capability: UnknownCapability,
		metrics:    newLinkMetrics(),
	}
	m.ctx, m.cancel = context.WithCancel(ctx)

	if err := m.taskMgr.Start("receiver", m.receiveLoop); err != nil {
		m.cancel()
		return nil, err
	}
	if err := m.taskMgr.Start("transmitter", m.transmitLoop); err != nil {
		m.shutdown.Store(true)
		m.taskMgr.Stop()
		m.taskMgr.Wait()
		m.cancel()
		return nil, err
	}

	m.logger.Debug("minitel link started", "mode", m.mode, "baud", m.speed)

	return m, nil
}

// Open opens the serial line described by serialCfg and starts a link on it.
func Open(ctx context.Context, serialCfg *serial.Config, cfg *Config) (*Minitel, error) {
	ch, err := serial.Open(serialCfg)
	if err != nil {
		return nil, err
	}

	m, err := New(ctx, ch, cfg)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	return m, nil
}

// Close stops the link. Bytes already queued for transmission are written
// first, within the close timeout. The channel is closed afterwards.
func (m *Minitel) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.logger.Debug("minitel: start to close link", "pending", m.egress.Len())
	m.shutdown.Store(true)

	var err error
	if !m.taskMgr.WaitTimeout(m.cfg.closeTimeout) {
		m.logger.Error("minitel: close link timeout",
			"timeout", m.cfg.closeTimeout,
			"pending", m.egress.Len())
		err = ErrCloseTimeout
	}
	m.cancel()

	if cerr := m.channel.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}

// IsClosed reports whether Close was called.
func (m *Minitel) IsClosed() bool {
	return m.closed.Load()
}

// GetLogger returns the link logger.
func (m *Minitel) GetLogger() logger.Logger { return m.logger }

// GetMetrics returns the link counters.
func (m *Minitel) GetMetrics() *LinkMetrics { return m.metrics }

// Mode returns the current display mode.
func (m *Minitel) Mode() Mode {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	return m.mode
}

// Speed returns the current line rate in bauds.
func (m *Minitel) Speed() int {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	return m.speed
}

// Capability returns what is known about the terminal.
func (m *Minitel) Capability() Capability {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	return m.capability
}

func (m *Minitel) setMode(mode Mode) {
	m.stateMu.Lock()
	prev := m.mode
	m.mode = mode
	m.stateMu.Unlock()

	if prev != mode {
		m.logger.Info("display mode changed", "from", prev, "to", mode)
	}
}

// receiveLoop is one iteration of the receiver goroutine.
func (m *Minitel) receiveLoop() bool {
	if m.shutdown.Load() {
		return false
	}

	b, err := m.channel.ReadByte()
	switch {
	case err == nil:
		m.metrics.incBytesReceived()
		m.ingress.Put(b)
		return true
	case errors.Is(err, serial.ErrTimeout):
		return true
	case errors.Is(err, serial.ErrClosed):
		return false
	default:
		m.metrics.incTransportErrCount()
		m.logger.Warn("minitel: read failure", "error", err)
		_ = pool.Sleep(m.taskMgr.Context(), errorBackoff)
		return true
	}
}

// transmitLoop is one iteration of the transmitter goroutine. It keeps
// running after a shutdown request until the egress queue is empty.
func (m *Minitel) transmitLoop() bool {
	first, ok := m.egress.Get(m.cfg.pollTimeout)
	if !ok {
		return !m.shutdown.Load()
	}

	chunk := make([]byte, 1, maxWriteChunk)
	chunk[0] = first
	for len(chunk) < maxWriteChunk {
		b, ok := m.egress.TryGet()
		if !ok {
			break
		}
		chunk = append(chunk, b)
	}

	m.write(chunk)

	for range chunk {
		m.egress.Done()
	}

	return true
}

func (m *Minitel) write(chunk []byte) {
	n, err := m.channel.Write(chunk)
	m.metrics.addBytesSent(n)
	if err != nil {
		m.metrics.incTransportErrCount()
		m.logger.Warn("minitel: write failure", "error", err, "written", n, "size", len(chunk))
		return
	}

	if err := m.channel.Flush(); err != nil {
		m.metrics.incTransportErrCount()
		m.logger.Warn("minitel: flush failure", "error", err)
	}
}

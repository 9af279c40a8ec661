package minitel

import (
	"context"
	"time"

	"github.com/arloliu/go-minitel/sequence"
	"github.com/arloliu/go-minitel/videotex"
)

// Send queues values for transmission and returns without waiting.
// Text is transliterated with the charset of the current mode.
func (m *Minitel) Send(values ...sequence.Value) error {
	if m.closed.Load() {
		return ErrClosed
	}

	data := sequence.Canonicalize(sequence.List(values), m.Mode().Charset())
	m.egress.Put(data...)

	return nil
}

// Flush waits until every queued byte has been written to the line.
func (m *Minitel) Flush(ctx context.Context) error {
	if m.closed.Load() {
		return ErrClosed
	}

	waitCtx, cancel := mergeDone(ctx, m.ctx)
	defer cancel()

	if err := m.egress.Join(waitCtx); err != nil {
		if m.closed.Load() {
			return ErrClosed
		}
		return err
	}

	return nil
}

// Receive returns one byte received from the terminal, waiting at most
// timeout. ok is false when nothing arrived.
func (m *Minitel) Receive(timeout time.Duration) (b byte, ok bool) {
	return m.ingress.Get(timeout)
}

// ReceiveSequence returns the next logical input of the terminal: a
// character, or a complete function key or escape sequence.
//
// It waits for the first byte until ctx is done. SS2 and SEP are followed
// by one more byte. ESC is followed by one more byte if it comes within the
// escape timeout; ESC [ (CSI) takes one more byte, and a second one when
// that byte is 0x32 or 0x34. When a continuation does not arrive within
// its timeout, the partial sequence is returned.
func (m *Minitel) ReceiveSequence(ctx context.Context) (*sequence.Sequence, error) {
	waitCtx, cancel := mergeDone(ctx, m.ctx)
	defer cancel()

	first, ok := m.ingress.GetContext(waitCtx)
	if !ok {
		if m.closed.Load() {
			return nil, ErrClosed
		}
		return nil, ctx.Err()
	}

	seq := sequence.NewWithCharset(m.Mode().Charset()).AppendByte(first)

	switch first {
	case videotex.SS2, videotex.SEP:
		if b, ok := m.ingress.Get(m.cfg.replyTimeout); ok {
			seq.AppendByte(b)
		}

	case videotex.ESC:
		b, ok := m.ingress.Get(m.cfg.escapeTimeout)
		if !ok {
			break
		}
		seq.AppendByte(b)
		if !seq.Equal(sequence.Bytes(videotex.CSI)) {
			break
		}

		b, ok = m.ingress.Get(m.cfg.replyTimeout)
		if !ok {
			break
		}
		seq.AppendByte(b)
		if b == 0x32 || b == 0x34 {
			if b, ok := m.ingress.Get(m.cfg.replyTimeout); ok {
				seq.AppendByte(b)
			}
		}
	}

	m.logger.Debug("minitel: sequence received", "sequence", seq.String())

	return seq, nil
}

// Call sends cmd and collects up to replyLen reply bytes.
//
// Bytes received before the call are discarded. Each reply byte is awaited
// at most the reply timeout; on timeout the reply collected so far is
// returned, possibly empty. Call never fails: a closed link yields an
// empty reply.
func (m *Minitel) Call(cmd sequence.Value, replyLen int) *sequence.Sequence {
	m.callMu.Lock()
	defer m.callMu.Unlock()

	return m.call(cmd, replyLen)
}

// call is Call without locking, for negotiations issuing several calls.
func (m *Minitel) call(cmd sequence.Value, replyLen int) *sequence.Sequence {
	m.metrics.incCallCount()

	reply := sequence.NewWithCharset(m.Mode().Charset())

	m.ingress.Drain()
	if err := m.Send(cmd); err != nil {
		m.metrics.incCallTimeoutCount()
		return reply
	}

	if err := m.egress.Join(m.ctx); err != nil {
		m.metrics.incCallTimeoutCount()
		return reply
	}

	for reply.Len() < replyLen {
		b, ok := m.ingress.Get(m.cfg.replyTimeout)
		if !ok {
			break
		}
		reply.AppendByte(b)
	}

	if reply.Len() < replyLen {
		m.metrics.incCallTimeoutCount()
	}

	m.logger.Debug("minitel: call",
		"command", sequence.New(cmd).String(),
		"expected", replyLen,
		"reply", reply.String())

	return reply
}

// mergeDone returns a context done when either a or b is done.
func mergeDone(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)

	return ctx, func() {
		stop()
		cancel()
	}
}

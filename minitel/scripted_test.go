package minitel

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/arloliu/go-minitel/logger"
	"github.com/arloliu/go-minitel/serial"
)

// scriptedChannel is a serial.Channel answering known commands with fixed
// replies. Unknown bytes get no answer.
type scriptedChannel struct {
	mu      sync.Mutex
	script  map[string][]byte
	written []byte
	input   chan byte
	done    chan struct{}
	once    sync.Once
}

var _ serial.Channel = (*scriptedChannel)(nil)

func newScriptedChannel() *scriptedChannel {
	return &scriptedChannel{
		script: make(map[string][]byte),
		input:  make(chan byte, 64),
		done:   make(chan struct{}),
	}
}

// answer makes the channel reply with reply once command was written.
func (c *scriptedChannel) answer(reply []byte, command ...[]byte) *scriptedChannel {
	c.script[string(bytes.Join(command, nil))] = reply
	return c
}

func (c *scriptedChannel) ReadByte() (byte, error) {
	select {
	case b := <-c.input:
		return b, nil
	case <-c.done:
		return 0, serial.ErrClosed
	case <-time.After(5 * time.Millisecond):
		return 0, serial.ErrTimeout
	}
}

func (c *scriptedChannel) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.written = append(c.written, p...)
	for command, reply := range c.script {
		if bytes.HasSuffix(c.written, []byte(command)) {
			c.written = c.written[:0]
			for _, b := range reply {
				c.input <- b
			}
			break
		}
	}

	return len(p), nil
}

func (c *scriptedChannel) Flush() error          { return nil }
func (c *scriptedChannel) SetBaudRate(int) error { return nil }
func (c *scriptedChannel) BaudRate() int         { return 1200 }

func (c *scriptedChannel) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func newScriptedLink(t *testing.T, ch *scriptedChannel, opts ...Option) (*Minitel, *logger.MockLogger) {
	t.Helper()

	l := logger.NewMockLogger().AllowAll()
	m := newTestLink(t, ch, append([]Option{WithLogger(l)}, opts...)...)

	return m, l
}

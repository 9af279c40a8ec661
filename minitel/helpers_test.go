package minitel

import (
	"context"
	"testing"
	"time"

	"github.com/arloliu/go-minitel/internal/simterm"
	"github.com/arloliu/go-minitel/logger"
	"github.com/arloliu/go-minitel/serial"
	"github.com/stretchr/testify/require"
)

// newTestLink starts a link with short timeouts on ch, usually a
// simulated terminal. The link is closed when the test ends.
func newTestLink(t *testing.T, ch serial.Channel, opts ...Option) *Minitel {
	t.Helper()

	defaults := []Option{
		WithReplyTimeout(50 * time.Millisecond),
		WithEscapeTimeout(20 * time.Millisecond),
		WithCloseTimeout(time.Second),
		WithLogger(logger.NewMockLogger().AllowAll()),
	}

	cfg, err := NewConfig(append(defaults, opts...)...)
	require.NoError(t, err)

	m, err := New(context.Background(), ch, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	return m
}

// displayed waits until every queued byte reached the terminal, then
// returns and forgets what the terminal displayed.
func displayed(t *testing.T, m *Minitel, term *simterm.Terminal) []byte {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Flush(ctx))

	out := term.Display()
	term.ResetDisplay()

	return out
}

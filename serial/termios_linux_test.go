//go:build linux

package serial

import (
	"io"
	"os"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openPTY allocates a pseudo terminal and returns its master side and the
// slave device path.
func openPTY(t *testing.T) (*os.File, string) {
	t.Helper()

	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pseudo terminals unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = slave.Close()
		_ = master.Close()
	})

	return master, slave.Name()
}

func TestTermios_ReadWrite(t *testing.T) {
	master, slave := openPTY(t)

	cfg, err := NewConfig(slave, WithDriver(DriverTermios), WithReadTimeout(MinReadTimeout))
	require.NoError(t, err)

	ch, err := Open(cfg)
	require.NoError(t, err)
	defer ch.Close()

	assert.Equal(t, 1200, ch.BaudRate())

	_, err = ch.ReadByte()
	require.ErrorIs(t, err, ErrTimeout)

	_, err = master.Write([]byte{0x13, 0x70})
	require.NoError(t, err)

	b, err := ch.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x13), b)
	b, err = ch.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x70), b)

	n, err := ch.Write([]byte{0x1b, 0x39, 0x7b})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	buf := make([]byte, 3)
	_, err = io.ReadFull(master, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1b, 0x39, 0x7b}, buf)
}

func TestTermios_SetBaudRate(t *testing.T) {
	_, slave := openPTY(t)

	cfg, err := NewConfig(slave, WithDriver(DriverTermios), WithBaudRate(300))
	require.NoError(t, err)

	ch, err := Open(cfg)
	require.NoError(t, err)

	require.NoError(t, ch.SetBaudRate(9600))
	assert.Equal(t, 9600, ch.BaudRate())
	require.ErrorIs(t, ch.SetBaudRate(19200), ErrInvalidBaudRate)

	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())
	_, err = ch.ReadByte()
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, ch.SetBaudRate(1200), ErrClosed)
}

func TestTermios_NotATerminal(t *testing.T) {
	cfg, err := NewConfig("/dev/null", WithDriver(DriverTermios))
	require.NoError(t, err)

	_, err = Open(cfg)
	require.Error(t, err)

	cfg, err = NewConfig("/dev/does-not-exist", WithDriver(DriverTermios))
	require.NoError(t, err)

	_, err = Open(cfg)
	require.Error(t, err)
}

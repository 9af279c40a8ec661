package minitel

import "errors"

var (
	// ErrClosed is returned by operations on a closed link.
	ErrClosed = errors.New("minitel: link closed")
	// ErrCloseTimeout is returned when the I/O goroutines did not stop in time.
	ErrCloseTimeout = errors.New("minitel: close timeout")

	// ErrInvalidMode is returned for an unknown display mode.
	ErrInvalidMode = errors.New("minitel: invalid mode")
	// ErrUnsupportedSpeed is returned for a line rate the terminal does not know.
	ErrUnsupportedSpeed = errors.New("minitel: unsupported speed")
	// ErrSpeedAboveCapability is returned when the identified terminal is
	// slower than the requested rate.
	ErrSpeedAboveCapability = errors.New("minitel: speed above terminal capability")
	// ErrInvalidArgument is returned for out of range screen command arguments.
	ErrInvalidArgument = errors.New("minitel: invalid argument")
	// ErrInvalidRedefinition is returned for a malformed character redefinition.
	ErrInvalidRedefinition = errors.New("minitel: invalid character redefinition")
)

//go:build !linux

package serial

const defaultDriver = DriverPortable

func openTermios(_ *Config) (Channel, error) {
	return nil, ErrUnsupportedDriver
}

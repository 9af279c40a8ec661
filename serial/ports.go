package serial

import (
	"path/filepath"
	"sort"
)

// portPatterns are the device nodes USB adapters and on-board UARTs
// usually show up as.
var portPatterns = []string{
	"/dev/serial/by-id/*",
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
	"/dev/ttyAMA*",
	"/dev/ttyS*",
	"/dev/cu.usbserial*",
	"/dev/tty.usbserial*",
}

// PortNames lists candidate serial devices, sorted and without duplicates.
func PortNames() []string {
	seen := make(map[string]struct{})
	names := []string{}

	for _, pattern := range portPatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			names = append(names, m)
		}
	}
	sort.Strings(names)

	return names
}

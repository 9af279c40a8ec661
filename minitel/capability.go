package minitel

import "fmt"

// Keyboard is the keyboard layout of a terminal.
type Keyboard string

const (
	KeyboardNone   Keyboard = ""
	KeyboardABCD   Keyboard = "ABCD"
	KeyboardAzerty Keyboard = "Azerty"
)

// Capability describes what an identified terminal can do.
type Capability struct {
	// Name is the commercial name of the terminal.
	Name string
	// Reversible reports whether the terminal can act as a server.
	Reversible bool
	// Keyboard is the keyboard layout.
	Keyboard Keyboard
	// MaxBaud is the fastest line rate supported.
	MaxBaud int
	// Manufacturer is the maker of the terminal.
	Manufacturer string
	// Columns80 reports whether the 80 column mixed mode is available.
	Columns80 bool
	// Redefinable reports whether characters can be redefined.
	Redefinable bool
	// Version is the software version byte, 0 when unknown.
	Version byte
}

func (c Capability) String() string {
	return fmt.Sprintf("%s (%s, keyboard %q, %d bauds, 80 columns %t, redefinable %t, version %q)",
		c.Name, c.Manufacturer, string(c.Keyboard), c.MaxBaud, c.Columns80, c.Redefinable, c.Version)
}

// Identified reports whether c came from a successful identification.
func (c Capability) Identified() bool {
	return c.Version != 0
}

// UnknownCapability is the baseline assumed before identification.
var UnknownCapability = Capability{
	Name:         "unknown Minitel",
	Keyboard:     KeyboardABCD,
	MaxBaud:      1200,
	Manufacturer: "unknown",
}

// manufacturers maps the manufacturer byte of the ENQROM reply.
var manufacturers = map[byte]string{
	'A': "Matra",
	'B': "RTIC",
	'C': "Telic-Alcatel",
	'D': "Thomson",
	'E': "CCS",
	'F': "Fiet",
	'G': "Fime",
	'H': "Unitel",
	'I': "Option",
	'J': "Bull",
	'K': "Télématique",
	'L': "Desmet",
}

// terminalTypes maps the type byte of the ENQROM reply.
var terminalTypes = map[byte]Capability{
	'b': {Name: "Minitel 1", Keyboard: KeyboardABCD, MaxBaud: 1200},
	'c': {Name: "Minitel 1", Keyboard: KeyboardAzerty, MaxBaud: 1200},
	'd': {Name: "Minitel 10", Keyboard: KeyboardAzerty, MaxBaud: 1200},
	'e': {Name: "Minitel 1 couleur", Keyboard: KeyboardAzerty, MaxBaud: 1200},
	'f': {Name: "Minitel 10", Reversible: true, Keyboard: KeyboardAzerty, MaxBaud: 1200},
	'g': {Name: "Emulator", Reversible: true, Keyboard: KeyboardAzerty, MaxBaud: 9600, Columns80: true, Redefinable: true},
	'j': {Name: "Printer", Keyboard: KeyboardNone, MaxBaud: 1200},
	'r': {Name: "Minitel 1", Reversible: true, Keyboard: KeyboardAzerty, MaxBaud: 1200},
	's': {Name: "Minitel 1 couleur", Reversible: true, Keyboard: KeyboardAzerty, MaxBaud: 1200},
	't': {Name: "Terminatel 252", Keyboard: KeyboardNone, MaxBaud: 1200},
	'u': {Name: "Minitel 1B", Reversible: true, Keyboard: KeyboardAzerty, MaxBaud: 4800, Columns80: true},
	'v': {Name: "Minitel 2", Reversible: true, Keyboard: KeyboardAzerty, MaxBaud: 9600, Columns80: true, Redefinable: true},
	'w': {Name: "Minitel 10B", Reversible: true, Keyboard: KeyboardAzerty, MaxBaud: 4800, Columns80: true},
	'y': {Name: "Minitel 5", Reversible: true, Keyboard: KeyboardAzerty, MaxBaud: 9600, Columns80: true, Redefinable: true},
	'z': {Name: "Minitel 12", Reversible: true, Keyboard: KeyboardAzerty, MaxBaud: 9600, Columns80: true, Redefinable: true},
}

// decodeIdentity builds a capability from the manufacturer, type and
// version bytes of an ENQROM reply.
func decodeIdentity(manufacturer, kind, version byte) Capability {
	c := UnknownCapability
	if t, ok := terminalTypes[kind]; ok {
		c = t
		c.Manufacturer = UnknownCapability.Manufacturer
	}
	if name, ok := manufacturers[manufacturer]; ok {
		c.Manufacturer = name
	}
	c.Version = version

	switch {
	case manufacturer == 'B' && kind == 'v':
		c.Manufacturer = "Philips"
	case manufacturer == 'C' && isTelicOrMatraVersion(version):
		c.Manufacturer = "Telic or Matra"
	}

	return c
}

func isTelicOrMatraVersion(v byte) bool {
	switch v {
	case '4', '5', ';', '<':
		return true
	default:
		return false
	}
}

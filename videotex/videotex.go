// Package videotex defines the byte vocabulary of the Minitel terminal:
// C0 control codes, the PRO1/PRO2/PRO3 protocol prefixes, the command and
// acknowledgement codes used for negotiation, and the eight display colours.
//
// Values follow the STUM1B command set.
package videotex

// C0 control codes.
const (
	NUL byte = 0x00
	SOH byte = 0x01
	EOT byte = 0x04
	BEL byte = 0x07
	BS  byte = 0x08
	TAB byte = 0x09
	LF  byte = 0x0a
	VT  byte = 0x0b
	FF  byte = 0x0c
	CR  byte = 0x0d
	SO  byte = 0x0e
	SI  byte = 0x0f
	CON byte = 0x11 // cursor on
	REP byte = 0x12 // repeat previous character
	SEP byte = 0x13 // separator, introduces keyboard function keys and acks
	COF byte = 0x14 // cursor off
	CAN byte = 0x18 // clear to end of line
	SS2 byte = 0x19 // single shift 2, introduces G2 characters
	SUB byte = 0x1a
	ESC byte = 0x1b
	RS  byte = 0x1e // cursor home
	US  byte = 0x1f // absolute position / character set definition
)

// Protocol prefixes. Each is ESC followed by one byte.
var (
	PRO1 = []byte{ESC, 0x39}
	PRO2 = []byte{ESC, 0x3a}
	PRO3 = []byte{ESC, 0x3b}
	CSI  = []byte{ESC, 0x5b}
)

// Reply lengths of PRO2 and PRO3 acknowledgements.
const (
	ReplyLenPRO2 = 4
	ReplyLenPRO3 = 5
)

// PRO1 requests.
const (
	ENQROM         byte = 0x7b // identification
	StatusTerminal byte = 0x70 // terminal status, used as a speed probe
	StatusFunction byte = 0x72 // operating status
)

// PRO2 sub-codes.
const (
	PROG       byte = 0x6b // program line speed
	Minuscules byte = 0x45 // lowercase keyboard
)

// Mode switching sub-codes, sent after PRO2.
var (
	Mixte1  = []byte{0x32, 0x7d} // videotex to mixed
	Mixte2  = []byte{0x32, 0x7e} // mixed to videotex
	Telinfo = []byte{0x31, 0x7d} // to teleinformatic
)

// Speed codes for PROG.
const (
	B300  byte = 0x52
	B1200 byte = 0x64
	B4800 byte = 0x76
	B9600 byte = 0x7f
)

// Switch verbs and module codes for PRO2/PRO3 commands.
const (
	Start byte = 0x69
	Stop  byte = 0x6a

	Eten         byte = 0x41 // extended keyboard
	C0           byte = 0x43 // cursor keys as C0 codes
	RcptScreen   byte = 0x58
	RcptKeyboard byte = 0x59
	EmitModem    byte = 0x52

	SwitchOn  byte = 0x61 // aiguillage on
	SwitchOff byte = 0x60 // aiguillage off
)

// Acknowledgements of mode switching.
var (
	AckVideotexFromTeleinfo = []byte{SEP, 0x5e}
	AckMixed                = []byte{SEP, 0x70}
	AckVideotex             = []byte{SEP, 0x71}
	AckTeleinfo             = []byte{ESC, 0x5b, 0x3f, 0x7a} // CSI ? z
	ToVideotexFromTeleinfo  = []byte{ESC, 0x5b, 0x3f, 0x7b} // CSI ? {
)

// Screen attribute escapes (second byte after ESC).
const (
	AttrForeground   byte = 0x40
	AttrBlink        byte = 0x48
	AttrSteady       byte = 0x49
	AttrSize         byte = 0x4c
	AttrBackground   byte = 0x50
	AttrUnderlineOff byte = 0x59
	AttrUnderlineOn  byte = 0x5a
	AttrInverseOff   byte = 0x5c
	AttrInverseOn    byte = 0x5d
)

// SupportedSpeeds lists the line rates a Minitel may run at, fastest first.
var SupportedSpeeds = []int{9600, 4800, 1200, 300}

// SpeedCode returns the PROG code of baud, and false when the rate is not
// one the terminal knows.
func SpeedCode(baud int) (byte, bool) {
	switch baud {
	case 300:
		return B300, true
	case 1200:
		return B1200, true
	case 4800:
		return B4800, true
	case 9600:
		return B9600, true
	default:
		return 0, false
	}
}

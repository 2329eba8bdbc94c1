package terminal

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Ctrl+letter keys occupy a contiguous block, see CtrlKey
const (
	KeyCtrlA Key = 0x40 + iota
	KeyCtrlB
	KeyCtrlC
)

const KeyCtrlZ = KeyCtrlA + 25

// CtrlKey returns the key for Ctrl held with a lowercase letter
func CtrlKey(letter byte) Key {
	return KeyCtrlA + Key(letter-'a')
}

// Modifier flags; the bit layout matches the xterm modifier parameter minus one
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

const modMask = ModShift | ModAlt | ModCtrl

// arrowKey maps the final byte shared by CSI and SS3 cursor sequences
func arrowKey(final byte) Key {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return KeyNone
}

// decodeCSI handles ESC [ A and the xterm form ESC [ 1 ; m A
// Anything else is reported as KeyNone and swallowed by the caller
func decodeCSI(params []byte, final byte) (Key, Modifier) {
	key := arrowKey(final)
	if key == KeyNone {
		return KeyNone, ModNone
	}

	switch {
	case len(params) == 0:
		return key, ModNone
	case len(params) == 3 && params[0] == '1' && params[1] == ';' && params[2] >= '2' && params[2] <= '8':
		return key, Modifier(params[2]-'1') & modMask
	}
	return KeyNone, ModNone
}

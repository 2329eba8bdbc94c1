package terminal

import "fmt"

// keyToName holds the names usable in the [keys] section of a keymap
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

var nameToKey = make(map[string]Key)

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		keyToName[CtrlKey(c)] = fmt.Sprintf("ctrl_%c", c)
	}
	for k, v := range keyToName {
		nameToKey[v] = k
	}
}

// KeyName returns the keymap name of k, or "" for KeyNone and KeyRune
func KeyName(k Key) string {
	return keyToName[k]
}

func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}

package input

import (
	_ "embed"
	"fmt"
	"log"
	"maps"
	"strings"

	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/terminal"
	"github.com/lixenwraith/vi-snake/toml"
)

//go:embed default_keymap.toml
var defaultKeymapTOML []byte

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// KeyMap binds printable runes and special keys to game actions
type KeyMap struct {
	Runes map[rune]game.Action
	Keys  map[terminal.Key]game.Action
}

// DefaultKeyMap returns the built-in vi and arrow bindings
func DefaultKeyMap() *KeyMap {
	km, err := LoadKeyMap(defaultKeymapTOML)
	if err != nil {
		panic(fmt.Sprintf("embedded keymap: %v", err))
	}
	return km
}

// LoadKeyMap parses a TOML keymap with optional [runes] and [keys] sections
// Entries bound to "none" are kept so Merge can delete them
func LoadKeyMap(data []byte) (*KeyMap, error) {
	raw, err := toml.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	km := &KeyMap{
		Runes: make(map[rune]game.Action),
		Keys:  make(map[terminal.Key]game.Action),
	}

	for name, sectionData := range raw {
		section, ok := sectionData.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("keymap: [%s] expected table, got %T", name, sectionData)
		}

		switch name {
		case "runes":
			for keyStr, val := range section {
				r, err := resolveRune(keyStr)
				if err != nil {
					return nil, fmt.Errorf("keymap: [runes] key %q: %w", keyStr, err)
				}
				a, err := resolveAction(val)
				if err != nil {
					return nil, fmt.Errorf("keymap: [runes] key %q: %w", keyStr, err)
				}
				km.Runes[r] = a
			}
		case "keys":
			for keyStr, val := range section {
				k, ok := terminal.KeyByName(strings.ToLower(keyStr))
				if !ok {
					return nil, fmt.Errorf("keymap: [keys] unknown key name %q", keyStr)
				}
				a, err := resolveAction(val)
				if err != nil {
					return nil, fmt.Errorf("keymap: [keys] key %q: %w", keyStr, err)
				}
				km.Keys[k] = a
			}
		default:
			return nil, fmt.Errorf("keymap: unknown section [%s]", name)
		}
	}

	return km, nil
}

// resolveRune accepts a single character or a named alias
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, fmt.Errorf("expected single character or alias, got %q", s)
}

func resolveAction(val any) (game.Action, error) {
	name, ok := val.(string)
	if !ok {
		return game.ActionNone, fmt.Errorf("value must be string, got %T", val)
	}
	a, ok := game.ActionByName(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return game.ActionNone, fmt.Errorf("unknown action %q", name)
	}
	return a, nil
}

// Merge returns a copy of km with override applied; "none" entries unbind the key
func (km *KeyMap) Merge(override *KeyMap) *KeyMap {
	result := &KeyMap{
		Runes: maps.Clone(km.Runes),
		Keys:  maps.Clone(km.Keys),
	}
	if result.Runes == nil {
		result.Runes = make(map[rune]game.Action)
	}
	if result.Keys == nil {
		result.Keys = make(map[terminal.Key]game.Action)
	}

	for r, a := range override.Runes {
		if a == game.ActionNone {
			delete(result.Runes, r)
		} else {
			result.Runes[r] = a
		}
	}
	for k, a := range override.Keys {
		if a == game.ActionNone {
			delete(result.Keys, k)
		} else {
			result.Keys[k] = a
		}
	}

	log.Printf("keymap: %d rune and %d key bindings", len(result.Runes), len(result.Keys))
	return result
}

// Resolve maps an event to an action; unbound or non-key events yield ActionNone
// Runes typed with Alt or Ctrl held are not matched
func (km *KeyMap) Resolve(ev terminal.Event) game.Action {
	if ev.Type != terminal.EventKey {
		return game.ActionNone
	}
	if ev.Key == terminal.KeyRune {
		if ev.Modifiers&(terminal.ModAlt|terminal.ModCtrl) != 0 {
			return game.ActionNone
		}
		return km.Runes[ev.Rune]
	}
	return km.Keys[ev.Key]
}

// Package input turns terminal key events into game actions.
// Bindings come from an embedded TOML keymap, optionally merged with a user file.
package input

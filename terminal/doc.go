// Package terminal provides raw-mode keyboard input and cursor-positioned
// output for full-screen terminal games.
//
// Features:
//   - Raw mode acquisition with guaranteed restoration (Init/Fini)
//   - Background stdin reader parsing escape sequences into Events
//   - Buffered cursor-positioned cell writes, one write syscall per Flush
//   - Alternative tcell-backed implementation of the same interface
//
// The ANSI implementation bypasses terminfo, emitting direct xterm-compatible
// sequences. Coordinates on the Terminal interface are 1-based.
package terminal

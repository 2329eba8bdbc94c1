package game

import "errors"

// ErrInvariant marks internal consistency failures; these are programming bugs
var ErrInvariant = errors.New("invariant violation")

package game

// Action is the semantic meaning of a key press
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:  "none",
	ActionLeft:  "left",
	ActionRight: "right",
	ActionUp:    "up",
	ActionDown:  "down",
	ActionQuit:  "quit",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ActionByName resolves a configuration name to an Action
func ActionByName(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// Direction returns the heading a turn action requests
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionLeft:
		return Left, true
	case ActionRight:
		return Right, true
	case ActionUp:
		return Up, true
	case ActionDown:
		return Down, true
	}
	return Right, false
}

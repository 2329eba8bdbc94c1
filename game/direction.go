package game

// Direction is one of the four cardinal headings
type Direction uint8

const (
	Right Direction = iota
	Left
	Up
	Down
)

// IsVertical reports whether d is Up or Down
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// Reverse returns the opposite heading
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the column and row offset of one step
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// Opposite reports whether a and b form an Up/Down or Left/Right pair
func Opposite(a, b Direction) bool {
	return a.Reverse() == b
}

// Package scene turns replay frames into animated scene commands.
//
// A World owns the board tiles, one Snake movement controller per competitor
// and the food collection. All work happens on the caller's goroutine: the
// driving loop advances the shared anim.Scheduler once per tick and the scene
// reacts through signal continuations.
package scene

import "github.com/vovakirdan/bs-replay/internal/core"

// Direction is a cardinal step between two board cells.
type Direction int

const (
	DirNone Direction = iota
	DirRight
	DirLeft
	DirDown
	DirUp
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	default:
		return "none"
	}
}

// Delta returns the unit cell offset of the direction.
func (d Direction) Delta() core.Point {
	switch d {
	case DirRight:
		return core.Point{X: 1}
	case DirLeft:
		return core.Point{X: -1}
	case DirDown:
		return core.Point{Y: 1}
	case DirUp:
		return core.Point{Y: -1}
	default:
		return core.Point{}
	}
}

// DirectionBetween infers the direction of travel from one head cell to the next.
// Horizontal movement wins over vertical; identical cells yield DirNone.
func DirectionBetween(from, to core.Point) Direction {
	switch {
	case to.X > from.X:
		return DirRight
	case to.X < from.X:
		return DirLeft
	case to.Y > from.Y:
		return DirDown
	case to.Y < from.Y:
		return DirUp
	default:
		return DirNone
	}
}

// Package replay reads recorded multi-snake games.
//
// A replay file is line oriented: the first line is a JSON header describing
// the board and the competing snakes, every following line is a JSON frame
// holding each snake's body and the food on the board.
package replay

import "github.com/vovakirdan/bs-replay/internal/core"

// Header is the first record of a replay.
type Header struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Snakes []SnakeInfo `json:"snakes"`
}

// SnakeInfo describes a competitor in the header.
type SnakeInfo struct {
	Color string `json:"color"`
}

// Frame is one instantaneous game state.
type Frame struct {
	Snakes []SnakeFrame  `json:"snakes"`
	Food   []core.Point `json:"food"`
}

// SnakeFrame is one snake's body within a frame, head first.
type SnakeFrame struct {
	Body []core.Point `json:"body"`
}

// Head returns the first body cell and whether the body is non-empty.
func (s SnakeFrame) Head() (core.Point, bool) {
	if len(s.Body) == 0 {
		return core.Point{}, false
	}
	return s.Body[0], true
}

// Board is the immutable playing field of one replay session.
type Board struct {
	Width  int
	Height int
}

// Snake is a competitor as it appears when the replay starts.
type Snake struct {
	Color core.Color
	Body  []core.Point
}

// Game is a fully loaded replay.
type Game struct {
	Board   Board
	Snakes  []Snake
	Frames  []Frame
	Dropped int // Frame lines discarded as malformed
}

package views

import (
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/registry"
	"github.com/vovakirdan/bs-replay/internal/render"
)

func init() {
	registry.Register("tilt", func() registry.View { return &Tilt{} })
}

// tiltFactor is how many screen rows one unit of height shifts a prop.
const tiltFactor = 0.5

// Tilt views the board from an angle: anything above the board is drawn
// higher on screen and anything below it lower, so the tile wave and the
// snakes dropping in are visible.
type Tilt struct{}

// ID implements registry.View.
func (v *Tilt) ID() string { return "tilt" }

// Title implements registry.View.
func (v *Tilt) Title() string { return "Tilted" }

// Draw implements registry.View.
func (v *Tilt) Draw(dst *core.Screen, scene registry.Scene) {
	if empty(dst, scene) {
		return
	}
	frame := board(dst, scene)
	rest := scene.Geometry.TileRestY()

	draw(dst, scene, func(pos core.Vec3, kind render.Kind) (int, int) {
		lift := pos.Y
		if kind == render.KindTile {
			lift -= rest
		}
		return frame.X + 1 + round(pos.X*cellWidth), frame.Y + 1 + round(pos.Z-lift*tiltFactor)
	})
}

package views

import (
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/registry"
	"github.com/vovakirdan/bs-replay/internal/render"
)

func init() {
	registry.Register("top", func() registry.View { return &Top{} })
}

// Top looks straight down at the board. Height only shows as dimming.
type Top struct{}

// ID implements registry.View.
func (v *Top) ID() string { return "top" }

// Title implements registry.View.
func (v *Top) Title() string { return "Top-down" }

// Draw implements registry.View.
func (v *Top) Draw(dst *core.Screen, scene registry.Scene) {
	if empty(dst, scene) {
		return
	}
	frame := board(dst, scene)
	dst.DrawBox(frame, core.ColorGray)

	draw(dst, scene, func(pos core.Vec3, _ render.Kind) (int, int) {
		return frame.X + 1 + round(pos.X*cellWidth), frame.Y + 1 + round(pos.Z)
	})
}

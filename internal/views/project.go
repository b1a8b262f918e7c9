// Package views holds the terminal projections of the replay scene.
// Each view registers itself with the registry in init().
package views

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/registry"
	"github.com/vovakirdan/bs-replay/internal/render"
)

// cellWidth is the number of terminal columns per board cell.
// Terminal glyphs are roughly twice as tall as wide.
const cellWidth = 2

// surfacing is the eased rise below which a tile is drawn as a speck.
const surfacing = 0.5

// projection maps a scene position to a screen position.
type projection func(pos core.Vec3, kind render.Kind) (x, y int)

// board returns the on-screen frame of the board, centered on the screen.
func board(dst *core.Screen, scene registry.Scene) core.Rect {
	w := scene.Board.Width*cellWidth + 2
	h := scene.Board.Height + 2
	return core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
}

// draw renders tiles, then food, then segments, so snakes sit on top.
func draw(dst *core.Screen, scene registry.Scene, project projection) {
	if scene.Graph == nil {
		return
	}

	hidden := scene.Geometry.TileHiddenY()
	rest := scene.Geometry.TileRestY()
	for _, p := range scene.Graph.Props(render.KindTile) {
		raised := 1.0
		if rest != hidden {
			raised = (p.Pos.Y - hidden) / (rest - hidden)
		}
		if raised <= 0 {
			continue
		}
		r := tileRune(p.Spec.Color, raised)
		x, y := project(p.Pos, render.KindTile)
		put(dst, x, y, core.Cell{Rune: r, Color: p.Spec.Color, Dim: raised < 1})
	}

	for _, p := range scene.Graph.Props(render.KindFood) {
		if p.Opacity <= 0 {
			continue
		}
		x, y := project(p.Pos, render.KindFood)
		dim := p.Opacity < 0.5
		dst.SetCell(x, y, core.Cell{Rune: '(', Color: p.Spec.Color, Dim: dim})
		dst.SetCell(x+1, y, core.Cell{Rune: ')', Color: p.Spec.Color, Dim: dim})
	}

	for _, p := range scene.Graph.Props(render.KindSegment) {
		if p.Opacity <= 0 {
			continue
		}
		dim := p.Opacity < 0.5 || p.Pos.Y > scene.Geometry.SnakeFloatHeight/2
		x, y := project(p.Pos, render.KindSegment)
		put(dst, x, y, core.Cell{Rune: '█', Color: p.Spec.Color, Dim: dim})
	}
}

// tileRune picks the glyph for a tile that has risen the given fraction of
// the way to rest. The rise is eased so tiles look solid well before they land.
func tileRune(color core.Color, raised float64) rune {
	if raised < 1 && ease.OutQuad(float32(raised), 0, 1, 1) < surfacing {
		return '·'
	}
	if color == core.ColorTileLight {
		return '░'
	}
	return '▒'
}

// empty reports whether there is no board to draw yet, and says so on screen.
func empty(dst *core.Screen, scene registry.Scene) bool {
	if scene.Graph != nil && scene.Board.Width > 0 && scene.Board.Height > 0 {
		return false
	}
	dst.DrawTextCentered(dst.Height()/2, "waiting for board")
	return true
}

// put fills one board cell.
func put(dst *core.Screen, x, y int, c core.Cell) {
	for i := 0; i < cellWidth; i++ {
		dst.SetCell(x+i, y, c)
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

package scene

import (
	"time"

	"github.com/vovakirdan/bs-replay/internal/anim"
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/render"
	"github.com/vovakirdan/bs-replay/internal/replay"
)

// TileColor returns the checkerboard color of a board cell.
func TileColor(col, row int) core.Color {
	if ((col+1)%2 == 0) != ((row+1)%2 == 0) {
		return core.ColorTileDark
	}
	return core.ColorTileLight
}

// buildTiles creates one tile per board cell below the board, row by row.
func (w *World) buildTiles(board replay.Board) []*prop {
	tiles := make([]*prop, 0, board.Width*board.Height)
	hidden := w.cfg.Geometry.TileHiddenY()
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			spec := render.Spec{Kind: render.KindTile, Color: TileColor(col, row), Owner: -1}
			pos := core.CellPosition(core.Point{X: col, Y: row}, hidden)
			tiles = append(tiles, newProp(w.renderer, spec, pos, 1))
		}
	}
	return tiles
}

// animateTiles moves every tile to height y. Tiles farther from the board
// origin start later, which produces the rolling wave on enter and exit.
func (w *World) animateTiles(y float64) *anim.Signal {
	if len(w.tiles) == 0 {
		return anim.Resolved()
	}

	size := float64(core.Max(w.board.Width, w.board.Height))
	stagger := w.cfg.Timing.TileStagger()
	duration := w.cfg.Timing.TileInOut()
	origin := core.Vec3{}

	signals := make([]*anim.Signal, 0, len(w.tiles))
	for _, t := range w.tiles {
		delay := time.Duration(t.pos.DistanceTo(origin) / size * float64(stagger))
		signals = append(signals, w.sched.Create(t.pos.Y, y, duration, delay).Tick(t.setY).Signal())
	}
	return anim.All(signals...)
}

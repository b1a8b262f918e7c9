package scene

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/render"
	"github.com/vovakirdan/bs-replay/internal/replay"
)

const (
	e2eHeader = `{"width":3,"height":3,"snakes":[{"color":"red"}]}`
	e2eFrame0 = `{"snakes":[{"body":[{"x":1,"y":1},{"x":1,"y":2}]}],"food":[]}`
	e2eFrame1 = `{"snakes":[{"body":[{"x":2,"y":1},{"x":1,"y":1}]}],"food":[{"x":0,"y":0}]}`
)

func loadGame(t *testing.T) *replay.Game {
	t.Helper()
	game, err := replay.Parse([]string{e2eHeader, e2eFrame0, e2eFrame1})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return game
}

func TestTileColorCheckerboard(t *testing.T) {
	tests := []struct {
		col, row int
		expected core.Color
	}{
		{0, 0, core.ColorTileLight},
		{1, 0, core.ColorTileDark},
		{0, 1, core.ColorTileDark},
		{1, 1, core.ColorTileLight},
		{2, 3, core.ColorTileDark},
	}
	for _, tc := range tests {
		if got := TileColor(tc.col, tc.row); got != tc.expected {
			t.Errorf("TileColor(%d, %d) = %q, expected %q", tc.col, tc.row, got, tc.expected)
		}
	}
}

func TestWorldSetup(t *testing.T) {
	h := newHarness()
	w := NewWorld(h.graph, h.sched, h.cfg, nil)
	game := loadGame(t)

	ready := w.Reset(game.Board, game.Snakes)

	if w.Ready() || ready.Done() {
		t.Fatal("world should not be ready before animating in")
	}
	tiles := h.graph.Props(render.KindTile)
	if len(tiles) != 9 {
		t.Fatalf("expected 9 tiles, got %d", len(tiles))
	}
	for _, tile := range tiles {
		if tile.Pos.Y != h.cfg.Geometry.TileHiddenY() {
			t.Errorf("tile %+v should start below the board", tile.Pos)
		}
	}

	// Tiles nearer the origin rise first: (0,0) starts at ~833ms, (2,2) at ~957ms
	h.run(900 * time.Millisecond)
	tiles = h.graph.Props(render.KindTile)
	if tiles[0].Pos.Y <= tiles[8].Pos.Y {
		t.Errorf("origin tile (%v) should lead the far tile (%v)", tiles[0].Pos.Y, tiles[8].Pos.Y)
	}
	if w.Snakes()[0].Opacity() != 0 {
		t.Error("snakes should only animate in after the tiles")
	}

	if !h.runUntil(w.Ready, 3*time.Second) {
		t.Fatal("world never became ready")
	}
	for _, tile := range h.graph.Props(render.KindTile) {
		if tile.Pos.Y != h.cfg.Geometry.TileRestY() {
			t.Errorf("tile %+v should rest on the board", tile.Pos)
		}
	}
	s := w.Snakes()[0]
	if s.State() != StateIdle || s.Opacity() != 1 {
		t.Errorf("snake state=%v opacity=%v, expected idle and visible", s.State(), s.Opacity())
	}
	if w.Resets() != 1 {
		t.Errorf("Resets() = %d, expected 1", w.Resets())
	}
}

func TestWorldNoMovementBeforeReady(t *testing.T) {
	h := newHarness()
	w := NewWorld(h.graph, h.sched, h.cfg, nil)
	game := loadGame(t)

	w.Reset(game.Board, game.Snakes)
	moved := w.NextFrame(game.Frames[1])

	h.run(500 * time.Millisecond)
	if moved.Done() {
		t.Fatal("snake moved before the scene was ready")
	}
	if !reflect.DeepEqual(w.Snakes()[0].Body(), pts(1, 1, 1, 2)) {
		t.Errorf("Body() = %v, expected the initial body", w.Snakes()[0].Body())
	}

	if !h.runUntil(moved.Done, 3*time.Second) {
		t.Fatal("queued frame never played")
	}
	if !w.Ready() {
		t.Error("frame resolved before the world was ready")
	}
}

func TestWorldEndToEnd(t *testing.T) {
	h := newHarness()
	w := NewWorld(h.graph, h.sched, h.cfg, nil)
	game := loadGame(t)

	h.runUntil(w.Reset(game.Board, game.Snakes).Done, 3*time.Second)

	if sig := w.NextFrame(game.Frames[0]); !sig.Done() {
		t.Error("first frame repeats the initial body and should be a no-op")
	}

	prev, _ := game.Frames[0].Snakes[0].Head()
	next, _ := game.Frames[1].Snakes[0].Head()
	if dir := DirectionBetween(prev, next); dir != DirRight {
		t.Errorf("direction = %v, expected right", dir)
	}

	created := h.graph.Stats().Created
	moved := w.NextFrame(game.Frames[1])

	food := h.graph.Props(render.KindFood)
	if len(food) != 1 || food[0].Pos.X != 0 || food[0].Pos.Z != 0 {
		t.Fatalf("expected exactly one food at (0,0), got %+v", food)
	}
	// One transient head segment and one food item
	if got := h.graph.Stats().Created - created; got != 2 {
		t.Errorf("frame created %d props, expected 2", got)
	}

	h.run(200 * time.Millisecond)
	if !moved.Done() {
		t.Fatal("move did not finish in one step duration")
	}
	if !reflect.DeepEqual(w.Snakes()[0].Body(), pts(2, 1, 1, 1)) {
		t.Errorf("Body() = %v, expected [(2,1) (1,1)]", w.Snakes()[0].Body())
	}
	if segs := h.graph.Props(render.KindSegment); len(segs) != 2 {
		t.Errorf("expected the tail to advance, got %d segments", len(segs))
	}
	if !reflect.DeepEqual(w.Food(), pts(0, 0)) {
		t.Errorf("Food() = %v", w.Food())
	}
}

func TestWorldFoodReconciliation(t *testing.T) {
	h := newHarness()
	w := NewWorld(h.graph, h.sched, h.cfg, nil)
	game := loadGame(t)
	h.runUntil(w.Reset(game.Board, game.Snakes).Done, 3*time.Second)

	w.NextFrame(replay.Frame{Food: pts(1, 1, 2, 2)})
	h.run(100 * time.Millisecond)
	w.NextFrame(replay.Frame{Food: pts(2, 2, 3, 3)})

	if !reflect.DeepEqual(w.Food(), pts(2, 2, 3, 3)) {
		t.Errorf("Food() = %v, expected exactly the new snapshot", w.Food())
	}

	// The removed item fades out before it leaves the renderer
	if got := len(h.graph.Props(render.KindFood)); got != 3 {
		t.Errorf("expected 3 food props while (1,1) fades, got %d", got)
	}
	h.run(100 * time.Millisecond)
	food := h.graph.Props(render.KindFood)
	if len(food) != 2 {
		t.Fatalf("expected 2 food props, got %d", len(food))
	}
	for _, f := range food {
		if f.Opacity != 1 {
			t.Errorf("food %+v should be fully visible", f)
		}
	}
}

func TestWorldTeardownPrecedesSetup(t *testing.T) {
	h := newHarness()
	w := NewWorld(h.graph, h.sched, h.cfg, nil)
	game := loadGame(t)
	h.runUntil(w.Reset(game.Board, game.Snakes).Done, 3*time.Second)
	w.NextFrame(game.Frames[1])

	cleared := h.graph.Stats().Cleared
	second := w.Reset(replay.Board{Width: 4, Height: 2}, game.Snakes)
	if w.Ready() {
		t.Error("world should not be ready during a reset")
	}

	h.run(300 * time.Millisecond)
	if h.graph.Stats().Cleared != cleared {
		t.Fatal("setup ran before teardown finished")
	}
	if w.Snakes()[0].State() != StateTornDown {
		t.Error("old snakes should stop accepting moves during teardown")
	}

	if !h.runUntil(second.Done, 5*time.Second) {
		t.Fatal("second reset never finished")
	}
	if h.graph.Stats().Cleared != cleared+1 {
		t.Errorf("Cleared = %d, expected %d", h.graph.Stats().Cleared, cleared+1)
	}
	if w.Tiles() != 8 || len(h.graph.Props(render.KindTile)) != 8 {
		t.Errorf("expected 8 tiles on the new board, got %d", w.Tiles())
	}
	if len(h.graph.Props(render.KindFood)) != 0 {
		t.Error("food from the old scene should be gone")
	}
	if w.Resets() != 2 || !w.Ready() {
		t.Errorf("Resets()=%d Ready()=%v", w.Resets(), w.Ready())
	}
}

func TestWorldFramesDuringTeardownAreKept(t *testing.T) {
	h := newHarness()
	w := NewWorld(h.graph, h.sched, h.cfg, nil)
	game := loadGame(t)
	h.runUntil(w.Reset(game.Board, game.Snakes).Done, 3*time.Second)

	w.Reset(game.Board, game.Snakes)
	moved := w.NextFrame(game.Frames[1])
	if moved.Done() {
		t.Fatal("frame issued during teardown resolved early")
	}

	if !h.runUntil(moved.Done, 5*time.Second) {
		t.Fatal("backlogged frame never played")
	}
	if moved.Cancelled() {
		t.Error("backlogged frame should play on the new scene")
	}
	if !reflect.DeepEqual(w.Snakes()[0].Body(), pts(2, 1, 1, 1)) {
		t.Errorf("Body() = %v", w.Snakes()[0].Body())
	}
}

func TestWorldBackloggedFoodWaitsForTiles(t *testing.T) {
	h := newHarness()
	w := NewWorld(h.graph, h.sched, h.cfg, nil)
	game := loadGame(t)
	h.runUntil(w.Reset(game.Board, game.Snakes).Done, 3*time.Second)

	w.Reset(game.Board, game.Snakes)
	w.NextFrame(game.Frames[1])

	hasFood := func() bool { return len(h.graph.Props(render.KindFood)) > 0 }
	if !h.runUntil(hasFood, 5*time.Second) {
		t.Fatal("backlogged food never appeared")
	}
	for _, tile := range h.graph.Props(render.KindTile) {
		if tile.Pos.Y != h.cfg.Geometry.TileRestY() {
			t.Fatalf("food appeared while tile %+v was still rising", tile.Pos)
		}
	}
}

func TestWorldSupersededResetNotCounted(t *testing.T) {
	h := newHarness()
	w := NewWorld(h.graph, h.sched, h.cfg, nil)
	game := loadGame(t)

	// The first reset is still animating in when the second arrives
	w.Reset(game.Board, game.Snakes)
	second := w.Reset(replay.Board{Width: 4, Height: 2}, game.Snakes)

	if !h.runUntil(second.Done, 8*time.Second) {
		t.Fatal("second reset never finished")
	}
	if w.Resets() != 1 {
		t.Errorf("Resets() = %d, expected only the surviving reset to count", w.Resets())
	}
	if !w.Ready() || w.Tiles() != 8 {
		t.Errorf("Ready()=%v Tiles()=%d, expected the 4x2 board", w.Ready(), w.Tiles())
	}
}

func TestWorldFoodRemovedWhileFadingIn(t *testing.T) {
	h := newHarness()
	w := NewWorld(h.graph, h.sched, h.cfg, nil)
	game := loadGame(t)
	h.runUntil(w.Reset(game.Board, game.Snakes).Done, 3*time.Second)

	w.NextFrame(replay.Frame{Food: pts(1, 1)})
	h.run(50 * time.Millisecond)
	w.NextFrame(replay.Frame{})

	prev := h.graph.Props(render.KindFood)[0].Opacity
	for i := 0; i < 20; i++ {
		h.run(tick)
		food := h.graph.Props(render.KindFood)
		if len(food) == 0 {
			return
		}
		if food[0].Opacity > prev {
			t.Fatalf("opacity rose from %v to %v after removal", prev, food[0].Opacity)
		}
		prev = food[0].Opacity
	}
	t.Error("removed food never left the scene")
}

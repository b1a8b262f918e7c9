package scene

import (
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/render"
)

// spawnFood creates a food item on the board and fades it in.
func (w *World) spawnFood(p core.Point) *prop {
	spec := render.Spec{Kind: render.KindFood, Color: core.ColorRed, Owner: -1}
	f := newProp(w.renderer, spec, core.CellPosition(p, 0), 0)
	f.fadeTo(w.sched, 1, w.cfg.Timing.FoodInOut())
	return f
}

// removeFood fades a food item out and removes it once invisible.
// A fade-in still in flight is stopped so the two never fight over opacity.
func (w *World) removeFood(_ core.Point, f *prop) {
	f.fadeTo(w.sched, 0, w.cfg.Timing.FoodInOut()).Done(f.remove)
}

// reconcileFood brings the food collection in line with a frame's food list.
func (w *World) reconcileFood(food []core.Point) {
	added, removed := w.foods.Reconcile(food, w.spawnFood, w.removeFood)
	if len(added) > 0 || len(removed) > 0 {
		w.logger.Debug("food reconciled", "added", len(added), "removed", len(removed), "total", w.foods.Len())
	}
}

package render

import (
	"sort"

	"github.com/vovakirdan/bs-replay/internal/core"
)

// Prop is one visual held by a Graph.
type Prop struct {
	ID      int
	Spec    Spec
	Pos     core.Vec3
	Opacity float64
	removed bool
}

// Stats counts the commands a Graph has received.
type Stats struct {
	Created int
	Moved   int
	Faded   int
	Removed int
	Cleared int
}

// Graph is an in-memory Renderer.
// It keeps the current state of every live visual so that a view can draw it,
// and counts commands for headless runs and tests.
type Graph struct {
	props  map[int]*Prop
	nextID int
	stats  Stats
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{props: make(map[int]*Prop)}
}

// Create implements Renderer.
func (g *Graph) Create(spec Spec, pos core.Vec3, opacity float64) Handle {
	g.nextID++
	p := &Prop{
		ID:      g.nextID,
		Spec:    spec,
		Pos:     pos,
		Opacity: core.ClampF(opacity, 0, 1),
	}
	g.props[p.ID] = p
	g.stats.Created++
	return &graphHandle{graph: g, prop: p}
}

// Clear implements Renderer.
func (g *Graph) Clear() {
	for _, p := range g.props {
		p.removed = true
	}
	g.props = make(map[int]*Prop)
	g.stats.Cleared++
}

// Props returns copies of the live props of a kind, ordered by creation.
func (g *Graph) Props(kind Kind) []Prop {
	var out []Prop
	for _, p := range g.props {
		if p.Spec.Kind == kind {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of live props.
func (g *Graph) Len() int {
	return len(g.props)
}

// Stats returns the command counters.
func (g *Graph) Stats() Stats {
	return g.stats
}

type graphHandle struct {
	graph *Graph
	prop  *Prop
}

func (h *graphHandle) Move(pos core.Vec3) {
	if h.prop.removed {
		return
	}
	h.prop.Pos = pos
	h.graph.stats.Moved++
}

func (h *graphHandle) Fade(opacity float64) {
	if h.prop.removed {
		return
	}
	h.prop.Opacity = core.ClampF(opacity, 0, 1)
	h.graph.stats.Faded++
}

func (h *graphHandle) Remove() {
	if h.prop.removed {
		return
	}
	h.prop.removed = true
	delete(h.graph.props, h.prop.ID)
	h.graph.stats.Removed++
}

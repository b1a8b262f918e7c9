// Package render defines the boundary between the replay scene and whatever
// draws it. The scene only issues create/move/fade/remove commands; it never
// reads anything back from the renderer.
package render

import "github.com/vovakirdan/bs-replay/internal/core"

// Kind identifies what a visual handle represents.
type Kind int

const (
	KindTile Kind = iota
	KindSegment
	KindFood
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTile:
		return "tile"
	case KindSegment:
		return "segment"
	case KindFood:
		return "food"
	default:
		return "unknown"
	}
}

// Spec describes a visual to create.
type Spec struct {
	Kind  Kind
	Color core.Color
	Owner int // Snake index for segments, -1 for everything else
}

// Handle is a live visual created by a Renderer.
type Handle interface {
	// Move places the visual at a scene position.
	Move(pos core.Vec3)

	// Fade sets the visual's opacity in [0, 1].
	Fade(opacity float64)

	// Remove takes the visual out of the scene. Further calls are no-ops.
	Remove()
}

// Renderer accepts scene commands and draws them.
type Renderer interface {
	// Create adds a visual at pos with the given opacity.
	Create(spec Spec, pos core.Vec3, opacity float64) Handle

	// Clear removes every visual.
	Clear()
}

// Package registry provides a global registry for scene views.
// Views register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/bs-replay/internal/config"
	"github.com/vovakirdan/bs-replay/internal/core"
	"github.com/vovakirdan/bs-replay/internal/render"
	"github.com/vovakirdan/bs-replay/internal/replay"
)

// Scene is everything a view needs to draw one frame.
type Scene struct {
	Graph    *render.Graph
	Board    replay.Board
	Geometry config.Geometry
}

// View projects the 3D scene onto a terminal screen.
// Views hold no scene state; the platform owns the graph and the screen.
type View interface {
	// ID returns a unique identifier for this view (e.g., "top").
	// Used for CLI flags and configuration.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Draw renders the scene into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Draw(dst *core.Screen, scene Scene)
}

// ViewInfo contains metadata about a registered view.
type ViewInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a view.
type Factory func() View

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a view factory to the registry.
// Typically called from a view's init() function.
// Panics if a view with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: view %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered views, sorted by ID.
func List() []ViewInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ViewInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ViewInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new view by its ID.
// Returns an error if the view ID is not registered.
func Create(id string) (View, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown view %q", id)
	}

	return f(), nil
}

// Exists checks if a view with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

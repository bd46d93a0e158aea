package backend

import (
	"errors"

	"github.com/gogpu/gg/gfxcontext"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// RenderBackend abstracts the rendering implementation a [gfxcontext.Context]
// ultimately draws through. Backends are registered via Register() and
// selected via Get() or Default(); [github.com/gogpu/gg/engine].RenderEngine
// holds exactly one for its lifetime.
type RenderBackend interface {
	// Name returns the backend identifier (e.g. "software", "native", "rust").
	Name() string

	// Init initializes the backend. Called once before NewContext.
	Init() error

	// Close releases all backend resources. The backend must not be used
	// afterward.
	Close()

	// NewContext builds a GraphicsContext sized width x height, wired to
	// this backend's Presenter, ShaderManager compiler, and buffer manager.
	NewContext(width, height int, opts ...gfxcontext.ContextOption) (*gfxcontext.Context, error)
}

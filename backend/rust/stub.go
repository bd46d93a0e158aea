//go:build !rust

package rust

import "github.com/gogpu/gg/backend"

// init registers a nil-returning factory when the rust tag is not set, so
// backend.Get(backend.BackendRust) resolves to nil instead of leaving the
// name unregistered.
func init() {
	backend.Register(backend.BackendRust, func() backend.RenderBackend {
		return nil
	})
}

// Package backend provides a pluggable rendering backend abstraction.
//
// A RenderBackend builds [github.com/gogpu/gg/gfxcontext.Context] instances
// wired to a concrete Presenter, ShaderManager compiler, and buffer manager.
// This lets the same GraphicsContext API run against a CPU rasterizer today
// and a GPU-accelerated backend tomorrow without any caller-visible change.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/gg/backend"
//
// # Backend Selection
//
// Use Default() to get the best available backend by priority (rust, then
// native, then software), or Get() to request a specific backend by name:
//
//	b := backend.Default()
//	b := backend.Get(backend.BackendSoftware)
//
// # Usage
//
//	b := backend.Default()
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	ctx, err := b.NewContext(800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Dispose()
//
// # Available Backends
//
//   - "software": CPU scan-conversion rasterizer, always available.
//   - "native": pure-Go GPU backend over gogpu/wgpu (stub pending device
//     integration).
//   - "rust": GPU backend over the Rust webgpu FFI bindings (stub pending
//     device integration).
package backend

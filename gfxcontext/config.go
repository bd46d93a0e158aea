package gfxcontext

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/gpubuf"
	"github.com/gogpu/gg/shadermgr"
	"github.com/gogpu/gg/text"
)

// Image is the injected image collaborator's synchronous handle: the
// embedder's async load(source) -> TextureHandle completes before a
// renderable ever passes an Image to draw_image.
type Image interface {
	Texture() gg.TextureHandle
	Width() int
	Height() int
}

// Presenter is the one piece of Context that differs per backend: it takes
// the batcher's flushed, ordered batches and turns them into actual draw
// calls (rasterizing into a CPU target for the software backend, submitting
// command buffers for a GPU backend).
type Presenter interface {
	// Present executes batches in order, binding programs/textures/blend
	// modes through shaders and buffers. It returns the number of draw calls
	// actually issued (batches dropped for an unbindable shader/texture are
	// not draw calls).
	Present(batches []*batch.Batch, shaders *shadermgr.ShaderManager, buffers *gpubuf.BufferManager) (int, error)
}

// Clearer is the optional capability a Presenter implements to clear the
// backbuffer to a solid color at the start of a frame. A Presenter that
// does not implement it (e.g. a GPU backend relying on a render-pass load
// op instead) simply skips the clear step in BeginFrame.
type Clearer interface {
	Clear(c gg.RGBA)
}

// ContextOption configures a Context during construction, following the
// functional-options idiom used for ContextOption/defaultOptions elsewhere
// in this module.
type ContextOption func(*options)

type options struct {
	batchConfig batch.Config
	textAtlas   text.AtlasAllocator
}

func defaultOptions() options {
	return options{batchConfig: batch.DefaultConfig()}
}

// WithBatchConfig overrides the Batcher's configuration (vertex/index
// budgets, instancing threshold, spatial threshold, initial strategy).
func WithBatchConfig(cfg batch.Config) ContextOption {
	return func(o *options) { o.batchConfig = cfg }
}

// WithTextAtlas supplies the allocator fill_text/stroke_text hand rasterized
// glyph coverage to. Omitting it means fill_text/stroke_text return
// text.ErrNoGlyphAtlas.
func WithTextAtlas(alloc text.AtlasAllocator) ContextOption {
	return func(o *options) { o.textAtlas = alloc }
}

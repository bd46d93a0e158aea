package native

import (
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/gpubuf"
	"github.com/gogpu/gg/shadermgr"
)

// stubPresenter satisfies gfxcontext.Presenter without issuing any GPU
// commands. It exists so NewContext returns a usable GraphicsContext (path
// building, batching, and shader/buffer management all work) ahead of a
// HAL-backed tile rasterizer.
type stubPresenter struct {
	width, height int
}

// Present reports ErrNotImplemented; batches and stats have already been
// computed by the caller, so this only short-circuits the GPU submission
// step.
func (p *stubPresenter) Present(_ []*batch.Batch, _ *shadermgr.ShaderManager, _ *gpubuf.BufferManager) (int, error) {
	return 0, ErrNotImplemented
}

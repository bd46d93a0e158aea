//go:build rust

package rust

import (
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/gpubuf"
	"github.com/gogpu/gg/shadermgr"
)

// stubPresenter satisfies gfxcontext.Presenter without submitting any
// command buffers. It exists so NewContext returns a usable GraphicsContext
// ahead of a full wgpu-native render-pipeline integration.
type stubPresenter struct {
	width, height int
}

func (p *stubPresenter) Present(_ []*batch.Batch, _ *shadermgr.ShaderManager, _ *gpubuf.BufferManager) (int, error) {
	return 0, ErrNotImplemented
}

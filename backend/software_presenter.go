package backend

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/gpubuf"
	"github.com/gogpu/gg/shadermgr"
	"github.com/gogpu/gg/stats"
)

// softwarePresenter implements gfxcontext.Presenter and gfxcontext.PixelAccess
// by scan-converting each flushed batch's triangles directly into a
// [gg.Pixmap]. Shader binds and uniform sets are tracked against stats only;
// the software rasterizer reads vertex color/UV data straight off the
// GeometryRecord rather than running a real shader pipeline.
type softwarePresenter struct {
	target   *gg.Pixmap
	textures *textureStore
	frame    *stats.FrameStats
	bound    struct {
		shader  shadermgr.ShaderProgramHandle
		texture gg.TextureHandle
		blend   batch.BlendMode
		first   bool
	}
}

func newSoftwarePresenter(width, height int, textures *textureStore, frame *stats.FrameStats) *softwarePresenter {
	p := &softwarePresenter{target: gg.NewPixmap(width, height), textures: textures, frame: frame}
	p.bound.first = true
	return p
}

// Present binds each batch's shader/texture/blend through shaders
// (tracking state changes into FrameStats) and rasterizes its records.
func (p *softwarePresenter) Present(batches []*batch.Batch, shaders *shadermgr.ShaderManager, _ *gpubuf.BufferManager) (int, error) {
	draws := 0
	for _, b := range batches {
		handle := shadermgr.ShaderProgramHandle(b.Key.ShaderID)
		if err := shaders.Bind(handle); err != nil {
			continue // unbindable shader: drop this batch, continue the frame
		}
		p.trackStateChange(handle, b.Key.TextureID, b.Key.Blend)

		var tex *textureEntry
		if b.Key.TextureID != gg.NoTexture {
			tex = p.textures.lookup(b.Key.TextureID)
		}
		for _, rec := range b.Records {
			rasterizeRecord(p.target, rec, tex, b.Key.Blend)
		}
		draws++
	}
	return draws, nil
}

func (p *softwarePresenter) trackStateChange(shader shadermgr.ShaderProgramHandle, texture gg.TextureHandle, blend batch.BlendMode) {
	if p.bound.first {
		p.bound.first = false
	} else {
		if shader != p.bound.shader {
			p.frame.RecordStateChange(stats.StateChangeShader)
		}
		if texture != p.bound.texture {
			p.frame.RecordStateChange(stats.StateChangeTexture)
		}
		if blend != p.bound.blend {
			p.frame.RecordStateChange(stats.StateChangeBlend)
		}
	}
	p.bound.shader, p.bound.texture, p.bound.blend = shader, texture, blend
}

// ReadPixels implements gfxcontext.PixelAccess.
func (p *softwarePresenter) ReadPixels(x, y, w, h int) []byte {
	out := make([]byte, 0, w*h*4)
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c := p.target.GetPixel(col, row)
			out = append(out, byte(c.R*255), byte(c.G*255), byte(c.B*255), byte(c.A*255))
		}
	}
	return out
}

// WritePixels implements gfxcontext.PixelAccess.
func (p *softwarePresenter) WritePixels(data []byte, x, y, w, h int) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := (row*w + col) * 4
			if i+3 >= len(data) {
				return
			}
			c := gg.RGBA{R: float64(data[i]) / 255, G: float64(data[i+1]) / 255, B: float64(data[i+2]) / 255, A: float64(data[i+3]) / 255}
			p.target.SetPixel(x+col, y+row, c)
		}
	}
}

// Clear fills the target with c, called at begin_frame before the context
// records any draws.
func (p *softwarePresenter) Clear(c gg.RGBA) {
	p.target.Clear(c)
}

// Target exposes the underlying pixel buffer for the embedder to read back,
// e.g. via [gg.Pixmap.SavePNG] or [gg.Pixmap.ToImage] to blit to a window.
func (p *softwarePresenter) Target() *gg.Pixmap { return p.target }

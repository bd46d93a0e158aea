package backend

import (
	"image"
	"sync"

	"github.com/gogpu/gg"
)

// textureEntry is one stored texture, backed directly by a [gg.Pixmap]: a
// decoded RGBA image, or, for glyph atlases, an alpha-only coverage bitmap
// expanded to white RGBA with that coverage as alpha.
type textureEntry struct {
	pix *gg.Pixmap
}

// sample looks up the nearest texel for normalized UV coordinates in [0,1],
// clamping out-of-range coordinates to the edge.
func (t *textureEntry) sample(u, v float64) gg.RGBA {
	x := int(u * float64(t.pix.Width()))
	y := int(v * float64(t.pix.Height()))
	if x < 0 {
		x = 0
	}
	if x >= t.pix.Width() {
		x = t.pix.Width() - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= t.pix.Height() {
		y = t.pix.Height() - 1
	}
	return t.pix.GetPixel(x, y)
}

// textureStore is the software backend's texture registry: it hands out
// [gg.TextureHandle]s for both glyph atlas allocations (the
// [github.com/gogpu/gg/text] AtlasAllocator contract) and decoded images
// (the [github.com/gogpu/gg/gfxcontext] Image contract), and is the
// collaborator rasterizeRecord samples from for textured triangles.
type textureStore struct {
	mu      sync.Mutex
	next    uint64
	entries map[gg.TextureHandle]*textureEntry
}

func newTextureStore() *textureStore {
	return &textureStore{entries: make(map[gg.TextureHandle]*textureEntry)}
}

// Allocate implements text.AtlasAllocator: it wraps an 8-bit alpha coverage
// bitmap as a white-RGBA [gg.Pixmap] whose alpha carries the coverage, so
// sampling it and tinting by the draw color reproduces standard glyph
// rendering.
func (s *textureStore) Allocate(width, height int, alpha []byte) (gg.TextureHandle, error) {
	pm := gg.NewPixmap(width, height)
	for i, a := range alpha {
		pm.SetPixel(i%width, i/width, gg.RGBA{R: 1, G: 1, B: 1, A: float64(a) / 255})
	}
	return s.store(pm), nil
}

// LoadImage decodes img into a [gg.Pixmap] and returns a softwareImage handle
// usable with gfxcontext.Context.DrawImage.
func (s *textureStore) LoadImage(img image.Image) *softwareImage {
	pm := gg.FromImage(img)
	handle := s.store(pm)
	return &softwareImage{handle: handle, width: pm.Width(), height: pm.Height()}
}

func (s *textureStore) store(pm *gg.Pixmap) gg.TextureHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	handle := gg.TextureHandle(s.next)
	s.entries[handle] = &textureEntry{pix: pm}
	return handle
}

func (s *textureStore) lookup(handle gg.TextureHandle) *textureEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[handle]
}

// softwareImage implements gfxcontext.Image for textures held in a
// textureStore.
type softwareImage struct {
	handle        gg.TextureHandle
	width, height int
}

func (i *softwareImage) Texture() gg.TextureHandle { return i.handle }
func (i *softwareImage) Width() int                { return i.width }
func (i *softwareImage) Height() int               { return i.height }

package backend

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/geometry"
	"github.com/gogpu/gg/shadermgr"
	"github.com/gogpu/gg/stats"
)

func quadRecord(x, y, w, h float64, c gg.RGBA) batch.GeometryRecord {
	g := geometry.Rectangle(x, y, w, h, c)
	return batch.GeometryRecord{Vertices: g.Vertices, Indices: g.Indices}
}

func TestRasterizeRecordOpaqueFill(t *testing.T) {
	target := gg.NewPixmap(20, 20)
	rec := quadRecord(2, 2, 10, 10, gg.RGBA{R: 1, A: 1})

	rasterizeRecord(target, rec, nil, batch.BlendOpaque)

	inside := target.GetPixel(6, 6)
	if inside.R != 1 || inside.A != 1 {
		t.Errorf("inside pixel = %+v, want opaque red", inside)
	}
	outside := target.GetPixel(0, 0)
	if outside.A != 0 {
		t.Errorf("outside pixel = %+v, want untouched transparent", outside)
	}
}

func TestRasterizeRecordAlphaBlend(t *testing.T) {
	target := gg.NewPixmap(20, 20)
	target.Clear(gg.RGBA{R: 1, G: 1, B: 1, A: 1}) // white backdrop

	rec := quadRecord(0, 0, 20, 20, gg.RGBA{R: 0, G: 0, B: 0, A: 0.5})
	rasterizeRecord(target, rec, nil, batch.BlendAlpha)

	got := target.GetPixel(10, 10)
	if got.R < 0.4 || got.R > 0.6 {
		t.Errorf("blended pixel R = %v, want ~0.5 (half black over white)", got.R)
	}
	if got.A < 0.99 {
		t.Errorf("blended pixel A = %v, want ~1", got.A)
	}
}

func TestRasterizeRecordAdditiveAndMultiply(t *testing.T) {
	additive := gg.NewPixmap(4, 4)
	additive.Clear(gg.RGBA{R: 0.5, A: 1})
	rasterizeRecord(additive, quadRecord(0, 0, 4, 4, gg.RGBA{R: 0.6, A: 1}), nil, batch.BlendAdditive)
	if got := additive.GetPixel(2, 2).R; got != 1 {
		t.Errorf("additive blend R = %v, want clamped 1", got)
	}

	multiply := gg.NewPixmap(4, 4)
	multiply.Clear(gg.RGBA{R: 1, G: 1, B: 1, A: 1})
	rasterizeRecord(multiply, quadRecord(0, 0, 4, 4, gg.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}), nil, batch.BlendMultiply)
	if got := multiply.GetPixel(2, 2).R; got > 0.51 || got < 0.49 {
		t.Errorf("multiply blend R = %v, want ~0.5", got)
	}
}

func TestRasterizeRecordTextured(t *testing.T) {
	tex := &textureEntry{pix: gg.NewPixmap(2, 2)}
	tex.pix.SetPixel(0, 0, gg.RGBA{G: 1, A: 1})
	tex.pix.SetPixel(1, 1, gg.RGBA{B: 1, A: 1})

	target := gg.NewPixmap(10, 10)
	rec := quadRecord(0, 0, 10, 10, gg.RGBA{R: 1, G: 1, B: 1, A: 1})
	rasterizeRecord(target, rec, tex, batch.BlendOpaque)

	corner := target.GetPixel(1, 1)
	if corner.G != 1 || corner.R != 0 {
		t.Errorf("textured corner = %+v, want sampled green texel", corner)
	}
}

func TestTextureStoreAllocateAndSample(t *testing.T) {
	store := newTextureStore()
	alpha := make([]byte, 4*4)
	for i := range alpha {
		alpha[i] = 255
	}
	handle, err := store.Allocate(4, 4, alpha)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	entry := store.lookup(handle)
	if entry == nil {
		t.Fatal("lookup() returned nil for allocated handle")
	}
	c := entry.sample(0.5, 0.5)
	if c.A != 1 || c.R != 1 {
		t.Errorf("sample() = %+v, want opaque white", c)
	}
}

func TestTextureStoreLoadImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	store := newTextureStore()
	si := store.LoadImage(img)
	if si.Width() != 3 || si.Height() != 3 {
		t.Fatalf("LoadImage() dims = %dx%d, want 3x3", si.Width(), si.Height())
	}

	entry := store.lookup(si.Texture())
	c := entry.sample(0.5, 0.5)
	if c.R != 1 || c.A != 1 {
		t.Errorf("sample(0.5, 0.5) = %+v, want opaque red", c)
	}
}

func TestSoftwarePresenterClearAndPresent(t *testing.T) {
	b := NewSoftwareBackend()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	frameStats := &stats.FrameStats{}
	presenter := newSoftwarePresenter(8, 8, b.textures, frameStats)
	presenter.Clear(gg.RGBA{R: 1, G: 1, B: 1, A: 1})

	shaders := shadermgr.NewShaderManager(shadermgr.NoopCompiler{})
	shaders.Register(shadermgr.ShaderSource{Name: "flat"})
	handle, err := shaders.GetOrCompile("flat", nil)
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}

	rec := quadRecord(0, 0, 8, 8, gg.RGBA{R: 1, A: 1})
	batches := []*batch.Batch{{
		Key:     batch.MaterialKey{TextureID: gg.NoTexture, ShaderID: batch.ShaderID(handle), Blend: batch.BlendOpaque},
		Records: []batch.GeometryRecord{rec},
	}}

	draws, err := presenter.Present(batches, shaders, nil)
	if err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if draws != 1 {
		t.Errorf("Present() draws = %d, want 1", draws)
	}

	got := presenter.Target().GetPixel(4, 4)
	if got.R != 1 || got.A != 1 {
		t.Errorf("presented pixel = %+v, want opaque red", got)
	}
}

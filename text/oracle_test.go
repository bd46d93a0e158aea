package text

import (
	"testing"

	"github.com/gogpu/gg"
)

type recordingAllocator struct {
	w, h  int
	calls int
}

func (r *recordingAllocator) Allocate(width, height int, alpha []byte) (gg.TextureHandle, error) {
	r.calls++
	r.w, r.h = width, height
	return gg.TextureHandle(1), nil
}

func loadTestSource(t *testing.T) *FontSource {
	t.Helper()
	path := testFontPath(t)
	src, err := NewFontSourceFromFile(path)
	if err != nil {
		t.Fatalf("NewFontSourceFromFile(%q): %v", path, err)
	}
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func TestMeasure_EmptyText(t *testing.T) {
	src := loadTestSource(t)
	got := Measure(TextStyle{Font: src, Size: 16}, "")
	if got != (Extent{}) {
		t.Errorf("Measure(empty) = %+v, want zero Extent", got)
	}
}

func TestMeasure_NilFont(t *testing.T) {
	got := Measure(TextStyle{Size: 16}, "hello")
	if got != (Extent{}) {
		t.Errorf("Measure(nil font) = %+v, want zero Extent", got)
	}
}

func TestMeasure_GrowsWithText(t *testing.T) {
	src := loadTestSource(t)
	style := TextStyle{Font: src, Size: 16}

	short := Measure(style, "a")
	long := Measure(style, "a long sentence of text")

	if long.Width <= short.Width {
		t.Errorf("Measure: longer text should be wider, got short=%v long=%v", short, long)
	}
	if short.Height != long.Height {
		t.Errorf("Measure: height should be independent of text length, got short=%v long=%v", short, long)
	}
}

func TestMeasure_LetterSpacing(t *testing.T) {
	src := loadTestSource(t)
	tight := Measure(TextStyle{Font: src, Size: 16}, "abc")
	spaced := Measure(TextStyle{Font: src, Size: 16, LetterSpacing: 4}, "abc")

	if spaced.Width <= tight.Width {
		t.Errorf("letter spacing should widen the measured extent, got tight=%v spaced=%v", tight, spaced)
	}
}

func TestRasterize_AllocatesMatchingExtent(t *testing.T) {
	src := loadTestSource(t)
	style := TextStyle{Font: src, Size: 16}
	alloc := &recordingAllocator{}

	handle, extent, err := Rasterize(style, "hi", alloc)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if handle == gg.NoTexture {
		t.Error("Rasterize should return a non-zero texture handle on success")
	}
	if alloc.calls != 1 {
		t.Fatalf("expected exactly one Allocate call, got %d", alloc.calls)
	}
	if alloc.w != int(extent.Width) || alloc.h != int(extent.Height) {
		t.Errorf("Allocate size (%d,%d) does not match reported extent %+v", alloc.w, alloc.h, extent)
	}
}

func TestRasterize_NilFont(t *testing.T) {
	_, _, err := Rasterize(TextStyle{}, "hi", &recordingAllocator{})
	if err == nil {
		t.Error("Rasterize with nil font should return an error")
	}
}

func TestRasterize_EmptyTextSkipsAllocation(t *testing.T) {
	src := loadTestSource(t)
	alloc := &recordingAllocator{}
	handle, extent, err := Rasterize(TextStyle{Font: src, Size: 16}, "", alloc)
	if err != nil {
		t.Fatalf("Rasterize(empty): %v", err)
	}
	if handle != gg.NoTexture {
		t.Error("Rasterize(empty) should return NoTexture")
	}
	if extent != (Extent{}) {
		t.Errorf("Rasterize(empty) extent = %+v, want zero", extent)
	}
	if alloc.calls != 0 {
		t.Error("Rasterize(empty) should not call Allocate")
	}
}

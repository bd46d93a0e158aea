package text

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/width"

	"github.com/gogpu/gg"
)

// TextStyle describes how a run of text should be measured and rasterized.
// It is the style argument of the measure/rasterize contract the core calls
// through [github.com/gogpu/gg/gfxcontext]'s MeasureText/FillText operations.
type TextStyle struct {
	// Font is the font the text is measured and rasterized against. Measure
	// and Rasterize both return a zero Extent / ErrNoGlyphAtlas if this is nil.
	Font *FontSource

	// Size is the font size in points.
	Size float64

	// Direction is the paragraph direction. Measure and Rasterize do not read
	// it: advances are accumulated horizontally in text order for every
	// direction (no shaping is performed).
	Direction Direction

	// LetterSpacing adds extra space (in points) after every glyph.
	LetterSpacing float64
}

// Extent is the measured size of a text run, in points.
type Extent struct {
	Width  float64
	Height float64
}

// AtlasAllocator is the backend-supplied collaborator that turns rasterized
// glyph coverage into a texture the batcher can reference. Rasterize never
// touches a GPU device directly; it hands the caller's allocator an 8-bit
// alpha coverage buffer and receives back the handle to embed in a
// MaterialKey, mirroring the way [render.DeviceHandle] is injected rather
// than created.
type AtlasAllocator interface {
	// Allocate uploads an 8-bit alpha coverage bitmap (row-major, stride ==
	// width) and returns the texture handle the batcher should key on.
	Allocate(width, height int, alpha []byte) (gg.TextureHandle, error)
}

// rasterFont is the optional capability a [ParsedFont] implementation may
// provide to support Rasterize. Parser backends that only report metrics
// (no outlines) leave Rasterize returning an error; Measure never needs it.
type rasterFont interface {
	NewFace(size float64) (font.Face, error)
}

// Measure reports the width and height text would occupy set in style,
// without emitting any geometry. No shaping is performed: glyph advances are
// summed per rune in text order. Runes golang.org/x/text/width classifies as
// fullwidth or wide are snapped to the font's em-box advance when the font
// itself reports no glyph for them (common for CJK text set in a Latin-only
// font), so narrow-font fallback doesn't under-measure east-Asian text.
func Measure(style TextStyle, text string) Extent {
	if style.Font == nil || text == "" {
		return Extent{}
	}

	parsed := style.Font.Parsed()
	ppem := pointsToPPEM(style.Size)
	metrics := parsed.Metrics(ppem)
	emAdvance := style.Size

	var advance float64
	for _, r := range text {
		idx := parsed.GlyphIndex(r)
		a := parsed.GlyphAdvance(idx, ppem)
		if idx == 0 {
			if k := width.LookupRune(r).Kind(); k == width.EastAsianWide || k == width.EastAsianFullwidth {
				a = emAdvance
			}
		}
		advance += a + style.LetterSpacing
	}
	if advance > 0 {
		advance -= style.LetterSpacing
	}

	return Extent{
		Width:  math.Ceil(advance),
		Height: math.Ceil(metrics.Height()),
	}
}

// Rasterize draws text into an alpha coverage bitmap sized to Measure's
// extent and hands it to alloc, returning the resulting texture handle and
// the extent the caller should size a draw_image quad to. It is the only
// place outside [ParsedFont] that touches glyph outlines, and only for
// parser backends exposing [rasterFont].
func Rasterize(style TextStyle, text string, alloc AtlasAllocator) (gg.TextureHandle, Extent, error) {
	if style.Font == nil {
		return gg.NoTexture, Extent{}, ErrNoGlyphAtlas
	}
	extent := Measure(style, text)
	if text == "" || extent.Width <= 0 || extent.Height <= 0 {
		return gg.NoTexture, extent, nil
	}

	rf, ok := style.Font.Parsed().(rasterFont)
	if !ok {
		return gg.NoTexture, extent, fmt.Errorf("text: parser backend %q does not support rasterization", style.Font.Name())
	}
	face, err := rf.NewFace(style.Size)
	if err != nil {
		return gg.NoTexture, extent, fmt.Errorf("text: building face: %w", err)
	}
	defer face.Close()

	w, h := int(extent.Width), int(extent.Height)
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	metrics := style.Font.Parsed().Metrics(pointsToPPEM(style.Size))
	baseline := fixed.I(0) + fixed.Int26_6(metrics.Ascent*64)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: baseline},
	}
	drawer.DrawString(text)

	handle, err := alloc.Allocate(w, h, img.Pix)
	if err != nil {
		return gg.NoTexture, extent, fmt.Errorf("text: allocating glyph atlas: %w", err)
	}
	return handle, extent, nil
}

// pointsToPPEM converts a font size in points to pixels-per-em at the
// standard 72 DPI the ximage parser backend assumes.
func pointsToPPEM(sizePoints float64) float64 {
	return sizePoints
}

package text

import "iter"

// Glyph is a single positioned glyph produced by Face.Glyphs or
// Face.AppendGlyphs. Positions are laid out by simple advance accumulation;
// no shaping (kerning, ligatures, reordering) is performed.
type Glyph struct {
	// Rune is the source code point this glyph came from.
	Rune rune

	// GID is the font's internal glyph index for Rune.
	GID uint16

	// X is the pen position (left edge) this glyph is drawn at.
	X float64

	// OriginX mirrors X; kept distinct for callers that later add per-glyph
	// shaping offsets without changing the unshaped advance-accumulation path.
	OriginX float64

	// Advance is the horizontal distance to the next glyph's pen position.
	Advance float64

	// Cluster is the byte offset into the source text this glyph maps to.
	Cluster int
}

// Face represents a font face at a specific size: a FontSource paired with
// a size and a direction, able to report metrics and lay out glyph advances.
// gfxcontext's text operations and the package's Measure/Rasterize work from
// a TextStyle and do not go through Face. Face never performs shaping.
type Face interface {
	// Metrics returns the face's scaled font metrics.
	Metrics() Metrics

	// Advance returns the total horizontal advance of text, the sum of each
	// rune's glyph advance.
	Advance(text string) float64

	// HasGlyph reports whether the face's font has a glyph for r.
	HasGlyph(r rune) bool

	// Glyphs iterates over text's glyphs in source order, each positioned by
	// accumulating advances from the previous glyph.
	Glyphs(text string) iter.Seq[Glyph]

	// AppendGlyphs appends text's glyphs to dst and returns the extended slice.
	AppendGlyphs(dst []Glyph, text string) []Glyph

	// Direction returns the face's configured text direction.
	Direction() Direction

	// Source returns the FontSource this face was created from.
	Source() *FontSource

	// Size returns the face's size in points.
	Size() float64

	// private prevents external implementation.
	private()
}

// sourceFace is the internal implementation of Face.
type sourceFace struct {
	source *FontSource
	size   float64
	config faceConfig
}

func (f *sourceFace) private() {}

func (f *sourceFace) Metrics() Metrics {
	fm := f.source.Parsed().Metrics(f.size)
	return Metrics{
		Ascent:    fm.Ascent,
		Descent:   -fm.Descent,
		LineGap:   fm.LineGap,
		XHeight:   fm.XHeight,
		CapHeight: fm.CapHeight,
	}
}

func (f *sourceFace) Advance(text string) float64 {
	if text == "" {
		return 0
	}
	parsed := f.source.Parsed()
	var total float64
	for _, r := range text {
		idx := parsed.GlyphIndex(r)
		total += parsed.GlyphAdvance(idx, f.size)
	}
	return total
}

func (f *sourceFace) HasGlyph(r rune) bool {
	return f.source.Parsed().GlyphIndex(r) != 0
}

func (f *sourceFace) Glyphs(text string) iter.Seq[Glyph] {
	return func(yield func(Glyph) bool) {
		if text == "" {
			return
		}
		parsed := f.source.Parsed()
		x := 0.0
		for cluster, r := range text {
			idx := parsed.GlyphIndex(r)
			advance := parsed.GlyphAdvance(idx, f.size)
			g := Glyph{
				Rune:    r,
				GID:     idx,
				X:       x,
				OriginX: x,
				Advance: advance,
				Cluster: cluster,
			}
			if !yield(g) {
				return
			}
			x += advance
		}
	}
}

func (f *sourceFace) AppendGlyphs(dst []Glyph, text string) []Glyph {
	for g := range f.Glyphs(text) {
		dst = append(dst, g)
	}
	return dst
}

func (f *sourceFace) Direction() Direction {
	return f.config.direction
}

func (f *sourceFace) Source() *FontSource {
	return f.source
}

func (f *sourceFace) Size() float64 {
	return f.size
}

package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoGlyphAtlas is returned by Rasterize when a style carries no font.
	ErrNoGlyphAtlas = errors.New("text: style has no font source")
)

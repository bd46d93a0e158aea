package gfxcontext

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/text"
)

// GraphicsState is the single stack element Save copies and Restore
// overwrites. Every field is a value type, so copying it is a deep copy —
// no interior-mutable globals.
type GraphicsState struct {
	Transform gg.Matrix
	HasFill   bool
	Fill      gg.RGBA
	HasStroke bool
	Stroke    gg.RGBA
	LineWidth float64
	Opacity   float64
	Blend     batch.BlendMode
	Font      text.TextStyle
	HasClip   bool
	Clip      gg.Rect
}

// defaultState is the state a fresh Context (or one just past end_frame)
// starts from.
func defaultState() GraphicsState {
	return GraphicsState{
		Transform: gg.Identity(),
		HasFill:   true,
		Fill:      gg.RGBA{A: 1}, // opaque black
		LineWidth: 1,
		Opacity:   1,
		Blend:     batch.BlendAlpha,
	}
}

// applyOpacity folds the state's Opacity into a color's alpha channel,
// as fill()/stroke() apply it to emitted vertices.
func (s GraphicsState) applyOpacity(c gg.RGBA) gg.RGBA {
	c.A *= s.Opacity
	return c
}

package layer

import "github.com/gogpu/gg"

// Viewport is the rectangular world-space window currently projected onto
// the backbuffer, in world units.
type Viewport struct {
	X, Y          float64
	Width, Height float64
	Zoom          float64
}

// NewViewport constructs a Viewport at (x, y) with the given size and a zoom
// of 1.
func NewViewport(x, y, width, height float64) Viewport {
	return Viewport{X: x, Y: y, Width: width, Height: height, Zoom: 1}
}

// Bounds returns the viewport's world-space axis-aligned rectangle, used for
// culling.
func (v Viewport) Bounds() gg.Rect {
	return gg.NewRect(gg.Pt(v.X, v.Y), gg.Pt(v.X+v.Width, v.Y+v.Height))
}

// ProjectionMatrix returns the affine transform that maps world-space
// coordinates inside the viewport to screen space: translate by (-X, -Y),
// then scale by Zoom.
func (v Viewport) ProjectionMatrix() gg.Matrix {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return gg.Scale(zoom, zoom).Multiply(gg.Translate(-v.X, -v.Y))
}

// WorldToScreen converts a world-space point to screen space using the
// current projection matrix.
func (v Viewport) WorldToScreen(p gg.Point) gg.Point {
	return v.ProjectionMatrix().TransformPoint(p)
}

// ScreenToWorld converts a screen-space point back to world space, the
// inverse of WorldToScreen: WorldToScreen(ScreenToWorld(p)) reproduces p up
// to floating-point rounding for any p inside the current viewport.
func (v Viewport) ScreenToWorld(p gg.Point) gg.Point {
	return v.ProjectionMatrix().Invert().TransformPoint(p)
}

// Intersects reports whether bounds intersects the viewport's world-space
// rectangle; the culling test in engine's frame algorithm uses this.
func (v Viewport) Intersects(bounds gg.Rect) bool {
	vb := v.Bounds()
	if bounds.Max.X < vb.Min.X || bounds.Min.X > vb.Max.X {
		return false
	}
	if bounds.Max.Y < vb.Min.Y || bounds.Min.Y > vb.Max.Y {
		return false
	}
	return true
}

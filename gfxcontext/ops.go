package gfxcontext

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/geometry"
	"github.com/gogpu/gg/text"
)

// pathOpState admits the call from either Ready or InPath, moving Ready to
// InPath on first use; only Disposed is rejected, since every path-building
// op is allowed from both states.
func (c *Context) pathOpState() error {
	if err := c.requireNotDisposed(); err != nil {
		return err
	}
	if c.cs == stateReady {
		c.cs = stateInPath
	}
	return nil
}

func (c *Context) BeginPath() {
	if c.pathOpState() != nil {
		return
	}
	c.path.reset()
}

func (c *Context) MoveTo(x, y float64) {
	if c.pathOpState() != nil {
		return
	}
	c.path.moveTo(x, y)
}

func (c *Context) LineTo(x, y float64) {
	if c.pathOpState() != nil {
		return
	}
	c.path.lineTo(x, y)
}

func (c *Context) QuadraticCurveTo(cx, cy, x, y float64) {
	if c.pathOpState() != nil {
		return
	}
	c.path.quadraticCurveTo(cx, cy, x, y)
}

func (c *Context) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if c.pathOpState() != nil {
		return
	}
	c.path.bezierCurveTo(c1x, c1y, c2x, c2y, x, y)
}

func (c *Context) Arc(cx, cy, r, startAngle, endAngle float64, anticlockwise bool) {
	if c.pathOpState() != nil {
		return
	}
	c.path.arc(cx, cy, r, startAngle, endAngle, anticlockwise)
}

// Rect adds a closed four-point rectangular subpath to the current path
// without disturbing any subpath already in progress, matching the canvas
// rect() convention fill()/stroke() then consume alongside any other
// subpaths.
func (c *Context) Rect(x, y, w, h float64) {
	if c.pathOpState() != nil {
		return
	}
	c.path.rectOp(x, y, w, h)
}

func (c *Context) ClosePath() {
	if c.pathOpState() != nil {
		return
	}
	c.path.closePath()
}

// emit transforms data's vertices by the current transform, tints alpha by
// the current opacity, and hands the resulting record to the batcher. A
// degenerate (empty) result is dropped, not an error: one bad primitive
// does not fail the frame.
func (c *Context) emit(data geometry.GeometryData, texture gg.TextureHandle, shader uint32, blend batch.BlendMode) {
	if len(data.Vertices) == 0 {
		c.batcher.Drop()
		return
	}
	verts, bounds := transformGeometry(data, c.state.Transform, c.state.Opacity)
	c.batcher.Add(batch.GeometryRecord{
		Vertices:    verts,
		Indices:     data.Indices,
		Material:    batch.MaterialKey{TextureID: texture, ShaderID: batch.ShaderID(shader), Blend: blend, ZBand: c.zBand()},
		WorldBounds: bounds,
		Layout:      data.Layout,
		ZIndex:      c.currentZIndex,
		Opacity:     c.state.Opacity,
		Insertion:   c.nextInsertion(),
	})
}

// transformGeometry copies data's interleaved vertices, applies m to each
// vertex's position and opacity to its alpha, and computes the resulting
// world-space bounding box.
func transformGeometry(data geometry.GeometryData, m gg.Matrix, opacity float64) ([]float32, gg.Rect) {
	verts := make([]float32, len(data.Vertices))
	copy(verts, data.Vertices)

	var bounds gg.Rect
	for i := 0; i < len(verts); i += geometry.FloatsPerVertex {
		p := m.TransformPoint(gg.Pt(float64(verts[i]), float64(verts[i+1])))
		verts[i] = float32(p.X)
		verts[i+1] = float32(p.Y)
		verts[i+5] *= float32(opacity)
		if i == 0 {
			bounds = gg.Rect{Min: p, Max: p}
		} else {
			bounds = bounds.Union(gg.Rect{Min: p, Max: p})
		}
	}
	return verts, bounds
}

// Fill triangulates every subpath accumulated since begin_path with
// [geometry.PolygonFan] and emits it under the current fill style, then
// consumes (resets) the path and returns the context to Ready.
func (c *Context) Fill() error {
	if err := c.requireNotDisposed(); err != nil {
		return err
	}
	defer c.endPath()

	if !c.state.HasFill {
		return nil
	}
	for _, sp := range c.path.subpaths {
		data := geometry.PolygonFan(sp.points, c.state.applyOpacity(c.state.Fill))
		c.emit(data, gg.NoTexture, uint32(c.defaultShader), c.state.Blend)
	}
	return nil
}

// Stroke emits a [geometry.LineQuad] per consecutive point pair (and the
// closing segment, for closed subpaths) under the current stroke style, then
// consumes the path.
func (c *Context) Stroke() error {
	if err := c.requireNotDisposed(); err != nil {
		return err
	}
	defer c.endPath()

	if !c.state.HasStroke {
		return nil
	}
	for _, sp := range c.path.subpaths {
		c.strokePolyline(sp.points, sp.closed)
	}
	return nil
}

func (c *Context) strokePolyline(points []gg.Point, closed bool) {
	color := c.state.applyOpacity(c.state.Stroke)
	for i := 0; i+1 < len(points); i++ {
		data := geometry.LineQuad(points[i], points[i+1], c.state.LineWidth, color)
		c.emit(data, gg.NoTexture, uint32(c.defaultShader), c.state.Blend)
	}
	if closed && len(points) > 1 {
		data := geometry.LineQuad(points[len(points)-1], points[0], c.state.LineWidth, color)
		c.emit(data, gg.NoTexture, uint32(c.defaultShader), c.state.Blend)
	}
}

// endPath resets the path buffer and returns the context to Ready, run after
// both Fill and Stroke (whichever runs first consumes the path).
func (c *Context) endPath() {
	c.path.reset()
	c.cs = stateReady
}

// FillRect is equivalent to begin_path/rect/fill in one call.
func (c *Context) FillRect(x, y, w, h float64) {
	if c.requireReady() != nil || !c.state.HasFill {
		return
	}
	data := geometry.Rectangle(x, y, w, h, c.state.applyOpacity(c.state.Fill))
	c.emit(data, gg.NoTexture, uint32(c.defaultShader), c.state.Blend)
}

// StrokeRect is equivalent to begin_path/rect/stroke in one call.
func (c *Context) StrokeRect(x, y, w, h float64) {
	if c.requireReady() != nil || !c.state.HasStroke {
		return
	}
	pts := []gg.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	c.strokePolyline(pts, true)
}

// circleSegments picks a tessellation density proportional to radius, the
// way arc() scales segment count with sweep, so large circles stay smooth
// without over-tessellating small ones.
func circleSegments(r float64) int {
	segments := int(math.Ceil(r * 2))
	if segments < minArcSegments {
		return minArcSegments
	}
	if segments > 256 {
		return 256
	}
	return segments
}

// FillCircle tessellates a filled disc via [geometry.Circle].
func (c *Context) FillCircle(cx, cy, r float64) {
	if c.requireReady() != nil || !c.state.HasFill {
		return
	}
	data := geometry.Circle(cx, cy, r, circleSegments(r), c.state.applyOpacity(c.state.Fill))
	c.emit(data, gg.NoTexture, uint32(c.defaultShader), c.state.Blend)
}

// StrokeCircle approximates the circle's outline as a closed polygon of fine
// line segments: there is no dedicated ring-geometry builder, so a stroke
// walks the same tessellated points a filled circle's rim would use.
func (c *Context) StrokeCircle(cx, cy, r float64) {
	if c.requireReady() != nil || !c.state.HasStroke {
		return
	}
	segments := circleSegments(r)
	pts := make([]gg.Point, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = gg.Pt(cx+r*math.Cos(theta), cy+r*math.Sin(theta))
	}
	c.strokePolyline(pts, true)
}

// DrawImage emits a textured quad sized dw x dh at (dx, dy), tinted white so
// the source texture shows through unmodified save for the current opacity.
func (c *Context) DrawImage(img Image, dx, dy, dw, dh float64) {
	if c.requireReady() != nil || img == nil {
		return
	}
	data := geometry.Rectangle(dx, dy, dw, dh, c.state.applyOpacity(gg.RGBA{R: 1, G: 1, B: 1, A: 1}))
	c.emit(data, img.Texture(), uint32(c.texturedShader), c.state.Blend)
}

// MeasureText reports the size the current font would lay s out at, without
// emitting geometry.
func (c *Context) MeasureText(s string) text.Extent {
	return text.Measure(c.state.Font, s)
}

// FillText rasterizes s through the configured glyph atlas and draws it as a
// textured quad tinted by the current fill color.
func (c *Context) FillText(s string, x, y float64) error {
	return c.drawText(s, x, y, c.state.Fill)
}

// StrokeText behaves identically to FillText but tints with the stroke
// color; text is rasterized coverage, not a path, so there is no separate
// outline rendering to perform.
func (c *Context) StrokeText(s string, x, y float64) error {
	return c.drawText(s, x, y, c.state.Stroke)
}

func (c *Context) drawText(s string, x, y float64, tint gg.RGBA) error {
	if err := c.requireReady(); err != nil {
		return err
	}
	if c.textAtlas == nil {
		return text.ErrNoGlyphAtlas
	}
	handle, extent, err := text.Rasterize(c.state.Font, s, c.textAtlas)
	if err != nil {
		return err
	}
	if handle == gg.NoTexture {
		return nil
	}
	data := geometry.Rectangle(x, y, extent.Width, extent.Height, c.state.applyOpacity(tint))
	c.emit(data, handle, uint32(c.texturedShader), c.state.Blend)
	return nil
}

// ClipRect intersects the current clip rectangle (world space, under the
// active transform) with [x, x+w] x [y, y+h]. Clip lives in GraphicsState,
// so Save/Restore carry it the same as every other style attribute.
func (c *Context) ClipRect(x, y, w, h float64) {
	if c.requireReady() != nil {
		return
	}
	p0 := c.state.Transform.TransformPoint(gg.Pt(x, y))
	p1 := c.state.Transform.TransformPoint(gg.Pt(x+w, y+h))
	next := gg.NewRect(p0, p1)
	if c.state.HasClip {
		next = intersectRect(c.state.Clip, next)
	}
	c.state.HasClip = true
	c.state.Clip = next
}

func intersectRect(a, b gg.Rect) gg.Rect {
	return gg.Rect{
		Min: gg.Pt(math.Max(a.Min.X, b.Min.X), math.Max(a.Min.Y, b.Min.Y)),
		Max: gg.Pt(math.Min(a.Max.X, b.Max.X), math.Min(a.Max.Y, b.Max.Y)),
	}
}

// PixelAccess is the optional capability a Presenter may implement to back
// GetImageData/PutImageData (the software backend's Pixmap target supports
// it; GPU backends that cannot cheaply read back the framebuffer do not).
type PixelAccess interface {
	ReadPixels(x, y, w, h int) []byte
	WritePixels(data []byte, x, y, w, h int)
}

// GetImageData reads back pixel data if the active Presenter supports
// [PixelAccess], returning nil otherwise.
func (c *Context) GetImageData(x, y, w, h int) []byte {
	if c.requireReady() != nil {
		return nil
	}
	if pa, ok := c.presenter.(PixelAccess); ok {
		return pa.ReadPixels(x, y, w, h)
	}
	return nil
}

// PutImageData writes pixel data back if the active Presenter supports
// [PixelAccess]; otherwise it is a silent no-op.
func (c *Context) PutImageData(data []byte, x, y, w, h int) {
	if c.requireReady() != nil {
		return
	}
	if pa, ok := c.presenter.(PixelAccess); ok {
		pa.WritePixels(data, x, y, w, h)
	}
}

// Present flushes the batcher and hands the ordered batches to the active
// Presenter, folding the result into this frame's FrameStats.
func (c *Context) Present() error {
	if err := c.requireNotDisposed(); err != nil {
		return err
	}
	c.path.reset()
	c.cs = stateReady

	batches, flushStats := c.batcher.Flush()
	draws, err := c.presenter.Present(batches, c.shaders, c.buffers)
	if err != nil {
		return err
	}

	for _, b := range batches {
		c.frame.AddBatch(b.VertexCount, b.IndexCount, b.Instanced)
	}
	c.frame.DrawCalls = draws
	c.frame.Dropped = flushStats.Dropped
	return nil
}

// Dispose releases the Context's shader and buffer managers and transitions
// it to Disposed. It is idempotent.
func (c *Context) Dispose() {
	if c.cs == stateDisposed {
		return
	}
	c.shaders.Dispose()
	c.buffers.Dispose()
	c.cs = stateDisposed
}

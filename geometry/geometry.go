package geometry

import (
	"math"

	"github.com/gogpu/gg"
)

// LayoutId names a vertex layout. [LayoutDefault] is the only layout the
// functions in this package produce: 8 interleaved float32s per vertex,
// [x, y, r, g, b, a, u, v]. Specialized shaders may declare their own
// LayoutId, but every builder in this package emits LayoutDefault.
type LayoutId int

const (
	// LayoutDefault is the 8-float interleaved [x, y, r, g, b, a, u, v] layout.
	LayoutDefault LayoutId = iota
)

// FloatsPerVertex is the number of float32 values per LayoutDefault vertex.
const FloatsPerVertex = 8

// GeometryData is the output of every builder function: a flat interleaved
// vertex array and its triangle index array.
type GeometryData struct {
	Vertices    []float32
	Indices     []uint16
	VertexCount int
	IndexCount  int
	Layout      LayoutId
}

// empty is returned by every builder for a degenerate input: a
// zero/negative dimension or too few points is not an error, just nothing.
var empty = GeometryData{Layout: LayoutDefault}

func appendVertex(vtx []float32, x, y float64, c gg.RGBA, u, v float64) []float32 {
	return append(vtx, float32(x), float32(y), float32(c.R), float32(c.G), float32(c.B), float32(c.A), float32(u), float32(v))
}

// Rectangle builds an axis-aligned rectangle at (x, y) with size (w, h), two
// triangles sharing a diagonal, UVs spanning the full [0,1] quad.
func Rectangle(x, y, w, h float64, color gg.RGBA) GeometryData {
	if w <= 0 || h <= 0 {
		return empty
	}

	vtx := make([]float32, 0, 4*FloatsPerVertex)
	vtx = appendVertex(vtx, x, y, color, 0, 0)
	vtx = appendVertex(vtx, x+w, y, color, 1, 0)
	vtx = appendVertex(vtx, x+w, y+h, color, 1, 1)
	vtx = appendVertex(vtx, x, y+h, color, 0, 1)

	return GeometryData{
		Vertices:    vtx,
		Indices:     []uint16{0, 1, 2, 0, 2, 3},
		VertexCount: 4,
		IndexCount:  6,
		Layout:      LayoutDefault,
	}
}

// Circle tessellates a filled circle centered at (cx, cy) with radius r into
// a triangle fan of segments wedges (minimum 3). A non-positive radius
// produces an empty result.
func Circle(cx, cy, r float64, segments int, color gg.RGBA) GeometryData {
	if r <= 0 {
		return empty
	}
	if segments < 3 {
		segments = 3
	}

	vtx := make([]float32, 0, (segments+1)*FloatsPerVertex)
	vtx = appendVertex(vtx, cx, cy, color, 0.5, 0.5)
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x := cx + r*math.Cos(theta)
		y := cy + r*math.Sin(theta)
		u := 0.5 + 0.5*math.Cos(theta)
		v := 0.5 + 0.5*math.Sin(theta)
		vtx = appendVertex(vtx, x, y, color, u, v)
	}

	idx := make([]uint16, 0, segments*3)
	for i := 0; i < segments; i++ {
		idx = append(idx, 0, uint16(i+1), uint16(i+2))
	}

	return GeometryData{
		Vertices:    vtx,
		Indices:     idx,
		VertexCount: segments + 2,
		IndexCount:  len(idx),
		Layout:      LayoutDefault,
	}
}

// LineQuad emits the two triangles of a quad representing a stroked segment
// from p0 to p1 at the given width, constructed by offsetting both endpoints
// along the segment's unit normal by half the width. A segment shorter than
// 1e-6 world units produces an empty result; a non-positive width is
// clamped to zero and also produces empty.
func LineQuad(p0, p1 gg.Point, width float64, color gg.RGBA) GeometryData {
	if width <= 0 {
		return empty
	}
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	length := math.Hypot(dx, dy)
	if length < 1e-6 {
		return empty
	}

	half := width / 2
	nx, ny := -dy/length*half, dx/length*half

	vtx := make([]float32, 0, 4*FloatsPerVertex)
	vtx = appendVertex(vtx, p0.X+nx, p0.Y+ny, color, 0, 0)
	vtx = appendVertex(vtx, p1.X+nx, p1.Y+ny, color, 1, 0)
	vtx = appendVertex(vtx, p1.X-nx, p1.Y-ny, color, 1, 1)
	vtx = appendVertex(vtx, p0.X-nx, p0.Y-ny, color, 0, 1)

	return GeometryData{
		Vertices:    vtx,
		Indices:     []uint16{0, 1, 2, 0, 2, 3},
		VertexCount: 4,
		IndexCount:  6,
		Layout:      LayoutDefault,
	}
}

// PolygonFan triangulates points from their centroid. Valid for convex
// polygons; an accepted approximation for simple concave ones.
// Fewer than 3 points produces an empty result.
func PolygonFan(points []gg.Point, color gg.RGBA) GeometryData {
	if len(points) < 3 {
		return empty
	}

	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(points))
	cy /= float64(len(points))

	vtx := make([]float32, 0, (len(points)+1)*FloatsPerVertex)
	vtx = appendVertex(vtx, cx, cy, color, 0.5, 0.5)
	for _, p := range points {
		vtx = appendVertex(vtx, p.X, p.Y, color, 0, 0)
	}

	idx := make([]uint16, 0, len(points)*3)
	n := uint16(len(points))
	for i := uint16(0); i < n; i++ {
		next := i + 1
		if next == n {
			next = 0
		}
		idx = append(idx, 0, i+1, next+1)
	}

	return GeometryData{
		Vertices:    vtx,
		Indices:     idx,
		VertexCount: len(points) + 1,
		IndexCount:  len(idx),
		Layout:      LayoutDefault,
	}
}

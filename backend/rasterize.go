package backend

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/geometry"
)

// vertex is one record vertex unpacked from geometry's interleaved
// [x, y, r, g, b, a, u, v] layout.
type vertex struct {
	x, y, r, g, b, a, u, v float64
}

func unpackVertex(data []float32, i int) vertex {
	return vertex{
		x: float64(data[i]), y: float64(data[i+1]),
		r: float64(data[i+2]), g: float64(data[i+3]),
		b: float64(data[i+4]), a: float64(data[i+5]),
		u: float64(data[i+6]), v: float64(data[i+7]),
	}
}

// sameColor reports whether two vertices carry the same color, i.e. the
// triangle they belong to is flat-shaded.
func sameColor(a, b vertex) bool {
	return a.r == b.r && a.g == b.g && a.b == b.b && a.a == b.a
}

// rasterizeRecord scan-converts one GeometryRecord's triangles into target,
// sampling tex (if non-nil) at each pixel's interpolated UV and tinting by
// the interpolated vertex color, then blending per mode.
func rasterizeRecord(target *gg.Pixmap, r batch.GeometryRecord, tex *textureEntry, mode batch.BlendMode) {
	verts := r.Vertices
	for i := 0; i+2 < len(r.Indices); i += 3 {
		a := unpackVertex(verts, int(r.Indices[i])*geometry.FloatsPerVertex)
		b := unpackVertex(verts, int(r.Indices[i+1])*geometry.FloatsPerVertex)
		c := unpackVertex(verts, int(r.Indices[i+2])*geometry.FloatsPerVertex)
		rasterizeTriangle(target, a, b, c, tex, mode)
	}
}

// rasterizeTriangle fills one triangle using a bounding-box scan with
// barycentric coordinates for color/UV interpolation and inside testing.
//
// Untextured, flat-shaded triangles under BlendOpaque or the default
// source-over mode skip per-pixel color interpolation entirely: each row's
// inside span is filled in one call to [gg.Pixmap.FillSpan] or
// [gg.Pixmap.FillSpanBlend], which batch the pixel writes.
func rasterizeTriangle(target *gg.Pixmap, a, b, c vertex, tex *textureEntry, mode batch.BlendMode) {
	minX := int(math.Floor(math.Min(a.x, math.Min(b.x, c.x))))
	maxX := int(math.Ceil(math.Max(a.x, math.Max(b.x, c.x))))
	minY := int(math.Floor(math.Min(a.y, math.Min(b.y, c.y))))
	maxY := int(math.Ceil(math.Max(a.y, math.Max(b.y, c.y))))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > target.Width() {
		maxX = target.Width()
	}
	if maxY > target.Height() {
		maxY = target.Height()
	}

	denom := (b.y-c.y)*(a.x-c.x) + (c.x-b.x)*(a.y-c.y)
	if math.Abs(denom) < 1e-9 {
		return
	}

	flat := tex == nil && sameColor(a, b) && sameColor(b, c) && (mode == batch.BlendOpaque || mode == batch.BlendAlpha)
	flatColor := gg.RGBA{R: a.r, G: a.g, B: a.b, A: a.a}

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5

		if flat {
			xStart, xEnd := -1, -1
			for x := minX; x < maxX; x++ {
				px := float64(x) + 0.5
				w0 := ((b.y-c.y)*(px-c.x) + (c.x-b.x)*(py-c.y)) / denom
				w1 := ((c.y-a.y)*(px-c.x) + (a.x-c.x)*(py-c.y)) / denom
				w2 := 1 - w0 - w1
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
				if xStart == -1 {
					xStart = x
				}
				xEnd = x
			}
			if xStart == -1 {
				continue
			}
			if mode == batch.BlendOpaque {
				target.FillSpan(xStart, xEnd+1, y, flatColor)
			} else {
				target.FillSpanBlend(xStart, xEnd+1, y, flatColor)
			}
			continue
		}

		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			w0 := ((b.y-c.y)*(px-c.x) + (c.x-b.x)*(py-c.y)) / denom
			w1 := ((c.y-a.y)*(px-c.x) + (a.x-c.x)*(py-c.y)) / denom
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			col := gg.RGBA{
				R: w0*a.r + w1*b.r + w2*c.r,
				G: w0*a.g + w1*b.g + w2*c.g,
				B: w0*a.b + w1*b.b + w2*c.b,
				A: w0*a.a + w1*b.a + w2*c.a,
			}
			if tex != nil {
				u := w0*a.u + w1*b.u + w2*c.u
				v := w0*a.v + w1*b.v + w2*c.v
				col = col.Premultiply()
				texel := tex.sample(u, v)
				col = gg.RGBA{R: col.R * texel.R, G: col.G * texel.G, B: col.B * texel.B, A: col.A * texel.A}
				col = col.Unpremultiply()
			}
			blendPixel(target, x, y, col, mode)
		}
	}
}

// blendPixel composites col over the target's existing pixel at (x, y)
// according to mode.
func blendPixel(target *gg.Pixmap, x, y int, col gg.RGBA, mode batch.BlendMode) {
	if mode == batch.BlendOpaque {
		target.SetPixel(x, y, col)
		return
	}

	dst := target.GetPixel(x, y)
	var out gg.RGBA
	switch mode {
	case batch.BlendAdditive:
		out = gg.RGBA{
			R: math.Min(1, dst.R+col.R*col.A),
			G: math.Min(1, dst.G+col.G*col.A),
			B: math.Min(1, dst.B+col.B*col.A),
			A: math.Min(1, dst.A+col.A),
		}
	case batch.BlendMultiply:
		out = gg.RGBA{
			R: dst.R * (1 - col.A*(1-col.R)),
			G: dst.G * (1 - col.A*(1-col.G)),
			B: dst.B * (1 - col.A*(1-col.B)),
			A: math.Max(dst.A, col.A),
		}
	default: // BlendAlpha: standard source-over
		out = dst.Lerp(col, col.A)
		out.A = col.A + dst.A*(1-col.A)
	}
	target.SetPixel(x, y, out)
}

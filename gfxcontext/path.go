package gfxcontext

import (
	"math"

	"github.com/gogpu/gg"
)

// Fixed tessellation step counts: 20 segments per quadratic curve, 30 per
// cubic, and a sweep-proportional count for arcs.
const (
	quadraticSegments = 20
	cubicSegments     = 30
	minArcSegments    = 16
	arcSegmentsPerTau = 32
)

// subpath is one contiguous polyline built by move_to/line_to/curve/arc
// calls, flattened in user space (the current transform is applied only
// when the path is consumed by fill/stroke).
type subpath struct {
	points []gg.Point
	closed bool
}

// pathBuffer accumulates subpaths between begin_path and fill/stroke. It is
// owned by Context and reset by begin_path, fill, stroke, and present
// (present auto-discards an in-progress path per the InPath state's
// allowed-ops table).
type pathBuffer struct {
	subpaths []subpath
	current  gg.Point
	started  bool // true once move_to/line_to/etc. has placed a current point
}

func (p *pathBuffer) reset() {
	p.subpaths = p.subpaths[:0]
	p.started = false
}

func (p *pathBuffer) cur() *subpath {
	if len(p.subpaths) == 0 {
		p.subpaths = append(p.subpaths, subpath{})
	}
	return &p.subpaths[len(p.subpaths)-1]
}

func (p *pathBuffer) moveTo(x, y float64) {
	p.subpaths = append(p.subpaths, subpath{points: []gg.Point{{X: x, Y: y}}})
	p.current = gg.Pt(x, y)
	p.started = true
}

func (p *pathBuffer) lineTo(x, y float64) {
	if !p.started {
		p.moveTo(x, y)
		return
	}
	sp := p.cur()
	sp.points = append(sp.points, gg.Pt(x, y))
	p.current = gg.Pt(x, y)
}

func (p *pathBuffer) quadraticCurveTo(cx, cy, x, y float64) {
	if !p.started {
		p.moveTo(p.current.X, p.current.Y)
	}
	q := gg.NewQuadBez(p.current, gg.Pt(cx, cy), gg.Pt(x, y))
	sp := p.cur()
	for i := 1; i <= quadraticSegments; i++ {
		t := float64(i) / float64(quadraticSegments)
		sp.points = append(sp.points, q.Eval(t))
	}
	p.current = gg.Pt(x, y)
}

func (p *pathBuffer) bezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.started {
		p.moveTo(p.current.X, p.current.Y)
	}
	c := gg.NewCubicBez(p.current, gg.Pt(c1x, c1y), gg.Pt(c2x, c2y), gg.Pt(x, y))
	sp := p.cur()
	for i := 1; i <= cubicSegments; i++ {
		t := float64(i) / float64(cubicSegments)
		sp.points = append(sp.points, c.Eval(t))
	}
	p.current = gg.Pt(x, y)
}

// arc appends a circular arc centered at (cx, cy) with radius r from
// startAngle to endAngle (radians), using
// max(16, ceil(|Δθ|·32/2π)) segments.
func (p *pathBuffer) arc(cx, cy, r, startAngle, endAngle float64, anticlockwise bool) {
	delta := endAngle - startAngle
	if anticlockwise && delta > 0 {
		delta -= 2 * math.Pi
	} else if !anticlockwise && delta < 0 {
		delta += 2 * math.Pi
	}

	segments := int(math.Ceil(math.Abs(delta) * arcSegmentsPerTau / (2 * math.Pi)))
	if segments < minArcSegments {
		segments = minArcSegments
	}

	start := gg.Pt(cx+r*math.Cos(startAngle), cy+r*math.Sin(startAngle))
	if !p.started {
		p.moveTo(start.X, start.Y)
	} else {
		p.lineTo(start.X, start.Y)
	}
	sp := p.cur()
	for i := 1; i <= segments; i++ {
		theta := startAngle + delta*float64(i)/float64(segments)
		sp.points = append(sp.points, gg.Pt(cx+r*math.Cos(theta), cy+r*math.Sin(theta)))
	}
	p.current = gg.Pt(cx+r*math.Cos(endAngle), cy+r*math.Sin(endAngle))
}

// rectOp implicitly opens and closes a four-point rectangular subpath,
// without disturbing any subpath already in progress.
func (p *pathBuffer) rectOp(x, y, w, h float64) {
	p.subpaths = append(p.subpaths, subpath{
		points: []gg.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}},
		closed: true,
	})
	p.current = gg.Pt(x, y)
	p.started = true
}

func (p *pathBuffer) closePath() {
	if len(p.subpaths) == 0 {
		return
	}
	p.cur().closed = true
}

// empty reports whether the buffer has no subpaths with any points.
func (p *pathBuffer) empty() bool {
	for _, sp := range p.subpaths {
		if len(sp.points) > 0 {
			return false
		}
	}
	return true
}

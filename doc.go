// Package gg provides the small set of geometry and color primitives shared
// by every package in this module: [Point], [Rect], [Matrix] (a 2x3 affine
// transform), [RGBA] color parsing, [Line]/[QuadBez]/[CubicBez] curve
// primitives, and [Pixmap], a CPU RGBA pixel buffer. [github.com/gogpu/gg/backend]'s
// software backend rasterizes triangles and stores decoded textures directly
// into Pixmaps (see backend.SoftwareBackend and its texture store), rather
// than the standard library's image.RGBA. Path construction itself
// (move_to/line_to/curve_to/arc, the actual GraphicsContext path state
// machine) lives in [github.com/gogpu/gg/gfxcontext], not here.
//
// # Architecture
//
// This package holds only leaf utilities. The render pipeline itself lives
// in sibling packages:
//
//   - [github.com/gogpu/gg/engine]: frame loop, FPS pacing, top-level RenderEngine
//   - [github.com/gogpu/gg/layer]: Layer and Viewport
//   - [github.com/gogpu/gg/gfxcontext]: the backend-agnostic GraphicsContext
//   - [github.com/gogpu/gg/geometry]: pure vertex/index generation
//   - [github.com/gogpu/gg/batch]: MaterialKey grouping, instancing, flush ordering
//   - [github.com/gogpu/gg/shadermgr]: shader program cache and compilation
//   - [github.com/gogpu/gg/gpubuf]: GPU buffer allocation and pooling
//   - [github.com/gogpu/gg/stats]: per-frame counters and the adaptive strategy selector
//   - [github.com/gogpu/gg/backend]: pluggable GraphicsContext factories (software, native, rust)
//   - [github.com/gogpu/gg/text]: the injected text measurement/rasterization collaborator
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down, angles in
// radians with 0 pointing right and increasing clockwise (toward +Y).
package gg

// Package geometry holds the pure, stateless vertex/index generators
// [github.com/gogpu/gg/gfxcontext] calls to turn a fill, stroke, or textured
// quad into a [GeometryData] value: an interleaved `[x, y, r, g, b, a, u, v]`
// vertex array plus a uint16 index array. Nothing here retains state or
// touches a backend — every function is called, returns a value, and is
// forgotten.
package geometry

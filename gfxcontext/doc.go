// Package gfxcontext implements the backend-agnostic drawing surface: a
// state stack, transforms, path construction with fixed-step curve
// flattening, and the primitive emission that turns a fill/stroke/draw_image
// call into a [github.com/gogpu/gg/batch].GeometryRecord handed to the
// batcher. [Context] is shared by every backend; only the final flush step —
// [Presenter] — is backend-specific, so supporting another backend means
// writing one Presenter, not reimplementing path building and state
// management.
package gfxcontext

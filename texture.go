package gg

// TextureHandle identifies a texture known to a backend: a decoded image, a
// glyph atlas tile, or a render target used as a source. It is opaque to the
// core; only the backend that issued it knows how to resolve it to an actual
// GPU or CPU resource. A MaterialKey embeds a TextureHandle so the batcher can
// group draw calls by texture without inspecting backend internals.
type TextureHandle uint64

// NoTexture is the zero TextureHandle, used for untextured (flat color) fills.
const NoTexture TextureHandle = 0

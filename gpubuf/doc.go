// Package gpubuf owns the GPU vertex, index, and uniform buffers
// [github.com/gogpu/gg/batch] writes flushed geometry into. It hands out
// opaque [BufferHandle] values rather than pointers — batches reference
// buffers by handle for the duration of a flush only — and pools dynamic
// scratch buffers by aligned size so a steady-state frame allocates zero new
// GPU memory. The manager never creates its own GPU device: a
// [github.com/gogpu/gg/render.DeviceHandle] is injected at construction,
// the same principle [github.com/gogpu/gg/render]'s DeviceHandle documents.
package gpubuf

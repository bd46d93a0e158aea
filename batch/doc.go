// Package batch is the heart of the render pipeline: it accepts
// [GeometryRecord] values from [github.com/gogpu/gg/gfxcontext], groups them
// by [MaterialKey], decides instancing and splitting, and flushes them in a
// deterministic, correctness-preserving order. Nothing here touches a GPU
// directly — [Batcher.Flush] hands back an ordered []*Batch for the caller
// to submit through [github.com/gogpu/gg/shadermgr] and
// [github.com/gogpu/gg/gpubuf].
package batch

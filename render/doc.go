// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render holds the small set of types that describe where rendered
// output goes and which GPU device backs it: [RenderTarget] (the CPU/GPU
// output surface) and [DeviceHandle] (the GPU device/queue the embedder
// hands to a backend). The core never creates its own GPU device — it
// receives one through these interfaces, the same principle the render
// pipeline packages ([github.com/gogpu/gg/backend], [github.com/gogpu/gg/gpubuf])
// build on.
package render

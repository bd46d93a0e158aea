package batch

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/geometry"
)

// ShaderID identifies a compiled shader program. It is the batching
// dimension [github.com/gogpu/gg/shadermgr] hands back from get_or_compile;
// batch never compiles or binds shaders itself.
type ShaderID uint32

// BlendMode selects the backend blend function a batch draws with.
type BlendMode int

const (
	// BlendOpaque writes color with no blending (alpha ignored).
	BlendOpaque BlendMode = iota
	// BlendAlpha is standard source-over alpha blending.
	BlendAlpha
	// BlendAdditive adds source color to the destination.
	BlendAdditive
	// BlendMultiply multiplies source color into the destination.
	BlendMultiply
)

// MaterialKey is the batching discriminator. Two records may share a batch
// iff their MaterialKeys compare equal; it is a plain comparable struct so
// it can key a Go map directly.
type MaterialKey struct {
	TextureID gg.TextureHandle
	ShaderID  ShaderID
	Blend     BlendMode
	ZBand     int32
}

// ZBandOf computes the z_band a z_index falls into: floor(z_index/10).
func ZBandOf(zIndex int32) int32 {
	if zIndex >= 0 {
		return zIndex / 10
	}
	// Go's integer division truncates toward zero; floor division for
	// negatives needs the adjustment below.
	if zIndex%10 == 0 {
		return zIndex / 10
	}
	return zIndex/10 - 1
}

// GeometryRecord is a self-contained, already-world-transformed piece of
// geometry tagged with the MaterialKey it batches under. Batching may
// reorder records but never rewrites their vertex data.
type GeometryRecord struct {
	Vertices    []float32
	Indices     []uint16
	Material    MaterialKey
	WorldBounds gg.Rect
	Layout      geometry.LayoutId
	ZIndex      int32
	Opacity     float64
	Insertion   uint64
}

// center returns the midpoint of a record's world bounds, used for spatial
// clustering.
func (r GeometryRecord) center() gg.Point {
	return gg.Point{
		X: (r.WorldBounds.Min.X + r.WorldBounds.Max.X) / 2,
		Y: (r.WorldBounds.Min.Y + r.WorldBounds.Max.Y) / 2,
	}
}

// Batch is a group of records sharing a MaterialKey, flushed as one draw
// call (or one instanced draw call).
type Batch struct {
	Key           MaterialKey
	Records       []GeometryRecord
	Instanced     bool
	InstanceCount int
	CanMerge      bool
	Transparent   bool
	SpatialBounds gg.Rect
	VertexCount   int
	IndexCount    int
	firstInsert   uint64
}

func newBatch(key MaterialKey) *Batch {
	return &Batch{Key: key, CanMerge: true}
}

// append adds a record to the batch, rebasing its indices by the batch's
// current vertex count so the combined index buffer stays valid.
func (b *Batch) append(r GeometryRecord) {
	if len(b.Records) == 0 {
		b.firstInsert = r.Insertion
		b.SpatialBounds = r.WorldBounds
	} else {
		b.SpatialBounds = b.SpatialBounds.Union(r.WorldBounds)
	}

	offset := uint16(b.VertexCount)
	rebased := make([]uint16, len(r.Indices))
	for i, idx := range r.Indices {
		rebased[i] = idx + offset
	}
	r.Indices = rebased

	b.Records = append(b.Records, r)
	b.VertexCount += len(r.Vertices) / geometry.FloatsPerVertex
	b.IndexCount += len(r.Indices)
	if r.Opacity < 1 || b.Key.Blend != BlendOpaque {
		b.Transparent = true
	}
}

// willExceed reports whether adding a record of the given size would push
// the batch over the configured vertex or index budget.
func (b *Batch) willExceed(vertexCount, indexCount, maxVertices, maxIndices int) bool {
	return b.VertexCount+vertexCount > maxVertices || b.IndexCount+indexCount > maxIndices
}

// center returns the midpoint of the batch's spatial bounds.
func (b *Batch) center() gg.Point {
	return gg.Point{
		X: (b.SpatialBounds.Min.X + b.SpatialBounds.Max.X) / 2,
		Y: (b.SpatialBounds.Min.Y + b.SpatialBounds.Max.Y) / 2,
	}
}

// eligibleForInstancing reports whether every record in the batch shares an
// identical vertex/index shape (the same mesh repeated with different
// transforms baked into its pre-transformed vertices), the signal this
// package uses in place of decomposing each record back into a per-instance
// affine transform.
func (b *Batch) eligibleForInstancing(threshold int) bool {
	if len(b.Records) < threshold {
		return false
	}
	first := b.Records[0]
	for _, r := range b.Records[1:] {
		if len(r.Vertices) != len(first.Vertices) || len(r.Indices) != len(first.Indices) {
			return false
		}
	}
	return true
}

// Strategy selects how aggressively the Batcher optimizes before flush.
type Strategy int

const (
	// BASIC groups by MaterialKey only.
	BASIC Strategy = iota
	// ENHANCED adds merge and spatial-cluster optimization over BASIC.
	ENHANCED
	// INSTANCED adds instancing detection over ENHANCED.
	INSTANCED
	// AUTO observes the FrameStats window and picks BASIC/ENHANCED/INSTANCED.
	AUTO
)

func (s Strategy) String() string {
	switch s {
	case BASIC:
		return "BASIC"
	case ENHANCED:
		return "ENHANCED"
	case INSTANCED:
		return "INSTANCED"
	case AUTO:
		return "AUTO"
	default:
		return "Unknown"
	}
}

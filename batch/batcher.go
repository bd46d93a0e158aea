package batch

import (
	"sort"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/geometry"
)

// Default limits from spec: a batch's vertex count is capped at 10,000, or
// 65,536 indices (the u16 index space), whichever binds first.
const (
	DefaultMaxBatchVertices    = 10000
	DefaultMaxBatchIndices     = 65536
	DefaultInstancingThreshold = 50
	DefaultSpatialThreshold    = 100.0
)

// Config holds the tunables a Batcher is constructed with. Zero Config
// yields the package defaults via [NewBatcher].
type Config struct {
	MaxBatchVertices    int
	MaxBatchIndices     int
	InstancingThreshold int
	SpatialThreshold    float64
	Strategy            Strategy
}

// DefaultConfig returns a Config populated with this package's default values.
func DefaultConfig() Config {
	return Config{
		MaxBatchVertices:    DefaultMaxBatchVertices,
		MaxBatchIndices:     DefaultMaxBatchIndices,
		InstancingThreshold: DefaultInstancingThreshold,
		SpatialThreshold:    DefaultSpatialThreshold,
		Strategy:            ENHANCED,
	}
}

// FlushStats summarizes one Flush call, for the caller to fold into its own
// FrameStats.
type FlushStats struct {
	Batches  int
	Vertices int
	Indices  int
	Dropped  int
}

// Batcher accepts GeometryRecords, groups them by MaterialKey, and on Flush
// produces a deterministically ordered slice of Batch. A Batcher is used for
// exactly one frame: construct (or Reset) before begin_frame, Add during
// render, Flush at present.
type Batcher struct {
	cfg      Config
	groups   map[MaterialKey][]*Batch
	order    []MaterialKey
	inserted uint64
	dropped  int
}

// NewBatcher constructs a Batcher. A zero Config is replaced with
// [DefaultConfig].
func NewBatcher(cfg Config) *Batcher {
	if cfg.MaxBatchVertices <= 0 {
		cfg.MaxBatchVertices = DefaultMaxBatchVertices
	}
	if cfg.MaxBatchIndices <= 0 || cfg.MaxBatchIndices > DefaultMaxBatchIndices {
		cfg.MaxBatchIndices = DefaultMaxBatchIndices
	}
	if cfg.InstancingThreshold <= 0 {
		cfg.InstancingThreshold = DefaultInstancingThreshold
	}
	if cfg.SpatialThreshold <= 0 {
		cfg.SpatialThreshold = DefaultSpatialThreshold
	}
	return &Batcher{cfg: cfg, groups: make(map[MaterialKey][]*Batch)}
}

// Strategy returns the batcher's current strategy.
func (b *Batcher) Strategy() Strategy { return b.cfg.Strategy }

// SetStrategy updates the strategy used by the next Flush. Called by the
// adaptive selector in [github.com/gogpu/gg/stats] between frames.
func (b *Batcher) SetStrategy(s Strategy) { b.cfg.Strategy = s }

// Reset clears all accumulated batches, preparing the Batcher for a new
// frame. Config is preserved.
func (b *Batcher) Reset() {
	b.groups = make(map[MaterialKey][]*Batch)
	b.order = b.order[:0]
	b.inserted = 0
	b.dropped = 0
}

// Drop records a geometry record rejected before reaching Add (e.g. an
// unresolvable shader or texture); the frame continues rather than aborting.
func (b *Batcher) Drop() { b.dropped++ }

// Add appends a record to its MaterialKey's batch group, splitting into a
// new non-mergeable batch when the current one would exceed the configured
// vertex or index budget.
func (b *Batcher) Add(r GeometryRecord) {
	r.Insertion = b.inserted
	b.inserted++

	vcount := len(r.Vertices) / geometry.FloatsPerVertex
	icount := len(r.Indices)

	batches, ok := b.groups[r.Material]
	if !ok {
		nb := newBatch(r.Material)
		nb.append(r)
		b.groups[r.Material] = []*Batch{nb}
		b.order = append(b.order, r.Material)
		return
	}

	last := batches[len(batches)-1]
	if last.willExceed(vcount, icount, b.cfg.MaxBatchVertices, b.cfg.MaxBatchIndices) {
		nb := newBatch(r.Material)
		nb.CanMerge = false
		nb.append(r)
		b.groups[r.Material] = append(batches, nb)
		return
	}
	last.append(r)
}

// Flush groups, optimizes (per strategy), and returns batches in the
// deterministic priority order: opaque before transparent, ascending
// z_band, ascending shader_id, ascending texture_id, then insertion order.
// The Batcher is left populated; call Reset to start the next frame.
func (b *Batcher) Flush() ([]*Batch, FlushStats) {
	var all []*Batch
	for _, key := range b.order {
		all = append(all, b.groups[key]...)
	}

	if b.cfg.Strategy == ENHANCED || b.cfg.Strategy == INSTANCED || b.cfg.Strategy == AUTO {
		all = mergeCompatible(all, b.cfg.MaxBatchVertices, b.cfg.MaxBatchIndices)
		all = clusterSpatially(all, b.cfg.SpatialThreshold, b.cfg.MaxBatchVertices, b.cfg.MaxBatchIndices)
	}

	if b.cfg.Strategy == INSTANCED || b.cfg.Strategy == AUTO {
		for _, batch := range all {
			if batch.eligibleForInstancing(b.cfg.InstancingThreshold) {
				batch.Instanced = true
				batch.InstanceCount = len(batch.Records)
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return less(all[i], all[j])
	})

	stats := FlushStats{Batches: len(all), Dropped: b.dropped}
	for _, batch := range all {
		stats.Vertices += batch.VertexCount
		stats.Indices += batch.IndexCount
	}
	return all, stats
}

// less implements the flush ordering guarantee: (a) opaque before
// transparent; (b) ascending z_band; (c) ascending shader_id;
// (d) ascending texture_id; (e) insertion order.
func less(a, b *Batch) bool {
	if a.Transparent != b.Transparent {
		return !a.Transparent // opaque (false) sorts first
	}
	if a.Key.ZBand != b.Key.ZBand {
		return a.Key.ZBand < b.Key.ZBand
	}
	if a.Key.ShaderID != b.Key.ShaderID {
		return a.Key.ShaderID < b.Key.ShaderID
	}
	if a.Key.TextureID != b.Key.TextureID {
		return a.Key.TextureID < b.Key.TextureID
	}
	return a.firstInsert < b.firstInsert
}

// mergeCompatible combines batches whose MaterialKey texture/shader/blend
// match and whose z_bands differ by at most 1, refusing the merge whenever
// either batch carries a transparent record.
func mergeCompatible(batches []*Batch, maxVertices, maxIndices int) []*Batch {
	merged := make([]*Batch, 0, len(batches))
	used := make([]bool, len(batches))

	for i, a := range batches {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(batches); j++ {
			if used[j] {
				continue
			}
			c := batches[j]
			if a.Transparent || c.Transparent {
				continue
			}
			if a.Key.TextureID != c.Key.TextureID || a.Key.ShaderID != c.Key.ShaderID || a.Key.Blend != c.Key.Blend {
				continue
			}
			if abs32(a.Key.ZBand-c.Key.ZBand) > 1 {
				continue
			}
			if a.VertexCount+c.VertexCount > maxVertices || a.IndexCount+c.IndexCount > maxIndices {
				continue
			}
			absorb(a, c)
			used[j] = true
		}
		merged = append(merged, a)
	}
	return merged
}

// clusterSpatially re-merges sibling batches that share an exact
// MaterialKey (typically produced by a vertex-budget split) when their
// spatial bounds' centers are within threshold world units and the combined
// size still fits the budget, using center distance as the clustering
// metric.
func clusterSpatially(batches []*Batch, threshold float64, maxVertices, maxIndices int) []*Batch {
	byKey := make(map[MaterialKey][]*Batch)
	var keyOrder []MaterialKey
	for _, batch := range batches {
		if _, ok := byKey[batch.Key]; !ok {
			keyOrder = append(keyOrder, batch.Key)
		}
		byKey[batch.Key] = append(byKey[batch.Key], batch)
	}

	var result []*Batch
	for _, key := range keyOrder {
		group := byKey[key]
		used := make([]bool, len(group))
		for i, a := range group {
			if used[i] {
				continue
			}
			for j := i + 1; j < len(group); j++ {
				if used[j] || group[j].Transparent != a.Transparent {
					continue
				}
				c := group[j]
				if distance(a.center(), c.center()) > threshold {
					continue
				}
				if a.VertexCount+c.VertexCount > maxVertices || a.IndexCount+c.IndexCount > maxIndices {
					continue
				}
				absorb(a, c)
				used[j] = true
			}
			result = append(result, a)
		}
	}
	return result
}

// absorb appends b's records (with indices rebased) onto a, in a's
// insertion order relative to b (b's records follow a's).
func absorb(a, b *Batch) {
	offset := uint16(a.VertexCount)
	for _, r := range b.Records {
		rebased := make([]uint16, len(r.Indices))
		for i, idx := range r.Indices {
			rebased[i] = idx + offset
		}
		r.Indices = rebased
		a.Records = append(a.Records, r)
	}
	a.VertexCount += b.VertexCount
	a.IndexCount += b.IndexCount
	a.SpatialBounds = a.SpatialBounds.Union(b.SpatialBounds)
	if b.firstInsert < a.firstInsert {
		a.firstInsert = b.firstInsert
	}
}

func distance(p, q gg.Point) float64 {
	return p.Sub(q).Length()
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

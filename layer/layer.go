package layer

import (
	"fmt"
	"sort"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/gfxcontext"
)

// Renderable is the only collaborator the core loads per frame. Any type
// implementing this capability set may be added to a [Layer]. Render must be
// side-effect-only: it may call only ctx's methods, must not retain ctx
// beyond the call, and must not mutate engine state.
type Renderable interface {
	ID() string
	Bounds() gg.Rect
	Visible() bool
	ZIndex() int32
	Render(ctx gfxcontext.GraphicsContext)
}

// HitTester is the optional hit-test capability a capability-set
// names. Renderables that do not need hit-testing simply don't implement it.
type HitTester interface {
	HitTest(p gg.Point) bool
}

// Disposer is the optional dispose capability. The engine calls it, if
// implemented, when a renderable is removed from a Layer or the Layer is
// cleared.
type Disposer interface {
	Dispose()
}

// ErrDuplicateID is returned by Add when a renderable's ID already exists in
// the layer.
var ErrDuplicateID = fmt.Errorf("layer: duplicate renderable id")

// Layer is a named, ordered container of renderables with a z coordinate
// used to order layers relative to one another. Add is O(1) amortized;
// Remove is O(n) (later entries shift down and are reindexed); Clear is O(n);
// lookup by id is O(1). iter_sorted is O(n log n) once per frame, skipped
// when membership hasn't changed since the last sort.
type Layer struct {
	name  string
	z     int32
	order []Renderable          // insertion order, source of truth
	index map[string]int        // id -> position in order
	dirty bool
	sorted []Renderable // cached result of the last sort
}

// New constructs an empty Layer with the given name and z coordinate.
func New(name string, z int32) *Layer {
	return &Layer{
		name:  name,
		z:     z,
		index: make(map[string]int),
		dirty: true,
	}
}

// Name returns the layer's name.
func (l *Layer) Name() string { return l.name }

// Z returns the layer's z coordinate.
func (l *Layer) Z() int32 { return l.z }

// SetZ updates the layer's z coordinate; the engine re-sorts layers by z on
// the next frame.
func (l *Layer) SetZ(z int32) { l.z = z }

// Len reports how many renderables are currently in the layer.
func (l *Layer) Len() int { return len(l.order) }

// Add appends r to the layer. It fails with ErrDuplicateID if r's id already
// exists in this layer.
func (l *Layer) Add(r Renderable) error {
	id := r.ID()
	if _, exists := l.index[id]; exists {
		return fmt.Errorf("%w: %q in layer %q", ErrDuplicateID, id, l.name)
	}
	l.index[id] = len(l.order)
	l.order = append(l.order, r)
	l.dirty = true
	return nil
}

// Remove deletes the renderable with the given id, disposing it if it
// implements Disposer. Reports whether a renderable was found and removed.
func (l *Layer) Remove(id string) bool {
	pos, ok := l.index[id]
	if !ok {
		return false
	}
	r := l.order[pos]
	l.order = append(l.order[:pos], l.order[pos+1:]...)
	delete(l.index, id)
	for i := pos; i < len(l.order); i++ {
		l.index[l.order[i].ID()] = i
	}
	if d, ok := r.(Disposer); ok {
		d.Dispose()
	}
	l.dirty = true
	return true
}

// Get returns the renderable with the given id, if present.
func (l *Layer) Get(id string) (Renderable, bool) {
	pos, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return l.order[pos], true
}

// Clear removes and disposes every renderable in the layer.
func (l *Layer) Clear() {
	for _, r := range l.order {
		if d, ok := r.(Disposer); ok {
			d.Dispose()
		}
	}
	l.order = l.order[:0]
	l.index = make(map[string]int)
	l.sorted = nil
	l.dirty = true
}

// IterSorted returns the layer's renderables in ascending z_index order,
// insertion-order tiebreak, including invisible ones (the caller applies
// visibility and culling). The sort is cached and only recomputed when the
// layer's membership or z-index ordering may have changed since the last
// call.
func (l *Layer) IterSorted() []Renderable {
	if !l.dirty && l.sorted != nil {
		return l.sorted
	}
	sorted := make([]Renderable, len(l.order))
	copy(sorted, l.order)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex() < sorted[j].ZIndex()
	})
	l.sorted = sorted
	l.dirty = false
	return sorted
}

// MarkDirty forces the next IterSorted call to re-sort, for callers that
// mutate a renderable's ZIndex in place without going through Add/Remove.
func (l *Layer) MarkDirty() { l.dirty = true }

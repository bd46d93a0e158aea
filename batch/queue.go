package batch

// RenderQueue is a thin ordered view over the batches a Flush produced. For
// the core defined here it carries no state beyond the slice itself; it
// exists as the named surface a coordinator inserting a post-processing
// pass between z-bands would iterate instead of reaching into Batcher
// internals.
type RenderQueue struct {
	batches []*Batch
}

// NewRenderQueue wraps an already-ordered batch slice, typically the first
// return value of [Batcher.Flush].
func NewRenderQueue(batches []*Batch) RenderQueue {
	return RenderQueue{batches: batches}
}

// Len returns the number of batches in the queue.
func (q RenderQueue) Len() int { return len(q.batches) }

// At returns the batch at position i.
func (q RenderQueue) At(i int) *Batch { return q.batches[i] }

// All returns the underlying ordered slice. Callers must not mutate it.
func (q RenderQueue) All() []*Batch { return q.batches }

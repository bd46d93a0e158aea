package stats

import (
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/geometry"
)

// bytesPerVertex is the size of one LayoutDefault vertex: FloatsPerVertex
// float32s.
const bytesPerVertex = int64(geometry.FloatsPerVertex) * 4

// Selector picks a batch.Strategy from recent frame history: explicit input
// (a stats Window), explicit output (a batch.Strategy), no hidden global
// state. It is consulted once per frame, between end_frame and the next
// begin_frame, when the engine's configured strategy is batch.AUTO.
type Selector struct {
	// MemoryBudgetBytes caps the estimated per-frame vertex memory AUTO mode
	// will spend chasing fewer draw calls. 0 disables the cap.
	MemoryBudgetBytes int64
}

// NewSelector constructs a Selector with the given memory budget.
func NewSelector(memoryBudgetBytes int64) *Selector {
	return &Selector{MemoryBudgetBytes: memoryBudgetBytes}
}

// Select inspects w and returns the strategy AUTO mode should use for the
// next frame. current is the strategy the previous frame ran under, used as
// the fallback when the window holds too little history to decide.
func (s *Selector) Select(w *Window, current batch.Strategy) batch.Strategy {
	if w.Len() < 2 {
		if current == batch.AUTO {
			return batch.ENHANCED
		}
		return current
	}

	if s.MemoryBudgetBytes > 0 {
		estimated := int64(w.AverageVertices()) * bytesPerVertex
		if estimated > s.MemoryBudgetBytes {
			return batch.BASIC
		}
	}

	avgInstanced := w.AverageInstancedDraws()
	avgBatches := w.AverageBatches()
	if avgInstanced > 0 && avgBatches > 0 {
		return batch.INSTANCED
	}
	return batch.ENHANCED
}

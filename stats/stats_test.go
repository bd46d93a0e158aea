package stats

import (
	"testing"

	"github.com/gogpu/gg/batch"
)

func TestFrameStatsReset(t *testing.T) {
	var f FrameStats
	f.AddBatch(4, 6, false)
	f.RecordStateChange(StateChangeShader)
	f.Culled = 3

	f.Reset()

	if f.DrawCalls != 0 || f.Batches != 0 || f.Vertices != 0 || f.Triangles != 0 || f.Culled != 0 {
		t.Fatalf("Reset left nonzero counters: %+v", f)
	}
	if f.StateChanges != ([3]int{}) {
		t.Fatalf("Reset left nonzero state changes: %+v", f.StateChanges)
	}
}

func TestFrameStatsAddBatch(t *testing.T) {
	var f FrameStats
	f.AddBatch(4, 6, false)
	f.AddBatch(240, 360, true)

	if f.Batches != 2 || f.DrawCalls != 2 {
		t.Fatalf("got Batches=%d DrawCalls=%d, want 2 and 2", f.Batches, f.DrawCalls)
	}
	if f.Vertices != 244 {
		t.Fatalf("Vertices = %d, want 244", f.Vertices)
	}
	if f.Triangles != 2+120 {
		t.Fatalf("Triangles = %d, want 122", f.Triangles)
	}
	if f.InstancedDraws != 1 {
		t.Fatalf("InstancedDraws = %d, want 1", f.InstancedDraws)
	}
}

func TestWindowAverages(t *testing.T) {
	w := NewWindow(3)
	w.Record(FrameStats{DrawCalls: 1, Batches: 1, Vertices: 10})
	w.Record(FrameStats{DrawCalls: 3, Batches: 2, Vertices: 20})
	w.Record(FrameStats{DrawCalls: 5, Batches: 3, Vertices: 30})

	if got := w.AverageDrawCalls(); got != 3 {
		t.Fatalf("AverageDrawCalls = %v, want 3", got)
	}
	if got := w.AverageBatches(); got != 2 {
		t.Fatalf("AverageBatches = %v, want 2", got)
	}

	// A fourth Record evicts the oldest (DrawCalls: 1) frame.
	w.Record(FrameStats{DrawCalls: 7, Batches: 4, Vertices: 40})
	if got := w.AverageDrawCalls(); got != 5 {
		t.Fatalf("AverageDrawCalls after wrap = %v, want 5", got)
	}
	if w.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (capped)", w.Len())
	}
}

func TestWindowEmpty(t *testing.T) {
	w := NewWindow(4)
	if got := w.AverageDrawCalls(); got != 0 {
		t.Fatalf("AverageDrawCalls on empty window = %v, want 0", got)
	}
}

func TestSelectorNeedsHistory(t *testing.T) {
	sel := NewSelector(0)
	w := NewWindow(10)
	if got := sel.Select(w, batch.BASIC); got != batch.BASIC {
		t.Fatalf("Select with empty window = %v, want current strategy BASIC", got)
	}
	if got := sel.Select(w, batch.AUTO); got != batch.ENHANCED {
		t.Fatalf("Select with empty window and current=AUTO = %v, want ENHANCED", got)
	}
}

func TestSelectorPicksInstancedWhenObserved(t *testing.T) {
	sel := NewSelector(0)
	w := NewWindow(10)
	for i := 0; i < 5; i++ {
		w.Record(FrameStats{DrawCalls: 1, Batches: 1, Vertices: 240, InstancedDraws: 1})
	}
	if got := sel.Select(w, batch.AUTO); got != batch.INSTANCED {
		t.Fatalf("Select = %v, want INSTANCED", got)
	}
}

func TestSelectorRespectsMemoryBudget(t *testing.T) {
	sel := NewSelector(1000) // tiny budget forces BASIC
	w := NewWindow(10)
	for i := 0; i < 5; i++ {
		w.Record(FrameStats{DrawCalls: 1, Batches: 1, Vertices: 100000, InstancedDraws: 1})
	}
	if got := sel.Select(w, batch.AUTO); got != batch.BASIC {
		t.Fatalf("Select over budget = %v, want BASIC", got)
	}
}

func TestSelectorDefaultsToEnhanced(t *testing.T) {
	sel := NewSelector(0)
	w := NewWindow(10)
	for i := 0; i < 5; i++ {
		w.Record(FrameStats{DrawCalls: 3, Batches: 3, Vertices: 12})
	}
	if got := sel.Select(w, batch.AUTO); got != batch.ENHANCED {
		t.Fatalf("Select = %v, want ENHANCED", got)
	}
}

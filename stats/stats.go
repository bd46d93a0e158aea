package stats

import "time"

// StateChangeKind identifies one of the three tracked state-change counters.
type StateChangeKind int

const (
	// StateChangeTexture counts texture rebinds.
	StateChangeTexture StateChangeKind = iota
	// StateChangeShader counts shader program rebinds.
	StateChangeShader
	// StateChangeBlend counts blend-mode changes.
	StateChangeBlend
	numStateChangeKinds
)

// FrameStats is the counter set for a single frame, reset on begin_frame and
// committed at end_frame. It is the payload of the render-completed event.
type FrameStats struct {
	DrawCalls      int
	Batches        int
	Vertices       int
	Triangles      int
	StateChanges   [numStateChangeKinds]int
	Culled         int
	Dropped        int
	FrameTimeMs    float64
	BatchTimeMs    float64
	InstancedDraws int
}

// Reset zeroes every counter, matching begin_frame's contract.
func (s *FrameStats) Reset() {
	*s = FrameStats{}
}

// RecordStateChange increments the counter for kind.
func (s *FrameStats) RecordStateChange(kind StateChangeKind) {
	s.StateChanges[kind]++
}

// AddBatch folds one flushed batch's counts in: a draw call, its vertex and
// triangle counts, and an instanced-draw tally when applicable.
func (s *FrameStats) AddBatch(vertices, indices int, instanced bool) {
	s.Batches++
	s.DrawCalls++
	s.Vertices += vertices
	s.Triangles += indices / 3
	if instanced {
		s.InstancedDraws++
	}
}

// Clock abstracts time.Now. Nothing in this module reads a stats.Clock:
// [github.com/gogpu/gg/engine] takes its clock for FPS pacing through its own
// Config.Clock field, which has the same signature.
type Clock func() time.Time

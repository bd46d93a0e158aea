package gfxcontext

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/gpubuf"
	"github.com/gogpu/gg/render"
	"github.com/gogpu/gg/shadermgr"
)

type recordingPresenter struct {
	lastBatches []*batch.Batch
	drawCalls   int
	err         error
}

func (p *recordingPresenter) Present(batches []*batch.Batch, _ *shadermgr.ShaderManager, _ *gpubuf.BufferManager) (int, error) {
	p.lastBatches = batches
	if p.err != nil {
		return 0, p.err
	}
	p.drawCalls = len(batches)
	return p.drawCalls, nil
}

func newTestContext(t *testing.T) (*Context, *recordingPresenter) {
	t.Helper()
	presenter := &recordingPresenter{}
	shaders := shadermgr.NewShaderManager(shadermgr.NoopCompiler{})
	buffers := gpubuf.NewBufferManager(render.NullDeviceHandle{})
	ctx, err := New(shaders, buffers, presenter)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx.BeginFrame(gg.Identity(), gg.RGBA{})
	return ctx, presenter
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.SetFill("#FF0000")
	if err := ctx.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ctx.SetFill("#00FF00")
	if ctx.state.Fill != gg.Hex("#00FF00") {
		t.Fatalf("fill not applied before restore")
	}
	if err := ctx.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if ctx.state.Fill != gg.Hex("#FF0000") {
		t.Fatalf("restore did not revert fill, got %v", ctx.state.Fill)
	}
}

func TestRestoreUnderflow(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.Restore(); !errors.Is(err, ErrStateStackUnderflow) {
		t.Fatalf("want ErrStateStackUnderflow, got %v", err)
	}
}

func TestSaveOverflow(t *testing.T) {
	ctx, _ := newTestContext(t)
	for i := 0; i < StateStackDepthLimit; i++ {
		if err := ctx.Save(); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}
	if err := ctx.Save(); !errors.Is(err, ErrStateStackOverflow) {
		t.Fatalf("want ErrStateStackOverflow, got %v", err)
	}
}

func TestStyleOpsRejectedInPath(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.BeginPath()
	ctx.MoveTo(0, 0)
	if err := ctx.Save(); !errors.Is(err, ErrWrongState) {
		t.Fatalf("want ErrWrongState while InPath, got %v", err)
	}
}

func TestFillRectEmitsOneRecordPerCall(t *testing.T) {
	ctx, presenter := newTestContext(t)
	ctx.SetFill("#FFFFFF")
	ctx.FillRect(0, 0, 100, 100)
	ctx.FillRect(200, 0, 100, 100)

	if err := ctx.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(presenter.lastBatches) != 1 {
		t.Fatalf("want both rects in one batch (same material), got %d batches", len(presenter.lastBatches))
	}
	if presenter.lastBatches[0].VertexCount != 8 {
		t.Fatalf("want 8 vertices (2 rects x 4), got %d", presenter.lastBatches[0].VertexCount)
	}
}

func TestFillWithoutFillStyleDropsRecord(t *testing.T) {
	ctx, presenter := newTestContext(t)
	ctx.SetNoFill()
	ctx.BeginPath()
	ctx.MoveTo(0, 0)
	ctx.LineTo(10, 0)
	ctx.LineTo(10, 10)
	ctx.ClosePath()
	if err := ctx.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if err := ctx.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(presenter.lastBatches) != 0 {
		t.Fatalf("want no batches emitted, got %d", len(presenter.lastBatches))
	}
}

func TestFillConsumesPathAndReturnsReady(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.SetFill("#FFFFFF")
	ctx.BeginPath()
	ctx.MoveTo(0, 0)
	ctx.LineTo(10, 0)
	ctx.LineTo(10, 10)
	ctx.ClosePath()
	if ctx.cs != stateInPath {
		t.Fatalf("want InPath before Fill")
	}
	if err := ctx.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if ctx.cs != stateReady {
		t.Fatalf("want Ready after Fill consumes the path")
	}
	if !ctx.path.empty() {
		t.Fatalf("want path reset after Fill")
	}
}

func TestTranslateAffectsEmittedBounds(t *testing.T) {
	ctx, presenter := newTestContext(t)
	ctx.SetFill("#FFFFFF")
	ctx.Translate(50, 50)
	ctx.FillRect(0, 0, 10, 10)
	if err := ctx.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	b := presenter.lastBatches[0]
	if b.SpatialBounds.Min.X != 50 || b.SpatialBounds.Min.Y != 50 {
		t.Fatalf("want bounds translated to (50,50), got %v", b.SpatialBounds.Min)
	}
}

func TestDisposeRejectsFurtherOps(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.Dispose()
	if err := ctx.Save(); !errors.Is(err, ErrDisposed) {
		t.Fatalf("want ErrDisposed, got %v", err)
	}
	ctx.Dispose() // idempotent
}

func TestPresentFoldsStatsFromBatches(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.SetFill("#FFFFFF")
	ctx.FillRect(0, 0, 10, 10)
	ctx.FillCircle(100, 100, 5)
	if err := ctx.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	stats := ctx.Stats()
	if stats.DrawCalls == 0 {
		t.Fatalf("want DrawCalls > 0")
	}
	if stats.Vertices == 0 {
		t.Fatalf("want Vertices > 0")
	}
}

func TestPresentPropagatesPresenterError(t *testing.T) {
	ctx, presenter := newTestContext(t)
	presenter.err = errors.New("backend unavailable")
	ctx.SetFill("#FFFFFF")
	ctx.FillRect(0, 0, 10, 10)
	if err := ctx.Present(); err == nil {
		t.Fatalf("want error propagated from Presenter")
	}
}

func TestClipRectIntersectsUnderTransform(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.ClipRect(0, 0, 100, 100)
	ctx.ClipRect(50, 50, 100, 100)
	if !ctx.state.HasClip {
		t.Fatalf("want HasClip true")
	}
	if ctx.state.Clip.Min.X != 50 || ctx.state.Clip.Max.X != 100 {
		t.Fatalf("want intersected clip [50,100], got %v", ctx.state.Clip)
	}
}

func TestStrokeCircleProducesClosedOutline(t *testing.T) {
	ctx, presenter := newTestContext(t)
	ctx.SetStroke("#000000")
	ctx.StrokeCircle(50, 50, 20)
	if err := ctx.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(presenter.lastBatches) == 0 {
		t.Fatalf("want at least one batch from stroke_circle")
	}
	verts := 0
	for _, b := range presenter.lastBatches {
		verts += b.VertexCount
	}
	if want := 4 * circleSegments(20); verts != want {
		t.Fatalf("want %d vertices (one quad per segment, closing segment included), got %d", want, verts)
	}
}

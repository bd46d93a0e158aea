package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/backend"
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/gfxcontext"
	"github.com/gogpu/gg/layer"
	"github.com/gogpu/gg/stats"
)

// BackendFactory turns a surface handle into a named, not-yet-initialized
// backend. The factory reports backend support for the given surface; the
// engine calls Init itself.
type BackendFactory func(surface any) (backend.RenderBackend, error)

// RenderEngine is the top-level coordinator: frame loop, FPS pacing,
// dispatch to backend. It owns exactly one GraphicsContext, ShaderManager,
// and BufferManager for its lifetime (held inside the *gfxcontext.Context
// Initialize constructs).
type RenderEngine struct {
	mu sync.Mutex

	cfg     Config
	sink    EventSink
	logger  *slog.Logger
	backend backend.RenderBackend
	ctx     *gfxcontext.Context

	layers map[string]*layer.Layer
	vp     layer.Viewport

	window   *stats.Window
	selector *stats.Selector

	running   bool
	stopCh    chan struct{}
	pumpDone  chan struct{}
	lastStats stats.FrameStats
	disposed  bool
}

// EngineOption configures RenderEngine construction beyond the typed Config
// record, for collaborators that are genuinely optional (event sink,
// logger) rather than part of the documented configuration surface.
type EngineOption func(*RenderEngine)

// WithEventSink supplies the sink Render delivers events through.
// Omitting it installs NopEventSink.
func WithEventSink(sink EventSink) EngineOption {
	return func(e *RenderEngine) { e.sink = sink }
}

// WithLogger overrides the engine's *slog.Logger. Omitting it uses
// gg.Logger(), the package-wide default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *RenderEngine) { e.logger = logger }
}

// New constructs a RenderEngine. cfg is validated immediately; an invalid
// field returns a *Error of kind InvalidConfig and a nil engine.
func New(cfg Config, opts ...EngineOption) (*RenderEngine, error) {
	if verr := cfg.validate(); verr != nil {
		return nil, verr
	}

	e := &RenderEngine{
		cfg:      cfg,
		sink:     NopEventSink{},
		logger:   gg.Logger(),
		layers:   make(map[string]*layer.Layer),
		window:   stats.NewWindow(stats.DefaultWindowSize),
		selector: stats.NewSelector(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Initialize constructs the backend GraphicsContext via factory(surface),
// precompiling the shader library. It fails with BackendUnavailable if the
// factory reports the backend unsupported, InitializationFailed for a
// compile/link error during context construction.
func (e *RenderEngine) Initialize(ctx context.Context, factory BackendFactory, surface any, width, height int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := factory(surface)
	if err != nil {
		return newError(BackendUnavailable, "backend factory rejected surface", err)
	}
	if b == nil {
		return newError(BackendUnavailable, "backend factory returned nil", nil)
	}
	if err := b.Init(); err != nil {
		return newError(BackendUnavailable, "backend init failed", err)
	}

	gctx, err := b.NewContext(width, height, gfxcontext.WithBatchConfig(e.cfg.batchConfig()))
	if err != nil {
		b.Close()
		return newError(InitializationFailed, "building graphics context", err)
	}

	e.backend = b
	e.ctx = gctx
	e.vp = layer.NewViewport(0, 0, float64(width), float64(height))
	e.logger.LogAttrs(ctx, slog.LevelInfo, "engine initialized",
		slog.String("backend", b.Name()), slog.Int("width", width), slog.Int("height", height))
	return nil
}

// AddLayer creates and registers a new Layer named name at z, returning it.
func (e *RenderEngine) AddLayer(name string, z int32) *layer.Layer {
	e.mu.Lock()
	defer e.mu.Unlock()
	l := layer.New(name, z)
	e.layers[name] = l
	return l
}

// RemoveLayer deletes the named layer, reporting whether it existed.
func (e *RenderEngine) RemoveLayer(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.layers[name]; !ok {
		return false
	}
	delete(e.layers, name)
	return true
}

// GetLayer returns the named layer, if present.
func (e *RenderEngine) GetLayer(name string) (*layer.Layer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.layers[name]
	return l, ok
}

// SetViewport updates the projection matrix used by subsequent frames.
func (e *RenderEngine) SetViewport(vp layer.Viewport) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vp = vp
}

// Context returns the engine's GraphicsContext, for embedders that need
// direct pixel readback (GetImageData) or other operations outside the
// Renderable capability set. It is nil until Initialize succeeds.
func (e *RenderEngine) Context() *gfxcontext.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx
}

// GetStats returns a snapshot of the latest committed FrameStats.
func (e *RenderEngine) GetStats() stats.FrameStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastStats
}

// IsRunning reports whether the internal frame pump is active.
func (e *RenderEngine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Start launches the internal clock-based frame pump on its own goroutine.
// Calling Start while already running is a no-op.
func (e *RenderEngine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stopCh = make(chan struct{})
	e.pumpDone = make(chan struct{})
	e.mu.Unlock()

	go e.pump()
}

// Stop takes effect after the current frame completes. It is cooperative
// and blocks until the pump goroutine has exited.
func (e *RenderEngine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	stopCh := e.stopCh
	done := e.pumpDone
	e.mu.Unlock()

	close(stopCh)
	<-done
}

// pump runs on its own goroutine: it reads Config.Clock, calls Render, and
// sleeps the remainder of the target frame interval. A 0 TargetFPS renders
// as fast as possible. EnableVsync is not consulted.
func (e *RenderEngine) pump() {
	defer close(e.pumpDone)

	var interval time.Duration
	if e.cfg.TargetFPS > 0 {
		interval = time.Duration(float64(time.Second) / e.cfg.TargetFPS)
	}

	for {
		select {
		case <-e.stopCh:
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			return
		default:
		}

		start := e.cfg.Clock()
		if err := e.Render(); err != nil {
			e.logger.Error("frame aborted", "error", err)
		}
		if interval > 0 {
			elapsed := e.cfg.Clock().Sub(start)
			if remaining := interval - elapsed; remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// Render executes one synchronous frame: begin_frame, sort layers and
// renderables, cull, render each survivor, present, end_frame. It is
// idempotent with respect to repeated calls.
func (e *RenderEngine) Render() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return newError(InitializationFailed, "render called on disposed engine", gfxcontext.ErrDisposed)
	}
	if e.ctx == nil {
		return newError(InitializationFailed, "render called before Initialize", nil)
	}

	e.ctx.BeginFrame(e.vp.ProjectionMatrix(), e.cfg.ClearColor)

	layers := make([]*layer.Layer, 0, len(e.layers))
	for _, l := range e.layers {
		layers = append(layers, l)
	}
	sortLayersByZ(layers)

	drew := false
	culled := 0
	for _, l := range layers {
		for _, r := range l.IterSorted() {
			if !r.Visible() {
				continue
			}
			if e.cfg.EnableCulling && !e.vp.Intersects(r.Bounds()) {
				culled++
				continue
			}
			e.ctx.SetZIndex(r.ZIndex())
			depth := e.ctx.StackDepth()
			r.Render(e.ctx)
			e.rebalance(r.ID(), depth)
			drew = true
		}
	}

	if err := e.ctx.Present(); err != nil {
		rerr := newError(InitializationFailed, "present failed", err)
		e.sink.Emit(Event{Kind: EventRenderError, Payload: rerr})
		return rerr
	}

	frame := e.ctx.Stats()
	frame.Culled = culled
	e.lastStats = frame
	e.window.Record(frame)

	if e.cfg.EnableAutoOptimization && e.cfg.BatchStrategy == batch.AUTO {
		next := e.selector.Select(e.window, e.ctx.Strategy())
		e.ctx.SetStrategy(next)
	}

	if drew {
		e.sink.Emit(Event{Kind: EventGraphicsChanged})
	}
	e.sink.Emit(Event{Kind: EventRenderCompleted, Payload: frame})

	return nil
}

// Dispose tears down in reverse construction order; idempotent.
func (e *RenderEngine) Dispose() {
	e.mu.Lock()
	running := e.running
	e.mu.Unlock()
	if running {
		e.Stop()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	for _, l := range e.layers {
		l.Clear()
	}
	if e.ctx != nil {
		e.ctx.Dispose()
	}
	if e.backend != nil {
		e.backend.Close()
	}
	e.disposed = true
}

// rebalance restores the state stack to depth if a renderable's Render left
// it unbalanced (an unmatched Save), logging the imbalance so the next
// renderable in the frame observes a clean baseline state.
func (e *RenderEngine) rebalance(id string, depth int) {
	after := e.ctx.StackDepth()
	if after == depth {
		return
	}
	e.logger.Warn("renderable left state stack unbalanced",
		"renderable", id, "before", depth, "after", after)
	for e.ctx.StackDepth() > depth {
		if e.ctx.Restore() != nil {
			break
		}
	}
}

func sortLayersByZ(layers []*layer.Layer) {
	for i := 1; i < len(layers); i++ {
		for j := i; j > 0 && layers[j].Z() < layers[j-1].Z(); j-- {
			layers[j], layers[j-1] = layers[j-1], layers[j]
		}
	}
}

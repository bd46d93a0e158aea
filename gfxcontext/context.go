package gfxcontext

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/batch"
	"github.com/gogpu/gg/gpubuf"
	"github.com/gogpu/gg/shadermgr"
	"github.com/gogpu/gg/stats"
	"github.com/gogpu/gg/text"
)

// contextState is the Context's Ready/InPath/Disposed state machine.
type contextState int

const (
	stateReady contextState = iota
	stateInPath
	stateDisposed
)

// GraphicsContext is the backend-agnostic drawing surface every Renderable
// talks to during its Render call. It must not be retained beyond that
// call.
type GraphicsContext interface {
	Save() error
	Restore() error

	Translate(x, y float64)
	Rotate(angle float64)
	ScaleBy(x, y float64)
	ApplyTransform(m gg.Matrix)
	SetTransform(m gg.Matrix)
	ResetTransform()

	SetFill(color string)
	SetNoFill()
	SetStroke(color string)
	SetNoStroke()
	SetLineWidth(w float64)
	SetOpacity(o float64)
	SetBlendMode(mode batch.BlendMode)
	SetFont(style text.TextStyle)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cx, cy, x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	Arc(cx, cy, r, startAngle, endAngle float64, anticlockwise bool)
	Rect(x, y, w, h float64)
	ClosePath()
	Fill() error
	Stroke() error

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	FillCircle(cx, cy, r float64)
	StrokeCircle(cx, cy, r float64)

	DrawImage(img Image, dx, dy, dw, dh float64)
	MeasureText(s string) text.Extent
	FillText(s string, x, y float64) error
	StrokeText(s string, x, y float64) error

	ClipRect(x, y, w, h float64)
	GetImageData(x, y, w, h int) []byte
	PutImageData(data []byte, x, y, w, h int)

	Present() error
	Dispose()
}

// Context is the concrete, backend-shared implementation of
// GraphicsContext. Its state stack, path builder, and primitive-to-record
// conversion are identical across backends; only present (via Presenter)
// differs.
type Context struct {
	state GraphicsState
	stack []GraphicsState
	path  pathBuffer

	cs contextState

	batcher   *batch.Batcher
	shaders   *shadermgr.ShaderManager
	buffers   *gpubuf.BufferManager
	presenter Presenter
	textAtlas text.AtlasAllocator

	defaultShader  shadermgr.ShaderProgramHandle
	texturedShader shadermgr.ShaderProgramHandle
	currentZIndex  int32
	insertionOrder uint64
	frame          stats.FrameStats
}

// New constructs a Context wired to the given ShaderManager, BufferManager,
// and backend Presenter. The manager's default shader library is registered
// and compiled eagerly, matching RenderEngine.initialize's "precompile the
// shader library" step.
func New(shaders *shadermgr.ShaderManager, buffers *gpubuf.BufferManager, presenter Presenter, opts ...ContextOption) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	shaders.Register(shadermgr.ShaderSource{
		Name:        "default",
		VertexSrc:   defaultVertexSrc,
		FragmentSrc: defaultFragmentSrc,
	})

	flatHandle, err := shaders.GetOrCompile("default", nil)
	if err != nil {
		return nil, fmt.Errorf("gfxcontext: compiling default shader: %w", err)
	}
	texHandle, err := shaders.GetOrCompile("default", map[string]string{"TEXTURED": "1"})
	if err != nil {
		return nil, fmt.Errorf("gfxcontext: compiling textured shader variant: %w", err)
	}

	return &Context{
		state:          defaultState(),
		batcher:        batch.NewBatcher(o.batchConfig),
		shaders:        shaders,
		buffers:        buffers,
		presenter:      presenter,
		textAtlas:      o.textAtlas,
		defaultShader:  flatHandle,
		texturedShader: texHandle,
	}, nil
}

// BeginFrame resets per-frame state: FrameStats, the batcher, the path and
// clip stacks, and the state stack back to its default, clears the
// backbuffer to clearColor (if the active Presenter implements [Clearer]),
// then installs projection as the base transform every subsequent primitive
// is emitted against.
func (c *Context) BeginFrame(projection gg.Matrix, clearColor gg.RGBA) {
	c.frame.Reset()
	c.batcher.Reset()
	c.path.reset()
	c.stack = c.stack[:0]
	c.state = defaultState()
	c.state.Transform = projection
	c.cs = stateReady
	c.insertionOrder = 0

	if clearer, ok := c.presenter.(Clearer); ok {
		clearer.Clear(clearColor)
	}
}

// SetZIndex tags every GeometryRecord this Context emits until the next call
// with z. The engine calls this once per renderable, before Render, so
// Renderable implementations never see it directly (it is not part of the
// GraphicsContext interface).
func (c *Context) SetZIndex(z int32) { c.currentZIndex = z }

// Stats returns a snapshot of the current frame's counters.
func (c *Context) Stats() stats.FrameStats { return c.frame }

// Strategy returns the batcher's current strategy, for the engine's
// adaptive selector to read before deciding the next frame's strategy.
func (c *Context) Strategy() batch.Strategy { return c.batcher.Strategy() }

// SetStrategy updates the batcher's strategy for the next flush.
func (c *Context) SetStrategy(s batch.Strategy) { c.batcher.SetStrategy(s) }

func (c *Context) requireReady() error {
	switch c.cs {
	case stateDisposed:
		return ErrDisposed
	case stateInPath:
		return fmt.Errorf("%w: operation requires Ready, context is InPath", ErrWrongState)
	}
	return nil
}

func (c *Context) requireNotDisposed() error {
	if c.cs == stateDisposed {
		return ErrDisposed
	}
	return nil
}

// Save pushes a deep copy of the current GraphicsState. Exceeding
// StateStackDepthLimit fails with ErrStateStackOverflow.
func (c *Context) Save() error {
	if err := c.requireReady(); err != nil {
		return err
	}
	if len(c.stack) >= StateStackDepthLimit {
		return ErrStateStackOverflow
	}
	c.stack = append(c.stack, c.state)
	return nil
}

// Restore pops the top state. Underflow fails with ErrStateStackUnderflow.
func (c *Context) Restore() error {
	if err := c.requireReady(); err != nil {
		return err
	}
	if len(c.stack) == 0 {
		return ErrStateStackUnderflow
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

// StackDepth reports the current Save nesting depth, for callers enforcing a
// balanced state stack across one Render call.
func (c *Context) StackDepth() int { return len(c.stack) }

// Translate post-multiplies the current transform by a translation.
func (c *Context) Translate(x, y float64) {
	if c.requireReady() != nil {
		return
	}
	c.state.Transform = c.state.Transform.Multiply(gg.Translate(x, y))
}

// Rotate post-multiplies the current transform by a rotation (radians).
func (c *Context) Rotate(angle float64) {
	if c.requireReady() != nil {
		return
	}
	c.state.Transform = c.state.Transform.Multiply(gg.Rotate(angle))
}

// ScaleBy post-multiplies the current transform by a scale.
func (c *Context) ScaleBy(x, y float64) {
	if c.requireReady() != nil {
		return
	}
	c.state.Transform = c.state.Transform.Multiply(gg.Scale(x, y))
}

// ApplyTransform post-multiplies the current transform by m.
func (c *Context) ApplyTransform(m gg.Matrix) {
	if c.requireReady() != nil {
		return
	}
	c.state.Transform = c.state.Transform.Multiply(m)
}

// SetTransform replaces the current transform outright.
func (c *Context) SetTransform(m gg.Matrix) {
	if c.requireReady() != nil {
		return
	}
	c.state.Transform = m
}

// ResetTransform replaces the current transform with the identity.
func (c *Context) ResetTransform() {
	if c.requireReady() != nil {
		return
	}
	c.state.Transform = gg.Identity()
}

// SetFill parses color (e.g. "#FF0000") via the injected color-string
// utility and sets it as the fill style.
func (c *Context) SetFill(color string) {
	if c.requireReady() != nil {
		return
	}
	c.state.HasFill = true
	c.state.Fill = gg.Hex(color)
}

// SetNoFill disables fill.
func (c *Context) SetNoFill() {
	if c.requireReady() != nil {
		return
	}
	c.state.HasFill = false
}

// SetStroke parses color via the injected color-string utility and sets it
// as the stroke style.
func (c *Context) SetStroke(color string) {
	if c.requireReady() != nil {
		return
	}
	c.state.HasStroke = true
	c.state.Stroke = gg.Hex(color)
}

// SetNoStroke disables stroke.
func (c *Context) SetNoStroke() {
	if c.requireReady() != nil {
		return
	}
	c.state.HasStroke = false
}

// SetLineWidth sets the stroke width in world units.
func (c *Context) SetLineWidth(w float64) {
	if c.requireReady() != nil {
		return
	}
	c.state.LineWidth = w
}

// SetOpacity sets the alpha multiplier applied to every emitted vertex.
func (c *Context) SetOpacity(o float64) {
	if c.requireReady() != nil {
		return
	}
	c.state.Opacity = o
}

// SetBlendMode sets the blend mode subsequent primitives batch under.
func (c *Context) SetBlendMode(mode batch.BlendMode) {
	if c.requireReady() != nil {
		return
	}
	c.state.Blend = mode
}

// SetFont sets the current font spec used by MeasureText/FillText/
// StrokeText when no explicit style is supplied.
func (c *Context) SetFont(style text.TextStyle) {
	if c.requireReady() != nil {
		return
	}
	c.state.Font = style
}

// nextInsertion returns a monotonically increasing insertion counter used to
// break MaterialKey ties deterministically within a frame.
func (c *Context) nextInsertion() uint64 {
	c.insertionOrder++
	return c.insertionOrder
}

// zBand returns the z_band the current renderable's z_index falls into.
func (c *Context) zBand() int32 { return batch.ZBandOf(c.currentZIndex) }

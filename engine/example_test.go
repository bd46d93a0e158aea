package engine_test

import (
	"context"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/backend"
	"github.com/gogpu/gg/engine"
	"github.com/gogpu/gg/gfxcontext"
)

type dot struct {
	id string
}

func (d dot) ID() string      { return d.id }
func (d dot) Bounds() gg.Rect { return gg.NewRect(gg.Pt(0, 0), gg.Pt(10, 10)) }
func (d dot) Visible() bool   { return true }
func (d dot) ZIndex() int32   { return 0 }
func (d dot) Render(ctx gfxcontext.GraphicsContext) {
	ctx.SetFill("#FF0000")
	ctx.FillRect(0, 0, 10, 10)
}

// Example demonstrates the minimal lifecycle: construct an engine against
// the software backend, add a layer and a renderable, and run one frame.
func Example() {
	e, err := engine.New(engine.DefaultConfig())
	if err != nil {
		fmt.Println("new failed:", err)
		return
	}
	defer e.Dispose()

	factory := func(surface any) (backend.RenderBackend, error) {
		return backend.NewSoftwareBackend(), nil
	}
	if err := e.Initialize(context.Background(), factory, nil, 64, 64); err != nil {
		fmt.Println("initialize failed:", err)
		return
	}

	main := e.AddLayer("main", 0)
	main.Add(dot{id: "sprite-1"})

	if err := e.Render(); err != nil {
		fmt.Println("render failed:", err)
		return
	}

	stats := e.GetStats()
	fmt.Printf("drew %d draw call(s)\n", stats.DrawCalls)
	// Output: drew 1 draw call(s)
}

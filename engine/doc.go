// Package engine provides RenderEngine, the top-level coordinator that
// drives a frame loop over a [github.com/gogpu/gg/backend.RenderBackend]:
// sorting [github.com/gogpu/gg/layer.Layer]s and renderables, culling
// against a [github.com/gogpu/gg/layer.Viewport], dispatching Render calls
// through [github.com/gogpu/gg/gfxcontext.Context], and presenting the
// accumulated batches.
//
// A minimal usage:
//
//	cfg := engine.DefaultConfig()
//	e, err := engine.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer e.Dispose()
//
//	factory := func(surface any) (backend.RenderBackend, error) {
//		return backend.Default(), nil
//	}
//	if err := e.Initialize(context.Background(), factory, nil, 800, 600); err != nil {
//		log.Fatal(err)
//	}
//
//	main := e.AddLayer("main", 0)
//	main.Add(mySprite)
//
//	if err := e.Render(); err != nil {
//		log.Fatal(err)
//	}
package engine

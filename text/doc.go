// Package text is the text collaborator [github.com/gogpu/gg/gfxcontext]
// calls through: [Measure] reports the size a run of text would occupy
// without emitting geometry, and [Rasterize] hands back a glyph atlas
// texture for the context to draw as a textured quad. No shaping pipeline
// lives here; glyph advances are summed per rune in text order.
//
//   - [FontSource]: heavyweight, shared font resource (parses TTF/OTF files)
//   - [Face]: lightweight font instance at a specific size
//   - [FontParser]: pluggable font parsing backend (default: golang.org/x/image)
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer source.Close()
//
//	style := text.TextStyle{Font: source, Size: 24}
//	extent := text.Measure(style, "Hello, GoGPU!")
//	handle, _, err := text.Rasterize(style, "Hello, GoGPU!", myAllocator)
//
// # Pluggable parser backend
//
// Font parsing is abstracted through the FontParser interface. By default,
// golang.org/x/image/font/opentype is used. Custom parsers can be registered
// for alternative implementations:
//
//	text.RegisterParser("myparser", myCustomParser)
//	source, err := text.NewFontSource(data, text.WithParser("myparser"))
package text

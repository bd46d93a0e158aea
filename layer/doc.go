// Package layer holds the engine-level bucket of renderables ([Layer]) and
// the world-to-screen projection window ([Viewport]) that feed
// [github.com/gogpu/gg/engine]'s frame loop. Neither type touches a
// backend: a Layer just orders [Renderable] values, and a Viewport just
// turns itself into a [github.com/gogpu/gg.Matrix].
package layer

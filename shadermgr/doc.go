// Package shadermgr compiles, links, and caches shader programs for
// [github.com/gogpu/gg/batch]'s flush step. Programs are keyed by
// (name, defines) the way [github.com/gogpu/gg/cache].ShardedCache keys any
// comparable struct; a cache miss runs the registered source template
// through a backend-supplied compiler before the program is handed back and
// bound. The manager owns every program it compiles — a handle is never
// freed while a live batch references it, so callers must flush before
// disposing.
package shadermgr

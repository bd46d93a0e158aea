// Package stats holds the per-frame counters [github.com/gogpu/gg/engine]
// resets on every begin_frame and the sliding-window adaptive strategy
// selector [github.com/gogpu/gg/batch]'s AUTO mode consults between frames.
// Nothing here touches a backend; it is a small, explicit-input,
// explicit-output component, not a hidden global.
package stats

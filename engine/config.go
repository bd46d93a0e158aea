package engine

import (
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/batch"
)

// Config is the single typed configuration record New validates once. Every recognized option has a documented zero value; an
// unrecognized option has no representation here at all, so the Go
// compiler rejects it rather than New discovering it at runtime.
type Config struct {
	// TargetFPS sets the pump's minimum frame interval (1/TargetFPS). 0
	// disables pacing: render is called as fast as the caller drives it.
	TargetFPS float64

	// EnableVsync is carried in the configuration but not read by the
	// engine: the frame pump paces by TargetFPS whether or not it is set,
	// on every backend, and no vertical blank signal is waited on.
	EnableVsync bool

	// EnableCulling skips renderables whose bounds miss the viewport.
	EnableCulling bool

	// MaxBatchVertices caps a batch's accumulated vertex count before it is
	// split. 0 uses batch.DefaultMaxBatchVertices.
	MaxBatchVertices int

	// InstancingThreshold is the minimum same-material record count before
	// a batch is flagged instanced. 0 uses batch.DefaultInstancingThreshold.
	InstancingThreshold int

	// SpatialThreshold is the max world-unit center distance for spatial
	// clustering. 0 uses batch.DefaultSpatialThreshold.
	SpatialThreshold float64

	// BatchStrategy is the batcher's initial strategy.
	BatchStrategy batch.Strategy

	// MaxTextureBindsPerFrame is carried in the configuration but not read
	// by the engine: no texture-bind count is compared against it and no
	// warning is logged, and it never aborts a frame.
	MaxTextureBindsPerFrame int

	// EnableAutoOptimization runs the adaptive stats.Selector at the end of
	// each frame to choose BatchStrategy for the next one. Requires
	// BatchStrategy == batch.AUTO to take effect.
	EnableAutoOptimization bool

	// Clock abstracts time.Now for the frame pump, so tests can drive it
	// with a fake clock instead of real wall time.
	Clock func() time.Time

	// ClearColor is the color begin_frame clears the backbuffer to. The
	// zero value is transparent black.
	ClearColor gg.RGBA
}

// DefaultConfig returns a Config with the package defaults: no FPS cap, no
// vsync, culling and auto-optimization enabled, AUTO strategy, and
// batch.DefaultConfig's vertex/instancing/spatial thresholds.
func DefaultConfig() Config {
	return Config{
		EnableCulling:          true,
		BatchStrategy:          batch.AUTO,
		EnableAutoOptimization: true,
		Clock:                  time.Now,
	}
}

// validate checks Config for construction errors, filling in zero-value
// defaults for fields where 0 means "use the package default" rather than
// "explicitly zero". It returns a *Error of kind InvalidConfig on failure.
func (c *Config) validate() *Error {
	if c.TargetFPS < 0 {
		return newError(InvalidConfig, "target_fps must be >= 0", nil)
	}
	if c.MaxBatchVertices < 0 {
		return newError(InvalidConfig, "max_batch_vertices must be >= 0", nil)
	}
	if c.InstancingThreshold < 0 {
		return newError(InvalidConfig, "instancing_threshold must be >= 0", nil)
	}
	if c.SpatialThreshold < 0 {
		return newError(InvalidConfig, "spatial_threshold must be >= 0", nil)
	}
	if c.BatchStrategy < batch.BASIC || c.BatchStrategy > batch.AUTO {
		return newError(InvalidConfig, "batch_strategy is not a recognized value", nil)
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return nil
}

// batchConfig translates Config's engine-facing fields into a batch.Config,
// layering non-zero overrides onto batch.DefaultConfig.
func (c Config) batchConfig() batch.Config {
	cfg := batch.DefaultConfig()
	if c.MaxBatchVertices > 0 {
		cfg.MaxBatchVertices = c.MaxBatchVertices
	}
	if c.InstancingThreshold > 0 {
		cfg.InstancingThreshold = c.InstancingThreshold
	}
	if c.SpatialThreshold > 0 {
		cfg.SpatialThreshold = c.SpatialThreshold
	}
	cfg.Strategy = c.BatchStrategy
	return cfg
}

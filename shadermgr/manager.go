package shadermgr

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/cache"
)

// ShaderManager compiles, links, and caches shader programs keyed by
// (name, defines). It owns every ShaderProgram it returns: a handle stays
// valid until Dispose, and the caller must flush any batch referencing a
// handle before disposing the manager.
type ShaderManager struct {
	compiler Compiler
	sources  map[string]ShaderSource
	// programs is a (name, defines)-keyed lookaside cache: a miss just means
	// recompiling, so bounded LRU eviction here is harmless.
	programs *cache.ShardedCache[string, *ShaderProgram]
	// byID is the authoritative, never-evicted store: a handle stays valid
	// until Dispose: a live batch's ShaderProgram is never freed out from
	// under it.
	byID     map[ShaderProgramHandle]*ShaderProgram
	bound    ShaderProgramHandle
	nextID   uint32
	disposed bool
}

// NewShaderManager constructs a ShaderManager that compiles through
// compiler. The software backend passes a no-op reflection-only compiler;
// the native and rust GPU backends pass one that validates each stage
// through naga before the same reflection.
func NewShaderManager(compiler Compiler) *ShaderManager {
	return &ShaderManager{
		compiler: compiler,
		sources:  make(map[string]ShaderSource),
		programs: cache.NewSharded[string, *ShaderProgram](cache.DefaultCapacity, cache.StringHasher),
		byID:     make(map[ShaderProgramHandle]*ShaderProgram),
	}
}

// Register stores a shader source template by name. It does not compile
// anything; compilation happens lazily on the first GetOrCompile miss for a
// given defines set.
func (m *ShaderManager) Register(src ShaderSource) {
	m.sources[src.Name] = src
}

// GetOrCompile returns the cached program for (name, defines), compiling and
// linking on a cache miss. defines are layered over the source's
// DefaultDefines.
func (m *ShaderManager) GetOrCompile(name string, defines map[string]string) (ShaderProgramHandle, error) {
	if m.disposed {
		return invalidHandle, ErrDisposed
	}
	src, ok := m.sources[name]
	if !ok {
		return invalidHandle, fmt.Errorf("%w: %q", ErrUnknownShader, name)
	}
	merged := mergeDefines(src.DefaultDefines, defines)
	key := cacheKey(name, merged)

	if prog, ok := m.programs.Get(key); ok {
		return prog.ID, nil
	}

	compiled, err := m.compiler.Compile(src, merged)
	if err != nil {
		return invalidHandle, err
	}

	m.nextID++
	prog := &ShaderProgram{
		ID:               ShaderProgramHandle(m.nextID),
		Name:             name,
		AttribLocations:  compiled.AttribLocations,
		UniformLocations: compiled.UniformLocations,
		Defines:          merged,
	}
	m.programs.Set(key, prog)
	m.byID[prog.ID] = prog
	gg.Logger().Debug("shadermgr: compiled program", "name", name, "id", prog.ID, "defines", merged)
	return prog.ID, nil
}

// lookup finds the live program with the given handle in the authoritative,
// never-evicted store.
func (m *ShaderManager) lookup(handle ShaderProgramHandle) (*ShaderProgram, bool) {
	p, ok := m.byID[handle]
	return p, ok
}

// Bind sets the active program on the backend; a no-op if handle is already
// bound, matching the batcher's flush-time state-change tracking.
func (m *ShaderManager) Bind(handle ShaderProgramHandle) error {
	if m.disposed {
		return ErrDisposed
	}
	if _, ok := m.lookup(handle); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProgram, handle)
	}
	m.bound = handle
	return nil
}

// Bound reports the handle currently bound, if any.
func (m *ShaderManager) Bound() (ShaderProgramHandle, bool) {
	return m.bound, m.bound != invalidHandle
}

// SetUniform assigns value to the named uniform on handle's program, type
// checking it against the program's reflection is the backend compiler's
// responsibility; this layer only validates the uniform exists.
func (m *ShaderManager) SetUniform(handle ShaderProgramHandle, name string, value any) error {
	if m.disposed {
		return ErrDisposed
	}
	prog, ok := m.lookup(handle)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProgram, handle)
	}
	if _, ok := prog.UniformLocations[name]; !ok {
		return fmt.Errorf("%w: %q on program %q", ErrUnknownUniform, name, prog.Name)
	}
	_ = value // backend-specific upload; the software backend has no uniforms to upload to.
	return nil
}

// Dispose frees every compiled program. The manager must not be used
// afterward.
func (m *ShaderManager) Dispose() {
	if m.disposed {
		return
	}
	m.programs = nil
	m.sources = nil
	m.byID = nil
	m.bound = invalidHandle
	m.disposed = true
}

// ErrDisposed is returned by any operation on a disposed ShaderManager.
var ErrDisposed = fmt.Errorf("shadermgr: manager disposed")

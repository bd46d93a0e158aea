package shadermgr

import (
	"fmt"
	"sort"
	"strings"
)

// ShaderProgramHandle is an opaque reference to a compiled, linked program.
type ShaderProgramHandle uint32

// invalidHandle is returned alongside an error when compilation fails.
const invalidHandle ShaderProgramHandle = 0

// UniformLocation is a backend-resolved uniform slot, -1 if the program
// reflection found no uniform of that name.
type UniformLocation int32

// ShaderSource is a registered template: the raw GLSL/WGSL text plus the
// defines it was authored to accept. register stores this verbatim;
// compilation happens lazily on the first GetOrCompile miss for a given
// defines set.
type ShaderSource struct {
	Name           string
	VertexSrc      string
	FragmentSrc    string
	DefaultDefines map[string]string
}

// ShaderProgram is a compiled, linked program plus its attribute/uniform
// reflection. Owned exclusively by ShaderManager; callers hold only its
// handle.
type ShaderProgram struct {
	ID               ShaderProgramHandle
	Name             string
	AttribLocations  map[string]int32
	UniformLocations map[string]UniformLocation
	Defines          map[string]string
}

// CompiledProgram is what a Compiler hands back on a successful compile:
// the reflection data ShaderManager wraps into a ShaderProgram.
type CompiledProgram struct {
	AttribLocations  map[string]int32
	UniformLocations map[string]UniformLocation
}

// Compiler is the backend-supplied compile+link step. The software backend
// implements it as a no-op that still derives reflection from source text;
// the native and rust backends validate each stage through naga first, and
// the translated text is not handed to a device.
type Compiler interface {
	Compile(src ShaderSource, defines map[string]string) (CompiledProgram, error)
}

// ShaderCompileFailedError reports a compile-stage failure for one shader
// stage (vertex or fragment).
type ShaderCompileFailedError struct {
	Stage string
	Log   string
}

func (e *ShaderCompileFailedError) Error() string {
	return fmt.Sprintf("shadermgr: compile failed (%s): %s", e.Stage, e.Log)
}

// ShaderLinkFailedError reports a link-stage failure.
type ShaderLinkFailedError struct {
	Log string
}

func (e *ShaderLinkFailedError) Error() string {
	return fmt.Sprintf("shadermgr: link failed: %s", e.Log)
}

// ErrUnknownShader is returned when a name has not been registered.
var ErrUnknownShader = fmt.Errorf("shadermgr: unknown shader name")

// ErrUnknownProgram is returned by Bind/SetUniform/Dispose path operations
// given a handle that does not name a live program.
var ErrUnknownProgram = fmt.Errorf("shadermgr: unknown program handle")

// ErrUnknownUniform is returned by SetUniform when the program's reflection
// has no uniform of that name.
var ErrUnknownUniform = fmt.Errorf("shadermgr: unknown uniform")

// cacheKey derives a deterministic string key for (name, defines) so the
// program cache can use cache.StringHasher for shard selection.
func cacheKey(name string, defines map[string]string) string {
	if len(defines) == 0 {
		return name
	}
	keys := make([]string, 0, len(defines))
	for k := range defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(defines[k])
	}
	return b.String()
}

// mergeDefines layers overrides on top of defaults without mutating either.
func mergeDefines(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

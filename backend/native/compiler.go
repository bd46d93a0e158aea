// Package native provides a pure-Go GPU-accelerated rendering backend over
// gogpu/wgpu, translating shader sources through gogpu/naga. Device
// acquisition is the host application's responsibility (see
// [render.DeviceHandle]); this package never creates a device itself.
package native

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg/shadermgr"
	"github.com/gogpu/naga"
)

// nagaCompiler runs each shader stage through naga's WGSL-to-SPIR-V
// translator as a validation pass, then derives attribute/uniform
// reflection from the source text the way the software compiler does.
// A real HAL pipeline build (binding naga's SPIR-V output to a
// hal.ShaderModule) is left to a host integration that owns a live
// gpucontext.Device; this package only proves the shader text translates.
type nagaCompiler struct{}

// Compile implements shadermgr.Compiler.
func (nagaCompiler) Compile(src shadermgr.ShaderSource, defines map[string]string) (shadermgr.CompiledProgram, error) {
	vsrc := applyDefines(src.VertexSrc, defines)
	fsrc := applyDefines(src.FragmentSrc, defines)

	if _, err := naga.Compile(vsrc); err != nil {
		return shadermgr.CompiledProgram{}, &shadermgr.ShaderCompileFailedError{Stage: "vertex", Log: err.Error()}
	}
	if _, err := naga.Compile(fsrc); err != nil {
		return shadermgr.CompiledProgram{}, &shadermgr.ShaderCompileFailedError{Stage: "fragment", Log: err.Error()}
	}

	attribs := reflectNames(vsrc, "attribute", "in")
	uniforms := reflectNames(vsrc+"\n"+fsrc, "uniform")

	attribLocations := make(map[string]int32, len(attribs))
	for i, name := range attribs {
		attribLocations[name] = int32(i)
	}
	uniformLocations := make(map[string]shadermgr.UniformLocation, len(uniforms))
	for i, name := range uniforms {
		uniformLocations[name] = shadermgr.UniformLocation(i)
	}

	return shadermgr.CompiledProgram{
		AttribLocations:  attribLocations,
		UniformLocations: uniformLocations,
	}, nil
}

// applyDefines prepends a #define line per entry, the way a preprocessor
// pass ahead of naga translation would.
func applyDefines(src string, defines map[string]string) string {
	if len(defines) == 0 {
		return src
	}
	var b strings.Builder
	for k, v := range defines {
		fmt.Fprintf(&b, "#define %s %s\n", k, v)
	}
	b.WriteString(src)
	return b.String()
}

func reflectNames(src string, qualifiers ...string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		matched := false
		for _, q := range qualifiers {
			if fields[0] == q {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		name := strings.TrimSuffix(fields[len(fields)-1], ";")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

//go:build rust

package rust

import (
	"strings"

	"github.com/gogpu/gg/shadermgr"
	"github.com/gogpu/naga"
)

// wgslCompiler translates each shader stage to SPIR-V via naga before
// wgpu-native consumes it, and derives attribute/uniform reflection from the
// source text.
type wgslCompiler struct{}

func (wgslCompiler) Compile(src shadermgr.ShaderSource, defines map[string]string) (shadermgr.CompiledProgram, error) {
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

func applyDefines(src string, defines map[string]string) string {
	if len(defines) == 0 {
		return src
	}
	var b strings.Builder
	for k, v := range defines {
		b.WriteString("#define ")
		b.WriteString(k)
		b.WriteByte(' ')
		b.WriteString(v)
		b.WriteByte('\n')
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

package shadermgr

import "strings"

// NoopCompiler is the software backend's Compiler: it performs no actual
// compilation or linking, but still derives attribute/uniform reflection
// from the source text by scanning for `attribute`/`in` and `uniform`
// declarations, the way a real compiler's reflection step would report
// them. This keeps the rest of the pipeline (attribute/uniform location
// lookups) backend-agnostic even when the software backend never runs a
// shader compiler.
type NoopCompiler struct{}

// Compile implements Compiler.
func (NoopCompiler) Compile(src ShaderSource, _ map[string]string) (CompiledProgram, error) {
	attribs := reflectDeclarations(src.VertexSrc, "attribute", "in")
	uniforms := reflectDeclarations(src.VertexSrc+"\n"+src.FragmentSrc, "uniform")

	attribLocations := make(map[string]int32, len(attribs))
	for i, name := range attribs {
		attribLocations[name] = int32(i)
	}
	uniformLocations := make(map[string]UniformLocation, len(uniforms))
	for i, name := range uniforms {
		uniformLocations[name] = UniformLocation(i)
	}

	return CompiledProgram{
		AttribLocations:  attribLocations,
		UniformLocations: uniformLocations,
	}, nil
}

// reflectDeclarations scans src line by line for declarations beginning
// with one of qualifiers (e.g. "attribute vec2 aPos;") and returns the
// declared identifier names in order of appearance, deduplicated.
func reflectDeclarations(src string, qualifiers ...string) []string {
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

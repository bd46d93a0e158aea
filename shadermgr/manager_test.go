package shadermgr

import (
	"errors"
	"testing"
)

const testVertexSrc = `
attribute vec2 aPos;
attribute vec4 aColor;
uniform mat3 uProjection;
void main() {}
`

const testFragmentSrc = `
uniform sampler2D uTexture;
void main() {}
`

func defaultTestSource() ShaderSource {
	return ShaderSource{
		Name:        "default",
		VertexSrc:   testVertexSrc,
		FragmentSrc: testFragmentSrc,
	}
}

func TestGetOrCompileCachesByNameAndDefines(t *testing.T) {
	m := NewShaderManager(NoopCompiler{})
	m.Register(defaultTestSource())

	h1, err := m.GetOrCompile("default", nil)
	if err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}
	h2, err := m.GetOrCompile("default", nil)
	if err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected cache hit to return same handle, got %d and %d", h1, h2)
	}

	h3, err := m.GetOrCompile("default", map[string]string{"TEXTURED": "1"})
	if err != nil {
		t.Fatalf("GetOrCompile with defines: %v", err)
	}
	if h3 == h1 {
		t.Fatal("distinct defines should produce a distinct program handle")
	}
}

func TestGetOrCompileUnknownShader(t *testing.T) {
	m := NewShaderManager(NoopCompiler{})
	_, err := m.GetOrCompile("missing", nil)
	if !errors.Is(err, ErrUnknownShader) {
		t.Fatalf("got %v, want ErrUnknownShader", err)
	}
}

func TestReflectionPopulatesLocations(t *testing.T) {
	m := NewShaderManager(NoopCompiler{})
	m.Register(defaultTestSource())

	handle, err := m.GetOrCompile("default", nil)
	if err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}
	prog, ok := m.lookup(handle)
	if !ok {
		t.Fatal("lookup failed for freshly compiled handle")
	}
	if _, ok := prog.AttribLocations["aPos"]; !ok {
		t.Fatal("expected aPos attribute location")
	}
	if _, ok := prog.UniformLocations["uProjection"]; !ok {
		t.Fatal("expected uProjection uniform location")
	}
	if _, ok := prog.UniformLocations["uTexture"]; !ok {
		t.Fatal("expected uTexture uniform location from fragment source")
	}
}

func TestBindNoOpWhenAlreadyBound(t *testing.T) {
	m := NewShaderManager(NoopCompiler{})
	m.Register(defaultTestSource())
	handle, _ := m.GetOrCompile("default", nil)

	if err := m.Bind(handle); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := m.Bind(handle); err != nil {
		t.Fatalf("Bind again: %v", err)
	}
	bound, ok := m.Bound()
	if !ok || bound != handle {
		t.Fatalf("Bound() = (%d, %v), want (%d, true)", bound, ok, handle)
	}
}

func TestSetUniformUnknown(t *testing.T) {
	m := NewShaderManager(NoopCompiler{})
	m.Register(defaultTestSource())
	handle, _ := m.GetOrCompile("default", nil)

	if err := m.SetUniform(handle, "uProjection", nil); err != nil {
		t.Fatalf("SetUniform known uniform: %v", err)
	}
	err := m.SetUniform(handle, "uDoesNotExist", nil)
	if !errors.Is(err, ErrUnknownUniform) {
		t.Fatalf("got %v, want ErrUnknownUniform", err)
	}
}

func TestDisposeRejectsFurtherUse(t *testing.T) {
	m := NewShaderManager(NoopCompiler{})
	m.Register(defaultTestSource())
	handle, _ := m.GetOrCompile("default", nil)
	m.Dispose()
	m.Dispose() // idempotent

	if _, err := m.GetOrCompile("default", nil); !errors.Is(err, ErrDisposed) {
		t.Fatalf("GetOrCompile after Dispose: got %v, want ErrDisposed", err)
	}
	if err := m.Bind(handle); !errors.Is(err, ErrDisposed) {
		t.Fatalf("Bind after Dispose: got %v, want ErrDisposed", err)
	}
}

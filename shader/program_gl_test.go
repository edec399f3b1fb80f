package shader_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/richinsley/goshaderplay/internal/gltest"
	"github.com/richinsley/goshaderplay/shader"
)

const playerFragment = `#version 410 core
uniform vec3 iResolution;
uniform float iTime;
uniform int iFrame;
uniform vec4 iMouse;
uniform sampler2D iChannel0;
out vec4 fragColor;
void main() {
    vec2 uv = gl_FragCoord.xy / iResolution.xy;
    vec4 n = texture(iChannel0, uv);
    fragColor = n + vec4(iTime, float(iFrame), iMouse.x + iMouse.z, iMouse.y + iMouse.w);
}
`

func TestCompileStageReportsNumberedSource(t *testing.T) {
	gltest.Context(t)

	src := "#version 410 core\nout vec4 fragColor;\nvoid main() {\n    fragColor = undefinedColor;\n}\n"
	id, err := shader.CompileStage(shader.Fragment, src)
	if err == nil {
		t.Fatalf("CompileStage() = %d, want error", id)
	}
	var ce *shader.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("CompileStage() error = %T, want *CompileError", err)
	}
	if ce.Kind != shader.Fragment {
		t.Errorf("Kind = %v, want fragment", ce.Kind)
	}
	if ce.Log == "" {
		t.Error("Log is empty")
	}
	if ce.Source != shader.NumberLines(src) {
		t.Errorf("Source = %q, want numbered source", ce.Source)
	}
	if !strings.HasPrefix(ce.Source, "1: #version 410 core\n2: ") {
		t.Errorf("Source does not start with line numbers: %q", ce.Source)
	}
}

func TestLinkProgramInterfaceMismatch(t *testing.T) {
	gltest.Context(t)

	vs, err := shader.CompileStage(shader.Vertex, `#version 410 core
out vec2 vPos;
void main() {
    vPos = vec2(0.0);
    gl_Position = vec4(0.0, 0.0, 0.0, 1.0);
}
`)
	if err != nil {
		t.Fatalf("vertex stage: %v", err)
	}
	fs, err := shader.CompileStage(shader.Fragment, `#version 410 core
in vec3 vPos;
out vec4 fragColor;
void main() {
    fragColor = vec4(vPos, 1.0);
}
`)
	if err != nil {
		t.Fatalf("fragment stage: %v", err)
	}

	id, err := shader.LinkProgram(vs, fs)
	if err == nil {
		t.Fatalf("LinkProgram() = %d, want error", id)
	}
	var le *shader.LinkError
	if !errors.As(err, &le) {
		t.Fatalf("LinkProgram() error = %T, want *LinkError", err)
	}
	if le.Log == "" {
		t.Error("Log is empty")
	}
}

func TestBuildResolvesPlayerUniforms(t *testing.T) {
	gltest.Context(t)

	p, err := shader.Build(shader.GenerateVertexShader(false), playerFragment, shader.BuildOptions{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer p.Release()

	for _, name := range []string{"iResolution", "iTime", "iFrame", "iMouse", "iChannel0"} {
		if loc := p.UniformLocation(name); loc == shader.NotPresent {
			t.Errorf("UniformLocation(%q) = NotPresent", name)
		}
	}
	if loc := p.UniformLocation("iDate"); loc != shader.NotPresent {
		t.Errorf("UniformLocation(iDate) = %d, want NotPresent", loc)
	}
}

func TestBuildFailsOnBadFragment(t *testing.T) {
	gltest.Context(t)

	_, err := shader.Build(shader.GenerateVertexShader(false), "#version 410 core\nvoid main() { nope }\n", shader.BuildOptions{})
	var ce *shader.CompileError
	if !errors.As(err, &ce) || ce.Kind != shader.Fragment {
		t.Fatalf("Build() error = %v, want fragment *CompileError", err)
	}
}

package shader

import (
	"fmt"
	"log"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	xlate "github.com/richinsley/goshaderplay/translator"
)

// NotPresent is the location returned for uniforms the program does not use.
const NotPresent int32 = -1

// StageKind selects the shader stage to compile.
type StageKind int

const (
	Vertex StageKind = iota
	Fragment
)

func (k StageKind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("StageKind(%d)", int(k))
	}
}

func (k StageKind) glType() uint32 {
	if k == Fragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// Program is a linked shader program together with the two stages it was
// built from. It is immutable once built.
type Program struct {
	ID       uint32
	Vertex   uint32
	Fragment uint32

	// declared uniform name -> name in the compiled code, set when a stage
	// went through the translator
	mappedNames map[string]string
}

// BuildOptions controls how sources are prepared before compilation.
type BuildOptions struct {
	// GLES is set when the current context is OpenGL ES.
	GLES bool
	// NoTranslate disables translation of WebGL2 sources.
	NoTranslate bool
}

// Build compiles both stages and links them. WebGL2 sources are translated
// for desktop GL first unless disabled.
func Build(vertexSource, fragmentSource string, opts BuildOptions) (*Program, error) {
	p := &Program{mappedNames: make(map[string]string)}

	vs, err := p.prepare(Vertex, vertexSource, opts)
	if err != nil {
		return nil, err
	}
	fs, err := p.prepare(Fragment, fragmentSource, opts)
	if err != nil {
		return nil, err
	}

	p.Vertex, err = CompileStage(Vertex, vs)
	if err != nil {
		return nil, err
	}
	p.Fragment, err = CompileStage(Fragment, fs)
	if err != nil {
		gl.DeleteShader(p.Vertex)
		return nil, err
	}
	p.ID, err = LinkProgram(p.Vertex, p.Fragment)
	if err != nil {
		gl.DeleteShader(p.Vertex)
		gl.DeleteShader(p.Fragment)
		return nil, err
	}
	return p, nil
}

func (p *Program) prepare(kind StageKind, source string, opts BuildOptions) (string, error) {
	if opts.NoTranslate || !xlate.NeedsTranslation(source, opts.GLES) {
		return source, nil
	}
	res, err := xlate.Translate(source, kind.String(), opts.GLES)
	if err != nil {
		log.Printf("%s shader translation failed:\n%s", kind, NumberLines(source))
		return "", &CompileError{Kind: kind, Log: err.Error(), Source: NumberLines(source)}
	}
	for name, mapped := range res.Uniforms {
		p.mappedNames[name] = mapped
	}
	return res.Code, nil
}

// CompileStage compiles source as a shader of the given kind and returns its handle.
func CompileStage(kind StageKind, source string) (uint32, error) {
	shader := gl.CreateShader(kind.glType())
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)

		numbered := NumberLines(source)
		log.Printf("%s shader source:\n%s", kind, numbered)
		return 0, &CompileError{Kind: kind, Log: trimLog(logText), Source: numbered}
	}
	return shader, nil
}

// LinkProgram attaches both stages and links them into a program.
func LinkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, &LinkError{Log: trimLog(logText)}
	}
	return program, nil
}

// MappedName returns the name a declared uniform has in the compiled code.
func (p *Program) MappedName(name string) string {
	if mapped, ok := p.mappedNames[name]; ok {
		return mapped
	}
	return name
}

// UniformLocation resolves a uniform by its declared name. It returns
// NotPresent when the program has no such active uniform.
func (p *Program) UniformLocation(name string) int32 {
	return gl.GetUniformLocation(p.ID, gl.Str(p.MappedName(name)+"\x00"))
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Release deletes the program and both stages.
func (p *Program) Release() {
	if p == nil || p.ID == 0 {
		return
	}
	gl.DeleteProgram(p.ID)
	gl.DeleteShader(p.Vertex)
	gl.DeleteShader(p.Fragment)
	p.ID, p.Vertex, p.Fragment = 0, 0, 0
}

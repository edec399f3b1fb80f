package renderer

import (
	"fmt"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshaderplay/graphics"
	"github.com/richinsley/goshaderplay/inputs"
	"github.com/richinsley/goshaderplay/shader"
)

// Ensures gl.Init() is called only once.
var (
	glInitOnce sync.Once
	glInitErr  error
)

// InitGL loads the OpenGL function pointers for the current context.
func InitGL() error {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return &graphics.UnsupportedEnvironmentError{Reason: "failed to initialize OpenGL", Err: glInitErr}
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

// Uniform names exposed to shader authors.
const (
	UniformResolution = "iResolution"
	UniformTime       = "iTime"
	UniformFrame      = "iFrame"
	UniformMouse      = "iMouse"
	UniformChannel0   = "iChannel0"
)

// UniformBindings holds the uniform locations resolved once after linking.
// Locations of uniforms the program does not use are shader.NotPresent.
type UniformBindings struct {
	Resolution int32
	Time       int32
	Frame      int32
	Mouse      int32
	Channel0   int32
}

// UniformLocator resolves a uniform by name.
type UniformLocator interface {
	UniformLocation(name string) int32
}

// ResolveBindings looks up every fixed uniform name.
func ResolveBindings(p UniformLocator) UniformBindings {
	return UniformBindings{
		Resolution: p.UniformLocation(UniformResolution),
		Time:       p.UniformLocation(UniformTime),
		Frame:      p.UniformLocation(UniformFrame),
		Mouse:      p.UniformLocation(UniformMouse),
		Channel0:   p.UniformLocation(UniformChannel0),
	}
}

// Missing returns the names of uniforms the program does not use.
func (b UniformBindings) Missing() []string {
	var names []string
	for _, u := range []struct {
		name string
		loc  int32
	}{
		{UniformResolution, b.Resolution},
		{UniformTime, b.Time},
		{UniformFrame, b.Frame},
		{UniformMouse, b.Mouse},
		{UniformChannel0, b.Channel0},
	} {
		if u.loc == shader.NotPresent {
			names = append(names, u.name)
		}
	}
	return names
}

// GLBackend renders the program into a BackingStore with a single draw of
// three vertices. The vertex stage synthesizes the triangle, so only an empty
// vertex array is bound.
type GLBackend struct {
	program  *shader.Program
	bindings UniformBindings
	vao      uint32
	channel0 inputs.IChannel
	store    *BackingStore
}

// NewGLBackend binds the program, resolves its uniforms and points iChannel0
// at texture unit 0. The backend takes ownership of channel0 and binds it to
// unit 0 before every draw.
func NewGLBackend(program *shader.Program, channel0 inputs.IChannel) (*GLBackend, error) {
	b := &GLBackend{program: program, channel0: channel0}

	program.Use()
	b.bindings = ResolveBindings(program)
	if missing := b.bindings.Missing(); len(missing) > 0 {
		log.Printf("Program does not use uniforms: %v", missing)
	}
	if b.bindings.Channel0 != shader.NotPresent {
		gl.Uniform1i(b.bindings.Channel0, 0)
	}
	if channel0 != nil {
		res := channel0.ChannelRes()
		log.Printf("iChannel0: %s %.0fx%.0f", channel0.GetCType(), res[0], res[1])
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	var err error
	b.store, err = NewBackingStore(1, 1)
	if err != nil {
		gl.DeleteVertexArrays(1, &b.vao)
		return nil, fmt.Errorf("failed to create backing store: %w", err)
	}
	return b, nil
}

// Resize reallocates the backing store and resets the viewport.
func (b *GLBackend) Resize(width, height int) {
	b.store.Resize(width, height)
	b.store.Bind()
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Draw pushes the per-frame uniforms and draws the full-screen triangle.
func (b *GLBackend) Draw(u *inputs.Uniforms) {
	b.store.Bind()
	b.program.Use()
	if b.channel0 != nil {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, b.channel0.GetTextureID())
	}
	if b.bindings.Resolution != shader.NotPresent {
		gl.Uniform3f(b.bindings.Resolution, u.Resolution[0], u.Resolution[1], u.Resolution[2])
	}
	if b.bindings.Time != shader.NotPresent {
		gl.Uniform1f(b.bindings.Time, u.Time)
	}
	if b.bindings.Frame != shader.NotPresent {
		gl.Uniform1i(b.bindings.Frame, u.Frame)
	}
	if b.bindings.Mouse != shader.NotPresent {
		gl.Uniform4f(b.bindings.Mouse, u.Mouse[0], u.Mouse[1], u.Mouse[2], u.Mouse[3])
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

// Present stretches the backing store onto the window framebuffer.
func (b *GLBackend) Present(targetWidth, targetHeight int) {
	b.store.BlitTo(targetWidth, targetHeight)
}

// ReadPixels implements PixelReader.
func (b *GLBackend) ReadPixels() (int, int, []byte) {
	w, h := b.store.Size()
	return w, h, b.store.ReadPixels()
}

// Release deletes every GL object the backend owns, including the program.
func (b *GLBackend) Release() {
	if b.store != nil {
		b.store.Destroy()
		b.store = nil
	}
	if b.channel0 != nil {
		b.channel0.Destroy()
		b.channel0 = nil
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	b.program.Release()
}

var (
	_ Backend     = (*GLBackend)(nil)
	_ PixelReader = (*GLBackend)(nil)
)

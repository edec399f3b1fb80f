package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goshaderplay/graphics"
	"github.com/richinsley/goshaderplay/inputs"
)

// Context is a GLFW window with an OpenGL 4.1 core context. Pointer events
// are forwarded to a PointerTracker.
type Context struct {
	window   *glfw.Window
	pointer  *inputs.PointerTracker
	onResize func()
}

// New creates a window of the given size. A hidden window still gets a
// usable context. pointer may be nil.
func New(width, height int, title string, visible bool, pointer *inputs.PointerTracker) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, &graphics.UnsupportedEnvironmentError{Reason: "failed to create OpenGL 4.1 window", Err: err}
	}

	c := &Context{
		window:  win,
		pointer: pointer,
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)
	win.SetSizeCallback(c.glfwSizeCallback)

	return c, nil
}

// OnResize registers a function called after the window size changes.
func (c *Context) OnResize(f func()) {
	c.onResize = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if c.pointer == nil {
		return
	}
	// Cursor coordinates are relative to the content area.
	winWidth, winHeight := w.GetSize()
	rect := inputs.Rect{Right: float64(winWidth), Bottom: float64(winHeight)}
	c.pointer.Move(xpos, ypos, rect, c.DevicePixelRatio())
}

func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if c.pointer == nil || button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		c.pointer.Press()
	case glfw.Release:
		c.pointer.Release()
	}
}

func (c *Context) glfwSizeCallback(w *glfw.Window, width, height int) {
	if c.onResize != nil {
		c.onResize()
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
	glfw.SwapInterval(1)
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// EndFrame swaps buffers, which blocks on the refresh interval, and polls events.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) LogicalSize() (int, int) {
	return c.window.GetSize()
}

func (c *Context) DevicePixelRatio() float64 {
	fbWidth, _ := c.window.GetFramebufferSize()
	winWidth, _ := c.window.GetSize()
	if winWidth <= 0 || fbWidth <= 0 {
		return 1
	}
	return float64(fbWidth) / float64(winWidth)
}

func (c *Context) FramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

func (c *Context) IsGLES() bool {
	// GLFW does not provide a direct way to check if the context is GLES.
	return false
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return &graphics.UnsupportedEnvironmentError{Reason: "failed to initialize GLFW", Err: err}
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

var _ graphics.Context = (*Context)(nil)

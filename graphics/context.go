package graphics

import "fmt"

// Context defines the interface for the window and OpenGL context hosting the
// render loop.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame, waits for the refresh signal and
	// dispatches pending input events.
	EndFrame()
	// LogicalSize returns the window size in screen coordinates.
	LogicalSize() (int, int)
	// DevicePixelRatio returns the ratio of framebuffer pixels to screen coordinates.
	DevicePixelRatio() float64
	FramebufferSize() (int, int)
	// Time returns seconds since the context was initialized.
	Time() float64
	IsGLES() bool
}

// UnsupportedEnvironmentError reports that no usable window or rendering
// context is available.
type UnsupportedEnvironmentError struct {
	Reason string
	Err    error
}

func (e *UnsupportedEnvironmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsupported environment: %s: %v", e.Reason, e.Err)
	}
	return "unsupported environment: " + e.Reason
}

func (e *UnsupportedEnvironmentError) Unwrap() error {
	return e.Err
}

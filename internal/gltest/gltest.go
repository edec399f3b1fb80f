// Package gltest provides a hidden OpenGL 4.1 context for tests that need
// real GL objects.
package gltest

import (
	"errors"
	"runtime"
	"testing"

	"github.com/richinsley/goshaderplay/glfwcontext"
	"github.com/richinsley/goshaderplay/graphics"
	"github.com/richinsley/goshaderplay/renderer"
)

// Context makes a hidden window's context current on the calling test's
// thread and tears it down when the test ends. The test is skipped when the
// host has no display or no OpenGL 4.1.
func Context(t testing.TB) {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	if err := glfwcontext.InitGraphics(); err != nil {
		skipUnsupported(t, err)
	}
	t.Cleanup(glfwcontext.TerminateGraphics)

	window, err := glfwcontext.New(64, 64, "gltest", false, nil)
	if err != nil {
		skipUnsupported(t, err)
	}
	t.Cleanup(window.Shutdown)

	window.MakeCurrent()
	if err := renderer.InitGL(); err != nil {
		skipUnsupported(t, err)
	}
}

func skipUnsupported(t testing.TB, err error) {
	t.Helper()
	var ue *graphics.UnsupportedEnvironmentError
	if errors.As(err, &ue) {
		t.Skipf("no OpenGL: %v", ue)
	}
	t.Fatalf("unexpected error: %v", err)
}

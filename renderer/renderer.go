package renderer

import (
	"context"
	"log"

	"github.com/richinsley/goshaderplay/graphics"
	"github.com/richinsley/goshaderplay/inputs"
	"github.com/richinsley/goshaderplay/surface"
)

// Backend issues the GPU work for one frame.
type Backend interface {
	surface.Backing
	// Draw pushes the uniforms and issues the single full-screen draw call.
	Draw(u *inputs.Uniforms)
	// Present scales the backing store onto a target of the given size.
	Present(targetWidth, targetHeight int)
	Release()
}

// PixelReader is implemented by backends that can read back the last frame.
type PixelReader interface {
	ReadPixels() (width, height int, rgba []byte)
}

// FrameSink receives every rendered frame, bottom row first.
type FrameSink interface {
	WriteFrame(width, height int, rgba []byte) error
}

// State is the frame driver lifecycle state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// FrameClock counts frames from a fixed start timestamp.
type FrameClock struct {
	Start float64 // seconds
	Frame int32
}

// Elapsed returns the seconds since Start.
func (c *FrameClock) Elapsed(now float64) float32 {
	return float32(now - c.Start)
}

// Config holds the frame driver settings.
type Config struct {
	XScale    float64
	YScale    float64
	DPRCap    float64
	MaxFrames int       // stop after this many frames, 0 for no limit
	Sink      FrameSink // optional
}

// Renderer owns all mutable render-loop state. Pointer events mutate it
// through the PointerTracker, everything else through Tick.
type Renderer struct {
	context   graphics.Context
	backend   Backend
	sizer     *surface.Sizer
	pointer   *inputs.PointerTracker
	clock     FrameClock
	state     State
	maxFrames int
	sink      FrameSink
	uniforms  inputs.Uniforms
}

// NewRenderer wires the frame driver to its host context and backend.
func NewRenderer(ctx graphics.Context, backend Backend, pointer *inputs.PointerTracker, cfg Config) *Renderer {
	if pointer == nil {
		pointer = &inputs.PointerTracker{}
	}
	return &Renderer{
		context:   ctx,
		backend:   backend,
		sizer:     surface.NewSizer(cfg.XScale, cfg.YScale, cfg.DPRCap),
		pointer:   pointer,
		maxFrames: cfg.MaxFrames,
		sink:      cfg.Sink,
	}
}

// Resize brings the backing store in line with the window. It is a no-op
// when the computed size did not change.
func (r *Renderer) Resize() {
	w, h := r.context.LogicalSize()
	if r.sizer.Resize(w, h, r.context.DevicePixelRatio(), r.backend) {
		pw, ph := r.sizer.Size()
		log.Printf("Backing store resized to %dx%d (window %dx%d)", pw, ph, w, h)
	}
}

// Start fixes the start timestamp and moves the driver to Running.
func (r *Renderer) Start(now float64) {
	if r.state == Running {
		return
	}
	r.clock = FrameClock{Start: now}
	r.state = Running
}

// Tick renders one frame at time now (seconds, same clock as Start).
func (r *Renderer) Tick(now float64) {
	r.Resize()

	w, h := r.sizer.Size()
	r.uniforms.Resolution = [3]float32{float32(w), float32(h), 1.0}
	r.uniforms.Time = r.clock.Elapsed(now)
	r.uniforms.Frame = r.clock.Frame
	r.clock.Frame++
	r.uniforms.Mouse = r.pointer.Mouse()

	r.backend.Draw(&r.uniforms)
	r.capture()
	r.backend.Present(r.context.FramebufferSize())
}

func (r *Renderer) capture() {
	if r.sink == nil {
		return
	}
	reader, ok := r.backend.(PixelReader)
	if !ok {
		return
	}
	w, h, pixels := reader.ReadPixels()
	if err := r.sink.WriteFrame(w, h, pixels); err != nil {
		log.Printf("Frame capture stopped: %v", err)
		r.sink = nil
	}
}

// Run drives the loop until ctx is cancelled, the window is closed or the
// frame limit is reached. Cancellation returns ctx.Err().
func (r *Renderer) Run(ctx context.Context) error {
	r.Resize()
	r.Start(r.context.Time())
	log.Println("Starting render loop...")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if r.context.ShouldClose() {
			return nil
		}

		r.Tick(r.context.Time())
		r.context.EndFrame()

		if r.maxFrames > 0 && int(r.clock.Frame) >= r.maxFrames {
			return nil
		}
	}
}

// State returns the lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// Clock returns the frame clock.
func (r *Renderer) Clock() FrameClock {
	return r.clock
}

// Uniforms returns the values pushed on the last tick.
func (r *Renderer) Uniforms() inputs.Uniforms {
	return r.uniforms
}

// Pointer returns the tracker feeding iMouse.
func (r *Renderer) Pointer() *inputs.PointerTracker {
	return r.pointer
}

// Shutdown releases the backend. The host context is shut down by its owner.
func (r *Renderer) Shutdown() {
	if r.backend != nil {
		r.backend.Release()
	}
}

package inputs

// Rect is the on-screen bounds of the render surface in logical coordinates.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// PointerState is the pointer position and drag anchor in device pixels,
// with the Y axis flipped so the origin is the bottom-left corner.
type PointerState struct {
	X, Y             float32
	AnchorX, AnchorY float32
}

// PointerTracker accumulates pointer events for the iMouse uniform.
//
// While a button is held every move re-latches the anchor to the live
// position, so the anchor follows the pointer until release and then stays
// where it was last seen.
type PointerTracker struct {
	state   PointerState
	pressed bool
}

// Move records a pointer move at client coordinates relative to rect.
// Values are not clamped to the surface.
func (t *PointerTracker) Move(clientX, clientY float64, rect Rect, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	x := float32((clientX - rect.Left) * dpr)
	y := float32((rect.Bottom - clientY) * dpr)
	t.state.X = x
	t.state.Y = y
	if t.pressed {
		t.state.AnchorX = x
		t.state.AnchorY = y
	}
}

// Press marks the primary button as held.
func (t *PointerTracker) Press() {
	t.pressed = true
}

// Release marks the primary button as released.
func (t *PointerTracker) Release() {
	t.pressed = false
}

// Pressed reports whether the button is currently held.
func (t *PointerTracker) Pressed() bool {
	return t.pressed
}

// State returns a copy of the current pointer state.
func (t *PointerTracker) State() PointerState {
	return t.state
}

// Mouse returns the iMouse vector (x, y, anchorX, anchorY).
func (t *PointerTracker) Mouse() [4]float32 {
	return [4]float32{t.state.X, t.state.Y, t.state.AnchorX, t.state.AnchorY}
}

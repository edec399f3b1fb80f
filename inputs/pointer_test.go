package inputs

import "testing"

var surfaceRect = Rect{Left: 10, Top: 20, Right: 810, Bottom: 620}

func TestPointerMoveFlipsY(t *testing.T) {
	var tr PointerTracker
	tr.Move(110, 120, surfaceRect, 2)

	got := tr.State()
	want := PointerState{X: 200, Y: 1000}
	if got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}
}

func TestPointerPressedReLatchesAnchor(t *testing.T) {
	var tr PointerTracker
	tr.Move(20, 600, surfaceRect, 1)
	tr.Press()

	for _, pos := range [][2]float64{{30, 590}, {50, 500}, {400, 300}} {
		tr.Move(pos[0], pos[1], surfaceRect, 1)
		m := tr.Mouse()
		if m[0] != m[2] || m[1] != m[3] {
			t.Fatalf("while pressed anchor %v,%v does not track position %v,%v", m[2], m[3], m[0], m[1])
		}
	}
	if m := tr.Mouse(); m != [4]float32{390, 320, 390, 320} {
		t.Errorf("Mouse() = %v", m)
	}
}

func TestPointerReleaseFreezesAnchor(t *testing.T) {
	var tr PointerTracker
	tr.Press()
	tr.Move(60, 520, surfaceRect, 1)
	tr.Release()
	tr.Move(210, 320, surfaceRect, 1)
	tr.Move(310, 220, surfaceRect, 1)

	want := [4]float32{300, 400, 50, 100}
	if got := tr.Mouse(); got != want {
		t.Errorf("Mouse() = %v, want %v", got, want)
	}
	if tr.Pressed() {
		t.Error("Pressed() = true after Release")
	}
}

func TestPointerPressWithoutMoveKeepsAnchor(t *testing.T) {
	var tr PointerTracker
	tr.Move(60, 520, surfaceRect, 1)
	tr.Press()
	if got := tr.Mouse(); got != [4]float32{50, 100, 0, 0} {
		t.Errorf("Mouse() = %v, anchor should only move on the next move event", got)
	}
}

func TestPointerNotClamped(t *testing.T) {
	var tr PointerTracker
	tr.Move(-90, 720, surfaceRect, 1)
	if got := tr.State(); got.X != -100 || got.Y != -100 {
		t.Errorf("State() = %+v, want -100,-100", got)
	}
}

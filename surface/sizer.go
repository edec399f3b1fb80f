package surface

import "math"

// Render scale and device-pixel-ratio defaults. The backing store is rendered
// at a fraction of the window size and stretched on present.
const (
	DefaultXScale = 0.3
	DefaultYScale = 0.3
	DefaultDPRCap = 1.0
)

// Backing is the render target whose pixel size the Sizer controls.
type Backing interface {
	// Resize reallocates the backing store and resets the viewport to cover it.
	Resize(width, height int)
}

// Surface holds the logical (window) size and the physical (backing-store) size.
type Surface struct {
	LogicalWidth  int
	LogicalHeight int
	Width         int
	Height        int
}

// Sizer computes the physical render resolution from the logical size.
type Sizer struct {
	XScale float64
	YScale float64
	DPRCap float64

	surface Surface
}

// NewSizer returns a Sizer with the given scale factors and DPR cap.
func NewSizer(xScale, yScale, dprCap float64) *Sizer {
	return &Sizer{XScale: xScale, YScale: yScale, DPRCap: dprCap}
}

// Compute returns max(1, floor(logical * min(dpr, DPRCap) * scale)) for both axes.
func (s *Sizer) Compute(logicalW, logicalH int, dpr float64) (int, int) {
	if dpr <= 0 {
		dpr = 1
	}
	if s.DPRCap > 0 {
		dpr = math.Min(dpr, s.DPRCap)
	}
	w := int(math.Floor(float64(logicalW) * dpr * s.XScale))
	h := int(math.Floor(float64(logicalH) * dpr * s.YScale))
	return max(1, w), max(1, h)
}

// Resize recomputes the physical size and reallocates the backing store only
// when it changed. It reports whether a reallocation happened.
func (s *Sizer) Resize(logicalW, logicalH int, dpr float64, b Backing) bool {
	s.surface.LogicalWidth = logicalW
	s.surface.LogicalHeight = logicalH

	w, h := s.Compute(logicalW, logicalH, dpr)
	if w == s.surface.Width && h == s.surface.Height {
		return false
	}
	s.surface.Width = w
	s.surface.Height = h
	if b != nil {
		b.Resize(w, h)
	}
	return true
}

// Surface returns the current sizes.
func (s *Sizer) Surface() Surface {
	return s.surface
}

// Size returns the current physical size.
func (s *Sizer) Size() (int, int) {
	return s.surface.Width, s.surface.Height
}

package inputs

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

func TestNoiseImageTexels(t *testing.T) {
	for _, size := range []int{1, 16, DefaultNoiseSize} {
		img := NoiseImage(size, rand.New(rand.NewPCG(1, uint64(size))))
		if got := img.Bounds().Dx() * img.Bounds().Dy(); got != size*size {
			t.Fatalf("size %d: %d texels, want %d", size, got, size*size)
		}
		if len(img.Pix) != size*size*4 {
			t.Fatalf("size %d: %d bytes, want %d", size, len(img.Pix), size*size*4)
		}
		for i := 0; i < size*size; i++ {
			p := img.Pix[i*4 : i*4+4]
			if p[0] != p[1] || p[1] != p[2] {
				t.Fatalf("texel %d is not grey: %v", i, p)
			}
			if p[3] != 255 {
				t.Fatalf("texel %d alpha = %d, want 255", i, p[3])
			}
		}
	}
}

func TestNoiseImageCoversRange(t *testing.T) {
	img := NoiseImage(DefaultNoiseSize, rand.New(rand.NewPCG(7, 11)))
	var seen [256]bool
	for i := 0; i < len(img.Pix); i += 4 {
		seen[img.Pix[i]] = true
	}
	for v, ok := range seen {
		if !ok {
			t.Errorf("value %d never drawn in %d texels", v, DefaultNoiseSize*DefaultNoiseSize)
		}
	}
}

func TestNoiseImageNotCached(t *testing.T) {
	a := NoiseImage(64, nil)
	b := NoiseImage(64, nil)
	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("two generations produced identical images")
	}
}

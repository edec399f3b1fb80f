package inputs

import (
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultNoiseSize is the edge length of the iChannel0 noise texture.
const DefaultNoiseSize = 256

// NoiseImage returns a size×size image of independent greyscale texels. Each
// texel draws one value in [0,255] for R, G and B; alpha is always 255.
func NoiseImage(size int, rng *rand.Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < size*size; i++ {
		var v uint8
		if rng != nil {
			v = uint8(rng.IntN(256))
		} else {
			v = uint8(rand.IntN(256))
		}
		p := img.Pix[i*4 : i*4+4 : i*4+4]
		p[0] = v
		p[1] = v
		p[2] = v
		p[3] = 255
	}
	return img
}

// NoiseChannel is a static greyscale noise texture, mipmapped and wrapped with
// repeat. It is never regenerated.
type NoiseChannel struct {
	textureID  uint32
	resolution [3]float32
}

// NewNoiseChannel generates a fresh noise image, uploads it and binds it to
// texture unit 0.
func NewNoiseChannel(size int) (*NoiseChannel, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid noise texture size %d", size)
	}
	img := NoiseImage(size, nil)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(size),
		int32(size),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	applyChannelSampling()

	return &NoiseChannel{
		textureID:  textureID,
		resolution: [3]float32{float32(size), float32(size), 1.0},
	}, nil
}

// --- IChannel Interface Implementation ---

func (c *NoiseChannel) GetCType() string {
	return "noise"
}

func (c *NoiseChannel) GetTextureID() uint32 {
	return c.textureID
}

func (c *NoiseChannel) ChannelRes() [3]float32 {
	return c.resolution
}

func (c *NoiseChannel) Destroy() {
	if c.textureID == 0 {
		return
	}
	gl.DeleteTextures(1, &c.textureID)
	c.textureID = 0
}

package inputs

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"log"

	// Decoders for image.Decode.
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ImageChannel is a static image texture that replaces the noise on iChannel0.
type ImageChannel struct {
	textureID  uint32
	resolution [3]float32
}

// vflip vertically flips the provided RGBA image so that the first row of
// the decoded image ends up at the top of the texture.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// DecodeImage decodes PNG or JPEG data into RGBA, flipped for upload.
func DecodeImage(data []byte) (*image.RGBA, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	log.Printf("Decoded %s image %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())

	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return vflip(rgba), nil
}

// NewImageChannel uploads rgba with the same sampling as the noise texture:
// mipmapped, linear filtering, repeat wrapping, bound to texture unit 0.
func NewImageChannel(rgba *image.RGBA) (*ImageChannel, error) {
	if rgba == nil || rgba.Bounds().Empty() {
		return nil, fmt.Errorf("input image is empty")
	}
	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	applyChannelSampling()

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return &ImageChannel{
		textureID: textureID,
		resolution: [3]float32{
			float32(width),
			float32(height),
			1.0,
		},
	}, nil
}

// --- IChannel Interface Implementation ---

func (c *ImageChannel) GetCType() string {
	return "texture"
}

func (c *ImageChannel) GetTextureID() uint32 {
	return c.textureID
}

func (c *ImageChannel) ChannelRes() [3]float32 {
	return c.resolution
}

func (c *ImageChannel) Destroy() {
	if c.textureID == 0 {
		return
	}
	gl.DeleteTextures(1, &c.textureID)
	c.textureID = 0
}

var (
	_ IChannel = (*ImageChannel)(nil)
	_ IChannel = (*NoiseChannel)(nil)
)

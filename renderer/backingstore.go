package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// BackingStore is the device-pixel render target the shader draws into. It
// is stretched onto the window when the frame is presented.
type BackingStore struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

// NewBackingStore allocates a render target of the given size.
func NewBackingStore(width, height int) (*BackingStore, error) {
	bs := &BackingStore{}

	gl.GenFramebuffers(1, &bs.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, bs.fbo)
	gl.GenTextures(1, &bs.textureID)
	// iChannel0 owns unit 0; allocate through unit 1 so its binding stays put.
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, bs.textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	bs.allocate(width, height)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, bs.textureID, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		bs.Destroy()
		return nil, fmt.Errorf("backing store framebuffer is not complete (status 0x%x)", status)
	}
	return bs, nil
}

func (bs *BackingStore) allocate(width, height int) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	bs.width = width
	bs.height = height
}

// Resize reallocates the color storage. The framebuffer stays bound for drawing.
func (bs *BackingStore) Resize(width, height int) {
	if width == bs.width && height == bs.height {
		return
	}
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, bs.textureID)
	bs.allocate(width, height)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Bind makes the backing store the draw target.
func (bs *BackingStore) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, bs.fbo)
}

// BlitTo copies the backing store onto the default framebuffer, scaling with
// linear filtering.
func (bs *BackingStore) BlitTo(targetWidth, targetHeight int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, bs.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(
		0, 0, int32(bs.width), int32(bs.height),
		0, 0, int32(targetWidth), int32(targetHeight),
		gl.COLOR_BUFFER_BIT, gl.LINEAR,
	)
	gl.BindFramebuffer(gl.FRAMEBUFFER, bs.fbo)
}

// ReadPixels returns the RGBA contents, bottom row first.
func (bs *BackingStore) ReadPixels() []byte {
	pixels := make([]byte, bs.width*bs.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, bs.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(bs.width), int32(bs.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Size returns the allocated size.
func (bs *BackingStore) Size() (int, int) {
	return bs.width, bs.height
}

func (bs *BackingStore) Destroy() {
	gl.DeleteFramebuffers(1, &bs.fbo)
	gl.DeleteTextures(1, &bs.textureID)
	bs.fbo, bs.textureID = 0, 0
}

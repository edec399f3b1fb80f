package inputs

// Uniforms holds the per-frame values pushed to the shader.
type Uniforms struct {
	Resolution [3]float32 // backing-store width, height, 1.0
	Time       float32    // seconds since the first frame
	Frame      int32      // 0-based frame counter
	Mouse      [4]float32 // x, y, anchor x, anchor y
}

// IChannel is a texture sampled through iChannel0.
type IChannel interface {
	// GetCType returns the kind of input, e.g. "noise".
	GetCType() string

	// GetTextureID returns the OpenGL texture ID bound to the sampler's unit.
	GetTextureID() uint32

	// ChannelRes returns the texture size as a vec3.
	ChannelRes() [3]float32

	// Destroy releases the texture.
	Destroy()
}

package inputs

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// applyChannelSampling sets the iChannel0 sampling on the bound 2D texture:
// trilinear minification, linear magnification, repeat on both axes.
func applyChannelSampling() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
}

package options

import (
	"flag"

	"github.com/richinsley/goshaderplay/surface"
)

// PlayerOptions holds the command line configuration.
type PlayerOptions struct {
	Help         *bool
	Base         *string // http(s) URL or local directory the shader paths resolve against
	VertexPath   *string // empty selects the built-in full-screen triangle stage
	FragmentPath *string
	Width        *int
	Height       *int
	XScale       *float64
	YScale       *float64
	DPRCap       *float64
	NoiseSize    *int
	Channel0     *string // image for iChannel0 instead of noise
	Frames       *int    // stop after this many frames, 0 runs until the window closes
	NoTranslate  *bool   // compile WebGL2 sources as-is
	// Recording options
	OutputFile *string // record frames to this file when set
	FPS        *int
	Codec      *string
	FFMPEGPath *string
}

// Register binds the options to fs.
func Register(fs *flag.FlagSet) *PlayerOptions {
	return &PlayerOptions{
		Help:         fs.Bool("help", false, "Show help message"),
		Base:         fs.String("base", ".", "Base URL or directory for shader sources"),
		VertexPath:   fs.String("vert", "shaders/vert.glsl", "Vertex shader path relative to -base (empty for the built-in stage)"),
		FragmentPath: fs.String("frag", "shaders/frag.glsl", "Fragment shader path relative to -base"),
		Width:        fs.Int("width", 1280, "Initial window width"),
		Height:       fs.Int("height", 720, "Initial window height"),
		XScale:       fs.Float64("xscale", surface.DefaultXScale, "Horizontal render scale"),
		YScale:       fs.Float64("yscale", surface.DefaultYScale, "Vertical render scale"),
		DPRCap:       fs.Float64("dprcap", surface.DefaultDPRCap, "Upper bound for the device pixel ratio"),
		NoiseSize:    fs.Int("noise", 256, "Edge length of the iChannel0 noise texture"),
		Channel0:     fs.String("channel0", "", "PNG or JPEG image for iChannel0 relative to -base (default: generated noise)"),
		Frames:       fs.Int("frames", 0, "Stop after this many frames (0 = run until closed)"),
		NoTranslate:  fs.Bool("no-translate", false, "Do not translate WebGL2 shader sources"),
		OutputFile:   fs.String("record", "", "Record rendered frames to this video file"),
		FPS:          fs.Int("fps", 60, "Frame rate of the recording"),
		Codec:        fs.String("codec", "h264", "Recording codec (h264 or hevc)"),
		FFMPEGPath:   fs.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
}

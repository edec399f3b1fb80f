// Package recorder pipes rendered frames into ffmpeg.
package recorder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame is one rendered frame, RGBA bottom row first.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Options configures the encoder.
type Options struct {
	Output     string
	FPS        int
	Codec      string // "h264" or "hevc"
	FFmpegPath string
}

// ErrClosed is returned by WriteFrame after Close.
var ErrClosed = errors.New("recorder closed")

const queueSize = 3

// Recorder encodes frames in a consumer goroutine. The frame size is fixed by
// the first frame written.
type Recorder struct {
	opts   Options
	width  int
	height int
	pts    int64

	frames  chan *Frame
	done    chan error
	started bool
	closed  bool
	err     error

	// run executes ffmpeg reading raw frames from in.
	run func(in io.Reader) error
}

// New creates a Recorder. ffmpeg is started on the first frame.
func New(opts Options) *Recorder {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	r := &Recorder{
		opts:   opts,
		frames: make(chan *Frame, queueSize),
		done:   make(chan error, 1),
	}
	r.run = r.runFFmpeg
	return r
}

func (r *Recorder) runFFmpeg(in io.Reader) error {
	cmd := ffmpeg.Input("pipe:", inputArgs(r.width, r.height, r.opts.FPS)).
		Output(r.opts.Output, outputArgs(r.opts.Codec, runtime.GOOS, r.opts.Output)).
		OverWriteOutput().WithInput(in).ErrorToStdOut()
	if r.opts.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(r.opts.FFmpegPath)
	}
	return cmd.Run()
}

func inputArgs(width, height, fps int) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}
}

// outputArgs picks the encoder per platform. GL rows arrive bottom first, so
// the frames are flipped; yuv420p needs even dimensions.
func outputArgs(codec, goos, output string) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		"vf":      "vflip,scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"pix_fmt": "yuv420p",
	}
	switch goos {
	case "darwin":
		if codec == "hevc" {
			args["c:v"] = "hevc_videotoolbox"
		} else {
			args["c:v"] = "h264_videotoolbox"
		}
		args["b:v"] = "25M"
	default:
		if codec == "hevc" {
			args["c:v"] = "libx265"
		} else {
			args["c:v"] = "libx264"
		}
		args["crf"] = 18
	}
	if codec == "hevc" && strings.HasSuffix(output, ".mp4") {
		args["tag:v"] = "hvc1"
	}
	return args
}

func (r *Recorder) start(width, height int) {
	r.width = width
	r.height = height
	r.started = true
	log.Printf("Recording %dx%d at %d fps to %s", width, height, r.opts.FPS, r.opts.Output)

	pipeReader, pipeWriter := io.Pipe()
	errc := make(chan error, 1)
	go func() {
		err := r.run(pipeReader)
		if err == nil {
			err = io.ErrClosedPipe
		}
		// Unblock the writer if ffmpeg stops reading early.
		pipeReader.CloseWithError(err)
		if err == io.ErrClosedPipe {
			err = nil
		}
		errc <- err
	}()
	go r.runEncoder(pipeWriter, errc)
}

// runEncoder is the consumer. It writes queued frames to ffmpeg's stdin.
func (r *Recorder) runEncoder(pipeWriter *io.PipeWriter, errc <-chan error) {
	var writeErr error
	for frame := range r.frames {
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			log.Printf("Error: %v", writeErr)
			break
		}
	}
	pipeWriter.Close()
	err := <-errc
	if err == nil {
		err = writeErr
	}
	r.done <- err
}

// WriteFrame queues a frame. Frames of a different size than the first one
// are skipped, and frames are dropped when the encoder falls behind.
func (r *Recorder) WriteFrame(width, height int, rgba []byte) error {
	if r.closed {
		return ErrClosed
	}
	if len(rgba) != width*height*4 {
		return fmt.Errorf("frame of %dx%d has %d bytes, want %d", width, height, len(rgba), width*height*4)
	}
	if !r.started {
		r.start(width, height)
	}

	select {
	case err := <-r.done:
		// The encoder finished on its own.
		r.closed = true
		r.err = err
		if err == nil {
			err = errors.New("encoder exited")
		}
		return err
	default:
	}

	if width != r.width || height != r.height {
		log.Printf("Warning: skipping %dx%d frame, recording is %dx%d", width, height, r.width, r.height)
		return nil
	}

	frame := &Frame{Pixels: rgba, PTS: r.pts}
	r.pts++
	select {
	case r.frames <- frame:
	default:
		log.Println("Warning: Frame channel is full. Dropping frame.")
	}
	return nil
}

// Close flushes queued frames and waits for ffmpeg to finish.
func (r *Recorder) Close() error {
	if r.closed {
		return r.err
	}
	r.closed = true
	close(r.frames)
	if !r.started {
		return nil
	}
	r.err = <-r.done
	return r.err
}

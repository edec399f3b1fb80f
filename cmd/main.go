package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/richinsley/goshaderplay/glfwcontext"
	"github.com/richinsley/goshaderplay/graphics"
	"github.com/richinsley/goshaderplay/inputs"
	"github.com/richinsley/goshaderplay/loader"
	"github.com/richinsley/goshaderplay/options"
	"github.com/richinsley/goshaderplay/recorder"
	"github.com/richinsley/goshaderplay/renderer"
	"github.com/richinsley/goshaderplay/shader"
)

func init() {
	runtime.LockOSThread()
}

// fatal reports a startup failure and exits. A missing display or GL
// context gets a notice of its own.
func fatal(what string, err error) {
	var ue *graphics.UnsupportedEnvironmentError
	if errors.As(err, &ue) {
		fmt.Fprintf(os.Stderr, "\n*** OpenGL 4.1 is not available on this system ***\n%v\n\n", ue)
		os.Exit(1)
	}
	var ce *shader.CompileError
	if errors.As(err, &ce) {
		log.Printf("%s shader diagnostics:\n%s", ce.Kind, ce.Log)
	}
	log.Fatalf("%s: %v", what, err)
}

func runPlayer(ctx context.Context, opts *options.PlayerOptions) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	pointer := &inputs.PointerTracker{}
	window, err := glfwcontext.New(*opts.Width, *opts.Height, "goshaderplay", true, pointer)
	if err != nil {
		return err
	}
	defer window.Shutdown()

	window.MakeCurrent()
	if err := renderer.InitGL(); err != nil {
		return err
	}

	l, err := loader.New(*opts.Base)
	if err != nil {
		return err
	}
	vertSrc, fragSrc, err := fetchSources(ctx, l, opts, window.IsGLES())
	if err != nil {
		return err
	}

	program, err := shader.Build(vertSrc, fragSrc, shader.BuildOptions{
		GLES:        window.IsGLES(),
		NoTranslate: *opts.NoTranslate,
	})
	if err != nil {
		return fmt.Errorf("failed to build shader program: %w", err)
	}
	log.Println("Shader program linked.")

	channel0, err := newChannel0(ctx, l, opts)
	if err != nil {
		program.Release()
		return err
	}
	backend, err := renderer.NewGLBackend(program, channel0)
	if err != nil {
		channel0.Destroy()
		program.Release()
		return err
	}

	cfg := renderer.Config{
		XScale:    *opts.XScale,
		YScale:    *opts.YScale,
		DPRCap:    *opts.DPRCap,
		MaxFrames: *opts.Frames,
	}
	var rec *recorder.Recorder
	if *opts.OutputFile != "" {
		rec = recorder.New(recorder.Options{
			Output:     *opts.OutputFile,
			FPS:        *opts.FPS,
			Codec:      *opts.Codec,
			FFmpegPath: *opts.FFMPEGPath,
		})
		cfg.Sink = rec
	}

	r := renderer.NewRenderer(window, backend, pointer, cfg)
	defer r.Shutdown()
	window.OnResize(r.Resize)

	runErr := r.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		log.Println("Interrupted.")
		runErr = nil
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			log.Printf("Recording failed: %v", err)
		} else {
			log.Printf("Successfully recorded to %s", *opts.OutputFile)
		}
	}
	return runErr
}

// fetchSources loads the shader pair. An empty vertex path selects the
// built-in full-screen triangle stage.
func fetchSources(ctx context.Context, l *loader.Loader, opts *options.PlayerOptions, gles bool) (string, string, error) {
	if *opts.VertexPath == "" {
		frag, err := l.FetchText(ctx, *opts.FragmentPath)
		if err != nil {
			return "", "", err
		}
		return shader.GenerateVertexShader(gles), frag, nil
	}
	log.Printf("Fetching shaders %s and %s from %s", *opts.VertexPath, *opts.FragmentPath, *opts.Base)
	return l.FetchPair(ctx, *opts.VertexPath, *opts.FragmentPath)
}

// newChannel0 creates the iChannel0 texture: generated noise, or an image
// when one is configured.
func newChannel0(ctx context.Context, l *loader.Loader, opts *options.PlayerOptions) (inputs.IChannel, error) {
	if *opts.Channel0 == "" {
		ch, err := inputs.NewNoiseChannel(*opts.NoiseSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create noise texture: %w", err)
		}
		return ch, nil
	}
	data, err := l.FetchBytes(ctx, *opts.Channel0)
	if err != nil {
		return nil, err
	}
	rgba, err := inputs.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("iChannel0 %s: %w", *opts.Channel0, err)
	}
	ch, err := inputs.NewImageChannel(rgba)
	if err != nil {
		return nil, fmt.Errorf("iChannel0 %s: %w", *opts.Channel0, err)
	}
	return ch, nil
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("GLSL Shader Player")
		flag.PrintDefaults()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runPlayer(ctx, opts); err != nil {
		stop()
		fatal("Shader player failed", err)
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-drift/luckywheel/cmd/luckywheel/internal/config"
	"github.com/go-drift/luckywheel/pkg/animation"
	"github.com/go-drift/luckywheel/pkg/canvas"
	"github.com/go-drift/luckywheel/pkg/markup"
	"github.com/go-drift/luckywheel/pkg/sound"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

// DefaultGIF is the output written when no output flag or config entry
// names one.
const DefaultGIF = "luckywheel.gif"

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Record one spin to GIF, PNG, WAV or HTML",
		Long: `Record one spin of the wheel.

The wheel accelerates, cruises until --stop-after has elapsed, then
settles on --prize. A prize of -1 stops on the boundary before the
first segment, which counts as no prize.

Outputs:
  --gif    animated GIF of every frame
  --png    the final frame
  --wav    a click for every segment boundary passing the pointer
  --html   a CSS pie page holding the final rotation

With no output flags and none in the config file, the spin is
written to luckywheel.gif.`,
		Usage: "luckywheel render [--config FILE] [--prize N] [--stop-after D] [--fps N] [--gif FILE] [--png FILE] [--wav FILE] [--html FILE] [--verbose]",
		Run:   runRender,
	})
}

type renderOptions struct {
	config    string
	prize     *int
	stopAfter time.Duration
	fps       int
	gif       string
	png       string
	wav       string
	html      string
	verbose   bool
}

func parseRenderArgs(args []string) (renderOptions, error) {
	var opts renderOptions
	for i := 0; i < len(args); i++ {
		if args[i] == "--verbose" {
			opts.verbose = true
			continue
		}
		matched := false
		for _, f := range []struct {
			name string
			set  func(string) error
		}{
			{"--config", func(v string) error { opts.config = v; return nil }},
			{"--gif", func(v string) error { opts.gif = v; return nil }},
			{"--png", func(v string) error { opts.png = v; return nil }},
			{"--wav", func(v string) error { opts.wav = v; return nil }},
			{"--html", func(v string) error { opts.html = v; return nil }},
			{"--prize", func(v string) error {
				n, err := strconv.Atoi(v)
				if err != nil {
					return fmt.Errorf("invalid --prize %q: %w", v, err)
				}
				opts.prize = &n
				return nil
			}},
			{"--fps", func(v string) error {
				n, err := strconv.Atoi(v)
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid --fps %q", v)
				}
				opts.fps = n
				return nil
			}},
			{"--stop-after", func(v string) error {
				d, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("invalid --stop-after %q: %w", v, err)
				}
				opts.stopAfter = d
				return nil
			}},
		} {
			v, ok, err := flagValue(args, &i, f.name)
			if err != nil {
				return opts, err
			}
			if !ok {
				continue
			}
			if err := f.set(v); err != nil {
				return opts, err
			}
			matched = true
			break
		}
		if !matched {
			return opts, fmt.Errorf("unknown flag: %s", args[i])
		}
	}
	return opts, nil
}

// apply overlays command-line flags onto the resolved configuration.
func (o renderOptions) apply(res *config.Resolved) error {
	if o.prize != nil {
		res.Prize = *o.prize
	}
	if o.stopAfter > 0 {
		res.StopAfter = o.stopAfter
	}
	if o.fps > 0 {
		res.FPS = o.fps
	}
	if o.gif != "" {
		res.GIF = o.gif
	}
	if o.png != "" {
		res.PNG = o.png
	}
	if o.wav != "" {
		res.WAV = o.wav
	}
	if o.html != "" {
		res.HTML = o.html
	}
	if res.GIF == "" && res.PNG == "" && res.WAV == "" && res.HTML == "" {
		res.GIF = DefaultGIF
	}
	if n := len(res.Wheel.Segments); res.Prize >= n {
		return fmt.Errorf("prize %d out of range for %d segments", res.Prize, n)
	}
	return nil
}

type spinResult struct {
	index   int
	stopped bool
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	logger := setupLogging(os.Stderr, opts.verbose)

	res, err := config.Resolve(opts.config)
	if err != nil {
		return err
	}
	if err := opts.apply(res); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := animation.NewFrameLoop()
	cv := canvas.New(res.Canvas)
	var rec *canvas.Recorder
	var raster wheel.Painter = cv
	if res.GIF != "" {
		rec = canvas.NewRecorder(cv)
		raster = rec
	}
	var clicks *sound.ClickTrack
	painters := wheel.MultiPainter{raster}
	if res.WAV != "" {
		clicks = sound.NewClickTrack(cv.OriginAngle())
		painters = append(painters, clicks)
	}

	done := make(chan spinResult, 1)
	wc := res.Wheel
	wc.OnFinished = func(index int, stopped bool) {
		done <- spinResult{index: index, stopped: stopped}
	}
	w, err := wheel.New(wc, painters, wheel.WithScheduler(loop), wheel.WithContext(ctx))
	if err != nil {
		return err
	}
	defer w.Dispose()

	// The pie page is rotated around a different origin than the raster,
	// so it gets its own wheel on the same frame loop.
	var pie *markup.Pie
	var pw *wheel.Wheel
	if res.HTML != "" {
		pie = markup.New(markup.NewDocument(), markup.Options{})
		mc := res.Wheel
		mc.OnFinished = nil
		pw, err = wheel.New(mc, pie, wheel.WithScheduler(loop), wheel.WithContext(ctx))
		if err != nil {
			return err
		}
		defer pw.Dispose()
	}

	logger.Info("spinning", "wheel", w.ID(), "source", res.Source, "segments", len(res.Wheel.Segments), "prize", res.Prize)

	runCtx, cancel := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = loop.Run(runCtx, time.Second/time.Duration(res.FPS))
	}()

	loop.RequestFrame(func() {
		w.Play()
		if pw != nil {
			pw.Play()
		}
	})
	timer := time.AfterFunc(res.StopAfter, func() {
		loop.RequestFrame(func() {
			w.Stop(res.Prize)
			if pw != nil {
				pw.Stop(res.Prize)
			}
		})
	})
	defer timer.Stop()

	var result spinResult
	select {
	case result = <-done:
	case <-ctx.Done():
		cancel()
		<-loopDone
		return fmt.Errorf("interrupted: %w", ctx.Err())
	}
	cancel()
	<-loopDone

	attrs := []any{"index", result.index, "stopped", result.stopped, "frames", loop.Frames(), "panics", loop.Panics()}
	if result.index >= 0 {
		attrs = append(attrs, "label", res.Wheel.Segments[result.index].Text)
	}
	logger.Info("finished", attrs...)

	if rec != nil {
		rec.Hold(res.Hold)
		if err := writeFile(res.GIF, func(f *os.File) error { return rec.WriteGIF(f) }); err != nil {
			return err
		}
		logger.Info("wrote", "file", res.GIF, "frames", rec.Frames())
	}
	if res.PNG != "" {
		if err := writeFile(res.PNG, func(f *os.File) error { return cv.WritePNG(f) }); err != nil {
			return err
		}
		logger.Info("wrote", "file", res.PNG)
	}
	if clicks != nil {
		if err := writeFile(res.WAV, func(f *os.File) error { return clicks.WriteWAV(f, 0) }); err != nil {
			return err
		}
		logger.Info("wrote", "file", res.WAV, "clicks", len(clicks.Clicks()), "duration", clicks.Duration())
	}
	if pie != nil {
		if err := writeFile(res.HTML, func(f *os.File) error { return pie.Render(f) }); err != nil {
			return err
		}
		logger.Info("wrote", "file", res.HTML, "transform", pie.Transform())
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/luckywheel/cmd/luckywheel/internal/config"
	"github.com/go-drift/luckywheel/pkg/animation"
	"github.com/go-drift/luckywheel/pkg/term"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

func init() {
	RegisterCommand(&Command{
		Name:  "term",
		Short: "Spin the wheel in the terminal",
		Long: `Spin the wheel interactively in the terminal.

Keys:
  space      start a spin
  0-9        stop on that segment
  n          stop with no prize
  q, Esc     quit

A stop pressed while the wheel is still speeding up takes effect once
it reaches full speed.`,
		Usage: "luckywheel term [--config FILE] [--radius N] [--log FILE] [--verbose]",
		Run:   runTerm,
	})
}

type termOptions struct {
	config  string
	radius  int
	log     string
	verbose bool
}

func parseTermArgs(args []string) (termOptions, error) {
	var opts termOptions
	for i := 0; i < len(args); i++ {
		if args[i] == "--verbose" {
			opts.verbose = true
			continue
		}
		if v, ok, err := flagValue(args, &i, "--config"); err != nil {
			return opts, err
		} else if ok {
			opts.config = v
			continue
		}
		if v, ok, err := flagValue(args, &i, "--log"); err != nil {
			return opts, err
		} else if ok {
			opts.log = v
			continue
		}
		if v, ok, err := flagValue(args, &i, "--radius"); err != nil {
			return opts, err
		} else if ok {
			n, err := strconv.Atoi(v)
			if err != nil || n < term.MinRadius {
				return opts, fmt.Errorf("invalid --radius %q: want at least %d", v, term.MinRadius)
			}
			opts.radius = n
			continue
		}
		return opts, fmt.Errorf("unknown flag: %s", args[i])
	}
	return opts, nil
}

// spinKey maps a key press to a wheel action. It returns quit for keys that
// end the session.
func spinKey(w *wheel.Wheel, ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch r := ev.Rune(); {
	case r == 'q':
		return true
	case r == ' ':
		w.Play()
	case r == 'n':
		w.Stop(-1)
	case r >= '0' && r <= '9':
		if i := int(r - '0'); i < len(w.Config().Segments) {
			w.Stop(i)
		}
	}
	return false
}

// forwardEvents feeds polled events into events until poll returns nil
// or ctx is done.
func forwardEvents(ctx context.Context, poll func() tcell.Event, events chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func runTerm(args []string) error {
	opts, err := parseTermArgs(args)
	if err != nil {
		return err
	}

	// The screen owns the terminal, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if opts.log != "" {
		f, err := os.Create(opts.log)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.log, err)
		}
		defer f.Close()
		out = f
	}
	logger := setupLogging(out, opts.verbose)

	res, err := config.Resolve(opts.config)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := animation.NewFrameLoop()
	wc := res.Wheel
	wc.OnFinished = func(index int, stopped bool) {
		logger.Info("finished", "index", index, "stopped", stopped)
	}
	w, err := wheel.New(wc, term.New(screen, term.Options{Radius: opts.radius}),
		wheel.WithScheduler(loop), wheel.WithContext(ctx))
	if err != nil {
		return err
	}
	defer w.Dispose()

	ticker := time.NewTicker(time.Second / time.Duration(config.DefaultFPS))
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan tcell.Event, 100)
	go forwardEvents(ctx, screen.PollEvent, events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if spinKey(w, ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Clear()
				screen.Sync()
				_ = w.Repaint()
			}
		case <-ticker.C:
			loop.Pump()
		}
	}
}

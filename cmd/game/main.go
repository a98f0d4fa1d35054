package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/tomz197/asteroidrun/internal/config"
	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/input"
	"github.com/tomz197/asteroidrun/internal/loop"
	"github.com/tomz197/asteroidrun/internal/sfx"
)

type options struct {
	ui        string
	sound     bool
	seed      uint64
	logPath   string
	obstacles int
	tickRate  string
}

func main() {
	var opts options
	flag.StringVar(&opts.ui, "ui", "ansi", "terminal front-end: ansi or tcell")
	flag.BoolVar(&opts.sound, "sound", false, "play sound cues")
	flag.Uint64Var(&opts.seed, "seed", 0, "obstacle seed, 0 picks one from the clock")
	flag.StringVar(&opts.logPath, "log", "", "append logs to this file")
	flag.IntVar(&opts.obstacles, "obstacles", -1, "number of asteroids (default 5)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [ticks-per-second]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	opts.tickRate = flag.Arg(0)

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "asteroidrun: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	// The game owns the terminal, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := config.NewLogger(logOut, "asteroidrun")
	if err != nil {
		logger.Warn("log level", "err", err)
	}

	cfg := settingsFrom(opts, func(err error) { warn(logger, err) })
	if err := cfg.Validate(); err != nil {
		return err
	}

	sessOpts := []loop.Option{loop.WithLogger(logger)}
	if opts.seed != 0 {
		sessOpts = append(sessOpts, loop.WithSeed(opts.seed))
	}
	if opts.sound {
		player := sfx.New(logger)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			sessOpts = append(sessOpts, loop.WithCues(player))
		}
	}

	sess, err := loop.New(cfg, sessOpts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch opts.ui {
	case "ansi":
		err = runANSI(ctx, sess, cfg)
	case "tcell":
		err = runTcell(ctx, sess, cfg)
	default:
		return fmt.Errorf("unknown -ui %q (want ansi or tcell)", opts.ui)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("bye", "elapsed", fmt.Sprintf("%.1fs", sess.ElapsedSeconds()), "lives", sess.LivesRemaining())
	return err
}

// settingsFrom layers the environment and then the command line over the
// defaults. Rejected values are passed to report and leave the layer below
// in place.
func settingsFrom(opts options, report func(error)) config.Settings {
	cfg, diags := config.FromEnv(config.Default())
	for _, d := range diags {
		report(d)
	}
	if opts.tickRate != "" {
		if tps, err := config.ParseTickRate(opts.tickRate); err != nil {
			report(err)
		} else {
			cfg.TickRate = tps
		}
	}
	if opts.obstacles >= 0 {
		cfg.ObstacleCount = opts.obstacles
	}
	return cfg
}

// warn reports a configuration fallback on stderr before the game takes over
// the screen, and in the log.
func warn(logger *log.Logger, err error) {
	fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	logger.Warn("config fallback", "err", err)
}

// runANSI plays in raw mode on stdin/stdout using escape sequences.
func runANSI(ctx context.Context, sess *loop.Session, cfg config.Settings) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	screen := draw.NewTerminal(os.Stdout, draw.DefaultTermSizeFunc, cfg.ScreenWidth, cfg.ScreenHeight)
	if err := screen.Open(); err != nil {
		return err
	}
	defer screen.Close()

	stream := input.StartStream(bufio.NewReader(os.Stdin))
	pump := input.NewPump(sess.Input(), sess, cfg.InputHold)

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return sess.Run(ctx, screen)
	})
	g.Go(func() error {
		if err := pump.Run(ctx, stream); !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	})
	return g.Wait()
}

// runTcell plays through a tcell screen.
func runTcell(ctx context.Context, sess *loop.Session, cfg config.Settings) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.EnableFocus()

	presenter := draw.NewTcellPresenter(screen, cfg.ScreenWidth, cfg.ScreenHeight)
	pump := input.NewPump(sess.Input(), sess, cfg.InputHold)
	defer pump.Stop()

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return sess.Run(ctx, presenter)
	})
	g.Go(func() error {
		<-ctx.Done()
		// Unblocks PollEvent below.
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})
	g.Go(func() error {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil, *tcell.EventInterrupt:
				return nil
			case *tcell.EventResize:
				screen.Sync()
			default:
				if !pump.HandleTcell(ev) {
					return nil
				}
			}
		}
	})
	return g.Wait()
}

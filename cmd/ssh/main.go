package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/asteroidrun/internal/config"
	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/input"
	"github.com/tomz197/asteroidrun/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	logger, err := config.NewLogger(os.Stderr, "asteroidrun-ssh")
	if err != nil {
		logger.Warn("log level", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	cfg, diags := config.FromEnv(config.Default())
	for _, d := range diags {
		logger.Warn("config fallback", "err", d)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid settings", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath, "tps", cfg.TickRate, "obstacles", cfg.ObstacleCount)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	games := &gameHost{ctx: ctx, cfg: cfg, log: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "sessions", games.active())

	// Every running game stops and its player sees the terminal restored.
	cancel()
	games.wait(10 * time.Second)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameHost runs one independent game per SSH connection.
type gameHost struct {
	ctx context.Context
	cfg config.Settings
	log *log.Logger

	mu       sync.Mutex
	sessions int
	wg       sync.WaitGroup
}

func (h *gameHost) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		id := uuid.NewString()
		logger := h.log.With("session", id, "user", sess.User())
		logger.Info("game session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizes := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizes.update(win.Width, win.Height)
			}
		}()

		h.track(1)
		defer h.track(-1)

		if err := h.play(sess, sizes, logger); err != nil {
			logger.Warn("game ended with error", "err", err)
		}
		logger.Info("game session ended")
		next(sess)
	}
}

func (h *gameHost) play(sess ssh.Session, sizes *sizeTracker, logger *log.Logger) error {
	game, err := loop.New(h.cfg, loop.WithLogger(logger))
	if err != nil {
		return err
	}

	screen := draw.NewTerminal(sess, sizes.getSize, h.cfg.ScreenWidth, h.cfg.ScreenHeight)
	if err := screen.Open(); err != nil {
		return err
	}
	defer screen.Close()

	stream := input.StartStream(bufio.NewReader(sess))
	pump := input.NewPump(game.Input(), game, h.cfg.InputHold)

	// The game ends when the client disconnects or the host shuts down.
	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()
	release := context.AfterFunc(h.ctx, cancel)
	defer release()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return game.Run(ctx, screen)
	})
	g.Go(func() error {
		if err := pump.Run(ctx, stream); !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	})

	err = g.Wait()
	logger.Info("final score", "elapsed", fmt.Sprintf("%.1fs", game.ElapsedSeconds()), "lives", game.LivesRemaining(), "gameOver", game.IsGameOver())
	if errors.Is(err, context.Canceled) || errors.Is(err, draw.ErrOutputClosed) {
		return nil
	}
	return err
}

func (h *gameHost) track(delta int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions += delta
	if delta > 0 {
		h.wg.Add(delta)
	} else {
		h.wg.Done()
	}
}

func (h *gameHost) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions
}

// wait blocks until every game has finished or the timeout passes.
func (h *gameHost) wait(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(timeout):
		h.log.Warn("sessions still running after timeout", "sessions", h.active())
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

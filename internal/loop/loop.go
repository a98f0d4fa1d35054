// Package loop runs a game session: a fixed-timestep scheduler that updates
// the background, input, obstacles and ship in that order and renders every
// tick.
package loop

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidrun/internal/asset"
	"github.com/tomz197/asteroidrun/internal/config"
	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/input"
	"github.com/tomz197/asteroidrun/internal/object"
	"github.com/tomz197/asteroidrun/internal/physics"
)

// ErrAlreadyStarted is returned when Run or Start is called a second time.
var ErrAlreadyStarted = errors.New("loop: session already started")

// Session owns one game: its entities, lives, play time and scheduler.
// Gameplay state is only touched by the goroutine running Run; the control
// methods and read-only accessors are safe from any goroutine.
type Session struct {
	cfg    config.Settings
	log    *log.Logger
	clock  Clock
	rng    *rand.Rand
	assets asset.Provider
	cues   Cues
	yield  func()

	input  *input.State
	ribbon *object.Ribbon
	field  *object.Field
	ship   *object.Ship
	hud    hud

	// Owned by the loop goroutine.
	state    State
	lives    int
	elapsed  time.Duration
	lastMark time.Time
	stopping bool

	cmds     chan command
	wake     chan struct{}
	stopOnce sync.Once

	// Mirrors published for other goroutines.
	pubState   atomic.Int32
	pubLives   atomic.Int32
	pubElapsed atomic.Int64

	stats stats

	startMu sync.Mutex
	started bool
	done    chan struct{}
	err     error
}

// Compile-time check that Session can be driven by an input pump.
var _ input.Controller = (*Session)(nil)

// New builds a session with every entity in its starting position.
func New(cfg config.Settings, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	s := &Session{
		cfg:   cfg,
		log:   discardLogger(),
		clock: wallClock{},
		cues:  silentCues{},
		yield: runtime.Gosched,
		input: input.NewState(),
		hud:   hud{screenW: cfg.ScreenWidth, screenH: cfg.ScreenHeight},
		state: StateRunning,
		lives: InitialLives,
		cmds:  make(chan command, commandBuffer),
		wake:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = defaultRand()
	}
	if s.assets == nil {
		s.assets = asset.Builtin(cfg.ScreenWidth, s.rng.Uint64())
	}

	if missing := asset.Missing(s.assets, asset.NameAsteroid, asset.NameExplosion, asset.NameShip, asset.NameBackground); len(missing) > 0 {
		s.log.Warn("images missing, drawing placeholders", "names", missing)
	}

	field, err := object.NewField(cfg, s.assets, s.rng, object.LifeCounterFunc(s.loseLife))
	if err != nil {
		return nil, err
	}
	s.field = field
	s.ship = object.NewShip(cfg, s.assets, field)
	s.ribbon = object.NewRibbon(cfg, s.assets.Image(asset.NameBackground))

	s.publish()
	return s, nil
}

// Input returns the key state the session samples every tick. Input sources
// write to it from their own goroutine.
func (s *Session) Input() *input.State {
	return s.input
}

// Start runs the session on a new goroutine. Use Wait for the result.
func (s *Session) Start(ctx context.Context, p draw.Presenter) error {
	if !s.markStarted() {
		return ErrAlreadyStarted
	}
	go func() {
		s.err = s.run(ctx, p)
		close(s.done)
	}()
	return nil
}

// Run plays the session until Stop, the escape key, a closed output or ctx
// cancellation. A requested stop returns nil.
func (s *Session) Run(ctx context.Context, p draw.Presenter) error {
	if !s.markStarted() {
		return ErrAlreadyStarted
	}
	s.err = s.run(ctx, p)
	close(s.done)
	return s.err
}

// Wait blocks until the session has finished and returns Run's result.
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

// Done is closed when the session has finished.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) markStarted() bool {
	s.startMu.Lock()
	defer s.startMu.Unlock()
	if s.started {
		return false
	}
	s.started = true
	return true
}

// Pause suspends gameplay updates. Rendering continues.
func (s *Session) Pause() {
	s.send(cmdPause)
}

// Resume continues a paused session.
func (s *Session) Resume() {
	s.send(cmdResume)
}

// Stop ends the session. A sleeping tick wakes immediately.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.send(cmdStop)
		close(s.wake)
	})
}

// OnWindowClose stops the session when its window or terminal goes away.
func (s *Session) OnWindowClose() {
	s.log.Debug("window closed")
	s.Stop()
}

func (s *Session) send(c command) {
	select {
	case s.cmds <- c:
	default:
		s.log.Warn("command dropped, queue full", "command", c)
	}
}

// LivesRemaining returns the lives left.
func (s *Session) LivesRemaining() int {
	return int(s.pubLives.Load())
}

// ElapsedSeconds returns the time spent in the running state.
func (s *Session) ElapsedSeconds() float64 {
	return time.Duration(s.pubElapsed.Load()).Seconds()
}

// IsGameOver reports whether the last life has been lost.
func (s *Session) IsGameOver() bool {
	return s.State() == StateGameOver
}

// State returns the current gameplay state.
func (s *Session) State() State {
	return State(s.pubState.Load())
}

// Stats returns the scheduler counters.
func (s *Session) Stats() Stats {
	return s.stats.snapshot()
}

// BoundingBoxes returns the ship box followed by every obstacle box.
// Only safe once the session has finished or from the loop goroutine.
func (s *Session) BoundingBoxes() []physics.Rect {
	return append([]physics.Rect{s.ship.BoundingBox()}, s.field.BoundingBoxes()...)
}

func (s *Session) run(ctx context.Context, p draw.Presenter) error {
	logger := s.log.With("tps", s.cfg.TickRate)
	logger.Info("session started", "obstacles", s.field.Len(), "lives", s.lives)

	// Cancellation wakes a sleeping tick the same way Stop does.
	release := context.AfterFunc(ctx, s.Stop)
	defer release()

	pc := newPacer(s.cfg.TickPeriod(), s.clock, s.countYield)
	s.lastMark = s.clock.Now()

	for {
		s.markTime()
		s.applyCommands()
		if err := ctx.Err(); err != nil {
			logger.Info("session cancelled", "elapsed", s.elapsed.Round(time.Millisecond))
			return err
		}
		if s.stopping {
			logger.Info("session stopped", "elapsed", s.elapsed.Round(time.Millisecond), "lives", s.lives)
			return nil
		}
		s.stats.iterations.Add(1)

		s.update()
		if err := s.render(p); err != nil {
			logger.Info("output closed, ending session", "err", err)
			return err
		}

		out := pc.settle(s.wake)
		if out.slept {
			s.stats.sleeps.Add(1)
		}
		for range out.catchUp {
			s.update()
			s.stats.catchUps.Add(1)
		}
	}
}

// markTime adds the wall time since the previous mark while running.
func (s *Session) markTime() {
	now := s.clock.Now()
	if s.state == StateRunning {
		s.elapsed += now.Sub(s.lastMark)
	}
	s.lastMark = now
	s.publish()
}

func (s *Session) applyCommands() {
	for {
		select {
		case c := <-s.cmds:
			s.apply(c)
		case <-s.wake:
			s.stopping = true
			return
		default:
			return
		}
	}
}

func (s *Session) apply(c command) {
	switch c {
	case cmdPause:
		if s.state == StateRunning {
			s.setState(StatePaused)
		}
	case cmdResume:
		if s.state == StatePaused {
			s.setState(StateRunning)
		}
	case cmdStop:
		s.stopping = true
	}
}

func (s *Session) setState(st State) {
	if s.state == st {
		return
	}
	s.log.Info("state changed", "from", s.state, "to", st)
	s.state = st
	s.publish()
}

// update runs one simulation step. Outside the running state only the
// escape key is sampled.
func (s *Session) update() {
	if s.state != StateRunning {
		if s.input.Refresh().Escape {
			s.stopping = true
		}
		return
	}

	s.ribbon.Update()
	snap := s.input.Refresh()
	if snap.Escape {
		s.log.Debug("escape pressed")
		s.stopping = true
	}
	s.field.Update()
	s.ship.Update(snap)
	s.stats.updates.Add(1)
}

func (s *Session) render(p draw.Presenter) error {
	surf, err := p.Begin()
	if err != nil {
		s.stats.skippedRenders.Add(1)
		if !errors.Is(err, draw.ErrSurfaceUnavailable) {
			s.log.Warn("begin frame failed", "err", err)
		}
		return nil
	}

	s.ribbon.Draw(surf)
	s.field.Draw(surf)
	s.ship.Draw(surf)
	s.hud.draw(surf, s.state, s.lives, s.elapsed.Seconds())

	if err := p.Present(); err != nil {
		if errors.Is(err, draw.ErrOutputClosed) {
			return err
		}
		s.log.Warn("present failed", "err", err)
		return nil
	}
	s.stats.renders.Add(1)
	return nil
}

// loseLife is called by the field when the ship is hit.
func (s *Session) loseLife() {
	if s.state == StateGameOver || s.lives == 0 {
		return
	}
	s.lives--
	if s.lives > 0 {
		s.log.Info("life lost", "remaining", s.lives)
		s.cues.LifeLost()
		s.publish()
		return
	}
	s.log.Info("game over", "elapsed", s.elapsed.Round(time.Millisecond))
	s.setState(StateGameOver)
	s.cues.GameOver()
}

func (s *Session) countYield() {
	s.stats.yields.Add(1)
	s.yield()
}

func (s *Session) publish() {
	s.pubState.Store(int32(s.state))
	s.pubLives.Store(int32(s.lives))
	s.pubElapsed.Store(int64(s.elapsed))
}

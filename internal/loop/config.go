package loop

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidrun/internal/asset"
)

// Session tuning.
const (
	InitialLives = 3

	// delaysPerYield is how many consecutive ticks may pass without a sleep
	// before the loop yields the processor once.
	delaysPerYield = 16
	// maxSkippedFrames caps the update-only catch-up passes after one tick.
	maxSkippedFrames = 5

	commandBuffer = 16
)

// Cues receives gameplay events worth a sound.
type Cues interface {
	LifeLost()
	GameOver()
}

type silentCues struct{}

func (silentCues) LifeLost() {}
func (silentCues) GameOver() {}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Nil keeps the discard logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithRand sets the random source used for obstacle placement.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed seeds a fresh random source for obstacle placement.
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithAssets sets the image provider. The default is the built-in library.
func WithAssets(p asset.Provider) Option {
	return func(s *Session) {
		if p != nil {
			s.assets = p
		}
	}
}

// WithCues sets the sound cue sink.
func WithCues(c Cues) Option {
	return func(s *Session) {
		if c != nil {
			s.cues = c
		}
	}
}

// withYield replaces runtime.Gosched in tests.
func withYield(fn func()) Option {
	return func(s *Session) {
		s.yield = fn
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func defaultRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1))
}

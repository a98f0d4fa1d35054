// Package sfx plays the game's sound cues. Audio is optional: when the
// speaker cannot be opened every cue is silently dropped.
package sfx

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player turns gameplay events into short tones.
type Player struct {
	mu      sync.Mutex
	enabled bool
	play    func(beep.Streamer)
	log     *log.Logger
}

// New returns a silent player. Call Init to enable sound.
func New(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{log: logger}
}

// Init opens the speaker. On failure the player stays silent and the error
// is returned for the caller to log.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("open speaker: %w", err)
	}
	p.play = func(s beep.Streamer) { speaker.Play(s) }
	p.enabled = true
	p.log.Debug("speaker ready", "rate", int(sampleRate))
	return nil
}

// Close releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.enabled = false
}

// Enabled reports whether cues are audible.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// LifeLost plays a short falling two-note cue.
func (p *Player) LifeLost() {
	p.cue(lifeLostCue())
}

// GameOver plays a longer descending phrase.
func (p *Player) GameOver() {
	p.cue(gameOverCue())
}

func (p *Player) cue(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.play == nil {
		return
	}
	p.play(s)
}

func lifeLostCue() beep.Streamer {
	return beep.Seq(
		tone(660, 80*time.Millisecond),
		tone(440, 120*time.Millisecond),
	)
}

func gameOverCue() beep.Streamer {
	return beep.Seq(
		tone(523.25, 150*time.Millisecond),
		tone(392, 150*time.Millisecond),
		tone(261.63, 400*time.Millisecond),
	)
}

// tone is a sine at freq lasting d. An unusable frequency yields silence of
// the same length.
func tone(freq float64, d time.Duration) beep.Streamer {
	n := sampleRate.N(d)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return beep.Take(n, sine)
}

package asset

import (
	"time"

	"github.com/tomz197/asteroidrun/internal/draw"
)

// Sequence is an animation cursor over a named image sequence. It advances
// by one tick period per Update and loops after the total duration.
type Sequence struct {
	provider Provider
	name     string

	frames    int
	total     time.Duration
	frameTime time.Duration
	period    time.Duration

	elapsed time.Duration
	index   int
}

// NewSequence creates a cursor over name. A missing sequence yields a cursor
// with zero frames whose Current is always nil.
func NewSequence(p Provider, name string, total, period time.Duration) *Sequence {
	s := &Sequence{
		provider: p,
		name:     name,
		total:    total,
		period:   period,
	}
	if p.ImageExists(name) {
		s.frames = p.FrameCount(name)
	}
	if s.frames > 0 && total > 0 {
		s.frameTime = total / time.Duration(s.frames)
	}
	return s
}

// Update advances the cursor by one tick period.
func (s *Sequence) Update() {
	if s.frames == 0 || s.total <= 0 || s.frameTime <= 0 {
		return
	}
	s.elapsed = (s.elapsed + s.period) % s.total
	s.index = min(int(s.elapsed/s.frameTime), s.frames-1)
}

// Index returns the current frame index.
func (s *Sequence) Index() int {
	return s.index
}

// Frames returns the number of frames in the sequence.
func (s *Sequence) Frames() int {
	return s.frames
}

// Current returns the image for the current frame, or nil.
func (s *Sequence) Current() *draw.Image {
	if s.frames == 0 {
		return nil
	}
	return s.provider.Frame(s.name, s.index)
}

// Package asset resolves named images and image sequences for the game.
package asset

import (
	"sync"

	"github.com/tomz197/asteroidrun/internal/draw"
)

// Names of the images the game asks for.
const (
	NameAsteroid   = "asteroid"
	NameExplosion  = "explosion"
	NameShip       = "ship"
	NameBackground = "background"
)

// Provider is the read-only resource contract used by the game core.
// Accessors return nil for anything missing; callers draw placeholders.
type Provider interface {
	ImageExists(name string) bool
	// Image returns the first frame stored under name.
	Image(name string) *draw.Image
	// Frame returns frame index of the sequence stored under name.
	Frame(name string, index int) *draw.Image
	FrameCount(name string) int
}

// Library is an in-memory Provider.
type Library struct {
	mu     sync.RWMutex
	images map[string][]*draw.Image
}

// Compile-time check that Library implements Provider.
var _ Provider = (*Library)(nil)

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{images: make(map[string][]*draw.Image)}
}

// Add stores frames under name, replacing anything stored before.
// Nil frames are dropped.
func (l *Library) Add(name string, frames ...*draw.Image) {
	kept := make([]*draw.Image, 0, len(frames))
	for _, f := range frames {
		if f != nil {
			kept = append(kept, f)
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(kept) == 0 {
		delete(l.images, name)
		return
	}
	l.images[name] = kept
}

// ImageExists reports whether anything is stored under name.
func (l *Library) ImageExists(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.images[name]
	return ok
}

// Image returns the first frame stored under name, or nil.
func (l *Library) Image(name string) *draw.Image {
	return l.Frame(name, 0)
}

// Frame returns frame index of name, or nil when either is missing.
func (l *Library) Frame(name string, index int) *draw.Image {
	l.mu.RLock()
	defer l.mu.RUnlock()
	frames := l.images[name]
	if index < 0 || index >= len(frames) {
		return nil
	}
	return frames[index]
}

// FrameCount returns the number of frames stored under name.
func (l *Library) FrameCount(name string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.images[name])
}

// Missing returns which of names the provider cannot resolve.
func Missing(p Provider, names ...string) []string {
	var missing []string
	for _, name := range names {
		if !p.ImageExists(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

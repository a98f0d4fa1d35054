// Package input turns asynchronous key events into a per-tick snapshot.
package input

import "sync"

// Key is a logical game key.
type Key int

const (
	KeyEscape Key = iota
	KeyLeft
	KeyRight
	numKeys
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "unknown"
	}
}

// Snapshot is the stable key state consumed by one tick.
type Snapshot struct {
	Escape bool
	Left   bool
	Right  bool
}

// State holds the live pressed/released flags for the game keys.
// Press and Release may be called from any goroutine (the input source);
// Refresh is called once per tick by the game loop. Events between two
// refreshes are coalesced to the latest value per key.
type State struct {
	mu      sync.Mutex
	pressed [numKeys]bool
	current Snapshot
}

// NewState creates a state with every key released.
func NewState() *State {
	return &State{}
}

// Press marks k as held down.
func (s *State) Press(k Key) {
	s.set(k, true)
}

// Release marks k as up.
func (s *State) Release(k Key) {
	s.set(k, false)
}

func (s *State) set(k Key, down bool) {
	if k < 0 || k >= numKeys {
		return
	}
	s.mu.Lock()
	s.pressed[k] = down
	s.mu.Unlock()
}

// Refresh samples the live flags into a new snapshot and returns it.
func (s *State) Refresh() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		Escape: s.pressed[KeyEscape],
		Left:   s.pressed[KeyLeft],
		Right:  s.pressed[KeyRight],
	}
	s.mu.Unlock()

	s.current = snap
	return snap
}

// Current returns the snapshot taken by the last Refresh.
// Only the game loop goroutine may call it.
func (s *State) Current() Snapshot {
	return s.current
}

package loop

// State is the session's gameplay state.
type State int32

const (
	StateRunning State = iota
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// command is an external request applied at the next tick boundary.
type command int

const (
	cmdPause command = iota
	cmdResume
	cmdStop
)

func (c command) String() string {
	switch c {
	case cmdPause:
		return "pause"
	case cmdResume:
		return "resume"
	case cmdStop:
		return "stop"
	default:
		return "unknown"
	}
}

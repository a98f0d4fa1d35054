package loop

import "time"

// Clock is the session's time source.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until wake is closed. It returns false when
	// woken early.
	Sleep(d time.Duration, wake <-chan struct{}) bool
}

type wallClock struct{}

func (wallClock) Now() time.Time {
	return time.Now()
}

func (wallClock) Sleep(d time.Duration, wake <-chan struct{}) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-wake:
		return false
	}
}

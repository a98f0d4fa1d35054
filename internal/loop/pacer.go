package loop

import (
	"sync/atomic"
	"time"
)

// Stats counts what the loop has done. Renders counts frames handed to the
// presenter; SkippedRenders counts frames dropped because no surface was
// available.
type Stats struct {
	Iterations     uint64
	Updates        uint64
	CatchUps       uint64
	Renders        uint64
	SkippedRenders uint64
	Sleeps         uint64
	Yields         uint64
}

type stats struct {
	iterations     atomic.Uint64
	updates        atomic.Uint64
	catchUps       atomic.Uint64
	renders        atomic.Uint64
	skippedRenders atomic.Uint64
	sleeps         atomic.Uint64
	yields         atomic.Uint64
}

func (s *stats) snapshot() Stats {
	return Stats{
		Iterations:     s.iterations.Load(),
		Updates:        s.updates.Load(),
		CatchUps:       s.catchUps.Load(),
		Renders:        s.renders.Load(),
		SkippedRenders: s.skippedRenders.Load(),
		Sleeps:         s.sleeps.Load(),
		Yields:         s.yields.Load(),
	}
}

// pace is the outcome of settling one tick.
type pace struct {
	catchUp int  // Update-only passes owed before the next tick
	slept   bool // The tick finished early and slept off the rest
	yielded bool
	woken   bool // The sleep was cut short
}

// pacer keeps a fixed tick period. After each update+render it sleeps off
// what is left of the period, carrying oversleep into the next tick. Ticks
// that overrun accumulate their excess, which is paid back with update-only
// passes.
type pacer struct {
	period time.Duration
	clock  Clock
	yield  func()

	before    time.Time
	overSleep time.Duration
	overTime  time.Duration
	noDelays  int
}

func newPacer(period time.Duration, clock Clock, yield func()) *pacer {
	return &pacer{
		period: period,
		clock:  clock,
		yield:  yield,
		before: clock.Now(),
	}
}

// settle is called after a tick's update and render.
func (p *pacer) settle(wake <-chan struct{}) pace {
	var out pace

	after := p.clock.Now()
	sleep := p.period - after.Sub(p.before) - p.overSleep

	if sleep > 0 {
		out.slept = true
		p.overSleep = 0
		if p.clock.Sleep(sleep, wake) {
			p.overSleep = p.clock.Now().Sub(after) - sleep
		} else {
			out.woken = true
		}
	} else {
		p.overTime -= sleep
		p.overSleep = 0
		p.noDelays++
		if p.noDelays >= delaysPerYield {
			p.yield()
			p.noDelays = 0
			out.yielded = true
		}
	}

	p.before = p.clock.Now()

	for p.overTime > p.period && out.catchUp < maxSkippedFrames {
		p.overTime -= p.period
		out.catchUp++
	}
	return out
}

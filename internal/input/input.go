package input

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Controller receives the window-level signals found in the input stream.
type Controller interface {
	Pause()
	Resume()
	OnWindowClose()
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan []byte
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

// StartStream spawns a goroutine that reads from r and sends byte batches to
// the stream. The channel is closed when r returns an error or the stream is
// closed.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:     make(chan []byte, 64),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(s.exited)
		defer close(s.ch)
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				batch := make([]byte, n)
				copy(batch, buf[:n])
				select {
				case s.ch <- batch:
				case <-s.done:
					return
				}
			}
			if err != nil {
				return
			}
			select {
			case <-s.done:
				return
			default:
			}
		}
	}()
	return s
}

// Close tells the reader goroutine to stop once its current Read returns.
// Pending batches are dropped.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.done) })
}

// Pump feeds terminal input into a State and forwards focus and quit
// signals to a Controller. Terminals report key presses (and auto-repeats)
// but never releases, so a key is released once it has not repeated for
// the hold duration.
type Pump struct {
	state *State
	ctrl  Controller
	hold  time.Duration

	mu     sync.Mutex
	timers [numKeys]*time.Timer
}

// NewPump creates a pump writing into state.
func NewPump(state *State, ctrl Controller, hold time.Duration) *Pump {
	return &Pump{
		state: state,
		ctrl:  ctrl,
		hold:  hold,
	}
}

// Run consumes the stream until ctx is cancelled or the reader fails, then
// closes the stream. End of input counts as closing the window.
func (p *Pump) Run(ctx context.Context, s *Stream) error {
	defer p.Stop()
	defer s.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-s.ch:
			if !ok {
				p.ctrl.OnWindowClose()
				return io.EOF
			}
			p.Feed(batch)
		}
	}
}

// Feed parses one batch of raw terminal bytes.
//
// A lone ESC is the escape key. ESC [ starts a CSI sequence, which is read up
// to its final byte: arrows map by that byte whatever their modifiers, focus
// reports pause and resume, and anything else is dropped. ESC O is the SS3
// form of the arrows. A sequence cut off by the end of the batch is dropped.
func (p *Pump) Feed(buf []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) {
			switch buf[i+1] {
			case '[':
				i = p.csi(buf, i+2)
				continue
			case 'O':
				if i+2 < len(buf) && (buf[i+2] == 'C' || buf[i+2] == 'D') {
					p.final(buf[i+2])
				}
				i += 2
				continue
			}
		}

		switch b {
		case '\x1b':
			p.tap(KeyEscape)
		case 'a', 'A', 'j', 'J', 'h', 'H':
			p.tap(KeyLeft)
		case 'd', 'D', 'l', 'L':
			p.tap(KeyRight)
		case 'q', 'Q', '\x03':
			p.ctrl.OnWindowClose()
		case 'p', 'P':
			p.ctrl.Pause()
		case 'r', 'R':
			p.ctrl.Resume()
		}
	}
}

// csi consumes a control sequence whose parameters start at buf[start] and
// returns the index of its last byte.
func (p *Pump) csi(buf []byte, start int) int {
	j := start
	// Parameter bytes, then intermediate bytes.
	for j < len(buf) && buf[j] >= 0x30 && buf[j] <= 0x3f {
		j++
	}
	for j < len(buf) && buf[j] >= 0x20 && buf[j] <= 0x2f {
		j++
	}
	switch {
	case j >= len(buf):
		return len(buf) - 1
	case buf[j] >= 0x40 && buf[j] <= 0x7e:
		p.final(buf[j])
		return j
	default:
		// Malformed: drop what was read and parse the offending byte again.
		return j - 1
	}
}

func (p *Pump) final(b byte) {
	switch b {
	case 'C':
		p.tap(KeyRight)
	case 'D':
		p.tap(KeyLeft)
	case 'I':
		p.ctrl.Resume()
	case 'O':
		p.ctrl.Pause()
	}
}

// HandleTcell applies a tcell event. It returns false once the event asked
// for the window to close.
func (p *Pump) HandleTcell(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			p.ctrl.OnWindowClose()
			return false
		case tcell.KeyEscape:
			p.tap(KeyEscape)
		case tcell.KeyLeft:
			p.tap(KeyLeft)
		case tcell.KeyRight:
			p.tap(KeyRight)
		case tcell.KeyRune:
			if r := ev.Rune(); r == 'q' || r == 'Q' {
				p.ctrl.OnWindowClose()
				return false
			}
			p.Feed([]byte(string(ev.Rune())))
		}
	case *tcell.EventFocus:
		if ev.Focused {
			p.ctrl.Resume()
		} else {
			p.ctrl.Pause()
		}
	}
	return true
}

// tap presses k and (re)arms its release timer.
func (p *Pump) tap(k Key) {
	p.state.Press(k)

	p.mu.Lock()
	defer p.mu.Unlock()
	if t := p.timers[k]; t != nil {
		t.Reset(p.hold)
		return
	}
	p.timers[k] = time.AfterFunc(p.hold, func() {
		p.state.Release(k)
	})
}

// Stop cancels pending releases and releases every key.
func (p *Pump) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, t := range p.timers {
		if t != nil {
			t.Stop()
			p.timers[k] = nil
		}
		p.state.Release(Key(k))
	}
}

package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Terminal presents frames as ANSI escape sequences on a writer (a local
// tty or an SSH channel). It fits the logical playfield into the current
// terminal size on every frame.
type Terminal struct {
	mu       sync.Mutex
	bufw     *bufio.Writer
	sizeFunc TermSizeFunc
	canvas   *Canvas

	lastW, lastH int
	forceClear   bool
}

// Compile-time check that Terminal implements Presenter.
var _ Presenter = (*Terminal)(nil)

// NewTerminal creates an ANSI presenter for a logicalWidth x logicalHeight
// playfield. A nil sizeFunc uses DefaultTermSizeFunc.
func NewTerminal(w io.Writer, sizeFunc TermSizeFunc, logicalWidth, logicalHeight int) *Terminal {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	return &Terminal{
		bufw:       bufio.NewWriterSize(w, 8192),
		sizeFunc:   sizeFunc,
		canvas:     NewScaledCanvas(0, 0, float64(logicalWidth), float64(logicalHeight)),
		forceClear: true,
	}
}

// Open prepares the terminal: hides the cursor, clears the screen and
// enables focus reporting.
func (t *Terminal) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	HideCursor(t.bufw)
	EnableFocusReporting(t.bufw)
	ClearScreen(t.bufw)
	return t.bufw.Flush()
}

// Close restores the terminal state changed by Open.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	ResetStyle(t.bufw)
	DisableFocusReporting(t.bufw)
	ClearScreen(t.bufw)
	ShowCursor(t.bufw)
	return t.bufw.Flush()
}

// Begin sizes and clears the canvas for a new frame.
func (t *Terminal) Begin() (Surface, error) {
	termW, termH, err := t.sizeFunc()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	width, height, offCol, offRow := FitViewport(termW, termH, t.canvas.logicalWidth, t.canvas.logicalHeight)
	if width == 0 || height == 0 {
		return nil, ErrSurfaceUnavailable
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if termW != t.lastW || termH != t.lastH {
		t.lastW, t.lastH = termW, termH
		t.forceClear = true
	}
	t.canvas.Resize(width, height)
	t.canvas.SetOffset(offCol, offRow)
	t.canvas.Clear()
	return t.canvas, nil
}

// Present writes the frame. The render area is cleared row by row so the
// border around a centered canvas survives between frames.
func (t *Terminal) Present() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.forceClear {
		ClearScreen(t.bufw)
		t.canvas.RenderBorder(t.bufw)
		t.forceClear = false
	}
	t.clearRenderArea()
	t.canvas.Render(t.bufw)
	if err := t.bufw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputClosed, err)
	}
	return nil
}

func (t *Terminal) clearRenderArea() {
	c := t.canvas
	for row := 1; row <= c.termHeight; row++ {
		fmt.Fprintf(t.bufw, "\033[%d;%dH\033[%dX", row+c.offsetRow, 1+c.offsetCol, c.termWidth)
	}
}

package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tomz197/asteroidrun/internal/physics"
)

func solidImage(w, h int, c Color) *Image {
	img := NewImage(w, h)
	for i := range img.Pix {
		img.Pix[i] = c
	}
	return img
}

func TestDrawImageUnscaled(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawImage(solidImage(2, 2, ColorGreen), 3, 4)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := ColorBlack
			if x >= 3 && x < 5 && y >= 4 && y < 6 {
				want = ColorGreen
			}
			if got := c.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawImageSkipsTransparent(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(physics.NewRect(0, 0, 4, 4), ColorBlue)
	img := NewImage(4, 4)
	img.Set(1, 1, ColorRed)
	c.DrawImage(img, 0, 0)

	if c.Pixel(1, 1) != ColorRed {
		t.Fatalf("opaque pixel not drawn")
	}
	if c.Pixel(0, 0) != ColorBlue {
		t.Fatalf("transparent pixel overwrote background")
	}
}

func TestDrawImageRegionMapsTail(t *testing.T) {
	c := NewScaledCanvas(1, 2, 1, 4)
	img := NewImage(1, 8)
	for y := 0; y < 8; y++ {
		img.Set(0, y, Color(1+y%7))
	}
	// Bottom two source rows onto the top two destination rows.
	c.DrawImageRegion(img, physics.NewRect(0, 6, 1, 2), physics.NewRect(0, 0, 1, 2))

	if got, want := c.Pixel(0, 0), img.At(0, 6); got != want {
		t.Fatalf("row 0 = %v, want %v", got, want)
	}
	if got, want := c.Pixel(0, 1), img.At(0, 7); got != want {
		t.Fatalf("row 1 = %v, want %v", got, want)
	}
	if c.Pixel(0, 2) != ColorBlack {
		t.Fatalf("row 2 should be untouched")
	}
}

func TestFillRectScaledAndClipped(t *testing.T) {
	c := NewScaledCanvas(5, 5, 10, 20)
	c.FillRect(physics.NewRect(-5, -5, 100, 100), ColorGray)
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			if c.Pixel(x, y) != ColorGray {
				t.Fatalf("pixel (%d,%d) not filled", x, y)
			}
		}
	}
	c.FillRect(physics.NewRect(0, 0, 10, 20), ColorBlack)
	if c.Pixel(2, 2) != ColorBlack {
		t.Fatal("black fill should clear")
	}
}

func TestEachCellGlyphs(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.setPixel(0, 0, ColorRed)
	c.setPixel(1, 1, ColorGreen)
	c.setPixel(2, 0, ColorBlue)
	c.setPixel(2, 1, ColorBlue)

	got := map[int]rune{}
	c.EachCell(func(col, row int, ch rune, fg, bg Color) {
		got[col] = ch
	})
	if got[1] != BlockUpperHalf || got[2] != BlockLowerHalf || got[3] != BlockFull {
		t.Fatalf("glyphs = %q", got)
	}
}

func TestDrawTextQueuedAndRendered(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.DrawText("LIVES 3", 2, 0)
	if len(c.Texts()) != 1 {
		t.Fatalf("texts = %v", c.Texts())
	}
	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.Contains(buf.String(), "LIVES 3") {
		t.Fatalf("rendered output missing text: %q", buf.String())
	}
	c.Clear()
	if len(c.Texts()) != 0 {
		t.Fatal("Clear should drop text")
	}
}

func TestFitViewport(t *testing.T) {
	tests := []struct {
		termW, termH       int
		wantW, wantH       int
		wantOffC, wantOffR int
	}{
		{100, 40, 70, 40, 15, 0},
		{70, 100, 70, 40, 0, 30},
		{0, 40, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		w, h, oc, or := FitViewport(tt.termW, tt.termH, 700, 800)
		if w != tt.wantW || h != tt.wantH || oc != tt.wantOffC || or != tt.wantOffR {
			t.Errorf("FitViewport(%d,%d) = %d,%d,%d,%d; want %d,%d,%d,%d",
				tt.termW, tt.termH, w, h, oc, or, tt.wantW, tt.wantH, tt.wantOffC, tt.wantOffR)
		}
	}
}

func TestTerminalBeginUnavailable(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, func() (int, int, error) { return 0, 0, nil }, 700, 800)
	if _, err := term.Begin(); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Fatalf("Begin err = %v, want ErrSurfaceUnavailable", err)
	}

	term = NewTerminal(&buf, func() (int, int, error) { return 0, 0, errors.New("no tty") }, 700, 800)
	if _, err := term.Begin(); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Fatalf("Begin err = %v, want ErrSurfaceUnavailable", err)
	}
}

func TestTerminalPresent(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, func() (int, int, error) { return 80, 40, nil }, 700, 800)
	s, err := term.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	s.FillRect(physics.NewRect(0, 0, 700, 800), ColorRed)
	if err := term.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if !strings.ContainsRune(buf.String(), BlockFull) {
		t.Fatal("expected full blocks in output")
	}
}

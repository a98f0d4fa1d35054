package asset

import (
	"testing"
	"time"

	"github.com/tomz197/asteroidrun/internal/draw"
)

func TestLibraryLookups(t *testing.T) {
	lib := NewLibrary()
	a, b := draw.NewImage(1, 1), draw.NewImage(2, 2)
	lib.Add("seq", a, nil, b)

	if !lib.ImageExists("seq") {
		t.Fatal("seq should exist")
	}
	if got := lib.FrameCount("seq"); got != 2 {
		t.Errorf("FrameCount = %d, want 2 (nil frames dropped)", got)
	}
	if lib.Image("seq") != a {
		t.Error("Image should return the first frame")
	}
	if lib.Frame("seq", 1) != b {
		t.Error("Frame(1) should return the second frame")
	}
	if lib.Frame("seq", 2) != nil || lib.Frame("seq", -1) != nil {
		t.Error("out-of-range frames should be nil")
	}
	if lib.Image("missing") != nil || lib.FrameCount("missing") != 0 {
		t.Error("missing names should resolve to nothing")
	}

	lib.Add("seq")
	if lib.ImageExists("seq") {
		t.Error("adding no frames should remove the name")
	}
}

func TestMissing(t *testing.T) {
	lib := NewLibrary()
	lib.Add("a", draw.NewImage(1, 1))
	got := Missing(lib, "a", "b", "c")
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("Missing = %v, want [b c]", got)
	}
}

func TestBuiltinHasEveryName(t *testing.T) {
	lib := Builtin(700, 1)
	if m := Missing(lib, NameAsteroid, NameExplosion, NameShip, NameBackground); len(m) != 0 {
		t.Fatalf("missing builtin sprites: %v", m)
	}
	if got := lib.FrameCount(NameShip); got != ShipFrames {
		t.Errorf("ship frames = %d, want %d", got, ShipFrames)
	}
	bg := lib.Image(NameBackground)
	if bg.W != 700 || bg.H <= 800 {
		t.Errorf("background = %dx%d, want 700 wide and taller than the screen", bg.W, bg.H)
	}
	ast := lib.Image(NameAsteroid)
	if ast.At(AsteroidSize/2, AsteroidSize/2) == draw.ColorBlack {
		t.Error("asteroid center should be opaque")
	}
	if ast.At(0, 0) != draw.ColorBlack {
		t.Error("asteroid corner should be transparent")
	}
}

func TestBuiltinDeterministic(t *testing.T) {
	a := Builtin(100, 42).Image(NameBackground)
	b := Builtin(100, 42).Image(NameBackground)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel %d differs between runs with the same seed", i)
		}
	}
}

func TestSequenceLoops(t *testing.T) {
	lib := NewLibrary()
	frames := make([]*draw.Image, 4)
	for i := range frames {
		frames[i] = draw.NewImage(1, 1)
	}
	lib.Add("ship", frames...)

	// 1s over 4 frames at 100ms ticks: each frame lasts 2.5 ticks.
	seq := NewSequence(lib, "ship", time.Second, 100*time.Millisecond)
	want := []int{0, 0, 1, 1, 2, 2, 2, 3, 3, 0, 0}
	for i, w := range want {
		seq.Update()
		if got := seq.Index(); got != w {
			t.Fatalf("update %d: index = %d, want %d", i+1, got, w)
		}
	}
	if seq.Current() != frames[seq.Index()] {
		t.Error("Current should match Index")
	}
}

func TestSequenceMissing(t *testing.T) {
	seq := NewSequence(NewLibrary(), "nope", time.Second, 100*time.Millisecond)
	seq.Update()
	if seq.Frames() != 0 || seq.Current() != nil || seq.Index() != 0 {
		t.Error("missing sequence should be an inert cursor")
	}
}

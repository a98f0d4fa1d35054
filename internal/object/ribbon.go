package object

import (
	"github.com/tomz197/asteroidrun/internal/config"
	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/physics"
)

// Ribbon is a vertically looping background image. It is taller than the
// playfield and scrolls down by Step pixels per tick.
type Ribbon struct {
	img    *draw.Image
	step   int
	offset int

	screenW, screenH int
}

// NewRibbon creates a background scroller over img. A nil img makes the
// ribbon draw a plain black fill.
func NewRibbon(cfg config.Settings, img *draw.Image) *Ribbon {
	return &Ribbon{
		img:     img,
		step:    cfg.ScrollStep,
		screenW: cfg.ScreenWidth,
		screenH: cfg.ScreenHeight,
	}
}

// Update moves the image down by one step, wrapping at its height.
func (r *Ribbon) Update() {
	if r.img == nil || r.img.H == 0 {
		return
	}
	r.offset = (r.offset + r.step) % r.img.H
}

// Offset returns how far the image has scrolled.
func (r *Ribbon) Offset() int {
	return r.offset
}

// BoundingBox returns the playfield rectangle the ribbon covers.
func (r *Ribbon) BoundingBox() physics.Rect {
	return physics.NewRect(0, 0, r.screenW, r.screenH)
}

// Draw paints the visible part of the image.
//
// At offset 0 the head of the image is drawn at the origin. While the offset
// is inside the playfield the last offset rows (the tail) fill the top and
// the head follows below them. Past the playfield height only the tail is
// visible.
func (r *Ribbon) Draw(s draw.Surface) {
	if r.img == nil {
		s.FillRect(r.BoundingBox(), draw.ColorBlack)
		return
	}

	w, h, off := r.screenW, r.screenH, r.offset
	tail := physics.NewRect(0, r.img.H-off, w, off)

	switch {
	case off == 0:
		s.DrawImageRegion(r.img, physics.NewRect(0, 0, w, h), physics.NewRect(0, 0, w, h))
	case off < h:
		s.DrawImageRegion(r.img, tail, physics.NewRect(0, 0, w, off))
		s.DrawImageRegion(r.img, physics.NewRect(0, 0, w, h-off), physics.NewRect(0, off, w, h-off))
	default:
		s.DrawImageRegion(r.img, tail, physics.NewRect(0, 0, w, off))
	}
}

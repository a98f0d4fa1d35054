package object

import (
	"github.com/tomz197/asteroidrun/internal/asset"
	"github.com/tomz197/asteroidrun/internal/config"
	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/input"
	"github.com/tomz197/asteroidrun/internal/physics"
)

// Ship is the player's spaceship. It only moves sideways.
type Ship struct {
	X, Y int
	W, H int
	Step int // Pixels per tick

	inset   int
	screenW int

	field ShipCollider
	anim  *asset.Sequence
}

// NewShip creates the ship centered horizontally near the bottom of the
// playfield. field is consulted for collisions and is not owned by the ship.
func NewShip(cfg config.Settings, assets asset.Provider, field ShipCollider) *Ship {
	s := &Ship{
		W:       asset.ShipSize,
		H:       asset.ShipSize,
		Step:    cfg.ShipStep,
		inset:   cfg.HitboxInset,
		screenW: cfg.ScreenWidth,
		field:   field,
		anim:    asset.NewSequence(assets, asset.NameShip, cfg.AnimationDuration, cfg.TickPeriod()),
	}
	if img := s.anim.Current(); img != nil {
		s.W, s.H = img.W, img.H
	}
	s.X = cfg.ScreenWidth/2 - s.W/2
	s.Y = cfg.ScreenHeight - s.H - cfg.ShipBottomMargin
	return s
}

// Update checks for a collision, advances the animation, then moves the ship
// according to in. Left wins when both directions are held.
func (s *Ship) Update(in input.Snapshot) {
	if s.field != nil {
		s.field.CheckShipCollision(s.Hitbox())
	}
	s.anim.Update()
	s.move(in)
}

func (s *Ship) move(in input.Snapshot) {
	maxX := max(s.screenW-s.W, 0)
	switch {
	case in.Left:
		s.X = physics.Clamp(s.X-s.Step, 0, maxX)
	case in.Right:
		s.X = physics.Clamp(s.X+s.Step, 0, maxX)
	}
}

// Hitbox returns the box used for collisions: the sprite box shrunk by the
// configured inset.
func (s *Ship) Hitbox() physics.Rect {
	return s.BoundingBox().Inset(s.inset)
}

// BoundingBox returns the full sprite rectangle.
func (s *Ship) BoundingBox() physics.Rect {
	return physics.NewRect(s.X, s.Y, s.W, s.H)
}

// Frame returns the current animation frame index.
func (s *Ship) Frame() int {
	return s.anim.Index()
}

// Draw paints the current animation frame, or a red box when there is none.
func (s *Ship) Draw(surf draw.Surface) {
	if img := s.anim.Current(); img != nil {
		surf.DrawImage(img, s.X, s.Y)
		return
	}
	surf.FillRect(s.BoundingBox(), draw.ColorRed)
}

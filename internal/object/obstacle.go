package object

import (
	"math/rand/v2"

	"github.com/tomz197/asteroidrun/internal/asset"
	"github.com/tomz197/asteroidrun/internal/config"
	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/physics"
)

// Obstacle is a falling asteroid.
type Obstacle struct {
	X, Y         int // Top-left corner
	W, H         int // Collision box size, taken from the sprite
	XStep, YStep int // Pixels moved per tick; YStep is always positive

	active bool

	screenW, screenH int
	rng              *rand.Rand

	sprite    *draw.Image
	explosion *draw.Image
}

// NewObstacle creates an active obstacle at a random position above the
// playfield. Its size comes from the asteroid sprite, or the built-in sprite
// size when the provider has none.
func NewObstacle(cfg config.Settings, assets asset.Provider, rng *rand.Rand) *Obstacle {
	o := &Obstacle{
		W:         asset.AsteroidSize,
		H:         asset.AsteroidSize,
		active:    true,
		screenW:   cfg.ScreenWidth,
		screenH:   cfg.ScreenHeight,
		rng:       rng,
		sprite:    assets.Image(asset.NameAsteroid),
		explosion: assets.Image(asset.NameExplosion),
	}
	if o.sprite != nil {
		o.W, o.H = o.sprite.W, o.sprite.H
	}
	o.Reset()
	return o
}

// Update advances the obstacle by one tick. self is the obstacle's index in
// the field and is excluded from the sibling check.
//
// An inactive obstacle does not move: it reactivates and resets, and resumes
// normal motion on the following tick.
func (o *Obstacle) Update(self int, siblings SiblingChecker) {
	if !o.active {
		o.active = true
		o.Reset()
		return
	}

	if o.OffScreen() {
		o.Reset()
	}

	// Exploding siblings still count; their box stays until their own reset.
	if siblings != nil && siblings.CheckAsteroidCollision(o.BoundingBox(), self) {
		o.XStep = -o.XStep
		o.X += o.XStep
	}

	o.X += o.XStep
	o.Y += o.YStep
}

// OffScreen reports whether the obstacle sticks out of the playfield on the
// left, right or bottom edge. Sticking out of the top never counts, since
// obstacles enter from above.
func (o *Obstacle) OffScreen() bool {
	return o.X < 0 || o.X+o.W > o.screenW || o.Y+o.H > o.screenH
}

// Reset places the obstacle at a random position just above the playfield
// with a new random velocity.
//
//	X     in [0, screenW-W)
//	Y     in [-H, 0)
//	XStep in [-4, 4], sign chosen independently
//	YStep in [5, 14]
func (o *Obstacle) Reset() {
	o.X = 0
	if span := o.screenW - o.W; span > 0 {
		o.X = o.rng.IntN(span)
	}
	o.Y = -1
	if o.H > 0 {
		o.Y = -1 - o.rng.IntN(o.H)
	}

	o.XStep = o.rng.IntN(5)
	if o.rng.Float64() >= 0.5 {
		o.XStep = -o.XStep
	}
	o.YStep = 5 + o.rng.IntN(10)
}

// HitShip deactivates the obstacle. It is the only way to become inactive.
func (o *Obstacle) HitShip() {
	o.active = false
}

// Active reports whether the obstacle is moving normally.
func (o *Obstacle) Active() bool {
	return o.active
}

// BoundingBox returns the obstacle's collision rectangle.
func (o *Obstacle) BoundingBox() physics.Rect {
	return physics.NewRect(o.X, o.Y, o.W, o.H)
}

// Draw paints the asteroid, or the explosion while inactive. Without an
// asteroid sprite a green box is drawn; without an explosion sprite an
// orange one.
func (o *Obstacle) Draw(s draw.Surface) {
	switch {
	case o.sprite == nil:
		s.FillRect(o.BoundingBox(), draw.ColorGreen)
	case o.active:
		s.DrawImage(o.sprite, o.X, o.Y)
	case o.explosion != nil:
		s.DrawImage(o.explosion, o.X, o.Y)
	default:
		s.FillRect(o.BoundingBox(), draw.ColorOrange)
	}
}

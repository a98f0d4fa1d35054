// Package object holds the game entities: obstacles and the field that owns
// them, the player ship, the scrolling background and HUD text.
package object

import (
	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/physics"
)

// Renderable is implemented by every entity the session draws. Each entity
// handles its own missing-image fallback inside Draw.
type Renderable interface {
	// BoundingBox returns the entity's full rectangle in logical pixels.
	BoundingBox() physics.Rect
	// Draw paints the entity onto s.
	Draw(s draw.Surface)
}

// LifeCounter is notified when the ship collides with an obstacle.
type LifeCounter interface {
	LoseLife()
}

// LifeCounterFunc adapts a plain function to LifeCounter.
type LifeCounterFunc func()

// LoseLife calls f.
func (f LifeCounterFunc) LoseLife() {
	f()
}

// SiblingChecker answers whether a rectangle overlaps any obstacle other
// than the one at exclude. Obstacles call it during their own update.
type SiblingChecker interface {
	CheckAsteroidCollision(r physics.Rect, exclude int) bool
}

// ShipCollider resolves a collision between the ship's hitbox and the field.
type ShipCollider interface {
	CheckShipCollision(r physics.Rect) bool
}

// Compile-time checks.
var (
	_ Renderable     = (*Obstacle)(nil)
	_ Renderable     = (*Ship)(nil)
	_ Renderable     = (*Ribbon)(nil)
	_ SiblingChecker = (*Field)(nil)
	_ ShipCollider   = (*Field)(nil)
)

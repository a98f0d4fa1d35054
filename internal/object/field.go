package object

import (
	"fmt"
	"math/rand/v2"

	"github.com/tomz197/asteroidrun/internal/asset"
	"github.com/tomz197/asteroidrun/internal/config"
	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/physics"
)

// Field owns a fixed set of obstacles. The count is chosen at construction
// and never changes.
type Field struct {
	obstacles []*Obstacle
	lives     LifeCounter
}

// NewField creates cfg.ObstacleCount obstacles. lives is told about every
// ship hit and may be nil.
func NewField(cfg config.Settings, assets asset.Provider, rng *rand.Rand, lives LifeCounter) (*Field, error) {
	if cfg.ObstacleCount < 0 || cfg.ObstacleCount > cfg.ObstacleCapacity {
		return nil, fmt.Errorf("obstacle count %d outside [0, %d]", cfg.ObstacleCount, cfg.ObstacleCapacity)
	}
	f := &Field{
		obstacles: make([]*Obstacle, cfg.ObstacleCount, cfg.ObstacleCapacity),
		lives:     lives,
	}
	for i := range f.obstacles {
		f.obstacles[i] = NewObstacle(cfg, assets, rng)
	}
	return f, nil
}

// Len returns the number of obstacles.
func (f *Field) Len() int {
	return len(f.obstacles)
}

// Obstacle returns the obstacle at index i.
func (f *Field) Obstacle(i int) *Obstacle {
	f.mustIndex(i)
	return f.obstacles[i]
}

// Update advances every obstacle in index order. Later obstacles see the
// already-moved positions of earlier ones.
func (f *Field) Update() {
	for i, o := range f.obstacles {
		o.Update(i, f)
	}
}

// CheckAsteroidCollision reports whether r overlaps any obstacle except the
// one at index exclude. exclude must be a valid index.
func (f *Field) CheckAsteroidCollision(r physics.Rect, exclude int) bool {
	f.mustIndex(exclude)
	for i, o := range f.obstacles {
		if i != exclude && o.BoundingBox().Intersects(r) {
			return true
		}
	}
	return false
}

// CheckShipCollision deactivates the first active obstacle overlapping r,
// reports the lost life and returns true. At most one obstacle is hit per
// call.
func (f *Field) CheckShipCollision(r physics.Rect) bool {
	for _, o := range f.obstacles {
		if !o.Active() || !o.BoundingBox().Intersects(r) {
			continue
		}
		o.HitShip()
		if f.lives != nil {
			f.lives.LoseLife()
		}
		return true
	}
	return false
}

// BoundingBoxes returns every obstacle rectangle in index order.
func (f *Field) BoundingBoxes() []physics.Rect {
	boxes := make([]physics.Rect, len(f.obstacles))
	for i, o := range f.obstacles {
		boxes[i] = o.BoundingBox()
	}
	return boxes
}

// Draw paints every obstacle.
func (f *Field) Draw(s draw.Surface) {
	for _, o := range f.obstacles {
		o.Draw(s)
	}
}

func (f *Field) mustIndex(i int) {
	if i < 0 || i >= len(f.obstacles) {
		panic(fmt.Sprintf("object: obstacle index %d out of range [0, %d)", i, len(f.obstacles)))
	}
}

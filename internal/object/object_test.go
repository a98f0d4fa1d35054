package object

import (
	"math/rand/v2"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/tomz197/asteroidrun/internal/asset"
	"github.com/tomz197/asteroidrun/internal/config"
	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/draw/mocks"
	"github.com/tomz197/asteroidrun/internal/input"
	"github.com/tomz197/asteroidrun/internal/physics"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

type lifeTally struct{ lost int }

func (l *lifeTally) LoseLife() { l.lost++ }

func newTestField(t *testing.T, count int, lives LifeCounter) *Field {
	t.Helper()
	cfg := config.Default()
	cfg.ObstacleCount = count
	f, err := NewField(cfg, asset.NewLibrary(), testRand(), lives)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

// park moves an obstacle somewhere harmless with no velocity.
func park(o *Obstacle, x, y int) {
	o.X, o.Y = x, y
	o.XStep, o.YStep = 0, 0
}

func TestObstacleResetRanges(t *testing.T) {
	cfg := config.Default()
	o := NewObstacle(cfg, asset.NewLibrary(), testRand())
	for range 2000 {
		o.Reset()
		if o.X < 0 || o.X >= cfg.ScreenWidth-o.W {
			t.Fatalf("X = %d outside [0, %d)", o.X, cfg.ScreenWidth-o.W)
		}
		if o.Y < -o.H || o.Y >= 0 {
			t.Fatalf("Y = %d outside [%d, 0)", o.Y, -o.H)
		}
		if o.XStep < -4 || o.XStep > 4 {
			t.Fatalf("XStep = %d outside [-4, 4]", o.XStep)
		}
		if o.YStep < 5 || o.YStep > 14 {
			t.Fatalf("YStep = %d outside [5, 14]", o.YStep)
		}
	}
}

func TestObstacleSizeFromSprite(t *testing.T) {
	lib := asset.NewLibrary()
	lib.Add(asset.NameAsteroid, draw.NewImage(30, 20))
	o := NewObstacle(config.Default(), lib, testRand())
	if o.W != 30 || o.H != 20 {
		t.Errorf("size = %dx%d, want 30x20", o.W, o.H)
	}
}

func TestObstacleOffScreen(t *testing.T) {
	cfg := config.Default()
	o := NewObstacle(cfg, asset.NewLibrary(), testRand())

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"inside", 100, 100, false},
		{"above top", 100, -o.H - 100, false},
		{"flush left", 0, 100, false},
		{"partly left", -1, 100, true},
		{"flush right", cfg.ScreenWidth - o.W, 100, false},
		{"partly right", cfg.ScreenWidth - o.W + 1, 100, true},
		{"flush bottom", 100, cfg.ScreenHeight - o.H, false},
		{"partly bottom", 100, cfg.ScreenHeight - o.H + 1, true},
		{"fully below", 100, cfg.ScreenHeight, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o.X, o.Y = tt.x, tt.y
			if got := o.OffScreen(); got != tt.want {
				t.Errorf("OffScreen at (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestObstacleLeavingLeftIsReset(t *testing.T) {
	f := newTestField(t, 1, nil)
	o := f.Obstacle(0)
	o.X, o.Y = -(o.W - 1), 300
	o.XStep, o.YStep = -2, 5

	f.Update()
	// A reset obstacle starts above the top edge, so one step down leaves
	// it well short of its old row.
	if o.Y >= 14 || o.Y < -o.H+5 {
		t.Errorf("Y = %d after update, want a fresh reset position in [%d, 14)", o.Y, -o.H+5)
	}
	if o.X < -4 || o.X >= o.screenW-o.W+4 {
		t.Errorf("X = %d after update, want a fresh reset position", o.X)
	}
	if o.X == -(o.W + 1) {
		t.Error("obstacle kept moving left instead of resetting")
	}
}

func TestObstacleSiblingCollisionFlipsAndNudges(t *testing.T) {
	f := newTestField(t, 2, nil)
	a, b := f.Obstacle(0), f.Obstacle(1)
	park(a, 200, 200)
	park(b, 220, 200)
	a.XStep, a.YStep = 3, 5

	f.Update()
	if a.XStep != -3 {
		t.Errorf("XStep = %d, want -3", a.XStep)
	}
	if a.X != 194 || a.Y != 205 {
		t.Errorf("position = (%d,%d), want (194,205)", a.X, a.Y)
	}
}

func TestObstacleBouncesOffExplodingSibling(t *testing.T) {
	f := newTestField(t, 2, nil)
	a, b := f.Obstacle(0), f.Obstacle(1)
	park(a, 200, 200)
	park(b, 220, 200)
	b.HitShip()
	a.XStep, a.YStep = 2, 5

	f.Update()
	if a.XStep != -2 {
		t.Errorf("XStep = %d, want -2 after touching the explosion", a.XStep)
	}
	if !b.Active() {
		t.Error("exploding sibling should reactivate on its own update")
	}
}

func TestFieldCollisionSymmetric(t *testing.T) {
	f := newTestField(t, 3, nil)
	park(f.Obstacle(0), 100, 100)
	park(f.Obstacle(1), 130, 120)
	park(f.Obstacle(2), 500, 500)

	if !f.CheckAsteroidCollision(f.Obstacle(0).BoundingBox(), 0) {
		t.Error("0 should see 1")
	}
	if !f.CheckAsteroidCollision(f.Obstacle(1).BoundingBox(), 1) {
		t.Error("1 should see 0")
	}
	if f.CheckAsteroidCollision(f.Obstacle(2).BoundingBox(), 2) {
		t.Error("2 overlaps nothing but itself")
	}
}

func TestFieldIndexOutOfRangePanics(t *testing.T) {
	f := newTestField(t, 2, nil)
	for _, idx := range []int{-1, 2} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("CheckAsteroidCollision(_, %d) did not panic", idx)
				}
			}()
			f.CheckAsteroidCollision(physics.NewRect(0, 0, 1, 1), idx)
		}()
	}
}

func TestFieldRejectsOverCapacity(t *testing.T) {
	cfg := config.Default()
	cfg.ObstacleCount = cfg.ObstacleCapacity + 1
	if _, err := NewField(cfg, asset.NewLibrary(), testRand(), nil); err == nil {
		t.Fatal("expected error for count above capacity")
	}
}

func TestShipCollisionHitsOnlyOne(t *testing.T) {
	lives := &lifeTally{}
	f := newTestField(t, 3, lives)
	for i := range f.Len() {
		park(f.Obstacle(i), 300, 300)
	}

	if !f.CheckShipCollision(physics.NewRect(310, 310, 10, 10)) {
		t.Fatal("expected a collision")
	}
	inactive := 0
	for i := range f.Len() {
		if !f.Obstacle(i).Active() {
			inactive++
		}
	}
	if inactive != 1 {
		t.Errorf("inactive obstacles = %d, want 1", inactive)
	}
	if lives.lost != 1 {
		t.Errorf("lives lost = %d, want 1", lives.lost)
	}
}

func TestShipHitOnFirstTick(t *testing.T) {
	lives := &lifeTally{}
	f := newTestField(t, 1, lives)
	ship := NewShip(config.Default(), asset.NewLibrary(), f)
	o := f.Obstacle(0)

	hb := ship.Hitbox()
	o.X, o.Y = hb.X, hb.Y-5
	o.XStep, o.YStep = 0, 5

	// Tick 1: obstacle moves onto the hitbox, ship collides.
	f.Update()
	ship.Update(input.Snapshot{})
	if o.Active() {
		t.Fatal("obstacle should be inactive after the hit")
	}
	if lives.lost != 1 {
		t.Fatalf("lives lost = %d, want 1", lives.lost)
	}

	// Tick 2: obstacle reactivates via reset without moving.
	f.Update()
	if !o.Active() {
		t.Fatal("obstacle should reactivate on the following tick")
	}
	if o.Y < -o.H || o.Y >= 0 {
		t.Errorf("Y = %d, want a reset position in [%d, 0)", o.Y, -o.H)
	}
	ship.Update(input.Snapshot{})
	if lives.lost != 1 {
		t.Errorf("lives lost = %d after tick 2, want 1", lives.lost)
	}
}

func TestShipStartAndClamp(t *testing.T) {
	cfg := config.Default()
	ship := NewShip(cfg, asset.NewLibrary(), nil)
	if ship.X != cfg.ScreenWidth/2-ship.W/2 || ship.Y != cfg.ScreenHeight-ship.H-cfg.ShipBottomMargin {
		t.Fatalf("start = (%d,%d)", ship.X, ship.Y)
	}

	for range 100 {
		ship.Update(input.Snapshot{Left: true})
		if ship.X < 0 {
			t.Fatalf("X = %d left the playfield", ship.X)
		}
	}
	if ship.X != 0 {
		t.Errorf("X = %d, want 0 after holding left", ship.X)
	}

	for range 100 {
		ship.Update(input.Snapshot{Right: true})
		if ship.X > cfg.ScreenWidth-ship.W {
			t.Fatalf("X = %d left the playfield", ship.X)
		}
	}
	if ship.X != cfg.ScreenWidth-ship.W {
		t.Errorf("X = %d, want %d after holding right", ship.X, cfg.ScreenWidth-ship.W)
	}

	before := ship.X
	ship.Update(input.Snapshot{Left: true, Right: true})
	if ship.X != before-cfg.ShipStep {
		t.Errorf("both keys: X = %d, want %d (left wins)", ship.X, before-cfg.ShipStep)
	}
}

func TestShipAnimationAdvances(t *testing.T) {
	lib := asset.NewLibrary()
	lib.Add(asset.NameShip, draw.NewImage(40, 40), draw.NewImage(40, 40))
	cfg := config.Default()
	ship := NewShip(cfg, lib, nil)
	if ship.W != 40 {
		t.Fatalf("W = %d, want 40 from the sprite", ship.W)
	}
	// Two frames over 1s at 100ms ticks: frame 1 starts at tick 5.
	for range 5 {
		ship.Update(input.Snapshot{})
	}
	if ship.Frame() != 1 {
		t.Errorf("frame = %d, want 1", ship.Frame())
	}
}

func TestShipHitboxInset(t *testing.T) {
	ship := NewShip(config.Default(), asset.NewLibrary(), nil)
	ship.X, ship.Y = 100, 200
	want := physics.NewRect(125, 225, ship.W-25, ship.H-25)
	if got := ship.Hitbox(); got != want {
		t.Errorf("Hitbox = %+v, want %+v", got, want)
	}
}

func TestDrawFallbacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	surf := mocks.NewMockSurface(ctrl)

	cfg := config.Default()
	empty := asset.NewLibrary()

	ship := NewShip(cfg, empty, nil)
	surf.EXPECT().FillRect(ship.BoundingBox(), draw.ColorRed)
	ship.Draw(surf)

	o := NewObstacle(cfg, empty, testRand())
	surf.EXPECT().FillRect(o.BoundingBox(), draw.ColorGreen)
	o.Draw(surf)

	r := NewRibbon(cfg, nil)
	surf.EXPECT().FillRect(physics.NewRect(0, 0, cfg.ScreenWidth, cfg.ScreenHeight), draw.ColorBlack)
	r.Draw(surf)
}

func TestObstacleDrawsExplosionWhileInactive(t *testing.T) {
	ctrl := gomock.NewController(t)
	surf := mocks.NewMockSurface(ctrl)

	rock, boom := draw.NewImage(50, 50), draw.NewImage(50, 50)
	lib := asset.NewLibrary()
	lib.Add(asset.NameAsteroid, rock)
	lib.Add(asset.NameExplosion, boom)

	o := NewObstacle(config.Default(), lib, testRand())
	gomock.InOrder(
		surf.EXPECT().DrawImage(rock, o.X, o.Y),
		surf.EXPECT().DrawImage(boom, o.X, o.Y),
	)
	o.Draw(surf)
	o.HitShip()
	o.Draw(surf)
}

func TestRibbonDrawCases(t *testing.T) {
	cfg := config.Default()
	cfg.ScrollStep = 400
	img := draw.NewImage(cfg.ScreenWidth, 1600)
	w, h := cfg.ScreenWidth, cfg.ScreenHeight

	t.Run("head at origin after a full loop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		surf := mocks.NewMockSurface(ctrl)
		r := NewRibbon(cfg, img)
		for range 4 {
			r.Update()
		}
		if r.Offset() != 0 {
			t.Fatalf("offset = %d, want 0", r.Offset())
		}
		surf.EXPECT().DrawImageRegion(img, physics.NewRect(0, 0, w, h), physics.NewRect(0, 0, w, h))
		r.Draw(surf)
	})

	t.Run("tail then head", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		surf := mocks.NewMockSurface(ctrl)
		r := NewRibbon(cfg, img)
		r.Update()
		gomock.InOrder(
			surf.EXPECT().DrawImageRegion(img, physics.NewRect(0, 1200, w, 400), physics.NewRect(0, 0, w, 400)),
			surf.EXPECT().DrawImageRegion(img, physics.NewRect(0, 0, w, 400), physics.NewRect(0, 400, w, 400)),
		)
		r.Draw(surf)
	})

	t.Run("tail only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		surf := mocks.NewMockSurface(ctrl)
		r := NewRibbon(cfg, img)
		for range 3 {
			r.Update()
		}
		surf.EXPECT().DrawImageRegion(img, physics.NewRect(0, 400, w, 1200), physics.NewRect(0, 0, w, 1200))
		r.Draw(surf)
	})
}

func TestTextDraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	surf := mocks.NewMockSurface(ctrl)
	surf.EXPECT().DrawText("LIVES 3", 0, 10)
	Text{X: -5, Y: 10, Value: "LIVES 3"}.Draw(surf)
	Text{}.Draw(surf)
}

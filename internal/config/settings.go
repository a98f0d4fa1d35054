package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment keys read by FromEnv.
const (
	TickRateKey      = "ASTEROIDRUN_TPS"
	ObstacleCountKey = "ASTEROIDRUN_OBSTACLES"
)

// Playfield defaults, in logical pixels.
const (
	DefaultScreenWidth  = 700
	DefaultScreenHeight = 800
)

// Gameplay defaults.
const (
	DefaultTickRate          = 10
	DefaultObstacleCount     = 5
	DefaultObstacleCapacity  = 15
	DefaultShipStep          = 10
	DefaultHitboxInset       = 25
	DefaultShipBottomMargin  = 50
	DefaultScrollStep        = 1
	DefaultAnimationDuration = time.Second
	DefaultInputHold         = 150 * time.Millisecond
)

// Tick rate bounds accepted from the command line.
const (
	MinTickRate = 1
	MaxTickRate = 1000
)

// Settings is the immutable game configuration handed to every component at
// construction. It is passed by value; nothing reads screen dimensions from
// package-level state.
type Settings struct {
	ScreenWidth  int
	ScreenHeight int

	// TickRate is the number of simulation updates per second.
	TickRate int

	ObstacleCount    int // Obstacles placed at session start
	ObstacleCapacity int // Upper bound for ObstacleCount

	ShipStep         int // Horizontal pixels per tick
	HitboxInset      int // Forgiveness margin on the ship's collision box
	ShipBottomMargin int // Gap between the ship and the bottom edge

	ScrollStep int // Background pixels per tick

	AnimationDuration time.Duration // Length of one ship animation loop

	// InputHold is how long a terminal key counts as held after its last
	// repeat. Terminals never report key release.
	InputHold time.Duration
}

// Default returns the stock configuration.
func Default() Settings {
	return Settings{
		ScreenWidth:       DefaultScreenWidth,
		ScreenHeight:      DefaultScreenHeight,
		TickRate:          DefaultTickRate,
		ObstacleCount:     DefaultObstacleCount,
		ObstacleCapacity:  DefaultObstacleCapacity,
		ShipStep:          DefaultShipStep,
		HitboxInset:       DefaultHitboxInset,
		ShipBottomMargin:  DefaultShipBottomMargin,
		ScrollStep:        DefaultScrollStep,
		AnimationDuration: DefaultAnimationDuration,
		InputHold:         DefaultInputHold,
	}
}

// TickPeriod returns the duration of one tick.
func (s Settings) TickPeriod() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / DefaultTickRate
	}
	return time.Second / time.Duration(s.TickRate)
}

// Validate reports the first impossible value in s.
func (s Settings) Validate() error {
	var errs []error
	if s.ScreenWidth <= 0 || s.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", s.ScreenWidth, s.ScreenHeight))
	}
	if s.TickRate < MinTickRate || s.TickRate > MaxTickRate {
		errs = append(errs, fmt.Errorf("tick rate %d outside [%d, %d]", s.TickRate, MinTickRate, MaxTickRate))
	}
	if s.ObstacleCount < 0 {
		errs = append(errs, fmt.Errorf("obstacle count %d is negative", s.ObstacleCount))
	}
	if s.ObstacleCount > s.ObstacleCapacity {
		errs = append(errs, fmt.Errorf("obstacle count %d exceeds capacity %d", s.ObstacleCount, s.ObstacleCapacity))
	}
	if s.ShipStep <= 0 {
		errs = append(errs, fmt.Errorf("ship step %d must be positive", s.ShipStep))
	}
	if s.HitboxInset < 0 {
		errs = append(errs, fmt.Errorf("hitbox inset %d is negative", s.HitboxInset))
	}
	if s.ScrollStep < 0 {
		errs = append(errs, fmt.Errorf("scroll step %d is negative", s.ScrollStep))
	}
	if s.AnimationDuration <= 0 {
		errs = append(errs, fmt.Errorf("animation duration %v must be positive", s.AnimationDuration))
	}
	return errors.Join(errs...)
}

// ParseTickRate parses the optional ticks-per-second startup argument.
// An empty argument selects the default silently. Anything unparsable or out
// of range also selects the default, and the returned error explains why so
// the caller can log it; it is a diagnostic, not a failure.
func ParseTickRate(arg string) (int, error) {
	if arg == "" {
		return DefaultTickRate, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return DefaultTickRate, fmt.Errorf("tick rate %q is not an integer, using default %d", arg, DefaultTickRate)
	}
	if n < MinTickRate || n > MaxTickRate {
		return DefaultTickRate, fmt.Errorf("tick rate %d outside [%d, %d], using default %d", n, MinTickRate, MaxTickRate, DefaultTickRate)
	}
	return n, nil
}

// FromEnv overlays ASTEROIDRUN_TPS and ASTEROIDRUN_OBSTACLES on base.
// Unusable values leave the base value in place and are returned as
// diagnostics.
func FromEnv(base Settings) (Settings, []error) {
	var diags []error
	cfg := base

	if raw, ok := os.LookupEnv(TickRateKey); ok {
		n, err := ParseTickRate(raw)
		if err != nil {
			diags = append(diags, fmt.Errorf("%s: %w", TickRateKey, err))
			n = base.TickRate
		}
		cfg.TickRate = n
	}

	n, err := GetEnvInt(ObstacleCountKey, base.ObstacleCount)
	switch {
	case err != nil:
		diags = append(diags, err)
	case n < 0 || n > base.ObstacleCapacity:
		diags = append(diags, fmt.Errorf("%s=%d outside [0, %d], using %d", ObstacleCountKey, n, base.ObstacleCapacity, base.ObstacleCount))
	default:
		cfg.ObstacleCount = n
	}
	return cfg, diags
}

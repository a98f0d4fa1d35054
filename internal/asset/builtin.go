package asset

import (
	"math"
	"math/rand/v2"

	"github.com/tomz197/asteroidrun/internal/draw"
)

// Built-in sprite sizes, in logical pixels.
const (
	AsteroidSize     = 50
	ShipSize         = 80
	ShipFrames       = 4
	BackgroundHeight = 1600
)

// Builtin returns a library holding procedurally generated sprites for every
// name the game uses. The same seed always yields the same pixels.
func Builtin(screenWidth int, seed uint64) *Library {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	lib := NewLibrary()
	lib.Add(NameAsteroid, asteroidSprite(AsteroidSize, rng))
	lib.Add(NameExplosion, explosionSprite(AsteroidSize))
	lib.Add(NameShip, shipFrames(ShipSize, ShipFrames)...)
	lib.Add(NameBackground, starfield(screenWidth, BackgroundHeight, rng))
	return lib
}

// asteroidSprite draws a lumpy gray disc with a few darker craters.
func asteroidSprite(size int, rng *rand.Rand) *draw.Image {
	img := draw.NewImage(size, size)
	c := float64(size) / 2

	// Radius wobble per angular bucket gives an irregular outline.
	const buckets = 12
	var wobble [buckets]float64
	for i := range wobble {
		wobble[i] = 0.8 + 0.2*rng.Float64()
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			theta := math.Atan2(dy, dx) + math.Pi
			b := int(theta/(2*math.Pi)*buckets) % buckets
			if math.Hypot(dx, dy) <= c*wobble[b] {
				img.Set(x, y, draw.ColorGray)
			}
		}
	}

	for range 3 {
		cx := size/4 + rng.IntN(size/2)
		cy := size/4 + rng.IntN(size/2)
		r := 3 + rng.IntN(size/10+1)
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r && img.At(x, y) != draw.ColorBlack {
					img.Set(x, y, draw.ColorWhite)
				}
			}
		}
	}
	return img
}

// explosionSprite draws a six-pointed burst, yellow core with orange rays.
func explosionSprite(size int) *draw.Image {
	img := draw.NewImage(size, size)
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			d := math.Hypot(dx, dy)
			reach := c * (0.45 + 0.55*math.Abs(math.Sin(3*math.Atan2(dy, dx))))
			switch {
			case d <= c*0.35:
				img.Set(x, y, draw.ColorYellow)
			case d <= reach:
				img.Set(x, y, draw.ColorOrange)
			}
		}
	}
	return img
}

// shipFrames draws an upward-pointing hull with an exhaust flame whose length
// cycles across the frames.
func shipFrames(size, frames int) []*draw.Image {
	out := make([]*draw.Image, frames)
	hull := size * 3 / 4
	for f := range frames {
		img := draw.NewImage(size, size)
		for y := 0; y < hull; y++ {
			half := (y + 1) * size / (2 * hull)
			for x := size/2 - half; x < size/2+half; x++ {
				img.Set(x, y, draw.ColorWhite)
			}
		}
		// Cockpit.
		for y := hull / 3; y < hull/2; y++ {
			for x := size/2 - size/16; x < size/2+size/16; x++ {
				img.Set(x, y, draw.ColorBlue)
			}
		}
		// Wing tips.
		for y := hull - size/8; y < hull; y++ {
			for x := 0; x < size/8; x++ {
				img.Set(x, y, draw.ColorRed)
				img.Set(size-1-x, y, draw.ColorRed)
			}
		}

		flame := (size - hull) * (f%frames + 1) / frames
		for y := hull; y < hull+flame; y++ {
			half := size / 8 * (hull + flame - y) / max(flame, 1)
			col := draw.ColorOrange
			if y < hull+flame/2 {
				col = draw.ColorYellow
			}
			for x := size/2 - half; x < size/2+half; x++ {
				img.Set(x, y, col)
			}
		}
		out[f] = img
	}
	return out
}

// starfield scatters small white and gray squares over a black strip.
// Stars are several pixels wide so they survive downscaling to a terminal.
func starfield(w, h int, rng *rand.Rand) *draw.Image {
	img := draw.NewImage(w, h)
	if w <= 0 || h <= 0 {
		return img
	}
	count := w * h / 4000
	for range count {
		x, y := rng.IntN(w), rng.IntN(h)
		s := 6 + rng.IntN(8)
		col := draw.ColorGray
		if rng.IntN(4) == 0 {
			col = draw.ColorWhite
		}
		for dy := 0; dy < s; dy++ {
			for dx := 0; dx < s; dx++ {
				img.Set(x+dx, y+dy, col)
			}
		}
	}
	return img
}

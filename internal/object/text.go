package object

import "github.com/tomz197/asteroidrun/internal/draw"

// Text is a line of HUD text anchored at a logical pixel position.
type Text struct {
	X     int
	Y     int
	Value string
}

// Draw writes the text onto s. Empty text draws nothing.
func (t Text) Draw(s draw.Surface) {
	if t.Value == "" {
		return
	}
	s.DrawText(t.Value, max(t.X, 0), max(t.Y, 0))
}

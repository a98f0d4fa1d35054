package loop

import (
	"fmt"

	"github.com/tomz197/asteroidrun/internal/draw"
	"github.com/tomz197/asteroidrun/internal/object"
)

const hudMargin = 20

// hud draws lives, play time and the pause and game over banners.
type hud struct {
	screenW, screenH int
}

func (h hud) draw(s draw.Surface, state State, lives int, elapsed float64) {
	object.Text{
		X:     hudMargin,
		Y:     hudMargin,
		Value: fmt.Sprintf("LIVES %d", lives),
	}.Draw(s)

	clock := fmt.Sprintf("TIME %.1fs", elapsed)
	object.Text{
		X:     h.screenW - hudMargin - textWidth(clock),
		Y:     hudMargin,
		Value: clock,
	}.Draw(s)

	switch state {
	case StatePaused:
		h.banner(s, "PAUSED")
	case StateGameOver:
		h.banner(s, "GAME OVER")
		h.bannerAt(s, "press q to quit", h.screenH/2+3*hudMargin)
	}
}

func (h hud) banner(s draw.Surface, msg string) {
	h.bannerAt(s, msg, h.screenH/2)
}

func (h hud) bannerAt(s draw.Surface, msg string, y int) {
	object.Text{
		X:     (h.screenW - textWidth(msg)) / 2,
		Y:     y,
		Value: msg,
	}.Draw(s)
}

// textWidth estimates the logical width of msg. A terminal cell is about
// 10 logical pixels wide at the default playfield size.
func textWidth(msg string) int {
	return len(msg) * 10
}

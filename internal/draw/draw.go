// Package draw provides the presentation surface used by the game core and
// its terminal implementations.
package draw

import (
	"errors"
	"fmt"
	"io"

	"github.com/tomz197/asteroidrun/internal/physics"
)

// ErrSurfaceUnavailable is returned by Presenter.Begin when there is nothing
// to draw on for this frame (terminal not sized yet, zero-area window).
var ErrSurfaceUnavailable = errors.New("draw: surface unavailable")

// ErrOutputClosed is returned by Presenter.Present when the output device
// has gone away and no further frame can be shown.
var ErrOutputClosed = errors.New("draw: output closed")

// Color is a palette index. ColorBlack doubles as "transparent" inside images
// and as "clear" for FillRect.
type Color uint8

const (
	ColorBlack Color = iota
	ColorWhite
	ColorGray
	ColorRed
	ColorGreen
	ColorOrange
	ColorYellow
	ColorBlue
)

// ansi256 maps palette entries to 256-color foreground indices.
var ansi256 = [...]int{
	ColorBlack:  0,
	ColorWhite:  15,
	ColorGray:   244,
	ColorRed:    196,
	ColorGreen:  46,
	ColorOrange: 208,
	ColorYellow: 226,
	ColorBlue:   33,
}

// ANSI256 returns the xterm 256-color index for c.
func (c Color) ANSI256() int {
	if int(c) < len(ansi256) {
		return ansi256[c]
	}
	return ansi256[ColorWhite]
}

// Surface is the 2D drawing target handed to entities each frame.
// Coordinates are logical pixels; implementations scale as needed and clip
// anything outside the playfield.
type Surface interface {
	// DrawImage blits img with its top-left corner at (x, y).
	DrawImage(img *Image, x, y int)
	// DrawImageRegion maps the src rectangle of img onto dst, scaling if the
	// sizes differ.
	DrawImageRegion(img *Image, src, dst physics.Rect)
	// FillRect paints r with a solid color.
	FillRect(r physics.Rect, c Color)
	// DrawText writes s with its first character at (x, y).
	DrawText(s string, x, y int)
}

//go:generate go tool mockgen -destination=./mocks/surface_mock.go -package=mocks . Surface

// Presenter owns a frame's lifecycle: Begin hands out a cleared Surface,
// Present pushes what was drawn to the output device.
type Presenter interface {
	Begin() (Surface, error)
	Present() error
}

// Image is an in-memory paletted bitmap. Pixels equal to ColorBlack are
// transparent when blitted.
type Image struct {
	W, H int
	Pix  []Color
}

// NewImage allocates a transparent w x h image.
func NewImage(w, h int) *Image {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("draw: negative image size %dx%d", w, h))
	}
	return &Image{W: w, H: h, Pix: make([]Color, w*h)}
}

// Bounds returns the image rectangle anchored at the origin.
func (img *Image) Bounds() physics.Rect {
	return physics.NewRect(0, 0, img.W, img.H)
}

// At returns the pixel at (x, y), or ColorBlack outside the image.
func (img *Image) At(x, y int) Color {
	if x < 0 || y < 0 || x >= img.W || y >= img.H {
		return ColorBlack
	}
	return img.Pix[y*img.W+x]
}

// Set writes a pixel; out-of-range writes are ignored.
func (img *Image) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= img.W || y >= img.H {
		return
	}
	img.Pix[y*img.W+x] = c
}

// Block characters for half-block rendering.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableFocusReporting asks the terminal to send CSI I / CSI O when the
// window gains or loses focus.
func EnableFocusReporting(w io.Writer) {
	fmt.Fprint(w, "\033[?1004h")
}

// DisableFocusReporting turns focus reports off again.
func DisableFocusReporting(w io.Writer) {
	fmt.Fprint(w, "\033[?1004l")
}

// ResetStyle restores default colors.
func ResetStyle(w io.Writer) {
	fmt.Fprint(w, "\033[0m")
}

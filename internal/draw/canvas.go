package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/asteroidrun/internal/physics"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It maps logical playfield coordinates onto terminal sub-pixels and implements Surface.
type Canvas struct {
	termWidth      int     // Render area columns
	termHeight     int     // Render area rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal (0-based).
	offsetCol int
	offsetRow int

	texts []Text // Text overlay, drawn after pixels

	renderBuf strings.Builder
	numBuf    [20]byte
}

// Text is a string placed at a 1-based cell position of the render area.
type Text struct {
	Col   int
	Row   int
	Value string
}

// Compile-time check that Canvas implements Surface.
var _ Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the render area dimensions in cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new render dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels and drops queued text.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.texts = c.texts[:0]
}

// setPixel sets a pixel at render-area coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// Pixel returns the color at render-area sub-pixel (x, y).
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorBlack
	}
	return c.pixels[y*c.termWidth+x]
}

// pixelSpan returns the half-open range of render pixels whose centers fall
// inside the logical span [lo, hi).
func pixelSpan(lo, hi int, scale float64, limit int) (int, int) {
	p0 := int(math.Ceil(float64(lo)*scale - 0.5))
	p1 := int(math.Ceil(float64(hi)*scale - 0.5))
	return max(p0, 0), min(p1, limit)
}

// DrawImage blits img with its top-left corner at logical (x, y).
func (c *Canvas) DrawImage(img *Image, x, y int) {
	if img == nil {
		return
	}
	c.DrawImageRegion(img, img.Bounds(), physics.NewRect(x, y, img.W, img.H))
}

// DrawImageRegion maps src of img onto the logical rectangle dst using
// nearest-neighbour sampling at each render pixel center.
func (c *Canvas) DrawImageRegion(img *Image, src, dst physics.Rect) {
	if img == nil || src.Empty() || dst.Empty() || c.scaleX == 0 || c.scaleY == 0 {
		return
	}
	px0, px1 := pixelSpan(dst.X, dst.Right(), c.scaleX, c.termWidth)
	py0, py1 := pixelSpan(dst.Y, dst.Bottom(), c.scaleY, c.subPixelHeight)

	sx := float64(src.W) / float64(dst.W)
	sy := float64(src.H) / float64(dst.H)

	for py := py0; py < py1; py++ {
		ly := (float64(py) + 0.5) / c.scaleY
		v := src.Y + int((ly-float64(dst.Y))*sy)
		if v < src.Y || v >= src.Bottom() {
			continue
		}
		row := py * c.termWidth
		for px := px0; px < px1; px++ {
			lx := (float64(px) + 0.5) / c.scaleX
			u := src.X + int((lx-float64(dst.X))*sx)
			if u < src.X || u >= src.Right() {
				continue
			}
			if col := img.At(u, v); col != ColorBlack {
				c.pixels[row+px] = col
			}
		}
	}
}

// FillRect paints the logical rectangle r. ColorBlack clears it.
func (c *Canvas) FillRect(r physics.Rect, col Color) {
	r = r.Clip(physics.NewRect(0, 0, int(c.logicalWidth), int(c.logicalHeight)))
	if r.Empty() {
		return
	}
	px0, px1 := pixelSpan(r.X, r.Right(), c.scaleX, c.termWidth)
	py0, py1 := pixelSpan(r.Y, r.Bottom(), c.scaleY, c.subPixelHeight)
	for py := py0; py < py1; py++ {
		row := py * c.termWidth
		for px := px0; px < px1; px++ {
			c.pixels[row+px] = col
		}
	}
}

// DrawText queues s at logical (x, y); text is emitted after the pixels.
func (c *Canvas) DrawText(s string, x, y int) {
	if s == "" {
		return
	}
	col, row := c.LogicalToTerminal(float64(x), float64(y))
	if row < 1 || row > c.termHeight {
		return
	}
	c.texts = append(c.texts, Text{Col: max(col, 1), Row: row, Value: s})
}

// Texts returns the queued text overlay for this frame.
func (c *Canvas) Texts() []Text {
	return c.texts
}

// EachCell calls fn for every non-empty cell of the render area with its
// 1-based position, glyph and colors. A zero bg means the default background.
func (c *Canvas) EachCell(fn func(col, row int, ch rune, fg, bg Color)) {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for x := 0; x < c.termWidth; x++ {
			top := c.pixels[topOffset+x]
			bottom := c.pixels[bottomOffset+x]

			switch {
			case top != ColorBlack && top == bottom:
				fn(x+1, row+1, BlockFull, top, ColorBlack)
			case top != ColorBlack && bottom != ColorBlack:
				fn(x+1, row+1, BlockUpperHalf, top, bottom)
			case top != ColorBlack:
				fn(x+1, row+1, BlockUpperHalf, top, ColorBlack)
			case bottom != ColorBlack:
				fn(x+1, row+1, BlockLowerHalf, bottom, ColorBlack)
			}
		}
	}
}

// maxChunkSize caps a single write so a chunk plus SSH framing stays under
// a typical 1500-byte MTU.
const maxChunkSize = 1400

// Render outputs the canvas and its text overlay to w using half-block
// characters and 256-color escapes. Empty cells are skipped, so the caller
// clears the screen first.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	lastFG, lastBG := -1, -1
	c.EachCell(func(col, row int, ch rune, fg, bg Color) {
		c.moveCursor(col, row)
		if f := fg.ANSI256(); f != lastFG {
			c.renderBuf.WriteString("\033[38;5;")
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(f), 10))
			c.renderBuf.WriteByte('m')
			lastFG = f
		}
		b := 0
		if bg != ColorBlack {
			b = bg.ANSI256()
		}
		if b != lastBG {
			if b == 0 {
				c.renderBuf.WriteString("\033[49m")
			} else {
				c.renderBuf.WriteString("\033[48;5;")
				c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(b), 10))
				c.renderBuf.WriteByte('m')
			}
			lastBG = b
		}
		c.renderBuf.WriteRune(ch)
	})
	c.renderBuf.WriteString("\033[0m")

	for _, t := range c.texts {
		c.moveCursor(t.Col, t.Row)
		c.renderBuf.WriteString(t.Value)
	}

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder draws a box border around the canvas area when it is
// centered inside a larger terminal.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)
	at := func(row, col int, s string) {
		buf.WriteString("\033[")
		buf.WriteString(strconv.Itoa(row))
		buf.WriteByte(';')
		buf.WriteString(strconv.Itoa(col))
		buf.WriteByte('H')
		buf.WriteString(s)
	}

	if hasV {
		if hasH {
			at(top, left, "┌"+line+"┐")
			at(bottom, left, "└"+line+"┘")
		} else {
			at(top, c.offsetCol+1, line)
			at(bottom, c.offsetCol+1, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			at(row, left, "│")
			at(row, right, "│")
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalToTerminal converts logical coordinates to a 1-based render area position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// FitViewport picks the largest render area inside a termWidth x termHeight
// terminal that keeps the logical aspect ratio (cells are two sub-pixels
// tall), and the offsets that center it.
func FitViewport(termWidth, termHeight int, logicalWidth, logicalHeight float64) (width, height, offsetCol, offsetRow int) {
	if termWidth <= 0 || termHeight <= 0 || logicalWidth <= 0 || logicalHeight <= 0 {
		return 0, 0, 0, 0
	}
	aspect := logicalWidth / logicalHeight

	width = termWidth
	height = int(float64(width) / aspect / 2)
	if height > termHeight {
		height = termHeight
		width = int(float64(height) * 2 * aspect)
	}
	width = max(min(width, termWidth), 1)
	height = max(min(height, termHeight), 1)

	offsetCol = (termWidth - width) / 2
	offsetRow = (termHeight - height) / 2
	return width, height, offsetCol, offsetRow
}

package draw

import (
	"github.com/gdamore/tcell/v2"
)

// tcellPalette maps palette entries to tcell colors.
var tcellPalette = [...]tcell.Color{
	ColorBlack:  tcell.ColorBlack,
	ColorWhite:  tcell.ColorWhite,
	ColorGray:   tcell.ColorGray,
	ColorRed:    tcell.ColorRed,
	ColorGreen:  tcell.ColorGreen,
	ColorOrange: tcell.ColorOrange,
	ColorYellow: tcell.ColorYellow,
	ColorBlue:   tcell.ColorBlue,
}

func (c Color) tcell() tcell.Color {
	if int(c) < len(tcellPalette) {
		return tcellPalette[c]
	}
	return tcell.ColorWhite
}

// TcellPresenter presents frames on a tcell.Screen.
type TcellPresenter struct {
	screen tcell.Screen
	canvas *Canvas
}

// Compile-time check that TcellPresenter implements Presenter.
var _ Presenter = (*TcellPresenter)(nil)

// NewTcellPresenter wraps an initialized screen.
func NewTcellPresenter(screen tcell.Screen, logicalWidth, logicalHeight int) *TcellPresenter {
	return &TcellPresenter{
		screen: screen,
		canvas: NewScaledCanvas(0, 0, float64(logicalWidth), float64(logicalHeight)),
	}
}

// Begin sizes and clears the canvas for a new frame.
func (p *TcellPresenter) Begin() (Surface, error) {
	termW, termH := p.screen.Size()
	width, height, offCol, offRow := FitViewport(termW, termH, p.canvas.logicalWidth, p.canvas.logicalHeight)
	if width == 0 || height == 0 {
		return nil, ErrSurfaceUnavailable
	}
	p.canvas.Resize(width, height)
	p.canvas.SetOffset(offCol, offRow)
	p.canvas.Clear()
	return p.canvas, nil
}

// Present copies the canvas into the screen buffer and shows it.
func (p *TcellPresenter) Present() error {
	c := p.canvas
	p.screen.Clear()

	c.EachCell(func(col, row int, ch rune, fg, bg Color) {
		style := tcell.StyleDefault.Foreground(fg.tcell())
		if bg != ColorBlack {
			style = style.Background(bg.tcell())
		}
		p.screen.SetContent(col-1+c.offsetCol, row-1+c.offsetRow, ch, nil, style)
	})

	for _, t := range c.Texts() {
		x := t.Col - 1 + c.offsetCol
		for _, r := range t.Value {
			p.screen.SetContent(x, t.Row-1+c.offsetRow, r, nil, tcell.StyleDefault.Bold(true))
			x++
		}
	}

	p.screen.Show()
	return nil
}

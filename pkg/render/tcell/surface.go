// Package tcell draws a show into a terminal through tcell. Each cell
// stands for a block of surface units, twice as tall as it is wide.
package tcell

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-fireworks/pkg/firework"
)

const (
	rocketGlyph = '┃'
	sparkGlyph  = '•'
	cellAspect  = 2
)

// Surface implements firework.TextSurface on top of a tcell.Screen.
type Surface struct {
	screen tcell.Screen
	scale  float64
	width  int
	height int

	fill  color.RGBA
	saved []color.RGBA
	text  tcell.Style
}

// NewSurface wraps an initialized screen. scale is the number of surface
// units covered by one cell horizontally.
func NewSurface(screen tcell.Screen, scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	s := &Surface{
		screen: screen,
		scale:  scale,
		fill:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		text:   tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
	s.Resize()
	return s
}

// Resize re-reads the screen dimensions.
func (s *Surface) Resize() {
	s.width, s.height = s.screen.Size()
}

// SurfaceSize returns the drawing area in surface units.
func (s *Surface) SurfaceSize() (float64, float64) {
	return float64(s.width) * s.scale, float64(s.height) * s.scale * cellAspect
}

func (s *Surface) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / s.scale)), int(math.Floor(y / (s.scale * cellAspect)))
}

func (s *Surface) Clear() {
	s.screen.Clear()
}

func (s *Surface) Save() {
	s.saved = append(s.saved, s.fill)
}

func (s *Surface) Restore() {
	if n := len(s.saved); n > 0 {
		s.fill = s.saved[n-1]
		s.saved = s.saved[:n-1]
	}
}

func (s *Surface) SetFillColor(c color.RGBA) {
	s.fill = c
}

func (s *Surface) FillRect(x, y, width, height float64) {
	glyph := sparkGlyph
	if height > width {
		glyph = rocketGlyph
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(s.fill.R), int32(s.fill.G), int32(s.fill.B)))

	x0, y0 := s.toCell(x, y)
	x1, y1 := s.toCell(x+width, y+height)
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)

	for cy := max(y0, 0); cy < min(y1, s.height); cy++ {
		for cx := max(x0, 0); cx < min(x1, s.width); cx++ {
			s.screen.SetContent(cx, cy, glyph, nil, style)
		}
	}
}

func (s *Surface) DrawText(x, y int, text string) {
	cx, cy := s.toCell(float64(x), float64(y))
	for i, ch := range []rune(text) {
		if px := cx + i; px >= 0 && px < s.width && cy >= 0 && cy < s.height {
			s.screen.SetContent(px, cy, ch, nil, s.text)
		}
	}
}

// Present flushes the frame to the terminal.
func (s *Surface) Present() {
	s.screen.Show()
}

var _ firework.TextSurface = (*Surface)(nil)

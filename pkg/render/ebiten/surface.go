// Package ebiten hosts a show in an ebiten window.
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/opd-ai/go-fireworks/pkg/firework"
)

var labelColor = color.RGBA{R: 220, G: 220, B: 220, A: 255}

type rect struct {
	x, y, w, h float32
	c          color.RGBA
}

type label struct {
	x, y int
	text string
}

// Surface collects one frame of drawing calls. ebiten images can only be
// drawn on inside the game loop, so the frame is replayed by Render.
type Surface struct {
	rects  []rect
	labels []label

	fill  color.RGBA
	saved []color.RGBA
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{fill: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
}

func (s *Surface) Clear() {
	s.rects = s.rects[:0]
	s.labels = s.labels[:0]
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
	s.rects = append(s.rects, rect{
		x: float32(x), y: float32(y),
		w: float32(width), h: float32(height),
		c: s.fill,
	})
}

func (s *Surface) DrawText(x, y int, text string) {
	s.labels = append(s.labels, label{x: x, y: y, text: text})
}

// Len returns the number of rectangles in the current frame.
func (s *Surface) Len() int {
	return len(s.rects)
}

// Render draws the collected frame onto dst.
func (s *Surface) Render(dst *ebiten.Image) {
	dst.Fill(color.Black)
	for _, r := range s.rects {
		vector.DrawFilledRect(dst, r.x, r.y, r.w, r.h, r.c, false)
	}
	for _, l := range s.labels {
		// text.Draw positions the baseline.
		text.Draw(dst, l.text, basicfont.Face7x13, l.x, l.y+basicfont.Face7x13.Ascent, labelColor)
	}
}

var _ firework.TextSurface = (*Surface)(nil)

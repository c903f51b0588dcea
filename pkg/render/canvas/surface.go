// Package canvas draws a show with tfriedel6/canvas, an HTML5-style 2D
// canvas running on OpenGL. The calls map one to one onto the surface.
package canvas

import (
	"image/color"

	"github.com/tfriedel6/canvas"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-fireworks/pkg/firework"
)

const overlayFontSize = 14

// drawer is the subset of *canvas.Canvas the surface calls.
type drawer interface {
	Save()
	Restore()
	SetFillStyle(value ...interface{})
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	FillText(str string, x, y float64)
	SetFont(src interface{}, size float64)
	Width() int
	Height() int
}

// Surface implements firework.TextSurface on a canvas.
type Surface struct {
	cv       drawer
	fontSet  bool
	textFill color.RGBA
}

// NewSurface wraps cv.
func NewSurface(cv *canvas.Canvas) *Surface {
	return newSurface(cv)
}

func newSurface(cv drawer) *Surface {
	return &Surface{
		cv:       cv,
		textFill: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Clear paints the whole canvas black.
func (s *Surface) Clear() {
	w, h := float64(s.cv.Width()), float64(s.cv.Height())
	s.cv.ClearRect(0, 0, w, h)
	s.cv.SetFillStyle(color.Black)
	s.cv.FillRect(0, 0, w, h)
}

func (s *Surface) Save() {
	s.cv.Save()
}

func (s *Surface) Restore() {
	s.cv.Restore()
}

func (s *Surface) SetFillColor(c color.RGBA) {
	s.cv.SetFillStyle(c)
}

func (s *Surface) FillRect(x, y, width, height float64) {
	s.cv.FillRect(x, y, width, height)
}

// DrawText prints text with its top-left corner at (x, y).
func (s *Surface) DrawText(x, y int, text string) {
	if !s.fontSet {
		s.cv.SetFont(goregular.TTF, overlayFontSize)
		s.fontSet = true
	}
	s.cv.Save()
	s.cv.SetFillStyle(s.textFill)
	s.cv.FillText(text, float64(x), float64(y)+overlayFontSize)
	s.cv.Restore()
}

// Size returns the canvas size in pixels.
func (s *Surface) Size() (float64, float64) {
	return float64(s.cv.Width()), float64(s.cv.Height())
}

var _ firework.TextSurface = (*Surface)(nil)

package firework

import "image/color"

// Surface is the drawing target a firework renders itself onto. It mirrors
// the small subset of a 2D canvas API the display needs.
type Surface interface {
	Clear()
	Save()
	Restore()
	SetFillColor(c color.RGBA)
	FillRect(x, y, width, height float64)
}

// TextSurface is implemented by surfaces that can also print a line of
// text, used for the frame overlay.
type TextSurface interface {
	Surface
	DrawText(x, y int, text string)
}

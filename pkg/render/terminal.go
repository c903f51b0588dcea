package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/opd-ai/go-fireworks/pkg/firework"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2

type cell struct {
	r rune
	c color.RGBA
}

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// One cell covers scale surface units horizontally and twice that
// vertically.
type TerminalRenderer struct {
	width  int
	height int
	buffer [][]cell
	scale  float64
	out    io.Writer

	// Colorize wraps each glyph in a 24-bit ANSI color sequence.
	Colorize bool

	fill  color.RGBA
	saved []color.RGBA
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions in cells.
func NewTerminalRenderer(width, height int, scale float64, out io.Writer) *TerminalRenderer {
	buffer := make([][]cell, height)
	for i := range buffer {
		buffer[i] = make([]cell, width)
	}
	if scale <= 0 {
		scale = 1
	}

	r := &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
		out:    out,
		fill:   color.RGBA{A: 255},
	}
	r.Clear()
	return r
}

// SurfaceSize returns the drawing area covered by the terminal, in surface
// units.
func (r *TerminalRenderer) SurfaceSize() (float64, float64) {
	return float64(r.width) * r.scale, float64(r.height) * r.scale * cellAspect
}

// toCell converts surface coordinates to cell coordinates.
func (r *TerminalRenderer) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / r.scale)), int(math.Floor(y / (r.scale * cellAspect)))
}

// Clear implements firework.Surface.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{r: ' '}
		}
	}
}

// Save implements firework.Surface.
func (r *TerminalRenderer) Save() {
	r.saved = append(r.saved, r.fill)
}

// Restore implements firework.Surface.
func (r *TerminalRenderer) Restore() {
	if n := len(r.saved); n > 0 {
		r.fill = r.saved[n-1]
		r.saved = r.saved[:n-1]
	}
}

// SetFillColor implements firework.Surface.
func (r *TerminalRenderer) SetFillColor(c color.RGBA) {
	r.fill = c
}

// FillRect implements firework.Surface. Every cell the rectangle touches is
// filled; rockets and sparks get different glyphs.
func (r *TerminalRenderer) FillRect(x, y, width, height float64) {
	glyph := '*'
	if height > width {
		glyph = '|'
	}

	x0, y0 := r.toCell(x, y)
	x1, y1 := r.toCell(x+width, y+height)
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)

	for cy := max(y0, 0); cy < min(y1, r.height); cy++ {
		for cx := max(x0, 0); cx < min(x1, r.width); cx++ {
			r.buffer[cy][cx] = cell{r: glyph, c: r.fill}
		}
	}
}

// DrawText implements firework.TextSurface.
func (r *TerminalRenderer) DrawText(x, y int, text string) {
	cx, cy := r.toCell(float64(x), float64(y))
	if cy < 0 || cy >= r.height {
		return
	}
	for i, ch := range []rune(text) {
		if px := cx + i; px >= 0 && px < r.width {
			r.buffer[cy][px] = cell{r: ch}
		}
	}
}

// Present writes the buffer to the output, framed by a border.
func (r *TerminalRenderer) Present() {
	w := bufio.NewWriter(r.out)
	defer w.Flush()

	// Clear terminal
	fmt.Fprint(w, "\033[H\033[2J")

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	fmt.Fprint(w, border)
	for y := range r.buffer {
		w.WriteByte('|')
		for _, c := range r.buffer[y] {
			if r.Colorize && c.c.A != 0 {
				fmt.Fprintf(w, "\033[38;2;%d;%d;%dm%c\033[0m", c.c.R, c.c.G, c.c.B, c.r)
				continue
			}
			w.WriteRune(c.r)
		}
		w.WriteString("|\n")
	}
	fmt.Fprint(w, border)
}

// Row returns one line of the buffer as plain text.
func (r *TerminalRenderer) Row(y int) string {
	var b strings.Builder
	for _, c := range r.buffer[y] {
		b.WriteRune(c.r)
	}
	return b.String()
}

var _ firework.TextSurface = (*TerminalRenderer)(nil)

// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-fireworks/pkg/firework"
)

// rectAdder is the part of common.RenderSystem the renderer needs.
type rectAdder interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// rectEntity is one pooled rectangle drawn by the render system.
type rectEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// Overlay text settings.
const (
	labelSize    = 14
	labelZIndex  = 1
	labelAdvance = 8 // approximate glyph width
)

// EngoRenderer implements firework.TextSurface with a pool of rectangle
// entities and a single text entity. Each frame reuses the pool from the
// start and hides whatever was not drawn.
type EngoRenderer struct {
	renderSystem rectAdder

	rects []*rectEntity
	used  int

	font      *common.Font
	label     *rectEntity
	labelText string
	labelUsed bool

	fill  color.RGBA
	saved []color.RGBA
}

// NewEngoRenderer creates a new Engo-based renderer. Bind must be called
// before the first frame.
func NewEngoRenderer() *EngoRenderer {
	return &EngoRenderer{
		fill: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Bind attaches the renderer to the world's render system.
func (r *EngoRenderer) Bind(rs rectAdder) {
	r.renderSystem = rs
}

// SetFont sets the font used by DrawText. Text is skipped until a font is
// set.
func (r *EngoRenderer) SetFont(font *common.Font) {
	r.font = font
}

// Clear implements firework.Surface
func (r *EngoRenderer) Clear() {
	r.used = 0
	r.labelUsed = false
}

// Save implements firework.Surface
func (r *EngoRenderer) Save() {
	r.saved = append(r.saved, r.fill)
}

// Restore implements firework.Surface
func (r *EngoRenderer) Restore() {
	if n := len(r.saved); n > 0 {
		r.fill = r.saved[n-1]
		r.saved = r.saved[:n-1]
	}
}

// SetFillColor implements firework.Surface
func (r *EngoRenderer) SetFillColor(c color.RGBA) {
	r.fill = c
}

// FillRect implements firework.Surface
func (r *EngoRenderer) FillRect(x, y, width, height float64) {
	e := r.next()
	e.Position = engo.Point{X: float32(x), Y: float32(y)}
	e.Width = float32(width)
	e.Height = float32(height)
	e.Color = r.fill
	e.Hidden = false
}

// DrawText implements firework.TextSurface. Only one line of text is
// shown per frame; a later call replaces an earlier one.
func (r *EngoRenderer) DrawText(x, y int, text string) {
	if r.font == nil {
		return
	}

	if r.label == nil {
		r.label = &rectEntity{BasicEntity: ecs.NewBasic()}
		r.label.Color = color.White
		r.label.SetZIndex(labelZIndex)
		if r.renderSystem != nil {
			r.renderSystem.Add(&r.label.BasicEntity, &r.label.RenderComponent, &r.label.SpaceComponent)
		}
	}

	if text != r.labelText || r.label.Drawable == nil {
		r.label.Drawable = common.Text{Font: r.font, Text: text}
		r.labelText = text
	}
	r.label.Position = engo.Point{X: float32(x), Y: float32(y)}
	r.label.Width = float32(len(text) * labelAdvance)
	r.label.Height = labelSize
	r.label.Hidden = false
	r.labelUsed = true
}

// Present hides the pooled rectangles left over from bigger frames, and
// the label when no text was drawn.
func (r *EngoRenderer) Present() {
	for _, e := range r.rects[r.used:] {
		e.Hidden = true
	}
	if r.label != nil && !r.labelUsed {
		r.label.Hidden = true
	}
}

// Label returns the text shown in the current frame, or "" when hidden.
func (r *EngoRenderer) Label() string {
	if r.label == nil || r.label.Hidden {
		return ""
	}
	return r.labelText
}

// Visible returns the number of rectangles drawn in the current frame.
func (r *EngoRenderer) Visible() int {
	return r.used
}

// Pooled returns the number of rectangle entities created so far.
func (r *EngoRenderer) Pooled() int {
	return len(r.rects)
}

// Release removes every pooled entity from the render system.
func (r *EngoRenderer) Release() {
	if r.renderSystem != nil {
		for _, e := range r.rects {
			r.renderSystem.Remove(e.BasicEntity)
		}
		if r.label != nil {
			r.renderSystem.Remove(r.label.BasicEntity)
		}
	}
	r.rects = nil
	r.used = 0
	r.label = nil
	r.labelText = ""
}

// next returns the next free pooled rectangle, growing the pool if needed.
func (r *EngoRenderer) next() *rectEntity {
	if r.used < len(r.rects) {
		e := r.rects[r.used]
		r.used++
		return e
	}

	e := &rectEntity{BasicEntity: ecs.NewBasic()}
	e.Drawable = common.Rectangle{}
	if r.renderSystem != nil {
		r.renderSystem.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	}
	r.rects = append(r.rects, e)
	r.used++
	return e
}

var _ firework.TextSurface = (*EngoRenderer)(nil)

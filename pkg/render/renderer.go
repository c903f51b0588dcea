// pkg/render/renderer.go
package render

import (
	"context"
	"image/color"

	"github.com/opd-ai/go-fireworks/pkg/firework"
	"github.com/opd-ai/go-fireworks/pkg/logging"
)

// NullRenderer is a firework.Surface that only logs what it is asked to
// draw. It backs headless runs.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
	rects  int
	frames uint64
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// Clear implements firework.Surface.
func (d *NullRenderer) Clear() {
	d.rects = 0
}

// Save implements firework.Surface.
func (d *NullRenderer) Save() {}

// Restore implements firework.Surface.
func (d *NullRenderer) Restore() {}

// SetFillColor implements firework.Surface.
func (d *NullRenderer) SetFillColor(color.RGBA) {}

// FillRect implements firework.Surface.
func (d *NullRenderer) FillRect(_, _, _, _ float64) {
	d.rects++
}

// DrawText implements firework.TextSurface.
func (d *NullRenderer) DrawText(_, _ int, text string) {
	d.logger.Debug(d.ctx, "overlay", "text", text)
}

// Present ends a frame and logs how much was drawn.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(d.ctx, "frame presented", "frame", d.frames, "rects", d.rects)
}

// Frames returns the number of presented frames.
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Rects returns the number of rectangles filled since the last Clear.
func (d *NullRenderer) Rects() int {
	return d.rects
}

var _ firework.TextSurface = (*NullRenderer)(nil)

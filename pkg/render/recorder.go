package render

import (
	"image/color"

	"github.com/opd-ai/go-fireworks/pkg/firework"
)

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpClear OpKind = iota
	OpSave
	OpRestore
	OpSetFill
	OpFillRect
	OpText
)

// Op is one recorded drawing call. Only the fields relevant to Kind are set.
type Op struct {
	Kind  OpKind
	X, Y  float64
	W, H  float64
	Color color.RGBA
	Text  string
}

// Recorder is a firework.TextSurface that keeps every call it receives, in
// order. FillRect ops carry the fill color active at the time.
type Recorder struct {
	Ops []Op

	fill  color.RGBA
	saved []color.RGBA
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) Save() {
	r.saved = append(r.saved, r.fill)
	r.Ops = append(r.Ops, Op{Kind: OpSave})
}

func (r *Recorder) Restore() {
	if n := len(r.saved); n > 0 {
		r.fill = r.saved[n-1]
		r.saved = r.saved[:n-1]
	}
	r.Ops = append(r.Ops, Op{Kind: OpRestore})
}

func (r *Recorder) SetFillColor(c color.RGBA) {
	r.fill = c
	r.Ops = append(r.Ops, Op{Kind: OpSetFill, Color: c})
}

func (r *Recorder) FillRect(x, y, width, height float64) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: width, H: height, Color: r.fill})
}

func (r *Recorder) DrawText(x, y int, text string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: float64(x), Y: float64(y), Text: text})
}

// Reset drops the recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.saved = r.saved[:0]
}

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Depth is the current Save nesting level.
func (r *Recorder) Depth() int {
	return len(r.saved)
}

var _ firework.TextSurface = (*Recorder)(nil)

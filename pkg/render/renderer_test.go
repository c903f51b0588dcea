// pkg/render/renderer_test.go
package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/opd-ai/go-fireworks/pkg/logging"
)

func TestNullRenderer_CountsRectsPerFrame(t *testing.T) {
	renderer := NewNullRenderer(nil)

	renderer.Clear()
	renderer.FillRect(0, 0, 6, 12)
	renderer.FillRect(10, 10, 3, 3)
	if renderer.Rects() != 2 {
		t.Errorf("expected 2 rects, got %d", renderer.Rects())
	}

	renderer.Present()
	renderer.Clear()
	if renderer.Rects() != 0 {
		t.Errorf("Clear should reset the rect count, got %d", renderer.Rects())
	}
	if renderer.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", renderer.Frames())
	}
}

func TestNullRenderer_Present_LogsFrame(t *testing.T) {
	t.Setenv(logging.LevelEnvVar, "DEBUG")

	var buf bytes.Buffer
	renderer := NewNullRenderer(logging.NewLoggerWithWriter(&buf))

	renderer.FillRect(0, 0, 1, 1)
	renderer.DrawText(8, 8, "FPS: 60")
	renderer.Present()

	output := buf.String()
	if !strings.Contains(output, "frame presented") {
		t.Errorf("expected log to contain 'frame presented', got: %s", output)
	}
	if !strings.Contains(output, `"rects":1`) {
		t.Errorf("expected rect count in log, got: %s", output)
	}
	if !strings.Contains(output, "FPS: 60") {
		t.Errorf("expected overlay text in log, got: %s", output)
	}
}

func TestRecorder_RecordsCallsInOrder(t *testing.T) {
	rec := NewRecorder()
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	rec.Clear()
	rec.SetFillColor(red)
	rec.Save()
	rec.SetFillColor(blue)
	rec.FillRect(1, 2, 3, 4)
	rec.Restore()
	rec.FillRect(5, 6, 7, 8)
	rec.DrawText(8, 8, "hello")

	kinds := []OpKind{OpClear, OpSetFill, OpSave, OpSetFill, OpFillRect, OpRestore, OpFillRect, OpText}
	if len(rec.Ops) != len(kinds) {
		t.Fatalf("expected %d ops, got %d", len(kinds), len(rec.Ops))
	}
	for i, k := range kinds {
		if rec.Ops[i].Kind != k {
			t.Errorf("op %d: expected kind %d, got %d", i, k, rec.Ops[i].Kind)
		}
	}

	if rec.Ops[4].Color != blue {
		t.Errorf("rect inside save should be blue, got %v", rec.Ops[4].Color)
	}
	if rec.Ops[6].Color != red {
		t.Errorf("restore should bring back red, got %v", rec.Ops[6].Color)
	}
	if rec.Ops[7].Text != "hello" {
		t.Errorf("unexpected text op %+v", rec.Ops[7])
	}
	if rec.Depth() != 0 {
		t.Errorf("expected balanced save/restore, depth %d", rec.Depth())
	}
	if rec.Count(OpFillRect) != 2 {
		t.Errorf("expected 2 rects, got %d", rec.Count(OpFillRect))
	}

	rec.Reset()
	if len(rec.Ops) != 0 {
		t.Errorf("Reset should drop ops, %d left", len(rec.Ops))
	}
}

func TestRecorder_RestoreWithoutSave(t *testing.T) {
	rec := NewRecorder()
	rec.SetFillColor(color.RGBA{G: 255, A: 255})
	rec.Restore()
	rec.FillRect(0, 0, 1, 1)

	if got := rec.Ops[len(rec.Ops)-1].Color; got.G != 255 {
		t.Errorf("unbalanced restore must keep the fill, got %v", got)
	}
}

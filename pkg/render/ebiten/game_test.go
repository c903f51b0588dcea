package ebiten

import (
	"image/color"
	"testing"
	"time"

	"github.com/opd-ai/go-fireworks/pkg/config"
	"github.com/opd-ai/go-fireworks/pkg/engine"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(16 * time.Millisecond)
	return c.now
}

func TestSurface_CollectsFrame(t *testing.T) {
	s := NewSurface()
	orange := color.RGBA{R: 255, G: 128, A: 255}

	s.Save()
	s.SetFillColor(orange)
	s.FillRect(1, 2, 3, 4)
	s.Restore()
	s.FillRect(5, 6, 7, 8)
	s.DrawText(8, 8, "FPS: 60")

	if s.Len() != 2 {
		t.Fatalf("expected 2 rects, got %d", s.Len())
	}
	if s.rects[0].c != orange {
		t.Errorf("first rect color = %v, expected %v", s.rects[0].c, orange)
	}
	if s.rects[1].c != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("second rect should use the restored white, got %v", s.rects[1].c)
	}
	if r := s.rects[0]; r.x != 1 || r.y != 2 || r.w != 3 || r.h != 4 {
		t.Errorf("unexpected geometry %+v", r)
	}
	if len(s.labels) != 1 || s.labels[0].text != "FPS: 60" {
		t.Errorf("unexpected labels %+v", s.labels)
	}

	s.Clear()
	if s.Len() != 0 || len(s.labels) != 0 {
		t.Error("Clear should drop the frame")
	}
}

func TestGame_StepAndLayout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Canvas.Width = 800
	cfg.Canvas.Height = 600
	cfg.Launch.DelayMs = 0
	cfg.Launch.SkipFrames = 0
	show := engine.NewShow(cfg, engine.WithClock(&stepClock{now: time.Unix(0, 0)}))
	game := NewGame(show)

	if w, h := game.Layout(1920, 1080); w != 800 || h != 600 {
		t.Errorf("Layout() = (%d, %d), expected (800, 600)", w, h)
	}

	game.step()
	game.step()
	if game.surface.Len() != 2 {
		t.Errorf("expected two rockets in the frame, got %d", game.surface.Len())
	}
	if len(game.surface.labels) != 1 {
		t.Errorf("expected the overlay label, got %d", len(game.surface.labels))
	}
}

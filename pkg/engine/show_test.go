package engine

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/opd-ai/go-fireworks/pkg/config"
	"github.com/opd-ai/go-fireworks/pkg/event"
	"github.com/opd-ai/go-fireworks/pkg/render"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// presentingRecorder adds Presenter to a recording surface.
type presentingRecorder struct {
	*render.Recorder
	presents int
}

func newPresentingRecorder() *presentingRecorder {
	return &presentingRecorder{Recorder: render.NewRecorder()}
}

func (r *presentingRecorder) Present() {
	r.presents++
}

func texts(r *render.Recorder) []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == render.OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

func testConfig(total, delayMs int) *config.ShowConfig {
	cfg := config.DefaultConfig()
	cfg.Launch.Total = total
	cfg.Launch.DelayMs = delayMs
	cfg.Launch.SkipFrames = 0
	cfg.Timing.MaxDeltaTime = 0
	return cfg
}

func newTestShow(cfg *config.ShowConfig) (*Show, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	show := NewShow(cfg, WithClock(clock), WithRand(rand.New(rand.NewPCG(1, 2))))
	return show, clock
}

func TestShow_StaggeredCreation(t *testing.T) {
	show, clock := newTestShow(testConfig(3, 500))

	for i := 1; i <= 3; i++ {
		clock.Advance(500 * time.Millisecond)
		show.Tick()
		if got := len(show.Fireworks()); got != i {
			t.Fatalf("after %d ticks expected %d fireworks, got %d", i, i, got)
		}
	}

	clock.Advance(500 * time.Millisecond)
	show.Tick()
	if got := len(show.Fireworks()); got != 3 {
		t.Errorf("expected the show to stop at 3 fireworks, got %d", got)
	}
	if show.Launched() != 3 {
		t.Errorf("Launched() = %d, expected 3", show.Launched())
	}
}

func TestShow_NoLaunchBeforeDelay(t *testing.T) {
	show, clock := newTestShow(testConfig(3, 500))

	clock.Advance(499 * time.Millisecond)
	show.Tick()
	if len(show.Fireworks()) != 0 {
		t.Fatal("firework created before the launch delay elapsed")
	}

	clock.Advance(time.Millisecond)
	show.Tick()
	if len(show.Fireworks()) != 1 {
		t.Fatal("expected a firework once the delay elapsed")
	}
}

func TestShow_OneLaunchPerTick(t *testing.T) {
	show, clock := newTestShow(testConfig(5, 500))

	clock.Advance(10 * time.Second)
	show.Tick()
	if len(show.Fireworks()) != 1 {
		t.Errorf("expected one firework per tick, got %d", len(show.Fireworks()))
	}
}

func TestShow_SkipsFirstFrames(t *testing.T) {
	cfg := testConfig(3, 0)
	cfg.Launch.SkipFrames = 2
	show, clock := newTestShow(cfg)

	for i := 0; i < 2; i++ {
		clock.Advance(16 * time.Millisecond)
		show.Tick()
		if len(show.Fireworks()) != 0 {
			t.Fatalf("tick %d should have been skipped", i)
		}
		if show.DeltaTime() != 0.016 {
			t.Errorf("skipped ticks still measure time, got dt %v", show.DeltaTime())
		}
	}

	clock.Advance(16 * time.Millisecond)
	show.Tick()
	if len(show.Fireworks()) != 1 {
		t.Errorf("expected a firework after the skipped frames, got %d", len(show.Fireworks()))
	}
	if show.CurrentTick != 1 {
		t.Errorf("CurrentTick = %d, expected 1", show.CurrentTick)
	}
}

func TestShow_DeltaTimeAndFPS(t *testing.T) {
	tests := []struct {
		name        string
		maxDelta    float64
		elapsed     time.Duration
		expectedDt  float64
		expectedFPS float64
	}{
		{"fifty_fps", 0, 20 * time.Millisecond, 0.02, 50},
		{"capped", 0.1, time.Second, 0.1, 10},
		{"uncapped", 0, time.Second, 1, 1},
		{"frozen_clock", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(1, 0)
			cfg.Timing.MaxDeltaTime = tt.maxDelta
			show, clock := newTestShow(cfg)

			clock.Advance(tt.elapsed)
			show.Tick()

			if math.Abs(show.DeltaTime()-tt.expectedDt) > 1e-12 {
				t.Errorf("DeltaTime() = %v, expected %v", show.DeltaTime(), tt.expectedDt)
			}
			if math.Abs(show.FPS()-tt.expectedFPS) > 1e-9 {
				t.Errorf("FPS() = %v, expected %v", show.FPS(), tt.expectedFPS)
			}
		})
	}
}

func TestShow_DefaultConfigMeasuresRealDeltaTime(t *testing.T) {
	show, clock := newTestShow(config.DefaultConfig())

	clock.Advance(500 * time.Millisecond)
	show.Tick()

	if show.DeltaTime() != 0.5 {
		t.Errorf("DeltaTime() = %v, expected the full 0.5s", show.DeltaTime())
	}
	if show.FPS() != 2 {
		t.Errorf("FPS() = %v, expected 2", show.FPS())
	}
}

func TestShow_DefaultSkipFramesDelaysFirstLaunch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Launch.Total = 3
	show, clock := newTestShow(cfg)

	for i := 0; i < 3; i++ {
		clock.Advance(500 * time.Millisecond)
		show.Tick()
	}
	if len(show.Fireworks()) != 1 {
		t.Errorf("expected two settling ticks then one launch, got %d fireworks", len(show.Fireworks()))
	}
}

func TestShow_DisplayFPSEases(t *testing.T) {
	show, clock := newTestShow(testConfig(1, 0))

	for i := 0; i < 5; i++ {
		clock.Advance(20 * time.Millisecond)
		show.Tick()
	}
	if math.Abs(show.DisplayFPS()-50) > 1e-9 {
		t.Fatalf("steady frames should settle on 50, got %v", show.DisplayFPS())
	}

	// A single slow frame only nudges the readout.
	clock.Advance(100 * time.Millisecond)
	show.Tick()
	if show.FPS() != 10 {
		t.Fatalf("FPS() = %v, expected 10", show.FPS())
	}
	if d := show.DisplayFPS(); d <= 10 || d >= 50 {
		t.Errorf("DisplayFPS() = %v, expected between 10 and 50", d)
	}
	if show.Stats().FPS != show.DisplayFPS() {
		t.Error("overlay should show the eased FPS")
	}
}

func TestShow_PublishesLifecycleEvents(t *testing.T) {
	show, clock := newTestShow(testConfig(1, 0))

	var seen []event.Type
	record := func(e event.Event) { seen = append(seen, e.GetType()) }
	for _, et := range []event.Type{event.FireworkCreated, event.RocketLaunched, event.FireworkExploded, event.FireworkRecycled} {
		show.EventBus.Subscribe(et, record)
	}

	clock.Advance(16 * time.Millisecond)
	show.Tick()

	if len(seen) != 2 || seen[0] != event.FireworkCreated || seen[1] != event.RocketLaunched {
		t.Fatalf("expected created then launched, got %v", seen)
	}

	for i := 0; i < 200 && show.Explosions() == 0; i++ {
		clock.Advance(16 * time.Millisecond)
		show.Tick()
	}
	if show.Explosions() != 1 {
		t.Fatalf("expected one explosion, got %d", show.Explosions())
	}
	if seen[len(seen)-1] != event.FireworkExploded {
		t.Errorf("last event = %v, expected exploded", seen[len(seen)-1])
	}
}

func TestShow_CountsRocketsAndSparks(t *testing.T) {
	show, clock := newTestShow(testConfig(1, 0))

	clock.Advance(16 * time.Millisecond)
	show.Tick()
	// The rocket sits exactly on the bottom edge right after launch.
	if show.RocketsOnScreen() != 0 {
		t.Errorf("RocketsOnScreen() = %d right after launch, expected 0", show.RocketsOnScreen())
	}

	clock.Advance(16 * time.Millisecond)
	show.Tick()
	if show.RocketsOnScreen() != 1 {
		t.Errorf("RocketsOnScreen() = %d while ascending, expected 1", show.RocketsOnScreen())
	}
	if show.SparksOnScreen() != 0 {
		t.Errorf("SparksOnScreen() = %d before the explosion, expected 0", show.SparksOnScreen())
	}

	for i := 0; i < 200 && show.Explosions() == 0; i++ {
		clock.Advance(16 * time.Millisecond)
		show.Tick()
	}
	if show.RocketsOnScreen() != 0 {
		t.Errorf("RocketsOnScreen() = %d after the explosion, expected 0", show.RocketsOnScreen())
	}
	if show.SparksOnScreen() != 100 {
		t.Errorf("SparksOnScreen() = %d at the explosion, expected 100", show.SparksOnScreen())
	}
}

func TestShow_RecyclesForever(t *testing.T) {
	show, clock := newTestShow(testConfig(1, 0))

	recycles := 0
	show.EventBus.Subscribe(event.FireworkRecycled, func(event.Event) { recycles++ })

	for i := 0; i < 5000 && recycles < 2; i++ {
		clock.Advance(16 * time.Millisecond)
		show.Tick()
	}
	if recycles < 2 {
		t.Fatalf("expected the firework to recycle at least twice, got %d", recycles)
	}
	if len(show.Fireworks()) != 1 {
		t.Errorf("recycling must not create fireworks, got %d", len(show.Fireworks()))
	}
	if show.Explosions() < 2 {
		t.Errorf("Explosions() = %d, expected at least 2", show.Explosions())
	}
}

func TestShow_Draw(t *testing.T) {
	t.Run("with_overlay", func(t *testing.T) {
		show, clock := newTestShow(testConfig(2, 0))
		clock.Advance(16 * time.Millisecond)
		show.Tick()
		clock.Advance(16 * time.Millisecond)
		show.Tick()

		s := render.NewRecorder()
		show.Draw(s)

		if s.Ops[0].Kind != render.OpClear || s.Count(render.OpClear) != 1 {
			t.Errorf("expected a single clear first, got %+v", s.Ops)
		}
		if s.Count(render.OpFillRect) != 2 {
			t.Errorf("expected two rocket rects, got %d", s.Count(render.OpFillRect))
		}
		if s.Count(render.OpSave) != 2 || s.Count(render.OpRestore) != 2 || s.Depth() != 0 {
			t.Errorf("expected balanced save/restore per firework, got %d/%d",
				s.Count(render.OpSave), s.Count(render.OpRestore))
		}
		for i, fw := range show.Fireworks() {
			rect := s.Ops[4*i+3]
			if rect.Kind != render.OpFillRect || rect.Color != fw.Color {
				t.Errorf("firework %d drawn as %+v, expected its color %v", i, rect, fw.Color)
			}
		}
		last := s.Ops[len(s.Ops)-1]
		if last.Kind != render.OpText || last.X != overlayX || !strings.Contains(last.Text, "Rockets: ") {
			t.Errorf("expected the overlay drawn last, got %+v", last)
		}
	})

	t.Run("without_overlay", func(t *testing.T) {
		cfg := testConfig(1, 0)
		cfg.Overlay = false
		show, _ := newTestShow(cfg)

		s := render.NewRecorder()
		show.Draw(s)
		if got := texts(s); len(got) != 0 {
			t.Errorf("overlay drawn while disabled: %v", got)
		}
	})
}

func TestShow_FramePresents(t *testing.T) {
	show, clock := newTestShow(testConfig(1, 0))
	clock.Advance(16 * time.Millisecond)

	s := newPresentingRecorder()
	show.Frame(s)

	if len(show.Fireworks()) != 1 || s.Count(render.OpClear) != 1 || s.presents != 1 {
		t.Errorf("Frame should tick, draw and present: fireworks=%d clears=%d presents=%d",
			len(show.Fireworks()), s.Count(render.OpClear), s.presents)
	}
}

func TestShow_RunStopsOnCancel(t *testing.T) {
	show := NewShow(testConfig(1, 0))

	var stopped bool
	show.EventBus.Subscribe(event.ShowStopped, func(event.Event) { stopped = true })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newPresentingRecorder()
	err := show.Run(ctx, s, time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, expected deadline exceeded", err)
	}
	if !stopped {
		t.Error("expected a show stopped event")
	}
	if s.presents == 0 {
		t.Error("expected at least one frame")
	}
}

func TestShow_SetBoundsAffectsNewFireworks(t *testing.T) {
	show, clock := newTestShow(testConfig(2, 0))

	clock.Advance(16 * time.Millisecond)
	show.Tick()
	show.SetBounds(1280, 720)
	clock.Advance(16 * time.Millisecond)
	show.Tick()

	fws := show.Fireworks()
	if fws[0].RangeX.Max != 500 {
		t.Errorf("first firework RangeX.Max = %v, expected 500", fws[0].RangeX.Max)
	}
	if fws[1].RangeX.Max != 1140 {
		t.Errorf("second firework RangeX.Max = %v, expected 1140", fws[1].RangeX.Max)
	}
	if fws[1].Rocket.Position.Y != 720 {
		t.Errorf("second rocket should start at the new bottom edge, got %v", fws[1].Rocket.Position.Y)
	}
}

func TestStats_String(t *testing.T) {
	s := Stats{FPS: 59.7, RocketsOnScreen: 3, SparksOnScreen: 412, Explosions: 17}
	if got, want := s.String(), "FPS: 60  Rockets: 3  Sparks: 412  Shot: 17"; got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

// pkg/engine/show.go
package engine

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/opd-ai/go-fireworks/pkg/config"
	"github.com/opd-ai/go-fireworks/pkg/event"
	"github.com/opd-ai/go-fireworks/pkg/firework"
	"github.com/opd-ai/go-fireworks/pkg/logging"
	"github.com/opd-ai/go-fireworks/pkg/physics"
)

// Overlay text position, in surface units.
const (
	overlayX = 8
	overlayY = 8
)

// Spring settings for the overlay FPS readout.
const (
	fpsFrequency = 4.0
	fpsDamping   = 1.0
)

// Presenter is implemented by surfaces that buffer a frame and need an
// explicit flush once everything is drawn.
type Presenter interface {
	Present()
}

// Show drives a fixed collection of fireworks: it staggers their
// creation, advances all of them every tick and draws them in order.
type Show struct {
	Config   *config.ShowConfig
	EventBus *event.Bus

	fireworks []*firework.Firework
	params    firework.Params
	bounds    firework.Bounds

	clock  Clock
	rng    *rand.Rand
	logger *logging.Logger
	ctx    context.Context

	lastTick      time.Time
	lastLaunch    time.Time
	framesSkipped int
	deltaTime     float64
	fps           float64
	displayFPS    float64
	fpsVelocity   float64
	fpsSpring     harmonica.Spring

	CurrentTick     uint64
	launched        int
	explosions      uint64
	rocketsOnScreen int
	sparksOnScreen  int
}

// Option customizes a Show at construction.
type Option func(*Show)

// WithClock replaces the system clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *Show) { s.clock = c }
}

// WithRand sets the random source shared by every firework.
func WithRand(r *rand.Rand) Option {
	return func(s *Show) { s.rng = r }
}

// WithEventBus publishes lifecycle events on an existing bus.
func WithEventBus(b *event.Bus) Option {
	return func(s *Show) { s.EventBus = b }
}

// WithLogger sets the show's logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Show) { s.logger = l }
}

// WithContext sets the context used for log correlation.
func WithContext(ctx context.Context) Option {
	return func(s *Show) { s.ctx = ctx }
}

// NewShow creates a show with the specified configuration. Timing starts
// at construction: the first firework appears one launch delay later.
func NewShow(cfg *config.ShowConfig, opts ...Option) *Show {
	s := &Show{
		Config: cfg,
		params: ParamsFromConfig(cfg),
		bounds: firework.Bounds{
			Width:  float64(cfg.Canvas.Width),
			Height: float64(cfg.Canvas.Height),
		},
		clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		s.rng = NewRand(cfg.Seed)
	}
	if s.EventBus == nil {
		s.EventBus = event.NewEventBus()
	}
	if s.logger == nil {
		s.logger = logging.NewDiscardLogger()
	}
	if s.ctx == nil {
		s.ctx = logging.WithCorrelationID(context.Background(), "")
	}

	frameRate := cfg.Timing.FrameRate
	if frameRate <= 0 {
		frameRate = 60
	}
	s.fpsSpring = harmonica.NewSpring(harmonica.FPS(frameRate), fpsFrequency, fpsDamping)

	now := s.clock.Now()
	s.lastTick = now
	s.lastLaunch = now
	s.fireworks = make([]*firework.Firework, 0, cfg.Launch.Total)

	return s
}

// NewRand returns a seeded random source. Seed 0 picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
}

// ParamsFromConfig converts the firework section of a config.
func ParamsFromConfig(cfg *config.ShowConfig) firework.Params {
	return firework.Params{
		TotalParticles: cfg.Firework.TotalParticles,
		Radius:         cfg.Firework.Radius,
		ParticleSpeed: firework.Range{
			Min: cfg.Firework.ParticleSpeedMin,
			Max: cfg.Firework.ParticleSpeedMax,
		},
		RocketSpeed: cfg.Firework.RocketSpeed,
		Gravity:     physics.Vector2D{X: 0, Y: cfg.Firework.Gravity},
	}
}

// Tick advances the show by one frame, using the clock to measure the
// time since the previous tick.
func (s *Show) Tick() {
	now := s.clock.Now()
	s.deltaTime = s.calculateDeltaTime(now)

	// The first frames only settle the timer.
	if s.framesSkipped < s.Config.Launch.SkipFrames {
		s.framesSkipped++
		return
	}

	s.launchIfDue(now)
	for i, fw := range s.fireworks {
		s.publishTransition(i, fw, fw.Advance(s.deltaTime, s.bounds))
	}
	s.updateCounts()
	s.CurrentTick++
}

// Draw clears the surface and draws every firework, then the overlay.
func (s *Show) Draw(surface firework.Surface) {
	surface.Clear()
	for _, fw := range s.fireworks {
		fw.Draw(surface)
	}

	if !s.Config.Overlay {
		return
	}
	if ts, ok := surface.(firework.TextSurface); ok {
		ts.DrawText(overlayX, overlayY, s.Stats().String())
	}
}

// Frame runs one tick and draws the result, for hosts that hand over a
// single per-frame callback.
func (s *Show) Frame(surface firework.Surface) {
	s.Tick()
	s.Draw(surface)
	if p, ok := surface.(Presenter); ok {
		p.Present()
	}
}

// Run ticks the show every interval until ctx is cancelled.
func (s *Show) Run(ctx context.Context, surface firework.Surface, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Start(interval)
	defer s.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Frame(surface)
		}
	}
}

// Start announces the beginning of the show. Hosts with their own frame
// loop call it before the first frame.
func (s *Show) Start(interval time.Duration) {
	s.EventBus.Publish(&event.BaseEvent{EventType: event.ShowStarted, Source: s})
	s.logger.Info(s.ctx, "show started",
		"fireworks", s.Config.Launch.Total,
		"launch_delay", s.Config.LaunchDelay().String(),
		"interval", interval.String(),
	)
}

// Stop announces the end of the show.
func (s *Show) Stop() {
	s.EventBus.Publish(&event.BaseEvent{EventType: event.ShowStopped, Source: s})
	s.logger.Info(s.ctx, "show stopped", "ticks", s.CurrentTick, "explosions", s.explosions)
}

// SetBounds changes the drawing area. Fireworks already created keep the
// explosion ranges they were built with.
func (s *Show) SetBounds(width, height float64) {
	s.bounds = firework.Bounds{Width: width, Height: height}
}

// Bounds returns the current drawing area.
func (s *Show) Bounds() firework.Bounds {
	return s.bounds
}

// Fireworks returns the fireworks created so far, in launch order.
func (s *Show) Fireworks() []*firework.Firework {
	return s.fireworks
}

// RocketsOnScreen is the number of rockets between the bottom edge and
// their target during the last tick.
func (s *Show) RocketsOnScreen() int {
	return s.rocketsOnScreen
}

// SparksOnScreen is the number of visible sparks during the last tick.
func (s *Show) SparksOnScreen() int {
	return s.sparksOnScreen
}

// DeltaTime is the length of the last tick in seconds.
func (s *Show) DeltaTime() float64 {
	return s.deltaTime
}

// FPS is derived from the last tick's length.
func (s *Show) FPS() float64 {
	return s.fps
}

// DisplayFPS is the FPS eased towards the measured value, as shown by the
// overlay.
func (s *Show) DisplayFPS() float64 {
	return s.displayFPS
}

// Launched is the number of fireworks created so far.
func (s *Show) Launched() int {
	return s.launched
}

// Explosions is the number of fireworks shot during the session.
func (s *Show) Explosions() uint64 {
	return s.explosions
}

// Stats returns the current overlay counters.
func (s *Show) Stats() Stats {
	return Stats{
		FPS:             s.displayFPS,
		RocketsOnScreen: s.rocketsOnScreen,
		SparksOnScreen:  s.sparksOnScreen,
		Fireworks:       len(s.fireworks),
		Explosions:      s.explosions,
	}
}

// calculateDeltaTime calculates the time since the last tick and caps it.
func (s *Show) calculateDeltaTime(now time.Time) float64 {
	deltaTime := now.Sub(s.lastTick).Seconds()
	s.lastTick = now

	if limit := s.Config.Timing.MaxDeltaTime; limit > 0 && deltaTime > limit {
		deltaTime = limit
	}
	if deltaTime > 0 {
		s.fps = 1 / deltaTime
	} else {
		s.fps = 0
	}
	s.smoothFPS()
	return deltaTime
}

func (s *Show) smoothFPS() {
	if s.displayFPS == 0 {
		s.displayFPS = s.fps
		return
	}
	s.displayFPS, s.fpsVelocity = s.fpsSpring.Update(s.displayFPS, s.fpsVelocity, s.fps)
}

// launchIfDue creates at most one firework per tick.
func (s *Show) launchIfDue(now time.Time) {
	if s.launched >= s.Config.Launch.Total {
		return
	}
	if now.Sub(s.lastLaunch) < s.Config.LaunchDelay() {
		return
	}

	fw := firework.New(s.bounds, s.params, s.rng)
	s.fireworks = append(s.fireworks, fw)
	s.launched++
	s.lastLaunch = now

	index := len(s.fireworks) - 1
	s.EventBus.Publish(event.NewFireworkEvent(event.FireworkCreated, s, index, fw.X, fw.Y, fw.Color))
	s.logger.Debug(s.ctx, "firework created", "index", index, "total", s.launched)
}

func (s *Show) publishTransition(index int, fw *firework.Firework, t firework.Transition) {
	switch t {
	case firework.Launched:
		s.publish(event.RocketLaunched, index, fw)
	case firework.Exploded:
		s.explosions++
		s.publish(event.FireworkExploded, index, fw)
	case firework.Recycled:
		s.publish(event.FireworkRecycled, index, fw)
		s.publish(event.RocketLaunched, index, fw)
	default:
		return
	}
	s.logger.Debug(s.ctx, "firework transition",
		"index", index,
		"transition", t.String(),
		"target_x", fw.X,
		"target_y", fw.Y,
	)
}

func (s *Show) publish(t event.Type, index int, fw *firework.Firework) {
	s.EventBus.Publish(event.NewFireworkEvent(t, s, index, fw.X, fw.Y, fw.Color))
}

// updateCounts recomputes the frame-local overlay counters.
func (s *Show) updateCounts() {
	s.rocketsOnScreen = 0
	s.sparksOnScreen = 0

	for _, fw := range s.fireworks {
		y := fw.Rocket.Position.Y
		if y < s.bounds.Height && y > fw.Y {
			s.rocketsOnScreen++
		}
		if fw.HasExploded {
			s.sparksOnScreen += fw.VisibleSparks()
		}
	}
}

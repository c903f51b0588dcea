// Package audio plays the launch whistle and explosion bang of a show.
// Sound is optional: every method is a no-op until Initialize succeeds.
package audio

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-fireworks/pkg/event"
)

const (
	sampleRate = beep.SampleRate(44100)

	launchDuration    = 600 * time.Millisecond
	explosionDuration = 900 * time.Millisecond

	// Concurrent effects beyond this are dropped.
	maxVoices = 12
)

// SoundManager mixes short effects into a single speaker stream.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *beep.Ctrl
	rng         *rand.Rand
	initialized bool
	subs        map[event.Type]event.Subscription
	bus         *event.Bus
}

// NewSoundManager creates a new sound manager
func NewSoundManager(seed uint64) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		master: &beep.Ctrl{Streamer: mixer},
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds, detaches from the bus and closes the device.
func (sm *SoundManager) Cleanup() {
	sm.Detach()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.master.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// PlayLaunch plays a rising whistle.
func (sm *SoundManager) PlayLaunch() {
	sm.play(beep.Take(sampleRate.N(launchDuration), NewWhistleGenerator(sampleRate)))
}

// PlayExplosion plays a noise burst over a low thump.
func (sm *SoundManager) PlayExplosion() {
	sm.mu.Lock()
	seed := sm.rng.Uint64()
	sm.mu.Unlock()

	n := sampleRate.N(explosionDuration)
	burst := NewBurstGenerator(sampleRate, seed)

	thump, err := generators.SineTone(sampleRate, 55)
	if err != nil {
		sm.play(beep.Take(n, burst))
		return
	}
	sm.play(beep.Take(n, beep.Mix(burst, &decay{Streamer: thump, sr: sampleRate, rate: 10, gain: 0.3})))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.mixer.Len() < maxVoices {
		sm.mixer.Add(s)
	}
	speaker.Unlock()
}

// Attach plays effects for launch and explosion events published on bus.
func (sm *SoundManager) Attach(bus *event.Bus) {
	sm.Detach()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.bus = bus
	sm.subs = map[event.Type]event.Subscription{
		event.RocketLaunched:   bus.Subscribe(event.RocketLaunched, func(event.Event) { sm.PlayLaunch() }),
		event.FireworkExploded: bus.Subscribe(event.FireworkExploded, func(event.Event) { sm.PlayExplosion() }),
	}
}

// Detach removes the bus subscriptions made by Attach.
func (sm *SoundManager) Detach() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.bus == nil {
		return
	}
	for t, id := range sm.subs {
		sm.bus.Unsubscribe(t, id)
	}
	sm.bus = nil
	sm.subs = nil
}

// WhistleGenerator sweeps a sine upwards with a fade out, like a rocket
// climbing.
type WhistleGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
}

// NewWhistleGenerator creates a whistle generator lasting launchDuration.
func NewWhistleGenerator(sr beep.SampleRate) *WhistleGenerator {
	return &WhistleGenerator{
		sr:    sr,
		total: sr.N(launchDuration),
	}
}

// Frequency returns the pitch at the current position.
func (g *WhistleGenerator) Frequency() float64 {
	progress := math.Min(float64(g.pos)/float64(g.total), 1)
	return 900 + 1700*progress
}

func (g *WhistleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.total), 1)

		g.phase += g.Frequency() / float64(g.sr)
		if g.phase >= 1 {
			g.phase--
		}

		sample := 0.12 * (1 - progress) * math.Sin(2*math.Pi*g.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *WhistleGenerator) Err() error {
	return nil
}

// Crackle modulation: perlin samples per second of burst.
const crackleRate = 30.0

// BurstGenerator produces white noise with an exponential decay, gated by
// a slow perlin crackle.
type BurstGenerator struct {
	sr      beep.SampleRate
	pos     int
	rng     *rand.Rand
	crackle *perlin.Perlin
}

// NewBurstGenerator creates a burst generator with its own noise source.
func NewBurstGenerator(sr beep.SampleRate, seed uint64) *BurstGenerator {
	return &BurstGenerator{
		sr:      sr,
		rng:     rand.New(rand.NewPCG(seed, seed>>1)),
		crackle: perlin.NewPerlin(2, 2, 3, int64(seed)),
	}
}

// gate maps the crackle noise at t seconds to [0, 1].
func (g *BurstGenerator) gate(t float64) float64 {
	v := 0.5 + 0.5*g.crackle.Noise1D(t*crackleRate)
	return math.Max(0, math.Min(1, v))
}

func (g *BurstGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 6)

		noise := g.rng.Float64()*2 - 1
		sample := 0.35 * envelope * g.gate(t) * noise

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BurstGenerator) Err() error {
	return nil
}

// decay scales a streamer by gain*exp(-rate*t).
type decay struct {
	beep.Streamer
	sr   beep.SampleRate
	rate float64
	gain float64
	pos  int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.pos) / float64(d.sr)
		v := d.gain * math.Exp(-d.rate*t)
		samples[i][0] *= v
		samples[i][1] *= v
		d.pos++
	}
	return n, ok
}

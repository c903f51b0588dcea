// Package firework implements a single self-recycling firework: a rocket
// that climbs to a random target, bursts into sparks that fall under
// gravity, and relaunches once every spark has left the blast radius.
package firework

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-fireworks/pkg/physics"
)

// Sizes of the rectangles drawn for a rocket and a spark.
const (
	RocketWidth  = 6
	RocketHeight = 12
	SparkSize    = 3
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Bounds is the size of the drawing area.
type Bounds struct {
	Width  float64
	Height float64
}

// Params holds the tunables shared by every firework of a show.
type Params struct {
	TotalParticles int
	Radius         float64
	ParticleSpeed  Range // units per second
	RocketSpeed    float64
	Gravity        physics.Vector2D // per frame
}

// DefaultParams returns the classic display settings.
func DefaultParams() Params {
	return Params{
		TotalParticles: 100,
		Radius:         140,
		ParticleSpeed:  Range{Min: 100, Max: 300},
		RocketSpeed:    800,
		Gravity:        physics.Vector2D{X: 0, Y: 0.12},
	}
}

// Transition reports what happened to a firework during one Advance.
type Transition int

const (
	None Transition = iota
	Launched
	Exploded
	Recycled
)

func (t Transition) String() string {
	switch t {
	case Launched:
		return "launched"
	case Exploded:
		return "exploded"
	case Recycled:
		return "recycled"
	default:
		return "none"
	}
}

// Firework owns one rocket and a fixed set of sparks. It is never
// destroyed; once its sparks are spent it recycles in place.
type Firework struct {
	// Explosion target.
	X float64
	Y float64

	Rocket    physics.Particle
	Particles []physics.Particle

	TotalParticles int
	ParticleSpeed  Range
	Radius         float64
	RangeX         Range
	RangeY         Range
	RocketSpeed    float64
	Gravity        physics.Vector2D
	Color          color.RGBA

	HasExploded bool
	Initialized bool

	outOfBoundCount int
	rng             *rand.Rand
}

// New creates an uninitialized firework for a drawing area of the given
// size. The first call to Advance picks its target and launches it.
func New(bounds Bounds, params Params, rng *rand.Rand) *Firework {
	f := &Firework{
		Particles:      make([]physics.Particle, params.TotalParticles),
		TotalParticles: params.TotalParticles,
		ParticleSpeed:  params.ParticleSpeed,
		Radius:         params.Radius,
		RangeX:         Range{Min: params.Radius, Max: bounds.Width - params.Radius},
		RangeY:         Range{Min: params.Radius, Max: 2 * params.Radius},
		RocketSpeed:    params.RocketSpeed,
		Gravity:        params.Gravity,
		Rocket:         physics.NewParticle(0, bounds.Height, 0, 0),
		rng:            rng,
	}
	f.Color = color.RGBA{
		R: 255,
		G: uint8(math.Round(rng.Float64() * 255)),
		B: uint8(rng.Float64() * 255),
		A: 255,
	}
	return f
}

// Target returns the explosion point.
func (f *Firework) Target() physics.Vector2D {
	return physics.Vector2D{X: f.X, Y: f.Y}
}

// Advance moves the firework forward by one frame lasting dt seconds.
func (f *Firework) Advance(dt float64, bounds Bounds) Transition {
	if !f.Initialized {
		f.resetRocket(dt, bounds)
		f.initParticles(dt)
		f.Initialized = true
		return Launched
	}

	transition := None
	if f.Rocket.Position.Y <= f.Y && !f.HasExploded {
		f.HasExploded = true
		transition = Exploded
	}

	if !f.HasExploded {
		f.Rocket.Update()
		return transition
	}

	for i := range f.Particles {
		f.Particles[i].Accelerate(f.Gravity)
		f.Particles[i].Update()
	}

	blast := physics.Circle{Center: f.Target(), Radius: f.Radius}
	for i := range f.Particles {
		if !blast.Contains(f.Particles[i].Position) {
			f.outOfBoundCount++
			f.Particles[i].Visible = false
		}
	}

	// Every spark has to be out in the same frame, not cumulatively.
	if f.outOfBoundCount >= f.TotalParticles {
		f.resetRocket(dt, bounds)
		f.resetParticles(dt)
		transition = Recycled
	}
	f.outOfBoundCount = 0

	return transition
}

// VisibleSparks counts the sparks still inside the blast radius.
func (f *Firework) VisibleSparks() int {
	n := 0
	for i := range f.Particles {
		if f.Particles[i].Visible {
			n++
		}
	}
	return n
}

// Draw renders the rocket while ascending and the visible sparks after the
// explosion.
func (f *Firework) Draw(s Surface) {
	s.Save()
	defer s.Restore()

	s.SetFillColor(f.Color)
	if !f.HasExploded {
		s.FillRect(f.Rocket.Position.X, f.Rocket.Position.Y, RocketWidth, RocketHeight)
		return
	}
	for i := range f.Particles {
		p := &f.Particles[i]
		if p.Visible {
			s.FillRect(p.Position.X, p.Position.Y, SparkSize, SparkSize)
		}
	}
}

// randomIntInclusive returns a uniformly distributed integer in
// [ceil(from), floor(to)].
func (f *Firework) randomIntInclusive(from, to float64) float64 {
	lo := math.Ceil(from)
	hi := math.Floor(to)
	return math.Floor(f.rng.Float64()*(hi-lo+1)) + lo
}

func (f *Firework) setRandomPosition() {
	f.X = f.randomIntInclusive(f.RangeX.Min, f.RangeX.Max)
	f.Y = f.randomIntInclusive(f.RangeY.Min, f.RangeY.Max)
}

func (f *Firework) randomSparkVelocity(dt float64) (speed, angle float64) {
	speed = f.randomIntInclusive(f.ParticleSpeed.Min, f.ParticleSpeed.Max) * dt
	angle = f.rng.Float64() * math.Pi * 2
	return speed, angle
}

// resetRocket picks a new target and puts the rocket back on the bottom
// edge, heading straight up.
func (f *Firework) resetRocket(dt float64, bounds Bounds) {
	f.setRandomPosition()
	f.HasExploded = false
	f.Rocket.Position.SetX(f.X)
	f.Rocket.Position.SetY(bounds.Height)
	f.Rocket.Velocity.SetLength(f.RocketSpeed * dt)
	f.Rocket.Velocity.SetAngle(-math.Pi * 0.5)
}

func (f *Firework) initParticles(dt float64) {
	for i := range f.Particles {
		speed, angle := f.randomSparkVelocity(dt)
		f.Particles[i] = physics.NewParticle(f.X, f.Y, speed, angle)
		f.Particles[i].Visible = true
	}
}

func (f *Firework) resetParticles(dt float64) {
	for i := range f.Particles {
		p := &f.Particles[i]
		speed, angle := f.randomSparkVelocity(dt)
		p.Position.SetX(f.X)
		p.Position.SetY(f.Y)
		p.Velocity.SetLength(speed)
		p.Velocity.SetAngle(angle)
		p.Visible = true
	}
}

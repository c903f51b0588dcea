package physics

// Particle is a point mass moved by simple Euler integration. Velocity is
// expressed in units per frame, so callers pre-scale speeds by the frame
// delta before handing them over.
type Particle struct {
	Position Vector2D
	Velocity Vector2D
	Visible  bool
}

// NewParticle places a particle at (x, y) moving at speed along direction
// (radians).
func NewParticle(x, y, speed, direction float64) Particle {
	p := Particle{Position: Vector2D{X: x, Y: y}}
	p.Velocity.SetLength(speed)
	p.Velocity.SetAngle(direction)
	return p
}

// Accelerate adds force to the velocity as a one-frame impulse.
func (p *Particle) Accelerate(force Vector2D) {
	p.Velocity.AddTo(force)
}

// Update moves the particle by its velocity.
func (p *Particle) Update() {
	p.Position.AddTo(p.Velocity)
}

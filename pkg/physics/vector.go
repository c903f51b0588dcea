// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components.
// Value methods return new vectors; pointer methods mutate the receiver.
type Vector2D struct {
	X float64
	Y float64
}

// SetX overwrites the x component. The polar form is not preserved.
func (v *Vector2D) SetX(x float64) {
	v.X = x
}

// SetY overwrites the y component. The polar form is not preserved.
func (v *Vector2D) SetY(y float64) {
	v.Y = y
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Divide divides the vector by a scalar value. A zero divisor yields
// IEEE-754 infinities or NaN.
func (v Vector2D) Divide(divisor float64) Vector2D {
	return Vector2D{
		X: v.X / divisor,
		Y: v.Y / divisor,
	}
}

// AddTo adds other to v in place.
func (v *Vector2D) AddTo(other Vector2D) {
	v.X += other.X
	v.Y += other.Y
}

// SubtractFrom subtracts other from v in place.
func (v *Vector2D) SubtractFrom(other Vector2D) {
	v.X -= other.X
	v.Y -= other.Y
}

// MultiplyBy scales v in place.
func (v *Vector2D) MultiplyBy(factor float64) {
	v.X *= factor
	v.Y *= factor
}

// DivideBy divides v in place.
func (v *Vector2D) DivideBy(divisor float64) {
	v.X /= divisor
	v.Y /= divisor
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// SetLength overwrites both components so the vector has the given length
// along its current angle. The zero vector has angle 0, so it ends up on
// the positive x axis.
func (v *Vector2D) SetLength(length float64) {
	angle := v.Angle()
	v.X = length * math.Cos(angle)
	v.Y = length * math.Sin(angle)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Angle returns the angle of the vector in radians, in (-π, π].
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// SetAngle overwrites both components so the vector points at angle while
// keeping its current length.
func (v *Vector2D) SetAngle(angle float64) {
	length := v.Length()
	v.X = length * math.Cos(angle)
	v.Y = length * math.Sin(angle)
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

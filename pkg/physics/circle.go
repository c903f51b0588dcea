package physics

// Circle is a circular region around a center point.
type Circle struct {
	Center Vector2D
	Radius float64
}

// Contains reports whether point lies strictly inside the circle. Points at
// exactly Radius from the center are outside.
func (c Circle) Contains(point Vector2D) bool {
	return c.Center.Distance(point) < c.Radius
}

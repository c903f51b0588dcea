package engine

import "fmt"

// Stats is a snapshot of the per-frame counters shown by the overlay.
type Stats struct {
	FPS             float64
	RocketsOnScreen int
	SparksOnScreen  int
	Fireworks       int
	Explosions      uint64
}

// String formats the stats as a single overlay line.
func (s Stats) String() string {
	return fmt.Sprintf("FPS: %.0f  Rockets: %d  Sparks: %d  Shot: %d",
		s.FPS, s.RocketsOnScreen, s.SparksOnScreen, s.Explosions)
}

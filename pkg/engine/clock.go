package engine

import "time"

// Clock is the monotonic time source a show ticks against.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. time.Time carries a monotonic reading,
// so differences are immune to wall clock jumps.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

package clock

import "time"

// Clock provides the current time. Operations that window or compare
// against "now" take a Clock so tests can supply fixed timestamps.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	Time time.Time
}

func (f Fixed) Now() time.Time { return f.Time }

// At returns a Clock pinned to t.
func At(t time.Time) Fixed { return Fixed{Time: t} }

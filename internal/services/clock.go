package services

import "time"

// Clock supplies the current time and the zone that event dates are interpreted in.
// The zero Clock uses time.Now in time.Local.
type Clock struct {
	NowFunc  func() time.Time
	Location *time.Location
}

// NewClock returns a Clock reading the system time in loc.
func NewClock(loc *time.Location) Clock {
	return Clock{NowFunc: time.Now, Location: loc}
}

// FixedClock always reports t, in t's location. Intended for tests and replays.
func FixedClock(t time.Time) Clock {
	return Clock{NowFunc: func() time.Time { return t }, Location: t.Location()}
}

// Now returns the current time in the clock's location.
func (c Clock) Now() time.Time {
	now := time.Now
	if c.NowFunc != nil {
		now = c.NowFunc
	}
	return now().In(c.location())
}

// Today returns midnight of the current calendar day.
func (c Clock) Today() time.Time {
	return startOfDay(c.Now())
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

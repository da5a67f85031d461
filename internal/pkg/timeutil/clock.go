// Package timeutil provides the clock abstraction used by services that
// evaluate booking deadlines and run scheduled maintenance.
package timeutil

import "time"

// Clock reports the current instant and the local time zone of the community.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// SystemClock reads the wall clock.
type SystemClock struct {
	Loc *time.Location
}

// NewSystemClock returns a SystemClock for loc, falling back to UTC when loc is nil.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{Loc: loc}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.Loc)
}

func (c *SystemClock) Location() *time.Location {
	return c.Loc
}

// FixedClock always reports the same instant. It can be moved with Set.
type FixedClock struct {
	T   time.Time
	Loc *time.Location
}

func (c *FixedClock) Now() time.Time {
	return c.T.In(c.Loc)
}

func (c *FixedClock) Location() *time.Location {
	return c.Loc
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.T = t
}

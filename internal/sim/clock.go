package sim

import "time"

// Timestamp is a simulated-time instant in milliseconds since simulation
// start. It only ever increases; wall-clock time never feeds into it
// directly, which keeps replays and tests deterministic.
type Timestamp int64

const (
	// Never marks an open-ended deadline. A timing window whose end is
	// Never stays active until its source is removed by other means.
	Never Timestamp = -1

	// Immediately marks a window that starts at simulation start, or, for
	// sources created later, at their creation tick.
	Immediately Timestamp = 0
)

// Valid reports whether t is a concrete instant (not the Never sentinel).
func (t Timestamp) Valid() bool { return t >= 0 }

// Add offsets a timestamp by a wall-duration expressed in simulated time.
func (t Timestamp) Add(d time.Duration) Timestamp {
	return t + Timestamp(d.Milliseconds())
}

// Clock is the simulation clock. It is advanced exactly once per tick by
// the game loop; everything else only reads it. Single goroutine access.
type Clock struct {
	now Timestamp
}

func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current simulated time.
func (c *Clock) Now() Timestamp { return c.now }

// Advance moves the clock forward by one tick's worth of simulated time.
func (c *Clock) Advance(dt time.Duration) {
	c.now += Timestamp(dt.Milliseconds())
}

// Stamp returns the instant d after the current time. Used when deriving
// begin/end windows from durations in effect definitions.
func (c *Clock) Stamp(d time.Duration) Timestamp {
	return c.now.Add(d)
}

package particle

import "github.com/starforge/sim/internal/sim"

// SourceTiming is the activation window of a source. A source passes
// through three phases: pending before the begin timestamp, active
// between begin and end, finished at or after end. The phase is derived
// from the clock on every query and never stored, so it cannot drift
// from the timestamps. The three values are set once during source
// configuration and never change afterwards.
type SourceTiming struct {
	creation sim.Timestamp
	begin    sim.Timestamp
	end      sim.Timestamp
}

func newSourceTiming() SourceTiming {
	return SourceTiming{
		creation: sim.Immediately,
		begin:    sim.Immediately,
		end:      sim.Never,
	}
}

// SetCreationTimestamp records when the source was created.
func (t *SourceTiming) SetCreationTimestamp(now sim.Timestamp) {
	t.creation = now
}

// CreationTime returns the source's creation timestamp.
func (t *SourceTiming) CreationTime() sim.Timestamp {
	return t.creation
}

// SetLifetime sets the active window. begin may be sim.Immediately; end
// may be sim.Never for a source that stays active until removed by other
// means.
func (t *SourceTiming) SetLifetime(begin, end sim.Timestamp) {
	t.begin = begin
	t.end = end
}

// IsActive reports whether now falls inside [begin, end). An end of
// sim.Never means unbounded activity.
func (t *SourceTiming) IsActive(now sim.Timestamp) bool {
	if now < t.begin {
		return false
	}
	return !t.end.Valid() || now < t.end
}

// IsFinished reports whether the window has closed. A source whose end is
// sim.Never never finishes on its own.
func (t *SourceTiming) IsFinished(now sim.Timestamp) bool {
	return t.end.Valid() && now >= t.end
}

// LifetimeProgress returns how far through its active window the source
// is, as a fraction in [0, 1). Returns -1 when the source is not active
// or when the window is not a finite, well-formed interval.
func (t *SourceTiming) LifetimeProgress(now sim.Timestamp) float64 {
	if !t.IsActive(now) {
		return -1
	}
	if !t.begin.Valid() || !t.end.Valid() || t.end <= t.begin {
		return -1
	}
	return float64(now-t.begin) / float64(t.end-t.begin)
}

package particle

import (
	"testing"

	"github.com/starforge/sim/internal/sim"
)

func TestTimingPhases(t *testing.T) {
	tm := newSourceTiming()
	tm.SetLifetime(100, 200)

	cases := []struct {
		now      sim.Timestamp
		active   bool
		finished bool
	}{
		{0, false, false},
		{99, false, false},
		{100, true, false}, // begin is inclusive
		{150, true, false},
		{199, true, false},
		{200, false, true}, // end is exclusive
		{500, false, true},
	}
	for _, c := range cases {
		if got := tm.IsActive(c.now); got != c.active {
			t.Errorf("IsActive(%d) = %v, want %v", c.now, got, c.active)
		}
		if got := tm.IsFinished(c.now); got != c.finished {
			t.Errorf("IsFinished(%d) = %v, want %v", c.now, got, c.finished)
		}
		// Exactly one of pending/active/finished holds.
		pending := !c.active && !c.finished
		if c.active && c.finished {
			t.Errorf("now=%d both active and finished", c.now)
		}
		if pending && (tm.IsActive(c.now) || tm.IsFinished(c.now)) {
			t.Errorf("now=%d pending but active/finished", c.now)
		}
	}
}

func TestTimingProgress(t *testing.T) {
	tm := newSourceTiming()
	tm.SetLifetime(100, 200)

	if p := tm.LifetimeProgress(100); p != 0.0 {
		t.Errorf("progress at begin = %v, want 0", p)
	}
	if p := tm.LifetimeProgress(150); p != 0.5 {
		t.Errorf("progress at midpoint = %v, want 0.5", p)
	}
	if p := tm.LifetimeProgress(199); p < 0.98 || p >= 1.0 {
		t.Errorf("progress near end = %v, want just below 1", p)
	}
	for _, now := range []sim.Timestamp{0, 99, 200, 300} {
		if p := tm.LifetimeProgress(now); p != -1 {
			t.Errorf("progress outside window at %d = %v, want -1", now, p)
		}
	}
}

func TestTimingUnboundedEnd(t *testing.T) {
	tm := newSourceTiming()
	tm.SetLifetime(50, sim.Never)

	if tm.IsActive(0) {
		t.Error("active before begin")
	}
	if !tm.IsActive(50) || !tm.IsActive(1<<40) {
		t.Error("unbounded window should stay active forever")
	}
	if tm.IsFinished(1 << 40) {
		t.Error("unbounded window can never finish")
	}
	if p := tm.LifetimeProgress(60); p != -1 {
		t.Errorf("progress with open end = %v, want -1", p)
	}
}

func TestTimingImmediateBegin(t *testing.T) {
	tm := newSourceTiming()
	// Default window: starts immediately, never ends.
	if !tm.IsActive(0) {
		t.Error("default timing should be active at t=0")
	}
	if tm.IsFinished(0) {
		t.Error("default timing should never finish")
	}
}

func TestTimingCreationTimestamp(t *testing.T) {
	tm := newSourceTiming()
	tm.SetCreationTimestamp(42)
	if tm.CreationTime() != 42 {
		t.Errorf("creation time = %d, want 42", tm.CreationTime())
	}
}

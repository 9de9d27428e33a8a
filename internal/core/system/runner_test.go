package system

import (
	"testing"
	"time"
)

type recordingSystem struct {
	phase Phase
	trace *[]Phase
}

func (s *recordingSystem) Phase() Phase { return s.phase }

func (s *recordingSystem) Update(_ time.Duration) {
	*s.trace = append(*s.trace, s.phase)
}

func TestRunnerExecutesInPhaseOrder(t *testing.T) {
	r := NewRunner()
	var trace []Phase

	// Register out of order; the runner must still tick in phase order.
	for _, p := range []Phase{PhaseCleanup, PhaseEvents, PhasePersist, PhaseUpdate, PhasePostUpdate} {
		r.Register(&recordingSystem{phase: p, trace: &trace})
	}
	r.Tick(16 * time.Millisecond)

	want := []Phase{PhaseEvents, PhaseUpdate, PhasePostUpdate, PhasePersist, PhaseCleanup}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v", trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestRunnerStableWithinPhase(t *testing.T) {
	r := NewRunner()
	var trace []int

	mk := func(n int) System {
		return &orderedSystem{n: n, trace: &trace}
	}
	r.Register(mk(1))
	r.Register(mk(2))
	r.Register(mk(3))
	r.Tick(time.Millisecond)

	for i, n := range trace {
		if n != i+1 {
			t.Fatalf("registration order not preserved: %v", trace)
		}
	}
}

type orderedSystem struct {
	n     int
	trace *[]int
}

func (s *orderedSystem) Phase() Phase { return PhaseUpdate }

func (s *orderedSystem) Update(_ time.Duration) {
	*s.trace = append(*s.trace, s.n)
}

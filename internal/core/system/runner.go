package system

import (
	"sort"
	"time"
)

// Runner executes registered systems in phase order each tick. Sorting is
// deferred until the first tick so registration order doesn't matter.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{systems: make([]System, 0, 8)}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Tick(dt time.Duration) {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
	for _, s := range r.systems {
		s.Update(dt)
	}
}

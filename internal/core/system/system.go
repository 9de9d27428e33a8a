package system

import "time"

// Phase defines execution ordering within a single simulation tick.
type Phase int

const (
	PhaseEvents     Phase = iota // 0: swap + dispatch last tick's events
	PhaseUpdate                  // 1: physics integration, effect processing
	PhasePostUpdate              // 2: particle aging, reaping
	PhasePersist                 // 3: telemetry batch flush
	PhaseCleanup                 // 4: destroy queued entities
)

// System is implemented by every per-tick subsystem.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

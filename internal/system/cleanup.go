package system

import (
	"time"

	coresys "github.com/starforge/sim/internal/core/system"
	"github.com/starforge/sim/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyed()
}

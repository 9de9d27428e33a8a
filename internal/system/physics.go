package system

import (
	"time"

	coresys "github.com/starforge/sim/internal/core/system"
	"github.com/starforge/sim/internal/world"
)

// PhysicsSystem integrates entity linear motion. Phase 1 (Update),
// registered ahead of the effect system so sources read post-move
// transforms within the same tick.
type PhysicsSystem struct {
	world *world.State
}

func NewPhysicsSystem(ws *world.State) *PhysicsSystem {
	return &PhysicsSystem{world: ws}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *PhysicsSystem) Update(dt time.Duration) {
	s.world.Integrate(dt)
}

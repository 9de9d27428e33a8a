package system

import (
	"time"

	coresys "github.com/starforge/sim/internal/core/system"
	"github.com/starforge/sim/internal/particle"
	"github.com/starforge/sim/internal/sim"
	"github.com/starforge/sim/internal/world"
)

// ParticleSystem ages the particle population: expires lifetimes, follows
// host entities, reaps orphans. Phase 2 (PostUpdate).
type ParticleSystem struct {
	table *particle.Table
	world *world.State
	clock *sim.Clock
}

func NewParticleSystem(table *particle.Table, ws *world.State, clock *sim.Clock) *ParticleSystem {
	return &ParticleSystem{table: table, world: ws, clock: clock}
}

func (s *ParticleSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ParticleSystem) Update(dt time.Duration) {
	s.table.Update(s.clock.Now(), dt, s.world)
}

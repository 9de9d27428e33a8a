package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/starforge/sim/internal/core/system"
	"github.com/starforge/sim/internal/effect"
	"github.com/starforge/sim/internal/sim"
)

// EffectSystem drives one processing step over every live particle source.
// Phase 1 (Update), after physics.
type EffectSystem struct {
	manager *effect.Manager
	clock   *sim.Clock
	log     *zap.Logger
}

func NewEffectSystem(m *effect.Manager, clock *sim.Clock, log *zap.Logger) *EffectSystem {
	return &EffectSystem{manager: m, clock: clock, log: log}
}

func (s *EffectSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EffectSystem) Update(_ time.Duration) {
	if removed := s.manager.ProcessAll(s.clock.Now()); removed > 0 {
		s.log.Debug("sources retired", zap.Int("count", removed))
	}
}

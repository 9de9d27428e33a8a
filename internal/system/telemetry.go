package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	coresys "github.com/starforge/sim/internal/core/system"
	"github.com/starforge/sim/internal/effect"
	"github.com/starforge/sim/internal/persist"
	"github.com/starforge/sim/internal/sim"
)

// TelemetrySystem samples effect statistics every flush interval and
// writes them to Postgres in one batch. Phase 3 (Persist). With no repo
// configured it degrades to periodic debug logging.
type TelemetrySystem struct {
	manager  *effect.Manager
	clock    *sim.Clock
	repo     *persist.TelemetryRepo // nil = logging only
	log      *zap.Logger
	interval int
	ticks    int
	pending  []persist.StatRow
}

func NewTelemetrySystem(m *effect.Manager, clock *sim.Clock, repo *persist.TelemetryRepo, interval int, log *zap.Logger) *TelemetrySystem {
	if interval <= 0 {
		interval = 600
	}
	return &TelemetrySystem{
		manager:  m,
		clock:    clock,
		repo:     repo,
		log:      log,
		interval: interval,
		pending:  make([]persist.StatRow, 0, 4),
	}
}

func (s *TelemetrySystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *TelemetrySystem) Update(_ time.Duration) {
	s.ticks++
	if s.ticks < s.interval {
		return
	}
	s.ticks = 0

	st := s.manager.Stats()
	s.log.Debug("effect stats",
		zap.Uint64("triggered", st.Triggered),
		zap.Uint64("expired", st.Expired),
		zap.Uint64("invalid", st.Invalid),
		zap.Int("active_sources", st.ActiveSources),
		zap.Int("live_particles", st.LiveParticles))

	if s.repo == nil {
		return
	}
	s.pending = append(s.pending, persist.StatRow{
		SimTimeMs:        int64(s.clock.Now()),
		SourcesTriggered: st.Triggered,
		SourcesExpired:   st.Expired,
		SourcesInvalid:   st.Invalid,
		ActiveSources:    st.ActiveSources,
		LiveParticles:    st.LiveParticles,
	})
	s.Flush()
}

// Flush writes all pending samples. Also called once at shutdown.
func (s *TelemetrySystem) Flush() {
	if s.repo == nil || len(s.pending) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.repo.WriteBatch(ctx, s.pending); err != nil {
		s.log.Error("telemetry flush failed", zap.Error(err))
		return // keep pending rows for the next attempt
	}
	s.pending = s.pending[:0]
}

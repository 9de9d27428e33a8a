package effect

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/starforge/sim/internal/core/event"
	"github.com/starforge/sim/internal/data"
	"github.com/starforge/sim/internal/particle"
	"github.com/starforge/sim/internal/scripting"
	"github.com/starforge/sim/internal/sim"
)

// Manager owns every live particle source. It creates sources when an
// effect is triggered, drives their per-tick processing, and prunes the
// ones that report completion or a dead origin. All access is from the
// game loop goroutine.
type Manager struct {
	log   *zap.Logger
	bus   *event.Bus
	table *particle.Table

	entries map[string]managerEntry
	sources []*particle.Source

	// keepInvalid is the policy for sources whose origin dies mid-window:
	// false prunes them on the next process call, true lets the window
	// run out silently.
	keepInvalid bool

	triggered uint64
	expired   uint64
	invalid   uint64
}

type managerEntry struct {
	effect particle.Effect
	tpl    *data.EffectTemplate // nil for hand-registered effects
}

func NewManager(table *particle.Table, bus *event.Bus, log *zap.Logger, keepInvalid bool) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:         log,
		bus:         bus,
		table:       table,
		entries:     make(map[string]managerEntry, 16),
		sources:     make([]*particle.Source, 0, 64),
		keepInvalid: keepInvalid,
	}
}

// RegisterEffect adds a hand-built effect implementation.
func (m *Manager) RegisterEffect(e particle.Effect) {
	m.entries[e.Name()] = managerEntry{effect: e}
}

// RegisterTable builds a TemplateEffect for every template in the table.
func (m *Manager) RegisterTable(tbl *data.EffectTable, curves *scripting.Engine, rng *rand.Rand) {
	tbl.Each(func(tpl *data.EffectTemplate) {
		m.entries[tpl.Name] = managerEntry{
			effect: NewTemplateEffect(tpl, m.table, curves, rng),
			tpl:    tpl,
		}
	})
}

// Trigger creates a source for the named effect. configure sets up the
// origin, orientation and timing; the manager then seals the source with
// FinishCreation and schedules it for per-tick processing. Template
// delay/duration provide the default activation window; configure may
// override it.
func (m *Manager) Trigger(now sim.Timestamp, name string, configure func(*particle.Source)) (*particle.Source, error) {
	entry, ok := m.entries[name]
	if !ok {
		return nil, fmt.Errorf("effect %q not defined", name)
	}

	src := particle.NewSource()
	src.Timing().SetCreationTimestamp(now)
	if tpl := entry.tpl; tpl != nil {
		begin := now
		if tpl.DelayMs > 0 {
			begin = now + sim.Timestamp(tpl.DelayMs)
		}
		end := sim.Never
		if tpl.DurationMs > 0 {
			end = begin + sim.Timestamp(tpl.DurationMs)
		}
		src.Timing().SetLifetime(begin, end)
	}
	if configure != nil {
		configure(src)
	}
	src.SetEffect(entry.effect)
	src.SetKeepInvalidUntilFinished(m.keepInvalid)
	src.FinishCreation()

	m.sources = append(m.sources, src)
	m.triggered++
	if m.bus != nil {
		event.Emit(m.bus, event.EffectTriggered{Effect: name, Host: src.Origin().Host()})
	}
	m.log.Debug("effect triggered",
		zap.String("effect", name),
		zap.Stringer("origin", src.Origin().Type()))
	return src, nil
}

// ProcessAll runs one tick over every source and drops the ones that are
// done. Returns the number of sources removed.
func (m *Manager) ProcessAll(now sim.Timestamp) int {
	kept := m.sources[:0]
	for _, src := range m.sources {
		if src.Process(now) {
			kept = append(kept, src)
			continue
		}
		m.retire(src)
	}
	removed := len(m.sources) - len(kept)
	for i := len(kept); i < len(m.sources); i++ {
		m.sources[i] = nil
	}
	m.sources = kept
	return removed
}

// PruneInvalid drops sources whose origin no longer resolves. Called from
// the EntityDestroyed handler so sources anchored to a destroyed entity
// disappear without waiting for their next process call. Respects the
// keep-invalid policy.
func (m *Manager) PruneInvalid() int {
	if m.keepInvalid {
		return 0
	}
	kept := m.sources[:0]
	for _, src := range m.sources {
		if src.IsValid() {
			kept = append(kept, src)
			continue
		}
		m.retire(src)
	}
	removed := len(m.sources) - len(kept)
	for i := len(kept); i < len(m.sources); i++ {
		m.sources[i] = nil
	}
	m.sources = kept
	return removed
}

func (m *Manager) retire(src *particle.Source) {
	m.expired++
	invalid := !src.IsValid()
	if invalid {
		m.invalid++
	}
	if m.bus != nil {
		event.Emit(m.bus, event.SourceExpired{
			Effect:    src.Effect().Name(),
			Processed: src.ProcessingCount(),
			Invalid:   invalid,
		})
	}
}

// ActiveSources returns the number of sources currently scheduled.
func (m *Manager) ActiveSources() int { return len(m.sources) }

// Stats is a cumulative counter snapshot for telemetry.
type Stats struct {
	Triggered     uint64
	Expired       uint64
	Invalid       uint64
	ActiveSources int
	LiveParticles int
}

func (m *Manager) Stats() Stats {
	return Stats{
		Triggered:     m.triggered,
		Expired:       m.expired,
		Invalid:       m.invalid,
		ActiveSources: len(m.sources),
		LiveParticles: m.table.Live(),
	}
}

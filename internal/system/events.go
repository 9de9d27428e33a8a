package system

import (
	"time"

	"github.com/starforge/sim/internal/core/event"
	coresys "github.com/starforge/sim/internal/core/system"
)

// EventSystem rotates the event bus buffers and delivers last tick's
// events. Phase 0 (Events), so handlers run before any game logic.
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

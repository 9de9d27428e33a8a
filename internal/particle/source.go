package particle

import (
	"github.com/starforge/sim/internal/sim"
	"github.com/starforge/sim/internal/vmath"
)

// Effect is the per-tick emission behavior assigned to a source. The
// source resolves where, which way, and when; the effect decides what to
// spawn. Implementations live outside this package.
type Effect interface {
	Name() string

	// TailAttached reports whether this effect spawns from the rear of a
	// hosting weapon (thruster trails). FinishCreation uses it to derive
	// the tail offset once the origin and effect are both known.
	TailAttached() bool

	// ProcessSource runs one emission step for an active source. A false
	// return is terminal: the source is removed by its owner.
	ProcessSource(src *Source, now sim.Timestamp) bool
}

// Source decides where, with what orientation, and during which time
// window an effect may spawn particles. It owns one origin, one
// orientation and one timing; the effect reference is non-owning and set
// exactly once. The owning effect manager creates a source, configures
// it, calls FinishCreation once, then calls Process every tick until it
// returns false and discards the source.
type Source struct {
	origin      SourceOrigin
	orientation SourceOrientation
	timing      SourceTiming

	effect          Effect
	processingCount uint64
	created         bool

	// keepInvalid lets a source whose origin died ride out its window
	// silently instead of being pruned on the next process call.
	keepInvalid bool
}

func NewSource() *Source {
	return &Source{
		orientation: newSourceOrientation(),
		timing:      newSourceTiming(),
	}
}

func (s *Source) Origin() *SourceOrigin           { return &s.origin }
func (s *Source) Orientation() *SourceOrientation { return &s.orientation }
func (s *Source) Timing() *SourceTiming           { return &s.timing }
func (s *Source) Effect() Effect                  { return s.effect }
func (s *Source) ProcessingCount() uint64         { return s.processingCount }

// SetEffect assigns the governing effect. A nil effect is an orchestration
// bug in the owning subsystem and panics.
func (s *Source) SetEffect(e Effect) {
	if e == nil {
		panic("particle: source effect must not be nil")
	}
	s.effect = e
}

// SetKeepInvalidUntilFinished selects the pruning policy for a source
// whose origin goes invalid mid-window: false (the default) removes it on
// the next process call, true lets the window run out silently.
func (s *Source) SetKeepInvalidUntilFinished(keep bool) {
	s.keepInvalid = keep
}

// FinishCreation completes setup that needs the full configuration to be
// present, such as pulling a trail effect's spawn point back to the tail
// of the hosting weapon. Must be called exactly once, after the effect
// and origin are set; anything else panics.
func (s *Source) FinishCreation() {
	if s.effect == nil {
		panic("particle: FinishCreation before SetEffect")
	}
	if s.created {
		panic("particle: FinishCreation called twice")
	}
	s.created = true

	if s.effect.TailAttached() {
		if w, ok := s.origin.hostWeapon(); ok {
			// Spawn from the rear of the projectile model, not its center.
			s.origin.shiftOffset(vmath.Vec3{Z: -w.Length / 2})
		}
	}
}

// Process runs one tick for this source and reports whether it should
// keep being processed. Expected invalidation (dead host, closed window)
// is signaled by returning false, never by an error: hosts die constantly
// and pruning is the normal response.
func (s *Source) Process(now sim.Timestamp) bool {
	if !s.created {
		panic("particle: Process before FinishCreation")
	}
	if s.timing.IsFinished(now) {
		return false
	}
	if !s.origin.IsValid() {
		if !s.keepInvalid {
			return false
		}
		return true // wait out the window without emitting
	}
	if !s.timing.IsActive(now) {
		return true // pending: activation window not yet open
	}
	s.processingCount++
	return s.effect.ProcessSource(s, now)
}

// IsValid reports whether the source's origin still resolves. Owners use
// it to prune dead sources outside the normal tick pipeline, e.g. when a
// host entity is destroyed mid-frame.
func (s *Source) IsValid() bool {
	return s.origin.IsValid()
}

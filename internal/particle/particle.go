package particle

import (
	"time"

	"github.com/starforge/sim/internal/core/ecs"
	"github.com/starforge/sim/internal/sim"
	"github.com/starforge/sim/internal/vmath"
	"github.com/starforge/sim/internal/world"
)

// WeakRef is a weak handle to a particle: a slot index plus the generation
// the slot had when the particle was created. Slot generations start at 1,
// so the zero WeakRef never resolves.
type WeakRef struct {
	index      uint32
	generation uint32
}

func (r WeakRef) IsZero() bool { return r.generation == 0 }

// Particle is one live particle. Particles anchored to a host entity track
// its position every tick and die with it; free particles integrate their
// own velocity.
type Particle struct {
	Pos vmath.Vec3
	Vel vmath.Vec3

	Born   sim.Timestamp
	Expiry sim.Timestamp // sim.Never = lives until killed

	Host       ecs.EntityID // non-zero: Pos follows this entity
	HostOffset vmath.Vec3   // host-frame offset when Host is set

	Normal    vmath.Vec3
	HasNormal bool
}

type slot struct {
	generation uint32
	live       bool
	p          Particle
}

// Table is the live particle store: a generational slot table so sources
// and other particles can hold weak references that go stale instead of
// dangling when a particle is reaped.
type Table struct {
	slots    []slot
	freeList []uint32
	liveNum  int
	max      int // 0 = unbounded
}

func NewTable(max int) *Table {
	return &Table{
		slots:    make([]slot, 0, 256),
		freeList: make([]uint32, 0, 64),
		max:      max,
	}
}

// Spawn creates a particle from a spawn record. Returns a zero ref when
// the table is at capacity; running out of particle budget is a normal
// condition, not an error.
func (t *Table) Spawn(info SpawnInfo, now sim.Timestamp) (WeakRef, bool) {
	if t.max > 0 && t.liveNum >= t.max {
		return WeakRef{}, false
	}

	expiry := sim.Never
	if info.Lifetime > 0 {
		expiry = now.Add(info.Lifetime)
	}
	p := Particle{
		Pos:        info.Pos,
		Vel:        info.Vel,
		Born:       now,
		Expiry:     expiry,
		Host:       info.Host,
		HostOffset: info.HostOffset,
		Normal:     info.Normal,
		HasNormal:  info.HasNormal,
	}

	var idx uint32
	if n := len(t.freeList); n > 0 {
		idx = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
	} else {
		t.slots = append(t.slots, slot{generation: 1})
		idx = uint32(len(t.slots) - 1)
	}
	s := &t.slots[idx]
	s.live = true
	s.p = p
	t.liveNum++
	return WeakRef{index: idx, generation: s.generation}, true
}

// Resolve returns the live particle behind ref, or false if it has been
// reaped (and possibly replaced by a newer particle in the same slot).
func (t *Table) Resolve(ref WeakRef) (*Particle, bool) {
	if int(ref.index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[ref.index]
	if !s.live || s.generation != ref.generation {
		return nil, false
	}
	return &s.p, true
}

// Kill reaps the particle behind ref. Stale refs are ignored.
func (t *Table) Kill(ref WeakRef) {
	if int(ref.index) >= len(t.slots) {
		return
	}
	s := &t.slots[ref.index]
	if !s.live || s.generation != ref.generation {
		return
	}
	s.live = false
	s.generation++
	t.freeList = append(t.freeList, ref.index)
	t.liveNum--
}

// Live returns the number of live particles.
func (t *Table) Live() int { return t.liveNum }

// Update ages all particles by one tick: expired particles and particles
// whose host entity died are reaped, anchored particles re-read their
// host's transform, free particles integrate velocity.
func (t *Table) Update(now sim.Timestamp, dt time.Duration, ws *world.State) {
	secs := dt.Seconds()
	for i := range t.slots {
		s := &t.slots[i]
		if !s.live {
			continue
		}
		p := &s.p
		if p.Expiry.Valid() && now >= p.Expiry {
			t.killSlot(uint32(i))
			continue
		}
		if !p.Host.IsZero() {
			tf, ok := ws.Transform(p.Host)
			if !ok {
				t.killSlot(uint32(i))
				continue
			}
			p.Pos = tf.Pos.Add(tf.Frame.Rotate(p.HostOffset))
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(secs))
	}
}

func (t *Table) killSlot(idx uint32) {
	s := &t.slots[idx]
	s.live = false
	s.generation++
	t.freeList = append(t.freeList, idx)
	t.liveNum--
}

// Each visits every live particle.
func (t *Table) Each(fn func(WeakRef, *Particle)) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.live {
			fn(WeakRef{index: uint32(i), generation: s.generation}, &s.p)
		}
	}
}

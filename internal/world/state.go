package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/starforge/sim/internal/core/ecs"
	"github.com/starforge/sim/internal/core/event"
	"github.com/starforge/sim/internal/vmath"
)

// State is the live entity table. It wraps the generational ECS world with
// the component stores the particle subsystem reads: transform, velocity
// and weapon state. Accessed only from the game loop goroutine.
type State struct {
	world *ecs.World
	bus   *event.Bus
	log   *zap.Logger

	transforms *ecs.Store[Transform]
	velocities *ecs.Store[Velocity]
	tags       *ecs.Store[Tag]
	weapons    *ecs.Store[Weapon]
}

func NewState(bus *event.Bus, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{
		world:      ecs.NewWorld(),
		bus:        bus,
		log:        log,
		transforms: ecs.NewStore[Transform](),
		velocities: ecs.NewStore[Velocity](),
		tags:       ecs.NewStore[Tag](),
		weapons:    ecs.NewStore[Weapon](),
	}
	s.world.RegisterStore(s.transforms)
	s.world.RegisterStore(s.velocities)
	s.world.RegisterStore(s.tags)
	s.world.RegisterStore(s.weapons)
	return s
}

// SpawnShip creates a ship entity at the given transform.
func (s *State) SpawnShip(pos vmath.Vec3, frame vmath.Mat3, vel vmath.Vec3) ecs.EntityID {
	id := s.world.Create()
	s.transforms.Set(id, &Transform{Pos: pos, Frame: frame})
	s.velocities.Set(id, &Velocity{Lin: vel})
	s.tags.Set(id, &Tag{Class: ClassShip})
	return id
}

// SpawnWeapon creates a projectile entity. length is the weapon model
// length; new weapons start armed.
func (s *State) SpawnWeapon(pos vmath.Vec3, frame vmath.Mat3, vel vmath.Vec3, length float64) ecs.EntityID {
	id := s.world.Create()
	s.transforms.Set(id, &Transform{Pos: pos, Frame: frame})
	s.velocities.Set(id, &Velocity{Lin: vel})
	s.tags.Set(id, &Tag{Class: ClassWeapon})
	s.weapons.Set(id, &Weapon{State: WeaponStateArmed, Length: length})
	return id
}

// Destroy removes an entity immediately and announces its death on the
// bus. Weak handles held by particle origins go stale at this instant.
func (s *State) Destroy(id ecs.EntityID) {
	if !s.world.Alive(id) {
		return
	}
	s.world.DestroyNow(id)
	if s.bus != nil {
		event.Emit(s.bus, event.EntityDestroyed{ID: id})
	}
}

// MarkForDestruction defers removal to the cleanup phase.
func (s *State) MarkForDestruction(id ecs.EntityID) {
	s.world.MarkForDestruction(id)
}

// FlushDestroyed processes the deferred destruction queue.
func (s *State) FlushDestroyed() {
	s.world.FlushDestroyQueue()
}

func (s *State) Alive(id ecs.EntityID) bool {
	return s.world.Alive(id)
}

// Transform returns the entity's live transform, or false if the handle is
// stale. Callers must re-read every tick rather than cache the result.
func (s *State) Transform(id ecs.EntityID) (*Transform, bool) {
	if !s.world.Alive(id) {
		return nil, false
	}
	return s.transforms.Get(id)
}

// Velocity returns the entity's current linear velocity.
func (s *State) Velocity(id ecs.EntityID) (vmath.Vec3, bool) {
	if !s.world.Alive(id) {
		return vmath.Vec3{}, false
	}
	v, ok := s.velocities.Get(id)
	if !ok {
		return vmath.Vec3{}, false
	}
	return v.Lin, true
}

// Weapon returns the entity's weapon component, if it is a weapon.
func (s *State) Weapon(id ecs.EntityID) (*Weapon, bool) {
	if !s.world.Alive(id) {
		return nil, false
	}
	return s.weapons.Get(id)
}

// SetWeaponState advances a weapon entity's lifecycle state.
func (s *State) SetWeaponState(id ecs.EntityID, st WeaponState) {
	if w, ok := s.Weapon(id); ok {
		w.State = st
	}
}

// SetVelocity replaces an entity's linear velocity.
func (s *State) SetVelocity(id ecs.EntityID, vel vmath.Vec3) {
	if !s.world.Alive(id) {
		return
	}
	if v, ok := s.velocities.Get(id); ok {
		v.Lin = vel
	}
}

// Integrate advances all entity positions by one tick of linear motion.
func (s *State) Integrate(dt time.Duration) {
	secs := dt.Seconds()
	ecs.Each2(s.transforms, s.velocities, func(_ ecs.EntityID, tf *Transform, v *Velocity) {
		tf.Pos = tf.Pos.Add(v.Lin.Scale(secs))
	})
}

// Count returns the number of live entities with a transform.
func (s *State) Count() int {
	return s.transforms.Len()
}

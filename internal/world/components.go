package world

import "github.com/starforge/sim/internal/vmath"

// EntityClass distinguishes the kinds of simulation entities particle
// sources can anchor to.
type EntityClass uint8

const (
	ClassShip EntityClass = iota
	ClassWeapon
	ClassDebris
)

// WeaponState is the lifecycle state of a weapon entity. Particle origins
// can restrict their validity to one of these states.
type WeaponState uint8

const (
	// WeaponStateAny is the no-restriction marker used by origins; a
	// weapon entity itself is never in this state.
	WeaponStateAny WeaponState = iota
	WeaponStateInactive
	WeaponStateArmed
	WeaponStateFiring
	WeaponStateDetonated
)

func (s WeaponState) String() string {
	switch s {
	case WeaponStateAny:
		return "any"
	case WeaponStateInactive:
		return "inactive"
	case WeaponStateArmed:
		return "armed"
	case WeaponStateFiring:
		return "firing"
	case WeaponStateDetonated:
		return "detonated"
	}
	return "unknown"
}

// Transform is an entity's world-space position and rotation frame.
type Transform struct {
	Pos   vmath.Vec3
	Frame vmath.Mat3
}

// Velocity is an entity's linear velocity in world space.
type Velocity struct {
	Lin vmath.Vec3
}

// Tag carries the entity's class for diagnostics and class-specific logic.
type Tag struct {
	Class EntityClass
}

// Weapon marks a projectile entity. Length is the model length in meters,
// used to pull trail-effect spawn points back to the projectile's tail.
type Weapon struct {
	State  WeaponState
	Length float64
}

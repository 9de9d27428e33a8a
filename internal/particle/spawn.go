package particle

import (
	"time"

	"github.com/starforge/sim/internal/core/ecs"
	"github.com/starforge/sim/internal/vmath"
)

// SpawnInfo is the emission record handed to Table.Spawn. An origin writes
// either an absolute position or a host attachment into it; the effect
// fills in velocity, lifetime and any surface normal.
type SpawnInfo struct {
	Pos vmath.Vec3
	Vel vmath.Vec3

	// Host attaches the new particle to an entity; Pos is then derived
	// from the host's live transform each tick instead of being absolute.
	Host       ecs.EntityID
	HostOffset vmath.Vec3

	Lifetime time.Duration // 0 = lives until explicitly killed

	Normal    vmath.Vec3
	HasNormal bool
}

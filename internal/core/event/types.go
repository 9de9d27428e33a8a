package event

import "github.com/starforge/sim/internal/core/ecs"

// EntityDestroyed is emitted when an entity is removed from the world.
// The effect manager listens for it to prune sources anchored to the
// destroyed entity without waiting for their next process call.
type EntityDestroyed struct {
	ID ecs.EntityID
}

// EffectTriggered is emitted when a new particle source is created for an
// effect. Diagnostic consumers only; the source already exists by the time
// this is delivered.
type EffectTriggered struct {
	Effect string
	Host   ecs.EntityID // zero when the source is anchored to a fixed point
}

// SourceExpired is emitted when a source is removed, either because its
// activation window closed or because its origin went invalid.
type SourceExpired struct {
	Effect    string
	Processed uint64
	Invalid   bool // true when removal was due to a dead origin
}

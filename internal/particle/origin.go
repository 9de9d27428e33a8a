package particle

import (
	"github.com/starforge/sim/internal/core/ecs"
	"github.com/starforge/sim/internal/vmath"
	"github.com/starforge/sim/internal/world"
)

// OriginType identifies what a source origin is anchored to.
type OriginType uint8

const (
	OriginNone     OriginType = iota // uninitialized
	OriginVector                     // fixed world-space point
	OriginEntity                     // simulation entity plus offset
	OriginParticle                   // previously created particle plus offset
)

func (t OriginType) String() string {
	switch t {
	case OriginNone:
		return "none"
	case OriginVector:
		return "vector"
	case OriginEntity:
		return "entity"
	case OriginParticle:
		return "particle"
	}
	return "unknown"
}

// anchor is the variant behind SourceOrigin. Exactly one variant is live
// at a time, so a fixed point can never carry a stale entity handle and an
// entity anchor can never be mistaken for a world position.
type anchor interface {
	typ() OriginType
	globalPosition() vmath.Vec3
	velocity() vmath.Vec3
	valid() bool
	applyToSpawn(info *SpawnInfo, allowRelative bool)
}

// SourceOrigin tracks where a source is anchored and whether that anchor
// is still alive. Hosts are destroyed asynchronously relative to source
// processing, so entity and particle anchors hold generational weak
// handles and re-resolve them on every query; nothing here extends a
// host's lifetime.
type SourceOrigin struct {
	anch anchor
}

// MoveTo anchors the origin to a fixed world position. A fixed point
// never expires, so the origin is valid from here on.
func (o *SourceOrigin) MoveTo(pos vmath.Vec3) {
	o.anch = &fixedAnchor{pos: pos}
}

// MoveToEntity anchors the origin to a live entity with a host-frame
// offset. Panics if ws is nil or host is the zero handle; anchoring to
// nothing is an orchestration bug, not a runtime condition.
func (o *SourceOrigin) MoveToEntity(ws *world.State, host ecs.EntityID, offset vmath.Vec3) {
	if ws == nil {
		panic("particle: MoveToEntity with nil world state")
	}
	if host.IsZero() {
		panic("particle: MoveToEntity with zero entity handle")
	}
	o.anch = &entityAnchor{
		ws:       ws,
		host:     host,
		offset:   offset,
		required: world.WeaponStateAny,
	}
}

// MoveToParticle anchors the origin to a previously created particle.
// The offset defaults to zero; use SetOffset to change it.
func (o *SourceOrigin) MoveToParticle(table *Table, host WeakRef) {
	if table == nil {
		panic("particle: MoveToParticle with nil table")
	}
	o.anch = &particleAnchor{table: table, host: host}
}

// SetOffset replaces the anchor-relative offset. Ignored for fixed and
// uninitialized origins, which have no host to be relative to.
func (o *SourceOrigin) SetOffset(offset vmath.Vec3) {
	switch a := o.anch.(type) {
	case *entityAnchor:
		a.offset = offset
	case *particleAnchor:
		a.offset = offset
	}
}

// SetWorldAlignedOffset makes an entity anchor's offset world-axis aligned
// instead of rotating it into the host's frame.
func (o *SourceOrigin) SetWorldAlignedOffset(aligned bool) {
	if a, ok := o.anch.(*entityAnchor); ok {
		a.worldOffset = aligned
	}
}

// SetWeaponState restricts an entity anchor's validity to hosts currently
// in the given weapon state. world.WeaponStateAny removes the restriction.
// Only meaningful for entity anchors.
func (o *SourceOrigin) SetWeaponState(st world.WeaponState) {
	if a, ok := o.anch.(*entityAnchor); ok {
		a.required = st
	}
}

// Type returns the current origin variant.
func (o *SourceOrigin) Type() OriginType {
	if o.anch == nil {
		return OriginNone
	}
	return o.anch.typ()
}

// Host returns the hosting entity handle for entity anchors, or the zero
// handle otherwise.
func (o *SourceOrigin) Host() ecs.EntityID {
	if a, ok := o.anch.(*entityAnchor); ok {
		return a.host
	}
	return ecs.EntityID(0)
}

// GlobalPosition resolves the origin's current world position from the
// host's live transform; nothing is cached between calls. Returns the
// zero vector for an uninitialized origin or a dead host.
func (o *SourceOrigin) GlobalPosition() vmath.Vec3 {
	if o.anch == nil {
		return vmath.Vec3{}
	}
	return o.anch.globalPosition()
}

// Velocity returns the host's current velocity for entity anchors. Fixed
// points and particle anchors carry no ambient velocity.
func (o *SourceOrigin) Velocity() vmath.Vec3 {
	if o.anch == nil {
		return vmath.Vec3{}
	}
	return o.anch.velocity()
}

// IsValid reports whether the anchor still resolves: always for a fixed
// point, never for an uninitialized origin, and for entity/particle
// anchors only while the host is alive (and, for entities, in the
// required weapon state). Once a host dies the generation check keeps
// this false forever, even if the host's slot is reused.
func (o *SourceOrigin) IsValid() bool {
	if o.anch == nil {
		return false
	}
	return o.anch.valid()
}

// ApplyToSpawn writes the origin's position into an emission record. With
// allowRelative, entity anchors write a host attachment instead of an
// absolute position, so the spawned particle follows the host.
func (o *SourceOrigin) ApplyToSpawn(info *SpawnInfo, allowRelative bool) {
	if o.anch == nil {
		return
	}
	o.anch.applyToSpawn(info, allowRelative)
}

// shiftOffset displaces the anchor offset in host-frame coordinates.
// Used by Source.FinishCreation to pull trail effects to a weapon's tail.
func (o *SourceOrigin) shiftOffset(d vmath.Vec3) {
	switch a := o.anch.(type) {
	case *entityAnchor:
		a.offset = a.offset.Add(d)
	case *particleAnchor:
		a.offset = a.offset.Add(d)
	}
}

// hostWeapon returns the weapon component of an entity anchor's live host.
func (o *SourceOrigin) hostWeapon() (*world.Weapon, bool) {
	a, ok := o.anch.(*entityAnchor)
	if !ok {
		return nil, false
	}
	return a.ws.Weapon(a.host)
}

// ==================== fixed point ====================

type fixedAnchor struct {
	pos vmath.Vec3
}

func (a *fixedAnchor) typ() OriginType            { return OriginVector }
func (a *fixedAnchor) globalPosition() vmath.Vec3 { return a.pos }
func (a *fixedAnchor) velocity() vmath.Vec3       { return vmath.Vec3{} }
func (a *fixedAnchor) valid() bool                { return true }

func (a *fixedAnchor) applyToSpawn(info *SpawnInfo, _ bool) {
	info.Pos = a.pos
}

// ==================== entity host ====================

type entityAnchor struct {
	ws          *world.State
	host        ecs.EntityID
	offset      vmath.Vec3
	worldOffset bool
	required    world.WeaponState
}

func (a *entityAnchor) typ() OriginType { return OriginEntity }

func (a *entityAnchor) globalPosition() vmath.Vec3 {
	tf, ok := a.ws.Transform(a.host)
	if !ok {
		return vmath.Vec3{}
	}
	if a.worldOffset {
		return tf.Pos.Add(a.offset)
	}
	return tf.Pos.Add(tf.Frame.Rotate(a.offset))
}

func (a *entityAnchor) velocity() vmath.Vec3 {
	v, ok := a.ws.Velocity(a.host)
	if !ok {
		return vmath.Vec3{}
	}
	return v
}

func (a *entityAnchor) valid() bool {
	if !a.ws.Alive(a.host) {
		return false
	}
	if a.required == world.WeaponStateAny {
		return true
	}
	w, ok := a.ws.Weapon(a.host)
	return ok && w.State == a.required
}

func (a *entityAnchor) applyToSpawn(info *SpawnInfo, allowRelative bool) {
	if allowRelative {
		info.Host = a.host
		info.HostOffset = a.offset
		return
	}
	info.Pos = a.globalPosition()
}

// ==================== particle host ====================

type particleAnchor struct {
	table  *Table
	host   WeakRef
	offset vmath.Vec3
}

func (a *particleAnchor) typ() OriginType { return OriginParticle }

func (a *particleAnchor) globalPosition() vmath.Vec3 {
	p, ok := a.table.Resolve(a.host)
	if !ok {
		return vmath.Vec3{}
	}
	return p.Pos.Add(a.offset)
}

func (a *particleAnchor) velocity() vmath.Vec3 { return vmath.Vec3{} }

func (a *particleAnchor) valid() bool {
	_, ok := a.table.Resolve(a.host)
	return ok
}

func (a *particleAnchor) applyToSpawn(info *SpawnInfo, _ bool) {
	info.Pos = a.globalPosition()
}

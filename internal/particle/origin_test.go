package particle

import (
	"testing"

	"github.com/starforge/sim/internal/vmath"
	"github.com/starforge/sim/internal/world"
)

func newTestWorld() *world.State {
	return world.NewState(nil, nil)
}

func TestOriginUninitialized(t *testing.T) {
	var o SourceOrigin
	if o.Type() != OriginNone {
		t.Fatalf("zero origin type = %v, want none", o.Type())
	}
	if o.IsValid() {
		t.Fatal("uninitialized origin must be invalid")
	}
	if p := o.GlobalPosition(); !p.IsZero() {
		t.Fatalf("uninitialized origin position = %v, want zero", p)
	}
}

func TestOriginFixedPoint(t *testing.T) {
	var o SourceOrigin
	pos := vmath.Vec3{X: 1, Y: 2, Z: 3}
	o.MoveTo(pos)

	if o.Type() != OriginVector {
		t.Fatalf("type = %v, want vector", o.Type())
	}
	// A fixed point never expires and never moves.
	for i := 0; i < 3; i++ {
		if !o.IsValid() {
			t.Fatal("fixed origin must always be valid")
		}
		if got := o.GlobalPosition(); got != pos {
			t.Fatalf("position = %v, want %v", got, pos)
		}
	}
	if v := o.Velocity(); !v.IsZero() {
		t.Fatalf("fixed origin velocity = %v, want zero", v)
	}
}

func TestOriginEntityTracksLiveTransform(t *testing.T) {
	ws := newTestWorld()
	ship := ws.SpawnShip(vmath.Vec3{X: 10}, vmath.Identity(), vmath.Vec3{X: 5})

	var o SourceOrigin
	o.MoveToEntity(ws, ship, vmath.Vec3{Y: 1})

	if got, want := o.GlobalPosition(), (vmath.Vec3{X: 10, Y: 1}); got != want {
		t.Fatalf("position = %v, want %v", got, want)
	}
	if got, want := o.Velocity(), (vmath.Vec3{X: 5}); got != want {
		t.Fatalf("velocity = %v, want %v", got, want)
	}

	// Host moves; the origin must re-read the live transform, not cache.
	tf, _ := ws.Transform(ship)
	tf.Pos = vmath.Vec3{X: 20}
	if got, want := o.GlobalPosition(), (vmath.Vec3{X: 20, Y: 1}); got != want {
		t.Fatalf("position after move = %v, want %v", got, want)
	}
}

func TestOriginOffsetRotatesIntoHostFrame(t *testing.T) {
	ws := newTestWorld()
	// Frame facing +X: a local +Z offset points along world +X.
	frame := vmath.FrameFromForward(vmath.Vec3{X: 1})
	ship := ws.SpawnShip(vmath.Vec3{}, frame, vmath.Vec3{})

	var o SourceOrigin
	o.MoveToEntity(ws, ship, vmath.Vec3{Z: 2})

	got := o.GlobalPosition()
	want := vmath.Vec3{X: 2}
	if got.Sub(want).Length() > 1e-9 {
		t.Fatalf("rotated offset position = %v, want %v", got, want)
	}

	// World-aligned offsets skip the rotation.
	o.SetWorldAlignedOffset(true)
	got = o.GlobalPosition()
	want = vmath.Vec3{Z: 2}
	if got.Sub(want).Length() > 1e-9 {
		t.Fatalf("world-aligned offset position = %v, want %v", got, want)
	}
}

func TestOriginEntityDeathIsPermanent(t *testing.T) {
	ws := newTestWorld()
	ship := ws.SpawnShip(vmath.Vec3{}, vmath.Identity(), vmath.Vec3{})

	var o SourceOrigin
	o.MoveToEntity(ws, ship, vmath.Vec3{})
	if !o.IsValid() {
		t.Fatal("origin on live host must be valid")
	}

	ws.Destroy(ship)
	if o.IsValid() {
		t.Fatal("origin must go invalid when host dies")
	}

	// A new entity reusing the slot must not revive the stale handle.
	replacement := ws.SpawnShip(vmath.Vec3{}, vmath.Identity(), vmath.Vec3{})
	if replacement.Index() != ship.Index() {
		t.Fatalf("expected slot reuse for this test, got index %d vs %d",
			replacement.Index(), ship.Index())
	}
	if o.IsValid() {
		t.Fatal("slot reuse revived a stale origin")
	}
}

func TestOriginWeaponStateRestriction(t *testing.T) {
	ws := newTestWorld()
	wpn := ws.SpawnWeapon(vmath.Vec3{}, vmath.Identity(), vmath.Vec3{}, 4)

	var o SourceOrigin
	o.MoveToEntity(ws, wpn, vmath.Vec3{})
	o.SetWeaponState(world.WeaponStateFiring)

	if o.IsValid() {
		t.Fatal("armed weapon must not satisfy a firing restriction")
	}
	ws.SetWeaponState(wpn, world.WeaponStateFiring)
	if !o.IsValid() {
		t.Fatal("firing weapon must satisfy the restriction")
	}
	ws.SetWeaponState(wpn, world.WeaponStateDetonated)
	if o.IsValid() {
		t.Fatal("detonated weapon must not satisfy the restriction")
	}

	// Removing the restriction restores plain liveness validity.
	o.SetWeaponState(world.WeaponStateAny)
	if !o.IsValid() {
		t.Fatal("unrestricted origin on live host must be valid")
	}
}

func TestOriginParticleAnchor(t *testing.T) {
	table := NewTable(0)
	ref, ok := table.Spawn(SpawnInfo{Pos: vmath.Vec3{X: 3}}, 0)
	if !ok {
		t.Fatal("spawn failed")
	}

	var o SourceOrigin
	o.MoveToParticle(table, ref)
	o.SetOffset(vmath.Vec3{Y: 1})

	if o.Type() != OriginParticle {
		t.Fatalf("type = %v, want particle", o.Type())
	}
	if !o.IsValid() {
		t.Fatal("origin on live particle must be valid")
	}
	if got, want := o.GlobalPosition(), (vmath.Vec3{X: 3, Y: 1}); got != want {
		t.Fatalf("position = %v, want %v", got, want)
	}
	if v := o.Velocity(); !v.IsZero() {
		t.Fatalf("particle anchor velocity = %v, want zero", v)
	}

	table.Kill(ref)
	if o.IsValid() {
		t.Fatal("origin must go invalid when host particle is reaped")
	}
}

func TestOriginApplyToSpawn(t *testing.T) {
	ws := newTestWorld()
	ship := ws.SpawnShip(vmath.Vec3{X: 7}, vmath.Identity(), vmath.Vec3{})

	var o SourceOrigin
	o.MoveToEntity(ws, ship, vmath.Vec3{Y: 2})

	var abs SpawnInfo
	o.ApplyToSpawn(&abs, false)
	if abs.Host != 0 {
		t.Fatal("absolute spawn must not attach to the host")
	}
	if got, want := abs.Pos, (vmath.Vec3{X: 7, Y: 2}); got != want {
		t.Fatalf("absolute spawn pos = %v, want %v", got, want)
	}

	var rel SpawnInfo
	o.ApplyToSpawn(&rel, true)
	if rel.Host != ship {
		t.Fatal("relative spawn must attach to the host")
	}
	if got, want := rel.HostOffset, (vmath.Vec3{Y: 2}); got != want {
		t.Fatalf("relative spawn offset = %v, want %v", got, want)
	}
}

func TestOriginMoveToEntityPreconditions(t *testing.T) {
	ws := newTestWorld()
	var o SourceOrigin

	expectPanic(t, "nil world", func() { o.MoveToEntity(nil, 1, vmath.Vec3{}) })
	expectPanic(t, "zero handle", func() { o.MoveToEntity(ws, 0, vmath.Vec3{}) })
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

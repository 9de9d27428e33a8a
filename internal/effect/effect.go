package effect

import (
	"math"
	"math/rand"
	"time"

	"github.com/starforge/sim/internal/data"
	"github.com/starforge/sim/internal/particle"
	"github.com/starforge/sim/internal/scripting"
	"github.com/starforge/sim/internal/sim"
	"github.com/starforge/sim/internal/vmath"
)

// TemplateEffect is a data-driven particle.Effect: everything about its
// emission behavior comes from an EffectTemplate, optionally modulated by
// a Lua curve over the source's lifetime progress.
type TemplateEffect struct {
	tpl    *data.EffectTemplate
	table  *particle.Table
	curves *scripting.Engine // nil = no scripted modulation
	rng    *rand.Rand
}

func NewTemplateEffect(tpl *data.EffectTemplate, table *particle.Table, curves *scripting.Engine, rng *rand.Rand) *TemplateEffect {
	return &TemplateEffect{tpl: tpl, table: table, curves: curves, rng: rng}
}

func (e *TemplateEffect) Name() string { return e.tpl.Name }

func (e *TemplateEffect) TailAttached() bool { return e.tpl.Shape == data.ShapeTrail }

// ProcessSource emits one step's worth of particles for an active source.
// One-shot effects are terminal after their first emission.
func (e *TemplateEffect) ProcessSource(src *particle.Source, now sim.Timestamp) bool {
	count := e.emissionCount(src, now)
	frame := src.Orientation().Frame()
	hostVel := src.Origin().Velocity()
	normal, hasNormal := src.Orientation().Normal()

	for i := 0; i < count; i++ {
		var info particle.SpawnInfo
		src.Origin().ApplyToSpawn(&info, e.tpl.Relative)

		speed := e.randRange(e.tpl.SpeedMin, e.tpl.SpeedMax)
		info.Vel = hostVel.Add(e.emitDirection(frame).Scale(speed))
		info.Lifetime = e.randLifetime()
		info.Normal = normal
		info.HasNormal = hasNormal

		if _, ok := e.table.Spawn(info, now); !ok {
			break // particle budget exhausted; drop the rest of the step
		}
	}
	return !e.tpl.OneShot
}

func (e *TemplateEffect) emissionCount(src *particle.Source, now sim.Timestamp) int {
	count := e.tpl.CountMin
	if e.tpl.CountMax > e.tpl.CountMin {
		count += e.rng.Intn(e.tpl.CountMax - e.tpl.CountMin + 1)
	}
	if e.tpl.Curve != "" && e.curves != nil {
		if p := src.Timing().LifetimeProgress(now); p >= 0 {
			count = int(math.Round(float64(count) * e.curves.EmissionScale(e.tpl.Curve, p)))
		}
	}
	return count
}

func (e *TemplateEffect) emitDirection(frame vmath.Mat3) vmath.Vec3 {
	switch e.tpl.Shape {
	case data.ShapeSphere:
		return e.sphereDirection()
	case data.ShapeCone:
		return e.coneDirection(frame, e.tpl.ConeAngleDeg)
	case data.ShapeTrail:
		// Trails stream backwards along the host's travel direction.
		back := vmath.Mat3{Rvec: frame.Rvec, Uvec: frame.Uvec, Fvec: frame.Fvec.Scale(-1)}
		return e.coneDirection(back, e.tpl.ConeAngleDeg)
	default: // ShapePoint
		return frame.Fvec
	}
}

// coneDirection samples a direction uniformly within halfAngle degrees of
// the frame's forward axis.
func (e *TemplateEffect) coneDirection(frame vmath.Mat3, halfAngle float64) vmath.Vec3 {
	if halfAngle <= 0 {
		return frame.Fvec
	}
	maxRad := halfAngle * math.Pi / 180
	cosTheta := 1 - e.rng.Float64()*(1-math.Cos(maxRad))
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	phi := e.rng.Float64() * 2 * math.Pi
	local := vmath.Vec3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: cosTheta,
	}
	return frame.Rotate(local)
}

func (e *TemplateEffect) sphereDirection() vmath.Vec3 {
	z := e.rng.Float64()*2 - 1
	phi := e.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return vmath.Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

func (e *TemplateEffect) randRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + e.rng.Float64()*(max-min)
}

func (e *TemplateEffect) randLifetime() time.Duration {
	min, max := e.tpl.ParticleLifeMinMs, e.tpl.ParticleLifeMaxMs
	ms := min
	if max > min {
		ms += e.rng.Intn(max - min + 1)
	}
	return time.Duration(ms) * time.Millisecond
}

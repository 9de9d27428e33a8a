package particle

import "github.com/starforge/sim/internal/vmath"

// SourceOrientation is the direction a source faces. Only the forward axis
// of the frame carries meaning; the other axes just complete the basis.
// An optional surface normal rides along for emission shapes that need
// one (impact effects spawning along a hull surface).
type SourceOrientation struct {
	frame     vmath.Mat3
	hasNormal bool
	normal    vmath.Vec3
}

func newSourceOrientation() SourceOrientation {
	return SourceOrientation{frame: vmath.Identity()}
}

// SetFromVector builds the frame facing along vec, normalizing it first.
func (o *SourceOrientation) SetFromVector(vec vmath.Vec3) {
	o.frame = vmath.FrameFromVector(vec)
}

// SetFromNormalizedVector builds the frame facing along vec, which must
// already be unit length.
func (o *SourceOrientation) SetFromNormalizedVector(vec vmath.Vec3) {
	o.frame = vmath.FrameFromForward(vec)
}

// SetFromMatrix adopts an externally computed frame as-is.
func (o *SourceOrientation) SetFromMatrix(m vmath.Mat3) {
	o.frame = m
}

// SetNormal records a surface normal for this source.
func (o *SourceOrientation) SetNormal(n vmath.Vec3) {
	o.normal = n
	o.hasNormal = true
}

// Normal returns the surface normal, if one was ever set.
func (o *SourceOrientation) Normal() (vmath.Vec3, bool) {
	if !o.hasNormal {
		return vmath.Vec3{}, false
	}
	return o.normal, true
}

// DirectionVector returns the forward axis of the frame.
func (o *SourceOrientation) DirectionVector() vmath.Vec3 {
	return o.frame.Fvec
}

// Frame returns the full orientation frame.
func (o *SourceOrientation) Frame() vmath.Mat3 {
	return o.frame
}

package vmath

import "math"

// Mat3 is a 3x3 rotation frame stored as three basis vectors. Fvec is the
// forward axis; Rvec and Uvec complete a right-handed orthonormal basis.
type Mat3 struct {
	Rvec, Uvec, Fvec Vec3
}

// Identity returns the world-aligned frame.
func Identity() Mat3 {
	return Mat3{
		Rvec: Vec3{X: 1},
		Uvec: Vec3{Y: 1},
		Fvec: Vec3{Z: 1},
	}
}

// FrameFromForward builds a frame whose forward axis is fwd, which must
// already be unit length. The right and up axes are chosen deterministically
// but carry no meaning beyond completing the basis.
func FrameFromForward(fwd Vec3) Mat3 {
	// Pick whichever world axis is least aligned with fwd to seed the basis.
	ref := Vec3{Y: 1}
	if math.Abs(fwd.Y) > 0.9999 {
		ref = Vec3{X: 1}
	}
	right := ref.Cross(fwd).Normalized()
	up := fwd.Cross(right)
	return Mat3{Rvec: right, Uvec: up, Fvec: fwd}
}

// FrameFromVector normalizes v and builds a frame facing along it.
func FrameFromVector(v Vec3) Mat3 {
	return FrameFromForward(v.Normalized())
}

// Rotate transforms a frame-local vector into world space.
func (m Mat3) Rotate(v Vec3) Vec3 {
	return m.Rvec.Scale(v.X).Add(m.Uvec.Scale(v.Y)).Add(m.Fvec.Scale(v.Z))
}

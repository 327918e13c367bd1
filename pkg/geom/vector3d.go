package geom

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vector3d is a free 3D vector: a displacement with magnitude and
// orientation but no position.
type Vector3d struct {
	X, Y, Z float64
}

// ZeroVector3d returns the vector with all components zero.
func ZeroVector3d() Vector3d {
	return Vector3d{}
}

// NewVector3d returns a vector with the given components.
func NewVector3d(x, y, z float64) Vector3d {
	return Vector3d{X: x, Y: y, Z: z}
}

// Vector3dFromV3 converts an sdfx vector.
func Vector3dFromV3(v v3.Vec) Vector3d {
	return Vector3d{X: v.X, Y: v.Y, Z: v.Z}
}

// V3 returns the vector as an sdfx vector.
func (v Vector3d) V3() v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Components returns the x, y and z components.
func (v Vector3d) Components() (x, y, z float64) {
	return v.X, v.Y, v.Z
}

func (v Vector3d) Plus(w Vector3d) Vector3d  { return Vector3dFromV3(v.V3().Add(w.V3())) }
func (v Vector3d) Minus(w Vector3d) Vector3d { return Vector3dFromV3(v.V3().Sub(w.V3())) }
func (v Vector3d) Scale(k float64) Vector3d  { return Vector3dFromV3(v.V3().MulScalar(k)) }
func (v Vector3d) Negate() Vector3d          { return Vector3d{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of v and w.
func (v Vector3d) Dot(w Vector3d) float64 {
	return v.V3().Dot(w.V3())
}

// Cross returns the right-handed cross product v × w.
func (v Vector3d) Cross(w Vector3d) Vector3d {
	return Vector3dFromV3(v.V3().Cross(w.V3()))
}

// Length returns the Euclidean length of v.
func (v Vector3d) Length() float64 {
	return v.V3().Length()
}

// SquaredLength returns the squared length of v. Prefer it over Length
// for comparisons.
func (v Vector3d) SquaredLength() float64 {
	return v.V3().Length2()
}

// IsZero reports whether every component is exactly zero.
func (v Vector3d) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Direction normalizes v. ok is false for the zero vector.
func (v Vector3d) Direction() (d Direction3d, ok bool) {
	return Direction3dFromVector(v)
}

// ComponentIn returns the signed length of v along d.
func (v Vector3d) ComponentIn(d Direction3d) float64 {
	return v.Dot(d.v)
}

// ProjectionIn returns the part of v parallel to d.
func (v Vector3d) ProjectionIn(d Direction3d) Vector3d {
	return d.v.Scale(v.Dot(d.v))
}

// Perpendicular returns a vector perpendicular to v. It zeroes the
// component of smallest magnitude and swaps the other two, so the result
// is only zero when v is.
func (v Vector3d) Perpendicular() Vector3d {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	if ax <= ay {
		if ax <= az {
			return Vector3d{0, -v.Z, v.Y}
		}
		return Vector3d{-v.Y, v.X, 0}
	}
	if ay <= az {
		return Vector3d{v.Z, 0, -v.X}
	}
	return Vector3d{-v.Y, v.X, 0}
}

// RotateAround rotates v by angle radians about the axis direction using
// the right-hand rule. The axis origin is irrelevant for free vectors.
func (v Vector3d) RotateAround(axis Axis3d, angle float64) Vector3d {
	return rotateVector(v, axis.direction, angle)
}

// rotateVector applies Rodrigues' rotation formula:
//
//	v' = v cosθ + (k × v) sinθ + k (k·v)(1 − cosθ)
func rotateVector(v Vector3d, k Direction3d, angle float64) Vector3d {
	sin, cos := math.Sincos(angle)
	kv := k.v
	return v.Scale(cos).
		Plus(kv.Cross(v).Scale(sin)).
		Plus(kv.Scale(kv.Dot(v) * (1 - cos)))
}

// MirrorAcross reflects v across plane: v − 2(v·n)n.
func (v Vector3d) MirrorAcross(plane Plane3d) Vector3d {
	return mirrorVector(v, plane.normal)
}

func mirrorVector(v Vector3d, n Direction3d) Vector3d {
	return v.Minus(n.v.Scale(2 * v.Dot(n.v)))
}

// ProjectOnto removes the component of v along the plane normal.
func (v Vector3d) ProjectOnto(plane Plane3d) Vector3d {
	return v.Minus(v.ProjectionIn(plane.normal))
}

// ProjectOntoAxis keeps only the component of v along the axis.
func (v Vector3d) ProjectOntoAxis(axis Axis3d) Vector3d {
	return v.ProjectionIn(axis.direction)
}

// ProjectInto2d expresses the in-plane part of v in the planar frame's
// x/y basis. The normal component is dropped.
func (v Vector3d) ProjectInto2d(pf PlanarFrame3d) Vector2d {
	return Vector2d{X: v.Dot(pf.x.v), Y: v.Dot(pf.y.v)}
}

// LocalizeTo expresses v in the basis of frame.
func (v Vector3d) LocalizeTo(frame Frame3d) Vector3d {
	return Vector3d{
		X: v.Dot(frame.x.v),
		Y: v.Dot(frame.y.v),
		Z: v.Dot(frame.z.v),
	}
}

// PlaceIn treats v as expressed in frame's basis and returns it in global
// coordinates. It is the inverse of LocalizeTo.
func (v Vector3d) PlaceIn(frame Frame3d) Vector3d {
	return frame.x.v.Scale(v.X).
		Plus(frame.y.v.Scale(v.Y)).
		Plus(frame.z.v.Scale(v.Z))
}

// Interpolate returns v + t(w − v).
func (v Vector3d) Interpolate(w Vector3d, t float64) Vector3d {
	return v.Plus(w.Minus(v).Scale(t))
}

// EqualWithin reports whether v and w differ by at most tol in length.
func (v Vector3d) EqualWithin(w Vector3d, tol float64) bool {
	return v.Minus(w).SquaredLength() <= tol*tol
}

func (v Vector3d) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

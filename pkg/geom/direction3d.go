package geom

import (
	"fmt"
	"math"
)

// Direction3d is a unit-length 3D vector representing orientation only.
// The zero value is not a valid direction; obtain one from
// Direction3dFromVector, an axis constant or another direction.
type Direction3d struct {
	v Vector3d
}

func XDirection3d() Direction3d { return Direction3d{Vector3d{1, 0, 0}} }
func YDirection3d() Direction3d { return Direction3d{Vector3d{0, 1, 0}} }
func ZDirection3d() Direction3d { return Direction3d{Vector3d{0, 0, 1}} }

// Direction3dFromVector normalizes v. ok is false when v is the zero
// vector, which has no well-defined direction. v is first divided by its
// largest component so that squaring cannot overflow or underflow.
func Direction3dFromVector(v Vector3d) (d Direction3d, ok bool) {
	largest := math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
	if largest == 0 {
		return Direction3d{}, false
	}
	scaled := Vector3d{v.X / largest, v.Y / largest, v.Z / largest}
	return Direction3d{scaled.Scale(1 / scaled.Length())}, true
}

// Direction3dFromComponents normalizes (x, y, z).
func Direction3dFromComponents(x, y, z float64) (Direction3d, bool) {
	return Direction3dFromVector(Vector3d{x, y, z})
}

// Vector returns the unit vector of d.
func (d Direction3d) Vector() Vector3d {
	return d.v
}

func (d Direction3d) Components() (x, y, z float64) {
	return d.v.X, d.v.Y, d.v.Z
}

// Times returns the vector of length k pointing along d. Directions have no
// in-place scale; scaling always produces a Vector3d.
func (d Direction3d) Times(k float64) Vector3d {
	return d.v.Scale(k)
}

// Reverse returns the opposite direction.
func (d Direction3d) Reverse() Direction3d {
	return Direction3d{d.v.Negate()}
}

// ComponentIn returns the cosine of the angle between d and other.
func (d Direction3d) ComponentIn(other Direction3d) float64 {
	return d.v.Dot(other.v)
}

// Cross returns d × other. The result is a vector: it is only unit length
// when the directions are perpendicular.
func (d Direction3d) Cross(other Direction3d) Vector3d {
	return d.v.Cross(other.v)
}

// AngleTo returns the unsigned angle between d and other in [0, π].
func (d Direction3d) AngleTo(other Direction3d) float64 {
	c := d.v.Dot(other.v)
	// Rounding can push the dot product of unit vectors just past ±1.
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// Perpendicular returns an arbitrary direction perpendicular to d.
func (d Direction3d) Perpendicular() Direction3d {
	p := d.v.Perpendicular()
	return Direction3d{p.Scale(1 / p.Length())}
}

// PerpendicularBasis returns directions u and v such that {d, u, v} is a
// right-handed orthonormal basis.
func (d Direction3d) PerpendicularBasis() (u, v Direction3d) {
	u = d.Perpendicular()
	v = Direction3d{d.v.Cross(u.v)}
	return u, v
}

// RotateAround rotates d about the axis direction by angle radians.
func (d Direction3d) RotateAround(axis Axis3d, angle float64) Direction3d {
	return Direction3d{rotateVector(d.v, axis.direction, angle)}
}

// MirrorAcross reflects d across plane.
func (d Direction3d) MirrorAcross(plane Plane3d) Direction3d {
	return Direction3d{mirrorVector(d.v, plane.normal)}
}

// ProjectOnto projects d onto plane and renormalizes. ok is false when d
// is parallel to the plane normal.
func (d Direction3d) ProjectOnto(plane Plane3d) (Direction3d, bool) {
	return Direction3dFromVector(d.v.ProjectOnto(plane))
}

// ProjectInto2d projects d into the planar frame and renormalizes. ok is
// false when d is normal to the frame.
func (d Direction3d) ProjectInto2d(pf PlanarFrame3d) (Direction2d, bool) {
	return Direction2dFromVector(d.v.ProjectInto2d(pf))
}

func (d Direction3d) LocalizeTo(frame Frame3d) Direction3d {
	return Direction3d{d.v.LocalizeTo(frame)}
}

func (d Direction3d) PlaceIn(frame Frame3d) Direction3d {
	return Direction3d{d.v.PlaceIn(frame)}
}

func (d Direction3d) EqualWithin(other Direction3d, tol float64) bool {
	return d.v.EqualWithin(other.v, tol)
}

func (d Direction3d) String() string {
	return fmt.Sprintf("Direction3d%s", d.v)
}

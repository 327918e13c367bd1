package geom

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point3d is a position in 3D space. Points have no length; only the
// difference of two points is a vector.
type Point3d struct {
	X, Y, Z float64
}

func Origin3d() Point3d                  { return Point3d{} }
func NewPoint3d(x, y, z float64) Point3d { return Point3d{X: x, Y: y, Z: z} }
func Point3dFromV3(v v3.Vec) Point3d     { return Point3d{X: v.X, Y: v.Y, Z: v.Z} }
func (p Point3d) V3() v3.Vec             { return v3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// Coordinates returns the x, y and z coordinates.
func (p Point3d) Coordinates() (x, y, z float64) {
	return p.X, p.Y, p.Z
}

// VectorTo returns the displacement from p to q.
func (p Point3d) VectorTo(q Point3d) Vector3d {
	return Vector3d{q.X - p.X, q.Y - p.Y, q.Z - p.Z}
}

// VectorFrom returns the displacement from q to p.
func (p Point3d) VectorFrom(q Point3d) Vector3d {
	return q.VectorTo(p)
}

func (p Point3d) DistanceFrom(q Point3d) float64 {
	return p.VectorTo(q).Length()
}

func (p Point3d) SquaredDistanceFrom(q Point3d) float64 {
	return p.VectorTo(q).SquaredLength()
}

// Translate returns p displaced by v.
func (p Point3d) Translate(v Vector3d) Point3d {
	return Point3d{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Interpolate3d returns start + t(end − start). Values of t outside [0, 1]
// extrapolate along the line through start and end.
func Interpolate3d(start, end Point3d, t float64) Point3d {
	return start.Translate(start.VectorTo(end).Scale(t))
}

// Midpoint3d returns the point halfway between a and b.
func Midpoint3d(a, b Point3d) Point3d {
	return Interpolate3d(a, b, 0.5)
}

// transformAbout applies linear to the displacement of p from origin and
// adds the result back to origin.
func (p Point3d) transformAbout(origin Point3d, linear func(Vector3d) Vector3d) Point3d {
	return origin.Translate(linear(origin.VectorTo(p)))
}

// ScaleAbout scales the distance of p from center by k. k = 1 is the
// identity and k = 0 collapses p onto center. Negative k is accepted and
// reflects p through center; prefer composing MirrorAcross and
// RotateAround when a reflection is intended.
func (p Point3d) ScaleAbout(center Point3d, k float64) Point3d {
	return p.transformAbout(center, func(v Vector3d) Vector3d { return v.Scale(k) })
}

// RotateAround rotates p by angle radians about axis, counterclockwise
// when looking back along the axis direction toward its origin.
func (p Point3d) RotateAround(axis Axis3d, angle float64) Point3d {
	return p.transformAbout(axis.origin, func(v Vector3d) Vector3d {
		return rotateVector(v, axis.direction, angle)
	})
}

// MirrorAcross reflects p across plane. Mirroring twice returns p.
func (p Point3d) MirrorAcross(plane Plane3d) Point3d {
	return p.transformAbout(plane.origin, func(v Vector3d) Vector3d {
		return mirrorVector(v, plane.normal)
	})
}

// ProjectOnto returns the closest point on plane.
func (p Point3d) ProjectOnto(plane Plane3d) Point3d {
	return p.transformAbout(plane.origin, func(v Vector3d) Vector3d {
		return v.ProjectOnto(plane)
	})
}

// ProjectOntoAxis returns the closest point on axis.
func (p Point3d) ProjectOntoAxis(axis Axis3d) Point3d {
	return p.transformAbout(axis.origin, func(v Vector3d) Vector3d {
		return v.ProjectOntoAxis(axis)
	})
}

// ProjectInto2d projects p onto the planar frame's plane and returns its
// coordinates in the frame's 2D system.
func (p Point3d) ProjectInto2d(pf PlanarFrame3d) Point2d {
	v := pf.origin.VectorTo(p).ProjectInto2d(pf)
	return Point2d{X: v.X, Y: v.Y}
}

// LocalizeTo returns the coordinates of p in frame's local system.
func (p Point3d) LocalizeTo(frame Frame3d) Point3d {
	v := frame.origin.VectorTo(p).LocalizeTo(frame)
	return Point3d{X: v.X, Y: v.Y, Z: v.Z}
}

// PlaceIn treats p as local coordinates in frame and returns the global
// position origin + x·X + y·Y + z·Z. It is the inverse of LocalizeTo.
func (p Point3d) PlaceIn(frame Frame3d) Point3d {
	return frame.origin.Translate(Vector3d{p.X, p.Y, p.Z}.PlaceIn(frame))
}

// SignedDistanceAlong returns the position of p's projection along axis,
// positive in the axis direction.
func (p Point3d) SignedDistanceAlong(axis Axis3d) float64 {
	return axis.origin.VectorTo(p).ComponentIn(axis.direction)
}

// DistanceFromAxis returns the perpendicular distance from p to axis.
func (p Point3d) DistanceFromAxis(axis Axis3d) float64 {
	v := axis.origin.VectorTo(p)
	return v.Minus(v.ProjectionIn(axis.direction)).Length()
}

// SignedDistanceFrom returns the distance from plane to p, positive on the
// side the plane normal points toward.
func (p Point3d) SignedDistanceFrom(plane Plane3d) float64 {
	return plane.origin.VectorTo(p).ComponentIn(plane.normal)
}

func (p Point3d) EqualWithin(q Point3d, tol float64) bool {
	return p.SquaredDistanceFrom(q) <= tol*tol
}

func (p Point3d) String() string {
	return fmt.Sprintf("Point3d(%g, %g, %g)", p.X, p.Y, p.Z)
}

package geom

import "fmt"

// Plane3d is an origin point with in-plane x/y directions and a normal
// direction. The three directions always form a right-handed orthonormal
// basis: normal = x × y.
type Plane3d struct {
	origin Point3d
	x, y   Direction3d
	normal Direction3d
}

// XYPlane returns the plane z = 0 with normal +Z.
func XYPlane() Plane3d {
	return Plane3d{Origin3d(), XDirection3d(), YDirection3d(), ZDirection3d()}
}

// YZPlane returns the plane x = 0 with normal +X.
func YZPlane() Plane3d {
	return Plane3d{Origin3d(), YDirection3d(), ZDirection3d(), XDirection3d()}
}

// ZXPlane returns the plane y = 0 with normal +Y.
func ZXPlane() Plane3d {
	return Plane3d{Origin3d(), ZDirection3d(), XDirection3d(), YDirection3d()}
}

// Plane3dWithNormal returns the plane through origin with the given normal.
// The in-plane directions are an arbitrary perpendicular basis of normal.
func Plane3dWithNormal(origin Point3d, normal Direction3d) Plane3d {
	x, y := normal.PerpendicularBasis()
	return Plane3d{origin, x, y, normal}
}

// Plane3dThrough returns the plane through three points, with origin p1,
// x direction toward p2 and normal following the right-hand rule over
// p1, p2, p3. ok is false when the points are collinear or coincident.
func Plane3dThrough(p1, p2, p3 Point3d) (Plane3d, bool) {
	x, ok := p1.VectorTo(p2).Direction()
	if !ok {
		return Plane3d{}, false
	}
	normal, ok := x.Vector().Cross(p1.VectorTo(p3)).Direction()
	if !ok {
		return Plane3d{}, false
	}
	y := Direction3d{normal.v.Cross(x.v)}
	return Plane3d{p1, x, y, normal}, true
}

// NewPlane3d builds a plane from explicit directions. It returns an error
// wrapping ErrNotUnit, ErrNotOrthogonal or ErrLeftHanded unless
// {x, y, normal} is a right-handed orthonormal basis.
func NewPlane3d(origin Point3d, x, y, normal Direction3d) (Plane3d, error) {
	if err := checkBasis(x, y, normal); err != nil {
		return Plane3d{}, fmt.Errorf("plane: %w", err)
	}
	return Plane3d{origin, x, y, normal}, nil
}

func (p Plane3d) Origin() Point3d              { return p.origin }
func (p Plane3d) XDirection() Direction3d      { return p.x }
func (p Plane3d) YDirection() Direction3d      { return p.y }
func (p Plane3d) NormalDirection() Direction3d { return p.normal }

// NormalAxis returns the axis through the plane origin along its normal.
func (p Plane3d) NormalAxis() Axis3d {
	return Axis3d{p.origin, p.normal}
}

// PlanarFrame returns the 2D coordinate system of the plane.
func (p Plane3d) PlanarFrame() PlanarFrame3d {
	return PlanarFrame3d{p.origin, p.x, p.y}
}

// Reverse flips the normal. The y direction flips with it so the basis
// stays right-handed.
func (p Plane3d) Reverse() Plane3d {
	return Plane3d{p.origin, p.x, p.y.Reverse(), p.normal.Reverse()}
}

// Offset moves the plane by d along its normal.
func (p Plane3d) Offset(d float64) Plane3d {
	return p.MoveTo(p.origin.Translate(p.normal.Times(d)))
}

func (p Plane3d) MoveTo(origin Point3d) Plane3d {
	return Plane3d{origin, p.x, p.y, p.normal}
}

func (p Plane3d) Translate(v Vector3d) Plane3d {
	return p.MoveTo(p.origin.Translate(v))
}

func (p Plane3d) RotateAround(axis Axis3d, angle float64) Plane3d {
	return Plane3d{
		origin: p.origin.RotateAround(axis, angle),
		x:      p.x.RotateAround(axis, angle),
		y:      p.y.RotateAround(axis, angle),
		normal: p.normal.RotateAround(axis, angle),
	}
}

// MirrorAcross reflects the plane. The in-plane directions are mirrored
// and the normal is re-derived as x′ × y′, which keeps the basis
// right-handed; it is the reverse of the mirrored normal.
func (p Plane3d) MirrorAcross(mirror Plane3d) Plane3d {
	x := p.x.MirrorAcross(mirror)
	y := p.y.MirrorAcross(mirror)
	return Plane3d{p.origin.MirrorAcross(mirror), x, y, Direction3d{x.v.Cross(y.v)}}
}

func (p Plane3d) LocalizeTo(frame Frame3d) Plane3d {
	return Plane3d{
		origin: p.origin.LocalizeTo(frame),
		x:      p.x.LocalizeTo(frame),
		y:      p.y.LocalizeTo(frame),
		normal: p.normal.LocalizeTo(frame),
	}
}

func (p Plane3d) PlaceIn(frame Frame3d) Plane3d {
	return Plane3d{
		origin: p.origin.PlaceIn(frame),
		x:      p.x.PlaceIn(frame),
		y:      p.y.PlaceIn(frame),
		normal: p.normal.PlaceIn(frame),
	}
}

func (p Plane3d) String() string {
	return fmt.Sprintf("Plane3d{origin: %v, normal: %v}", p.origin, p.normal)
}

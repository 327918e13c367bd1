package geom

import "fmt"

// Frame3d is a local 3D coordinate system: an origin and a right-handed
// orthonormal basis with z = x × y.
type Frame3d struct {
	origin  Point3d
	x, y, z Direction3d
}

// GlobalFrame3d returns the frame whose local coordinates equal global
// coordinates.
func GlobalFrame3d() Frame3d {
	return Frame3dAt(Origin3d())
}

// Frame3dAt returns a frame at origin with the global axis directions.
func Frame3dAt(origin Point3d) Frame3d {
	return Frame3d{origin, XDirection3d(), YDirection3d(), ZDirection3d()}
}

// Frame3dWithZDirection returns a frame at origin whose z direction is z.
// The x and y directions are an arbitrary perpendicular basis of z.
func Frame3dWithZDirection(origin Point3d, z Direction3d) Frame3d {
	x, y := z.PerpendicularBasis()
	return Frame3d{origin, x, y, z}
}

// Frame3dFromXY returns a frame with the given x direction and z = x × y.
// y must be perpendicular to x; an error wrapping ErrNotOrthogonal is
// returned otherwise.
func Frame3dFromXY(origin Point3d, x, y Direction3d) (Frame3d, error) {
	if err := checkOrthogonal("x", x, "y", y); err != nil {
		return Frame3d{}, fmt.Errorf("frame: %w", err)
	}
	return NewFrame3d(origin, x, y, Direction3d{x.v.Cross(y.v)})
}

// NewFrame3d builds a frame from explicit directions and checks that they
// form a right-handed orthonormal basis.
func NewFrame3d(origin Point3d, x, y, z Direction3d) (Frame3d, error) {
	if err := checkBasis(x, y, z); err != nil {
		return Frame3d{}, fmt.Errorf("frame: %w", err)
	}
	return Frame3d{origin, x, y, z}, nil
}

func (f Frame3d) Origin() Point3d         { return f.origin }
func (f Frame3d) XDirection() Direction3d { return f.x }
func (f Frame3d) YDirection() Direction3d { return f.y }
func (f Frame3d) ZDirection() Direction3d { return f.z }

func (f Frame3d) XAxis() Axis3d { return Axis3d{f.origin, f.x} }
func (f Frame3d) YAxis() Axis3d { return Axis3d{f.origin, f.y} }
func (f Frame3d) ZAxis() Axis3d { return Axis3d{f.origin, f.z} }

// XYPlane returns the frame's XY plane, normal along z.
func (f Frame3d) XYPlane() Plane3d { return Plane3d{f.origin, f.x, f.y, f.z} }
func (f Frame3d) YZPlane() Plane3d { return Plane3d{f.origin, f.y, f.z, f.x} }
func (f Frame3d) ZXPlane() Plane3d { return Plane3d{f.origin, f.z, f.x, f.y} }

func (f Frame3d) XYPlanarFrame() PlanarFrame3d { return PlanarFrame3d{f.origin, f.x, f.y} }
func (f Frame3d) YZPlanarFrame() PlanarFrame3d { return PlanarFrame3d{f.origin, f.y, f.z} }
func (f Frame3d) ZXPlanarFrame() PlanarFrame3d { return PlanarFrame3d{f.origin, f.z, f.x} }

func (f Frame3d) MoveTo(origin Point3d) Frame3d {
	return Frame3d{origin, f.x, f.y, f.z}
}

func (f Frame3d) Translate(v Vector3d) Frame3d {
	return f.MoveTo(f.origin.Translate(v))
}

func (f Frame3d) RotateAround(axis Axis3d, angle float64) Frame3d {
	return Frame3d{
		origin: f.origin.RotateAround(axis, angle),
		x:      f.x.RotateAround(axis, angle),
		y:      f.y.RotateAround(axis, angle),
		z:      f.z.RotateAround(axis, angle),
	}
}

// MirrorAcross reflects the frame. The x and y directions are mirrored and
// z is re-derived as x′ × y′, so the result is right-handed and its z is
// the reverse of the mirrored z.
func (f Frame3d) MirrorAcross(plane Plane3d) Frame3d {
	x := f.x.MirrorAcross(plane)
	y := f.y.MirrorAcross(plane)
	return Frame3d{f.origin.MirrorAcross(plane), x, y, Direction3d{x.v.Cross(y.v)}}
}

// LocalizeTo expresses f relative to other.
func (f Frame3d) LocalizeTo(other Frame3d) Frame3d {
	return Frame3d{
		origin: f.origin.LocalizeTo(other),
		x:      f.x.LocalizeTo(other),
		y:      f.y.LocalizeTo(other),
		z:      f.z.LocalizeTo(other),
	}
}

// PlaceIn treats f as defined relative to other and returns it in global
// coordinates. Placing a frame composes the two coordinate systems.
func (f Frame3d) PlaceIn(other Frame3d) Frame3d {
	return Frame3d{
		origin: f.origin.PlaceIn(other),
		x:      f.x.PlaceIn(other),
		y:      f.y.PlaceIn(other),
		z:      f.z.PlaceIn(other),
	}
}

func (f Frame3d) String() string {
	return fmt.Sprintf("Frame3d{origin: %v, x: %v, y: %v, z: %v}", f.origin, f.x, f.y, f.z)
}

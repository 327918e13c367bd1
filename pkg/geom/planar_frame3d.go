package geom

import "fmt"

// PlanarFrame3d embeds a 2D coordinate system in 3D space: an origin and
// two perpendicular unit directions spanning a plane. Its normal is
// derived as x × y.
type PlanarFrame3d struct {
	origin Point3d
	x, y   Direction3d
}

func XYPlanarFrame() PlanarFrame3d { return GlobalFrame3d().XYPlanarFrame() }
func YZPlanarFrame() PlanarFrame3d { return GlobalFrame3d().YZPlanarFrame() }
func ZXPlanarFrame() PlanarFrame3d { return GlobalFrame3d().ZXPlanarFrame() }

// NewPlanarFrame3d builds a planar frame from explicit directions and
// checks that they are perpendicular unit vectors.
func NewPlanarFrame3d(origin Point3d, x, y Direction3d) (PlanarFrame3d, error) {
	if err := checkUnit("x", x); err != nil {
		return PlanarFrame3d{}, fmt.Errorf("planar frame: %w", err)
	}
	if err := checkUnit("y", y); err != nil {
		return PlanarFrame3d{}, fmt.Errorf("planar frame: %w", err)
	}
	if err := checkOrthogonal("x", x, "y", y); err != nil {
		return PlanarFrame3d{}, fmt.Errorf("planar frame: %w", err)
	}
	return PlanarFrame3d{origin, x, y}, nil
}

func (pf PlanarFrame3d) Origin() Point3d         { return pf.origin }
func (pf PlanarFrame3d) XDirection() Direction3d { return pf.x }
func (pf PlanarFrame3d) YDirection() Direction3d { return pf.y }

// NormalDirection returns x × y.
func (pf PlanarFrame3d) NormalDirection() Direction3d {
	return Direction3d{pf.x.v.Cross(pf.y.v)}
}

func (pf PlanarFrame3d) XAxis() Axis3d      { return Axis3d{pf.origin, pf.x} }
func (pf PlanarFrame3d) YAxis() Axis3d      { return Axis3d{pf.origin, pf.y} }
func (pf PlanarFrame3d) NormalAxis() Axis3d { return Axis3d{pf.origin, pf.NormalDirection()} }

// Plane returns the plane spanned by the frame.
func (pf PlanarFrame3d) Plane() Plane3d {
	return Plane3d{pf.origin, pf.x, pf.y, pf.NormalDirection()}
}

// Frame3d extends the planar frame to a full frame with z along its normal.
func (pf PlanarFrame3d) Frame3d() Frame3d {
	return Frame3d{pf.origin, pf.x, pf.y, pf.NormalDirection()}
}

func (pf PlanarFrame3d) MoveTo(origin Point3d) PlanarFrame3d {
	return PlanarFrame3d{origin, pf.x, pf.y}
}

func (pf PlanarFrame3d) Translate(v Vector3d) PlanarFrame3d {
	return pf.MoveTo(pf.origin.Translate(v))
}

func (pf PlanarFrame3d) RotateAround(axis Axis3d, angle float64) PlanarFrame3d {
	return PlanarFrame3d{
		origin: pf.origin.RotateAround(axis, angle),
		x:      pf.x.RotateAround(axis, angle),
		y:      pf.y.RotateAround(axis, angle),
	}
}

// MirrorAcross mirrors the origin and both directions. The derived normal
// of the result is the reverse of the mirrored normal.
func (pf PlanarFrame3d) MirrorAcross(plane Plane3d) PlanarFrame3d {
	return PlanarFrame3d{
		origin: pf.origin.MirrorAcross(plane),
		x:      pf.x.MirrorAcross(plane),
		y:      pf.y.MirrorAcross(plane),
	}
}

func (pf PlanarFrame3d) LocalizeTo(frame Frame3d) PlanarFrame3d {
	return PlanarFrame3d{pf.origin.LocalizeTo(frame), pf.x.LocalizeTo(frame), pf.y.LocalizeTo(frame)}
}

func (pf PlanarFrame3d) PlaceIn(frame Frame3d) PlanarFrame3d {
	return PlanarFrame3d{pf.origin.PlaceIn(frame), pf.x.PlaceIn(frame), pf.y.PlaceIn(frame)}
}

func (pf PlanarFrame3d) String() string {
	return fmt.Sprintf("PlanarFrame3d{origin: %v, x: %v, y: %v}", pf.origin, pf.x, pf.y)
}

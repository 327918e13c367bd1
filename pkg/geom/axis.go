package geom

import "fmt"

// ---------------------------------------------------------------------------
// Axis3d
// ---------------------------------------------------------------------------

// Axis3d is an oriented line in space: an origin and a unit direction.
type Axis3d struct {
	origin    Point3d
	direction Direction3d
}

func XAxis3d() Axis3d { return Axis3d{Origin3d(), XDirection3d()} }
func YAxis3d() Axis3d { return Axis3d{Origin3d(), YDirection3d()} }
func ZAxis3d() Axis3d { return Axis3d{Origin3d(), ZDirection3d()} }

func NewAxis3d(origin Point3d, direction Direction3d) Axis3d {
	return Axis3d{origin: origin, direction: direction}
}

func (a Axis3d) Origin() Point3d        { return a.origin }
func (a Axis3d) Direction() Direction3d { return a.direction }

// Along returns the point at signed distance d from the origin, forward
// along the axis for positive d.
func (a Axis3d) Along(d float64) Point3d {
	return a.origin.Translate(a.direction.Times(d))
}

func (a Axis3d) Reverse() Axis3d              { return Axis3d{a.origin, a.direction.Reverse()} }
func (a Axis3d) MoveTo(origin Point3d) Axis3d { return Axis3d{origin, a.direction} }
func (a Axis3d) Translate(v Vector3d) Axis3d  { return Axis3d{a.origin.Translate(v), a.direction} }

func (a Axis3d) RotateAround(axis Axis3d, angle float64) Axis3d {
	return Axis3d{a.origin.RotateAround(axis, angle), a.direction.RotateAround(axis, angle)}
}

func (a Axis3d) MirrorAcross(plane Plane3d) Axis3d {
	return Axis3d{a.origin.MirrorAcross(plane), a.direction.MirrorAcross(plane)}
}

// ProjectOnto projects the axis onto plane. ok is false when the axis is
// perpendicular to the plane.
func (a Axis3d) ProjectOnto(plane Plane3d) (Axis3d, bool) {
	d, ok := a.direction.ProjectOnto(plane)
	if !ok {
		return Axis3d{}, false
	}
	return Axis3d{a.origin.ProjectOnto(plane), d}, true
}

// ProjectInto2d projects the axis into the planar frame. ok is false when
// the axis is normal to the frame.
func (a Axis3d) ProjectInto2d(pf PlanarFrame3d) (Axis2d, bool) {
	d, ok := a.direction.ProjectInto2d(pf)
	if !ok {
		return Axis2d{}, false
	}
	return Axis2d{a.origin.ProjectInto2d(pf), d}, true
}

func (a Axis3d) LocalizeTo(frame Frame3d) Axis3d {
	return Axis3d{a.origin.LocalizeTo(frame), a.direction.LocalizeTo(frame)}
}

func (a Axis3d) PlaceIn(frame Frame3d) Axis3d {
	return Axis3d{a.origin.PlaceIn(frame), a.direction.PlaceIn(frame)}
}

func (a Axis3d) String() string {
	return fmt.Sprintf("Axis3d{origin: %v, direction: %v}", a.origin, a.direction)
}

// ---------------------------------------------------------------------------
// Axis2d
// ---------------------------------------------------------------------------

// Axis2d is an oriented line in the plane.
type Axis2d struct {
	origin    Point2d
	direction Direction2d
}

func XAxis2d() Axis2d { return Axis2d{Origin2d(), XDirection2d()} }
func YAxis2d() Axis2d { return Axis2d{Origin2d(), YDirection2d()} }

func NewAxis2d(origin Point2d, direction Direction2d) Axis2d {
	return Axis2d{origin: origin, direction: direction}
}

func (a Axis2d) Origin() Point2d        { return a.origin }
func (a Axis2d) Direction() Direction2d { return a.direction }

func (a Axis2d) Along(d float64) Point2d {
	return a.origin.Translate(a.direction.Times(d))
}

func (a Axis2d) Reverse() Axis2d              { return Axis2d{a.origin, a.direction.Reverse()} }
func (a Axis2d) MoveTo(origin Point2d) Axis2d { return Axis2d{origin, a.direction} }
func (a Axis2d) Translate(v Vector2d) Axis2d  { return Axis2d{a.origin.Translate(v), a.direction} }

func (a Axis2d) RotateAround(center Point2d, angle float64) Axis2d {
	return Axis2d{a.origin.RotateAround(center, angle), a.direction.RotateBy(angle)}
}

func (a Axis2d) MirrorAcross(axis Axis2d) Axis2d {
	return Axis2d{a.origin.MirrorAcross(axis), a.direction.MirrorAcross(axis)}
}

func (a Axis2d) LocalizeTo(frame Frame2d) Axis2d {
	return Axis2d{a.origin.LocalizeTo(frame), a.direction.LocalizeTo(frame)}
}

func (a Axis2d) PlaceIn(frame Frame2d) Axis2d {
	return Axis2d{a.origin.PlaceIn(frame), a.direction.PlaceIn(frame)}
}

// PlaceOnto embeds the axis in 3D on the planar frame.
func (a Axis2d) PlaceOnto(pf PlanarFrame3d) Axis3d {
	return Axis3d{a.origin.PlaceOnto(pf), a.direction.PlaceOnto(pf)}
}

func (a Axis2d) String() string {
	return fmt.Sprintf("Axis2d{origin: %v, direction: %v}", a.origin, a.direction)
}

package geom

import "fmt"

// Point2d is a position in the plane.
type Point2d struct {
	X, Y float64
}

func Origin2d() Point2d               { return Point2d{} }
func NewPoint2d(x, y float64) Point2d { return Point2d{X: x, Y: y} }

func (p Point2d) Coordinates() (x, y float64) {
	return p.X, p.Y
}

// VectorTo returns the displacement from p to q.
func (p Point2d) VectorTo(q Point2d) Vector2d {
	return Vector2d{q.X - p.X, q.Y - p.Y}
}

// VectorFrom returns the displacement from q to p.
func (p Point2d) VectorFrom(q Point2d) Vector2d {
	return q.VectorTo(p)
}

func (p Point2d) DistanceFrom(q Point2d) float64        { return p.VectorTo(q).Length() }
func (p Point2d) SquaredDistanceFrom(q Point2d) float64 { return p.VectorTo(q).SquaredLength() }

func (p Point2d) Translate(v Vector2d) Point2d {
	return Point2d{p.X + v.X, p.Y + v.Y}
}

// Interpolate2d returns start + t(end − start); t may lie outside [0, 1].
func Interpolate2d(start, end Point2d, t float64) Point2d {
	return start.Translate(start.VectorTo(end).Scale(t))
}

func Midpoint2d(a, b Point2d) Point2d {
	return Interpolate2d(a, b, 0.5)
}

func (p Point2d) transformAbout(origin Point2d, linear func(Vector2d) Vector2d) Point2d {
	return origin.Translate(linear(origin.VectorTo(p)))
}

// ScaleAbout scales the distance of p from center by k. Negative k is
// accepted and reflects through center; prefer RotateAround by π.
func (p Point2d) ScaleAbout(center Point2d, k float64) Point2d {
	return p.transformAbout(center, func(v Vector2d) Vector2d { return v.Scale(k) })
}

// RotateAround rotates p counterclockwise about center by angle radians.
func (p Point2d) RotateAround(center Point2d, angle float64) Point2d {
	return p.transformAbout(center, func(v Vector2d) Vector2d { return v.RotateBy(angle) })
}

func (p Point2d) MirrorAcross(axis Axis2d) Point2d {
	return p.transformAbout(axis.origin, func(v Vector2d) Vector2d { return v.MirrorAcross(axis) })
}

// ProjectOnto returns the closest point on axis.
func (p Point2d) ProjectOnto(axis Axis2d) Point2d {
	return p.transformAbout(axis.origin, func(v Vector2d) Vector2d { return v.ProjectOnto(axis) })
}

// PlaceOnto embeds p in 3D at origin + x·X + y·Y of the planar frame.
func (p Point2d) PlaceOnto(pf PlanarFrame3d) Point3d {
	return pf.origin.Translate(Vector2d{p.X, p.Y}.PlaceOnto(pf))
}

func (p Point2d) LocalizeTo(frame Frame2d) Point2d {
	v := frame.origin.VectorTo(p).LocalizeTo(frame)
	return Point2d{X: v.X, Y: v.Y}
}

func (p Point2d) PlaceIn(frame Frame2d) Point2d {
	return frame.origin.Translate(Vector2d{p.X, p.Y}.PlaceIn(frame))
}

// SignedDistanceAlong returns the position of p's projection along axis.
func (p Point2d) SignedDistanceAlong(axis Axis2d) float64 {
	return axis.origin.VectorTo(p).ComponentIn(axis.direction)
}

// SignedDistanceFrom returns the perpendicular distance from axis to p,
// positive to the left of the axis direction.
func (p Point2d) SignedDistanceFrom(axis Axis2d) float64 {
	return axis.direction.v.Cross(axis.origin.VectorTo(p))
}

func (p Point2d) EqualWithin(q Point2d, tol float64) bool {
	return p.SquaredDistanceFrom(q) <= tol*tol
}

func (p Point2d) String() string {
	return fmt.Sprintf("Point2d(%g, %g)", p.X, p.Y)
}

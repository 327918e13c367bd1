package geom

import (
	"fmt"
	"math"
)

// Direction2d is a unit-length 2D vector.
type Direction2d struct {
	v Vector2d
}

func XDirection2d() Direction2d { return Direction2d{Vector2d{1, 0}} }
func YDirection2d() Direction2d { return Direction2d{Vector2d{0, 1}} }

// Direction2dFromVector normalizes v. ok is false for the zero vector.
// Scaling by the largest component first keeps extreme magnitudes finite.
func Direction2dFromVector(v Vector2d) (d Direction2d, ok bool) {
	largest := math.Max(math.Abs(v.X), math.Abs(v.Y))
	if largest == 0 {
		return Direction2d{}, false
	}
	scaled := Vector2d{v.X / largest, v.Y / largest}
	return Direction2d{scaled.Scale(1 / scaled.Length())}, true
}

// Direction2dFromAngle returns the direction at angle radians
// counterclockwise from the positive X axis.
func Direction2dFromAngle(angle float64) Direction2d {
	sin, cos := math.Sincos(angle)
	return Direction2d{Vector2d{cos, sin}}
}

func (d Direction2d) Vector() Vector2d                  { return d.v }
func (d Direction2d) Components() (x, y float64)        { return d.v.X, d.v.Y }
func (d Direction2d) Times(k float64) Vector2d          { return d.v.Scale(k) }
func (d Direction2d) Reverse() Direction2d              { return Direction2d{d.v.Negate()} }
func (d Direction2d) Perpendicular() Direction2d        { return Direction2d{d.v.Perpendicular()} }
func (d Direction2d) ComponentIn(o Direction2d) float64 { return d.v.Dot(o.v) }

// Angle returns the angle of d from the positive X axis in (-π, π].
func (d Direction2d) Angle() float64 {
	return math.Atan2(d.v.Y, d.v.X)
}

// AngleTo returns the signed angle from d to other in (-π, π]. Positive
// angles are counterclockwise.
func (d Direction2d) AngleTo(other Direction2d) float64 {
	return math.Atan2(d.v.Cross(other.v), d.v.Dot(other.v))
}

func (d Direction2d) RotateBy(angle float64) Direction2d {
	return Direction2d{d.v.RotateBy(angle)}
}

func (d Direction2d) MirrorAcross(axis Axis2d) Direction2d {
	return Direction2d{d.v.MirrorAcross(axis)}
}

func (d Direction2d) LocalizeTo(frame Frame2d) Direction2d {
	return Direction2d{d.v.LocalizeTo(frame)}
}

func (d Direction2d) PlaceIn(frame Frame2d) Direction2d {
	return Direction2d{d.v.PlaceIn(frame)}
}

// PlaceOnto embeds d in 3D using the planar frame's basis.
func (d Direction2d) PlaceOnto(pf PlanarFrame3d) Direction3d {
	return Direction3d{d.v.PlaceOnto(pf)}
}

func (d Direction2d) EqualWithin(other Direction2d, tol float64) bool {
	return d.v.EqualWithin(other.v, tol)
}

func (d Direction2d) String() string {
	return fmt.Sprintf("Direction2d%s", d.v)
}

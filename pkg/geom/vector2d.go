package geom

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Vector2d is a free 2D vector.
type Vector2d struct {
	X, Y float64
}

func ZeroVector2d() Vector2d            { return Vector2d{} }
func NewVector2d(x, y float64) Vector2d { return Vector2d{X: x, Y: y} }
func Vector2dFromV2(v v2.Vec) Vector2d  { return Vector2d{X: v.X, Y: v.Y} }
func (v Vector2d) V2() v2.Vec           { return v2.Vec{X: v.X, Y: v.Y} }

// Components returns the x and y components.
func (v Vector2d) Components() (x, y float64) {
	return v.X, v.Y
}

func (v Vector2d) Plus(w Vector2d) Vector2d  { return Vector2dFromV2(v.V2().Add(w.V2())) }
func (v Vector2d) Minus(w Vector2d) Vector2d { return Vector2dFromV2(v.V2().Sub(w.V2())) }
func (v Vector2d) Scale(k float64) Vector2d  { return Vector2dFromV2(v.V2().MulScalar(k)) }
func (v Vector2d) Negate() Vector2d          { return Vector2d{-v.X, -v.Y} }

func (v Vector2d) Dot(w Vector2d) float64 { return v.V2().Dot(w.V2()) }

// Cross returns the z component of the 3D cross product of v and w
// extended with zero z. It is positive when w is counterclockwise of v.
func (v Vector2d) Cross(w Vector2d) float64 {
	return v.X*w.Y - v.Y*w.X
}

func (v Vector2d) Length() float64        { return v.V2().Length() }
func (v Vector2d) SquaredLength() float64 { return v.V2().Length2() }
func (v Vector2d) IsZero() bool           { return v.X == 0 && v.Y == 0 }

// Direction normalizes v. ok is false for the zero vector.
func (v Vector2d) Direction() (d Direction2d, ok bool) {
	return Direction2dFromVector(v)
}

func (v Vector2d) ComponentIn(d Direction2d) float64 { return v.Dot(d.v) }

func (v Vector2d) ProjectionIn(d Direction2d) Vector2d {
	return d.v.Scale(v.Dot(d.v))
}

// Perpendicular returns v rotated counterclockwise by 90 degrees.
func (v Vector2d) Perpendicular() Vector2d {
	return Vector2d{-v.Y, v.X}
}

// RotateBy rotates v counterclockwise by angle radians.
func (v Vector2d) RotateBy(angle float64) Vector2d {
	sin, cos := math.Sincos(angle)
	return Vector2d{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// MirrorAcross reflects v across the axis direction.
func (v Vector2d) MirrorAcross(axis Axis2d) Vector2d {
	d := axis.direction.v
	return d.Scale(2 * v.Dot(d)).Minus(v)
}

// ProjectOnto keeps only the component of v along the axis.
func (v Vector2d) ProjectOnto(axis Axis2d) Vector2d {
	return v.ProjectionIn(axis.direction)
}

// PlaceOnto embeds v in 3D using the planar frame's x/y basis.
func (v Vector2d) PlaceOnto(pf PlanarFrame3d) Vector3d {
	return pf.x.v.Scale(v.X).Plus(pf.y.v.Scale(v.Y))
}

// LocalizeTo expresses v in the basis of frame.
func (v Vector2d) LocalizeTo(frame Frame2d) Vector2d {
	return Vector2d{X: v.Dot(frame.x.v), Y: v.Dot(frame.y.v)}
}

// PlaceIn is the inverse of LocalizeTo.
func (v Vector2d) PlaceIn(frame Frame2d) Vector2d {
	return frame.x.v.Scale(v.X).Plus(frame.y.v.Scale(v.Y))
}

func (v Vector2d) Interpolate(w Vector2d, t float64) Vector2d {
	return v.Plus(w.Minus(v).Scale(t))
}

func (v Vector2d) EqualWithin(w Vector2d, tol float64) bool {
	return v.Minus(w).SquaredLength() <= tol*tol
}

func (v Vector2d) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

package geom

import "fmt"

// Frame2d is a local 2D coordinate system. Its y direction is always the
// x direction rotated counterclockwise by 90 degrees.
type Frame2d struct {
	origin Point2d
	x, y   Direction2d
}

func GlobalFrame2d() Frame2d { return Frame2dAt(Origin2d()) }

func Frame2dAt(origin Point2d) Frame2d {
	return Frame2d{origin, XDirection2d(), YDirection2d()}
}

// Frame2dWithXDirection returns a right-handed frame at origin with the
// given x direction.
func Frame2dWithXDirection(origin Point2d, x Direction2d) Frame2d {
	return Frame2d{origin, x, x.Perpendicular()}
}

// NewFrame2d builds a frame from explicit directions and checks that they
// are orthonormal with y counterclockwise of x.
func NewFrame2d(origin Point2d, x, y Direction2d) (Frame2d, error) {
	if err := checkBasis2d(x, y); err != nil {
		return Frame2d{}, fmt.Errorf("frame: %w", err)
	}
	return Frame2d{origin, x, y}, nil
}

func (f Frame2d) Origin() Point2d         { return f.origin }
func (f Frame2d) XDirection() Direction2d { return f.x }
func (f Frame2d) YDirection() Direction2d { return f.y }
func (f Frame2d) XAxis() Axis2d           { return Axis2d{f.origin, f.x} }
func (f Frame2d) YAxis() Axis2d           { return Axis2d{f.origin, f.y} }

func (f Frame2d) MoveTo(origin Point2d) Frame2d { return Frame2d{origin, f.x, f.y} }
func (f Frame2d) Translate(v Vector2d) Frame2d  { return f.MoveTo(f.origin.Translate(v)) }

func (f Frame2d) RotateAround(center Point2d, angle float64) Frame2d {
	return Frame2d{
		origin: f.origin.RotateAround(center, angle),
		x:      f.x.RotateBy(angle),
		y:      f.y.RotateBy(angle),
	}
}

// MirrorAcross reflects the origin and x direction; y is re-derived as the
// perpendicular of the mirrored x so the result stays right-handed.
func (f Frame2d) MirrorAcross(axis Axis2d) Frame2d {
	return Frame2dWithXDirection(f.origin.MirrorAcross(axis), f.x.MirrorAcross(axis))
}

func (f Frame2d) LocalizeTo(other Frame2d) Frame2d {
	return Frame2d{f.origin.LocalizeTo(other), f.x.LocalizeTo(other), f.y.LocalizeTo(other)}
}

func (f Frame2d) PlaceIn(other Frame2d) Frame2d {
	return Frame2d{f.origin.PlaceIn(other), f.x.PlaceIn(other), f.y.PlaceIn(other)}
}

// PlaceOnto embeds the frame in 3D on the planar frame.
func (f Frame2d) PlaceOnto(pf PlanarFrame3d) PlanarFrame3d {
	return PlanarFrame3d{f.origin.PlaceOnto(pf), f.x.PlaceOnto(pf), f.y.PlaceOnto(pf)}
}

func (f Frame2d) String() string {
	return fmt.Sprintf("Frame2d{origin: %v, x: %v, y: %v}", f.origin, f.x, f.y)
}

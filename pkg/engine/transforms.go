package engine

import (
	"fmt"

	"github.com/chazu/datum/pkg/geom"
	"github.com/chazu/datum/pkg/kernel"
	zygo "github.com/glycerine/zygomys/zygo"
)

// Transformation builtins dispatch on the kind of their first operand and
// the kind of the datum it is transformed by. Every geom value keeps its
// kind: points stay points, directions stay directions.

// (translate thing vec)
func (b *builtins) translate(args []zygo.Sexp) (any, error) {
	switch v := value(args[1]).(type) {
	case geom.Vector3d:
		switch t := value(args[0]).(type) {
		case geom.Point3d:
			return t.Translate(v), nil
		case geom.Axis3d:
			return t.Translate(v), nil
		case geom.Plane3d:
			return t.Translate(v), nil
		case geom.Frame3d:
			return t.Translate(v), nil
		case geom.PlanarFrame3d:
			return t.Translate(v), nil
		case kernel.Solid:
			return b.k.Translate(t, v), nil
		}
	case geom.Vector2d:
		switch t := value(args[0]).(type) {
		case geom.Point2d:
			return t.Translate(v), nil
		case geom.Axis2d:
			return t.Translate(v), nil
		case geom.Frame2d:
			return t.Translate(v), nil
		}
	}
	return nil, unsupported(args...)
}

// (scale-about p center k)
func (b *builtins) scaleAbout(args []zygo.Sexp) (any, error) {
	k, err := toFloat64(args[2])
	if err != nil {
		return nil, fmt.Errorf("factor: %w", err)
	}
	switch p := value(args[0]).(type) {
	case geom.Point2d:
		if c, ok := value(args[1]).(geom.Point2d); ok {
			return p.ScaleAbout(c, k), nil
		}
	case geom.Point3d:
		if c, ok := value(args[1]).(geom.Point3d); ok {
			return p.ScaleAbout(c, k), nil
		}
	}
	return nil, unsupported(args[:2]...)
}

// (rotate-around thing axis3 angle) | (rotate-around thing2d center angle)
func (b *builtins) rotateAround(args []zygo.Sexp) (any, error) {
	angle, err := toFloat64(args[2])
	if err != nil {
		return nil, fmt.Errorf("angle: %w", err)
	}
	switch about := value(args[1]).(type) {
	case geom.Axis3d:
		switch t := value(args[0]).(type) {
		case geom.Point3d:
			return t.RotateAround(about, angle), nil
		case geom.Vector3d:
			return t.RotateAround(about, angle), nil
		case geom.Direction3d:
			return t.RotateAround(about, angle), nil
		case geom.Axis3d:
			return t.RotateAround(about, angle), nil
		case geom.Plane3d:
			return t.RotateAround(about, angle), nil
		case geom.Frame3d:
			return t.RotateAround(about, angle), nil
		case geom.PlanarFrame3d:
			return t.RotateAround(about, angle), nil
		case kernel.Solid:
			return b.k.RotateAround(t, about, angle), nil
		}
	case geom.Point2d:
		switch t := value(args[0]).(type) {
		case geom.Point2d:
			return t.RotateAround(about, angle), nil
		case geom.Axis2d:
			return t.RotateAround(about, angle), nil
		case geom.Frame2d:
			return t.RotateAround(about, angle), nil
		}
	}
	return nil, unsupported(args[:2]...)
}

// (rotate-by v angle) for 2D vectors and directions.
func (b *builtins) rotateBy(args []zygo.Sexp) (any, error) {
	angle, err := toFloat64(args[1])
	if err != nil {
		return nil, fmt.Errorf("angle: %w", err)
	}
	switch t := value(args[0]).(type) {
	case geom.Vector2d:
		return t.RotateBy(angle), nil
	case geom.Direction2d:
		return t.RotateBy(angle), nil
	}
	return nil, unsupported(args[:1]...)
}

// (mirror-across thing plane) | (mirror-across thing2d axis2)
func (b *builtins) mirrorAcross(args []zygo.Sexp) (any, error) {
	switch m := value(args[1]).(type) {
	case geom.Plane3d:
		switch t := value(args[0]).(type) {
		case geom.Point3d:
			return t.MirrorAcross(m), nil
		case geom.Vector3d:
			return t.MirrorAcross(m), nil
		case geom.Direction3d:
			return t.MirrorAcross(m), nil
		case geom.Axis3d:
			return t.MirrorAcross(m), nil
		case geom.Plane3d:
			return t.MirrorAcross(m), nil
		case geom.Frame3d:
			return t.MirrorAcross(m), nil
		case geom.PlanarFrame3d:
			return t.MirrorAcross(m), nil
		case kernel.Solid:
			return b.k.MirrorAcross(t, m), nil
		}
	case geom.Axis2d:
		switch t := value(args[0]).(type) {
		case geom.Point2d:
			return t.MirrorAcross(m), nil
		case geom.Vector2d:
			return t.MirrorAcross(m), nil
		case geom.Direction2d:
			return t.MirrorAcross(m), nil
		case geom.Axis2d:
			return t.MirrorAcross(m), nil
		case geom.Frame2d:
			return t.MirrorAcross(m), nil
		}
	}
	return nil, unsupported(args...)
}

// (project-onto thing plane) | (project-onto point3 axis3) | (project-onto thing2d axis2)
func (b *builtins) projectOnto(args []zygo.Sexp) (any, error) {
	switch onto := value(args[1]).(type) {
	case geom.Plane3d:
		switch t := value(args[0]).(type) {
		case geom.Point3d:
			return t.ProjectOnto(onto), nil
		case geom.Vector3d:
			return t.ProjectOnto(onto), nil
		case geom.Direction3d:
			d, ok := t.ProjectOnto(onto)
			if !ok {
				return nil, errNoDirection
			}
			return d, nil
		case geom.Axis3d:
			a, ok := t.ProjectOnto(onto)
			if !ok {
				return nil, errNoDirection
			}
			return a, nil
		}
	case geom.Axis3d:
		switch t := value(args[0]).(type) {
		case geom.Point3d:
			return t.ProjectOntoAxis(onto), nil
		case geom.Vector3d:
			return t.ProjectionIn(onto.Direction()), nil
		}
	case geom.Axis2d:
		switch t := value(args[0]).(type) {
		case geom.Point2d:
			return t.ProjectOnto(onto), nil
		case geom.Vector2d:
			return t.ProjectOnto(onto), nil
		}
	}
	return nil, unsupported(args...)
}

// (project-into thing planar-frame) expresses 3D values in the frame's 2D
// coordinates.
func (b *builtins) projectInto(args []zygo.Sexp) (any, error) {
	pf, err := toGeom[geom.PlanarFrame3d](args[1], "planar-frame")
	if err != nil {
		return nil, err
	}
	switch t := value(args[0]).(type) {
	case geom.Point3d:
		return t.ProjectInto2d(pf), nil
	case geom.Vector3d:
		return t.ProjectInto2d(pf), nil
	case geom.Direction3d:
		d, ok := t.ProjectInto2d(pf)
		if !ok {
			return nil, errNoDirection
		}
		return d, nil
	case geom.Axis3d:
		a, ok := t.ProjectInto2d(pf)
		if !ok {
			return nil, errNoDirection
		}
		return a, nil
	}
	return nil, unsupported(args...)
}

// (place-onto thing2d planar-frame) is the inverse of project-into for
// values lying in the frame's plane.
func (b *builtins) placeOnto(args []zygo.Sexp) (any, error) {
	pf, err := toGeom[geom.PlanarFrame3d](args[1], "planar-frame")
	if err != nil {
		return nil, err
	}
	switch t := value(args[0]).(type) {
	case geom.Point2d:
		return t.PlaceOnto(pf), nil
	case geom.Vector2d:
		return t.PlaceOnto(pf), nil
	case geom.Direction2d:
		return t.PlaceOnto(pf), nil
	case geom.Axis2d:
		return t.PlaceOnto(pf), nil
	case geom.Frame2d:
		return t.PlaceOnto(pf), nil
	}
	return nil, unsupported(args...)
}

// (localize thing frame) expresses a global value in frame's coordinates.
func (b *builtins) localize(args []zygo.Sexp) (any, error) {
	switch f := value(args[1]).(type) {
	case geom.Frame3d:
		switch t := value(args[0]).(type) {
		case geom.Point3d:
			return t.LocalizeTo(f), nil
		case geom.Vector3d:
			return t.LocalizeTo(f), nil
		case geom.Direction3d:
			return t.LocalizeTo(f), nil
		case geom.Axis3d:
			return t.LocalizeTo(f), nil
		case geom.Plane3d:
			return t.LocalizeTo(f), nil
		case geom.Frame3d:
			return t.LocalizeTo(f), nil
		case geom.PlanarFrame3d:
			return t.LocalizeTo(f), nil
		}
	case geom.Frame2d:
		switch t := value(args[0]).(type) {
		case geom.Point2d:
			return t.LocalizeTo(f), nil
		case geom.Vector2d:
			return t.LocalizeTo(f), nil
		case geom.Direction2d:
			return t.LocalizeTo(f), nil
		case geom.Axis2d:
			return t.LocalizeTo(f), nil
		case geom.Frame2d:
			return t.LocalizeTo(f), nil
		}
	}
	return nil, unsupported(args...)
}

// (place-in thing frame) expresses a frame-local value globally.
func (b *builtins) placeIn(args []zygo.Sexp) (any, error) {
	switch f := value(args[1]).(type) {
	case geom.Frame3d:
		switch t := value(args[0]).(type) {
		case geom.Point3d:
			return t.PlaceIn(f), nil
		case geom.Vector3d:
			return t.PlaceIn(f), nil
		case geom.Direction3d:
			return t.PlaceIn(f), nil
		case geom.Axis3d:
			return t.PlaceIn(f), nil
		case geom.Plane3d:
			return t.PlaceIn(f), nil
		case geom.Frame3d:
			return t.PlaceIn(f), nil
		case geom.PlanarFrame3d:
			return t.PlaceIn(f), nil
		case kernel.Solid:
			return b.k.PlaceIn(t, f), nil
		}
	case geom.Frame2d:
		switch t := value(args[0]).(type) {
		case geom.Point2d:
			return t.PlaceIn(f), nil
		case geom.Vector2d:
			return t.PlaceIn(f), nil
		case geom.Direction2d:
			return t.PlaceIn(f), nil
		case geom.Axis2d:
			return t.PlaceIn(f), nil
		case geom.Frame2d:
			return t.PlaceIn(f), nil
		}
	}
	return nil, unsupported(args...)
}

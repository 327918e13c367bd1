// Package kernel defines the abstract solid-modelling kernel interface.
// Implementations (sdfx) provide primitives and boolean operations behind
// this interface; rigid motions are expressed with geom datums so a solid
// can be positioned in any frame, rotated about any axis or mirrored
// across any plane.
package kernel

import "github.com/chazu/datum/pkg/geom"

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box in global
	// coordinates.
	BoundingBox() (min, max geom.Point3d)
}

// Kernel is the abstract solid-modelling interface.
type Kernel interface {
	// Primitives, with their minimum corner (box) or base centre
	// (cylinder) at the origin of the global frame. segments is a
	// faceting hint that exact kernels may ignore.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Rigid motions
	Translate(s Solid, v geom.Vector3d) Solid
	RotateAround(s Solid, axis geom.Axis3d, angle float64) Solid
	MirrorAcross(s Solid, plane geom.Plane3d) Solid
	// PlaceIn treats s as modelled in frame's local coordinates and
	// returns it in global coordinates.
	PlaceIn(s Solid, frame geom.Frame3d) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

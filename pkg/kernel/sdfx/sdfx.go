// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/datum/pkg/geom"
	"github.com/chazu/datum/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var (
	_ kernel.Kernel = (*SdfxKernel)(nil)
	_ sdf.SDF3      = (*positioned)(nil)
)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max geom.Point3d) {
	bb := s.s.BoundingBox()
	return geom.Point3dFromV3(bb.Min), geom.Point3dFromV3(bb.Max)
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	meshCells int
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// WithMeshCells sets the marching cubes resolution along the longest side
// of the bounding box. Values below 1 are ignored.
func WithMeshCells(n int) Option {
	return func(k *SdfxKernel) {
		if n > 0 {
			k.meshCells = n
		}
	}
}

// New returns a new SdfxKernel.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{meshCells: DefaultMeshCells}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions. The resulting solid has its
// minimum corner at the origin (0,0,0) so that placing it in a frame puts
// the box's corner at the frame origin.
// sdf.Box3D centers the box at the origin, so we translate by half-dimensions.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return wrap(sdf.Transform3D(s, m))
}

// Cylinder creates a cylinder along +Z with its base centred on the origin.
// The segments parameter is ignored since SDF represents smooth surfaces.
func (k *SdfxKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{Z: height / 2})
	return wrap(sdf.Transform3D(s, m))
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by v.
func (k *SdfxKernel) Translate(s kernel.Solid, v geom.Vector3d) kernel.Solid {
	return wrap(sdf.Transform3D(unwrap(s), sdf.Translate3d(v.V3())))
}

// RotateAround rotates a solid by angle radians about axis.
func (k *SdfxKernel) RotateAround(s kernel.Solid, axis geom.Axis3d, angle float64) kernel.Solid {
	return position(unwrap(s),
		func(p geom.Point3d) geom.Point3d { return p.RotateAround(axis, -angle) },
		func(p geom.Point3d) geom.Point3d { return p.RotateAround(axis, angle) },
	)
}

// MirrorAcross reflects a solid across plane.
func (k *SdfxKernel) MirrorAcross(s kernel.Solid, plane geom.Plane3d) kernel.Solid {
	mirror := func(p geom.Point3d) geom.Point3d { return p.MirrorAcross(plane) }
	return position(unwrap(s), mirror, mirror)
}

// PlaceIn treats s as modelled in frame's local coordinates and returns it
// in global coordinates.
func (k *SdfxKernel) PlaceIn(s kernel.Solid, frame geom.Frame3d) kernel.Solid {
	return position(unwrap(s),
		func(p geom.Point3d) geom.Point3d { return p.LocalizeTo(frame) },
		func(p geom.Point3d) geom.Point3d { return p.PlaceIn(frame) },
	)
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.meshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// ----------------------------------------------------------------------------
// Positioned SDFs
// ----------------------------------------------------------------------------

// positioned is an SDF moved by a rigid motion. Rigid motions preserve
// distance, so the wrapped SDF evaluated at the pulled-back query point is
// still a distance bound.
type positioned struct {
	s       sdf.SDF3
	toLocal func(geom.Point3d) geom.Point3d
	bb      sdf.Box3
}

// position wraps s with the inverse/forward pair of one rigid motion.
func position(s sdf.SDF3, toLocal, toGlobal func(geom.Point3d) geom.Point3d) kernel.Solid {
	return wrap(&positioned{
		s:       s,
		toLocal: toLocal,
		bb:      transformBox(s.BoundingBox(), toGlobal),
	})
}

// Evaluate returns the signed distance at p.
func (ps *positioned) Evaluate(p v3.Vec) float64 {
	return ps.s.Evaluate(ps.toLocal(geom.Point3dFromV3(p)).V3())
}

// BoundingBox returns the extents of the moved source box.
func (ps *positioned) BoundingBox() sdf.Box3 {
	return ps.bb
}

// transformBox returns the axis-aligned box enclosing the eight transformed
// corners of bb.
func transformBox(bb sdf.Box3, f func(geom.Point3d) geom.Point3d) sdf.Box3 {
	lo := v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i := 0; i < 8; i++ {
		c := bb.Min
		if i&1 != 0 {
			c.X = bb.Max.X
		}
		if i&2 != 0 {
			c.Y = bb.Max.Y
		}
		if i&4 != 0 {
			c.Z = bb.Max.Z
		}
		p := f(geom.Point3dFromV3(c))
		lo = v3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = v3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return sdf.Box3{Min: lo, Max: hi}
}

package kernel

import (
	"math"

	"github.com/chazu/datum/pkg/geom"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // binding the solid was evaluated from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i as a point.
func (m *Mesh) Vertex(i int) geom.Point3d {
	return geom.NewPoint3d(float64(m.Vertices[i*3]), float64(m.Vertices[i*3+1]), float64(m.Vertices[i*3+2]))
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) geom.Vector3d {
	return geom.NewVector3d(float64(m.Normals[i*3]), float64(m.Normals[i*3+1]), float64(m.Normals[i*3+2]))
}

// Bounds returns the axis-aligned bounds of the vertices. ok is false for
// an empty mesh.
func (m *Mesh) Bounds() (min, max geom.Point3d, ok bool) {
	if m.IsEmpty() {
		return geom.Point3d{}, geom.Point3d{}, false
	}
	min = m.Vertex(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Vertex(i)
		min = geom.NewPoint3d(math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z))
		max = geom.NewPoint3d(math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z))
	}
	return min, max, true
}

// PlaceIn returns a copy of m, modelled in frame's local coordinates,
// expressed in global coordinates.
func (m *Mesh) PlaceIn(frame geom.Frame3d) *Mesh {
	return m.mapGeometry(
		func(p geom.Point3d) geom.Point3d { return p.PlaceIn(frame) },
		func(n geom.Vector3d) geom.Vector3d { return n.PlaceIn(frame) },
		false,
	)
}

// MirrorAcross returns a copy of m reflected across plane. Triangle winding
// is reversed so faces keep pointing outward.
func (m *Mesh) MirrorAcross(plane geom.Plane3d) *Mesh {
	return m.mapGeometry(
		func(p geom.Point3d) geom.Point3d { return p.MirrorAcross(plane) },
		func(n geom.Vector3d) geom.Vector3d { return n.MirrorAcross(plane) },
		true,
	)
}

func (m *Mesh) mapGeometry(point func(geom.Point3d) geom.Point3d, normal func(geom.Vector3d) geom.Vector3d, flip bool) *Mesh {
	out := &Mesh{
		Vertices: make([]float32, 0, len(m.Vertices)),
		Normals:  make([]float32, 0, len(m.Normals)),
		Indices:  make([]uint32, len(m.Indices)),
		Name:     m.Name,
	}
	for i := 0; i < m.VertexCount(); i++ {
		p := point(m.Vertex(i))
		out.Vertices = append(out.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
	}
	for i := 0; i < len(m.Normals)/3; i++ {
		n := normal(m.Normal(i))
		out.Normals = append(out.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	copy(out.Indices, m.Indices)
	if flip {
		for t := 0; t+2 < len(out.Indices); t += 3 {
			out.Indices[t+1], out.Indices[t+2] = out.Indices[t+2], out.Indices[t+1]
		}
	}
	return out
}

// ComputeFlatNormals fills Normals with per-vertex normals averaged from
// the faces sharing each vertex. Degenerate faces contribute nothing and a
// vertex touched only by degenerate faces gets a zero normal.
func (m *Mesh) ComputeFlatNormals() {
	sums := make([]geom.Vector3d, m.VertexCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		p0 := m.Vertex(i0)
		n := p0.VectorTo(m.Vertex(i1)).Cross(p0.VectorTo(m.Vertex(i2)))
		d, ok := n.Direction()
		if !ok {
			continue
		}
		for _, i := range []int{i0, i1, i2} {
			sums[i] = sums[i].Plus(d.Vector())
		}
	}

	m.Normals = make([]float32, 0, len(m.Vertices))
	for _, s := range sums {
		if d, ok := s.Direction(); ok {
			s = d.Vector()
		}
		m.Normals = append(m.Normals, float32(s.X), float32(s.Y), float32(s.Z))
	}
}

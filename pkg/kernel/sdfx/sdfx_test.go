package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/datum/pkg/geom"
	"github.com/chazu/datum/pkg/kernel"
)

// testCells keeps marching cubes fast in tests.
const testCells = 40

func checkBounds(t *testing.T, s kernel.Solid, wantMin, wantMax geom.Point3d, tol float64) {
	t.Helper()
	min, max := s.BoundingBox()
	if !min.EqualWithin(wantMin, tol) {
		t.Errorf("min = %v, expected %v", min, wantMin)
	}
	if !max.EqualWithin(wantMax, tol) {
		t.Errorf("max = %v, expected %v", max, wantMax)
	}
}

func evaluate(s kernel.Solid, x, y, z float64) float64 {
	return unwrap(s).Evaluate(geom.NewPoint3d(x, y, z).V3())
}

func TestBox(t *testing.T) {
	k := New(WithMeshCells(testCells))
	box := k.Box(100, 50, 25)
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestNewMeshCells(t *testing.T) {
	if got := New().meshCells; got != DefaultMeshCells {
		t.Errorf("default meshCells = %d, want %d", got, DefaultMeshCells)
	}
	if got := New(WithMeshCells(0)).meshCells; got != DefaultMeshCells {
		t.Errorf("WithMeshCells(0) meshCells = %d, want %d", got, DefaultMeshCells)
	}
	if got := New(WithMeshCells(16)).meshCells; got != 16 {
		t.Errorf("WithMeshCells(16) meshCells = %d, want 16", got)
	}
}

func TestCylinder(t *testing.T) {
	k := New(WithMeshCells(testCells))
	cyl := k.Cylinder(50, 10, 32)
	checkBounds(t, cyl, geom.NewPoint3d(-10, -10, 0), geom.NewPoint3d(10, 10, 50), 1e-9)

	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestDifference(t *testing.T) {
	k := New(WithMeshCells(testCells))

	box := k.Box(100, 100, 100)
	boxMesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh(box) failed: %v", err)
	}

	// A through hole along the box's vertical centreline.
	cyl := k.Translate(k.Cylinder(120, 20, 32), geom.NewVector3d(50, 50, -10))
	diff := k.Difference(box, cyl)
	diffMesh, err := k.ToMesh(diff)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	if diffMesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
	if d := evaluate(diff, 50, 50, 50); d <= 0 {
		t.Errorf("hole centre distance = %f, expected outside", d)
	}
}

func TestUnionAndIntersection(t *testing.T) {
	k := New(WithMeshCells(testCells))
	box1 := k.Box(50, 50, 50)
	box2 := k.Translate(k.Box(50, 50, 50), geom.NewVector3d(30, 0, 0))

	u := k.Union(box1, box2)
	checkBounds(t, u, geom.Origin3d(), geom.NewPoint3d(80, 50, 50), 1e-9)
	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}

	inter := k.Intersection(box1, box2)
	if d := evaluate(inter, 40, 25, 25); d >= 0 {
		t.Errorf("overlap distance = %f, expected inside", d)
	}
	if d := evaluate(inter, 10, 25, 25); d <= 0 {
		t.Errorf("box1-only distance = %f, expected outside", d)
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	checkBounds(t, box, geom.Origin3d(), geom.NewPoint3d(100, 50, 25), 1e-9)
}

func TestTranslate(t *testing.T) {
	k := New()
	translated := k.Translate(k.Box(10, 10, 10), geom.NewVector3d(100, 200, 300))
	checkBounds(t, translated, geom.NewPoint3d(100, 200, 300), geom.NewPoint3d(110, 210, 310), 1e-9)
}

func TestRotateAround(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)

	// A long box along X rotated a quarter turn about Z extends along Y.
	rotated := k.RotateAround(box, geom.ZAxis3d(), math.Pi/2)
	checkBounds(t, rotated, geom.NewPoint3d(-10, 0, 0), geom.NewPoint3d(0, 100, 10), 1e-9)

	if d := evaluate(rotated, -5, 50, 5); d >= 0 {
		t.Errorf("distance inside rotated box = %f, expected negative", d)
	}
	if d := evaluate(rotated, 5, 50, 5); d <= 0 {
		t.Errorf("distance outside rotated box = %f, expected positive", d)
	}
	// Rigid motion preserves distance.
	if d := evaluate(rotated, -5, 50, 15); math.Abs(d-5) > 1e-9 {
		t.Errorf("distance above rotated box = %f, expected 5", d)
	}
}

func TestMirrorAcross(t *testing.T) {
	k := New()
	mirrored := k.MirrorAcross(k.Box(4, 3, 2), geom.XYPlane().Offset(1))
	checkBounds(t, mirrored, geom.NewPoint3d(0, 0, 0), geom.NewPoint3d(4, 3, 2), 1e-9)

	moved := k.MirrorAcross(k.Box(4, 3, 2), geom.YZPlane())
	checkBounds(t, moved, geom.NewPoint3d(-4, 0, 0), geom.NewPoint3d(0, 3, 2), 1e-9)
	if d := evaluate(moved, -2, 1.5, 1); d >= 0 {
		t.Errorf("distance inside mirrored box = %f, expected negative", d)
	}
}

func TestPlaceIn(t *testing.T) {
	k := New(WithMeshCells(testCells))
	origin := geom.NewPoint3d(10, 0, 0)
	frame := geom.Frame3dAt(origin).RotateAround(geom.NewAxis3d(origin, geom.ZDirection3d()), math.Pi/2)

	box := k.Box(4, 2, 1)
	placed := k.PlaceIn(box, frame)
	// Local x runs along global +Y and local y along global -X.
	checkBounds(t, placed, geom.NewPoint3d(8, 0, 0), geom.NewPoint3d(10, 4, 1), 1e-9)

	// Meshing the placed solid agrees with placing the local mesh.
	local, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh(box) failed: %v", err)
	}
	global, err := k.ToMesh(placed)
	if err != nil {
		t.Fatalf("ToMesh(placed) failed: %v", err)
	}
	gotMin, gotMax, ok := local.PlaceIn(frame).Bounds()
	if !ok {
		t.Fatal("placed mesh is empty")
	}
	wantMin, wantMax, _ := global.Bounds()
	const tol = 0.25
	if !gotMin.EqualWithin(wantMin, tol) || !gotMax.EqualWithin(wantMax, tol) {
		t.Errorf("placed mesh bounds %v..%v, meshed placed solid %v..%v", gotMin, gotMax, wantMin, wantMax)
	}
}

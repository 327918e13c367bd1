package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertPoint3d(t *testing.T, want, got Point3d, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, delta, "y of %v", got)
	assert.InDelta(t, want.Z, got.Z, delta, "z of %v", got)
}

func assertVector3d(t *testing.T, want, got Vector3d, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, delta, "y of %v", got)
	assert.InDelta(t, want.Z, got.Z, delta, "z of %v", got)
}

func assertPoint2d(t *testing.T, want, got Point2d, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, delta, "y of %v", got)
}

// assertRightHanded checks that {x, y, z} is orthonormal with z = x × y.
func assertRightHanded(t *testing.T, x, y, z Direction3d) {
	t.Helper()
	assert.NoError(t, checkBasis(x, y, z))
	assertVector3d(t, z.Vector(), x.Cross(y), 1e-9)
}

// sampler produces deterministic pseudo-random geometry for property tests.
type sampler struct {
	r *rand.Rand
}

func newSampler() *sampler {
	return &sampler{r: rand.New(rand.NewSource(42))}
}

func (s *sampler) scalar() float64 {
	return (s.r.Float64()*2 - 1) * 10
}

func (s *sampler) angle() float64 {
	return (s.r.Float64()*2 - 1) * 2 * math.Pi
}

func (s *sampler) vector3d() Vector3d {
	return NewVector3d(s.scalar(), s.scalar(), s.scalar())
}

func (s *sampler) point3d() Point3d {
	return NewPoint3d(s.scalar(), s.scalar(), s.scalar())
}

func (s *sampler) point2d() Point2d {
	return NewPoint2d(s.scalar(), s.scalar())
}

func (s *sampler) direction3d() Direction3d {
	for {
		if d, ok := s.vector3d().Direction(); ok {
			return d
		}
	}
}

func (s *sampler) axis3d() Axis3d {
	return NewAxis3d(s.point3d(), s.direction3d())
}

func (s *sampler) plane3d() Plane3d {
	return Plane3dWithNormal(s.point3d(), s.direction3d())
}

func (s *sampler) frame3d() Frame3d {
	return Frame3dWithZDirection(s.point3d(), s.direction3d()).
		RotateAround(s.axis3d(), s.angle())
}

func (s *sampler) frame2d() Frame2d {
	return Frame2dWithXDirection(s.point2d(), Direction2dFromAngle(s.angle()))
}

const samples = 200

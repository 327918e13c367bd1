package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/datum/pkg/geom"
	"github.com/chazu/datum/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(axis3 :z)`,
			expect: `(axis3 "__kw_z")`,
		},
		{
			name:   "multiple keywords",
			input:  `(frame3 o :x a :y b)`,
			expect: `(frame3 o "__kw_x" a "__kw_y" b)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(rotate-around p :z-axis a)`,
			expect: `(rotate_around p "__kw_z-axis" a)`,
		},
		{
			name:   "multi-part kebab-case",
			input:  `(xy-plane) (signed-distance p q)`,
			expect: `(xy_plane) (signed_distance p q)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(vec3 1 -2 1e-3)`,
			expect: `(vec3 1 -2 1e-3)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Evaluation helpers
// ---------------------------------------------------------------------------

// eval runs source and requires it to succeed.
func eval(t *testing.T, source string) any {
	t.Helper()
	res, evalErrs, err := NewEngine().Evaluate(source)
	require.NoError(t, err)
	require.Empty(t, evalErrs, "source: %s", source)
	require.NotNil(t, res)
	return res.Value
}

// evalError runs source and returns the joined script error messages.
func evalError(t *testing.T, source string) string {
	t.Helper()
	res, evalErrs, err := NewEngine().Evaluate(source)
	require.NoError(t, err)
	require.Nil(t, res)
	require.NotEmpty(t, evalErrs, "source: %s", source)
	msgs := make([]string, len(evalErrs))
	for i, e := range evalErrs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "\n")
}

func requirePoint3d(t *testing.T, want geom.Point3d, got any) {
	t.Helper()
	p, ok := got.(geom.Point3d)
	require.True(t, ok, "expected Point3d, got %T", got)
	assert.True(t, p.EqualWithin(want, 1e-9), "want %v, got %v", want, p)
}

// ---------------------------------------------------------------------------
// Builtin tests
// ---------------------------------------------------------------------------

func TestConstructors(t *testing.T) {
	tests := []struct {
		source string
		want   any
	}{
		{`(point2 1 2)`, geom.NewPoint2d(1, 2)},
		{`(point3 1 2.5 -3)`, geom.NewPoint3d(1, 2.5, -3)},
		{`(vec2 0 -1)`, geom.NewVector2d(0, -1)},
		{`(vec3 1 0 0)`, geom.NewVector3d(1, 0, 0)},
		{`(dir3 :y)`, geom.YDirection3d()},
		{`(dir3 0 0 5)`, geom.ZDirection3d()},
		{`(dir3 (vec3 1e200 0 0))`, geom.XDirection3d()},
		{`(dir2 (vec2 0 -1e-200))`, geom.YDirection2d().Reverse()},
		{`(dir2 :x)`, geom.XDirection2d()},
		{`(axis3 :x)`, geom.XAxis3d()},
		{`(axis2 :y)`, geom.YAxis2d()},
		{`(xy-plane)`, geom.XYPlane()},
		{`(zx-plane)`, geom.ZXPlane()},
		{`(frame3)`, geom.GlobalFrame3d()},
		{`(frame2)`, geom.GlobalFrame2d()},
		{`(frame3 (point3 1 2 3))`, geom.Frame3dAt(geom.NewPoint3d(1, 2, 3))},
		{`(planar-frame :yz)`, geom.YZPlanarFrame()},
		{`(planar-frame (xy-plane))`, geom.XYPlanarFrame()},
		{`(origin-of (axis3 (point3 1 1 1) :z))`, geom.NewPoint3d(1, 1, 1)},
		{`(normal-of (yz-plane))`, geom.XDirection3d()},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.source))
		})
	}
}

func TestAngleBuiltins(t *testing.T) {
	assert.InDelta(t, math.Pi/2, eval(t, `(deg 90)`), 1e-12)
	assert.InDelta(t, math.Pi/2, eval(t, `(angle-to (dir3 :x) (dir3 :y))`), 1e-12)
	assert.InDelta(t, -math.Pi/2, eval(t, `(angle-to (dir2 :y) (dir2 :x))`), 1e-12)

	d, ok := eval(t, `(dir2 (deg 90))`).(geom.Direction2d)
	require.True(t, ok)
	assert.True(t, d.EqualWithin(geom.YDirection2d(), 1e-12))
}

func TestRotateAroundAxis(t *testing.T) {
	got := eval(t, `(rotate-around (point3 3 1 0) (axis3 :x) (deg 45))`)
	requirePoint3d(t, geom.NewPoint3d(3, math.Sqrt2/2, math.Sqrt2/2), got)

	got = eval(t, `
; quarter turn about a vertical axis through (1, 1, 0)
(def a (axis3 (point3 1 1 0) :z))
(rotate-around (point3 2 1 5) a (deg 90))`)
	requirePoint3d(t, geom.NewPoint3d(1, 2, 5), got)
}

func TestMirrorAndProject(t *testing.T) {
	requirePoint3d(t, geom.NewPoint3d(1, 2, -3), eval(t, `(mirror-across (point3 1 2 3) (xy-plane))`))
	requirePoint3d(t, geom.NewPoint3d(1, 2, 0), eval(t, `(project-onto (point3 1 2 3) (xy-plane))`))
	requirePoint3d(t, geom.NewPoint3d(0, 0, 3), eval(t, `(project-onto (point3 1 2 3) (axis3 :z))`))

	p2 := eval(t, `(project-into (point3 1 2 3) (planar-frame :yz))`)
	assert.Equal(t, geom.NewPoint2d(2, 3), p2)
	requirePoint3d(t, geom.NewPoint3d(0, 2, 3), eval(t, `(place-onto (point2 2 3) (planar-frame :yz))`))
}

func TestMeasurements(t *testing.T) {
	requirePoint3d(t, geom.NewPoint3d(0, 0, 2), eval(t, `(along (axis3 :z) 2)`))
	requirePoint3d(t, geom.NewPoint3d(1, 1, 2), eval(t, `(interpolate (point3 1 1 0) (point3 1 1 8) 0.25)`))
	requirePoint3d(t, geom.NewPoint3d(1, 1, -4), eval(t, `(interpolate (point3 1 1 0) (point3 1 1 8) -0.5)`))
	requirePoint3d(t, geom.NewPoint3d(1, 1, 4), eval(t, `(midpoint (point3 1 1 0) (point3 1 1 8))`))

	assert.InDelta(t, 5.0, eval(t, `(distance (point3 0 0 0) (point3 3 4 0))`), 1e-12)
	assert.InDelta(t, 5.0, eval(t, `(distance (point3 3 4 9) (axis3 :z))`), 1e-12)
	assert.InDelta(t, -3.0, eval(t, `(signed-distance (point3 1 2 -3) (xy-plane))`), 1e-12)
	assert.InDelta(t, 5.0, eval(t, `(length (vec3 3 4 0))`), 1e-12)
	assert.InDelta(t, 11.0, eval(t, `(dot (vec3 1 2 3) (vec3 3 1 2))`), 1e-12)
	assert.InDelta(t, 1.0, eval(t, `(cross (vec2 1 0) (vec2 0 1))`), 1e-12)
	assert.Equal(t, geom.NewVector3d(0, 0, 1), eval(t, `(cross (vec3 1 0 0) (vec3 0 1 0))`))
	assert.Equal(t, geom.NewVector3d(1, 1, 1), eval(t, `(vector-to (point3 1 1 1) (point3 2 2 2))`))
	assert.InDelta(t, 2.0, eval(t, `(y-of (translate (point3 1 1 1) (vec3 0 1 0)))`), 1e-12)
}

func TestLocalizePlaceInRoundTrip(t *testing.T) {
	got := eval(t, `
(def f (rotate-around (frame3 (point3 1 2 3) :z (dir3 1 1 1)) (axis3 :y) 0.3))
(def p (point3 4 -5 6))
(place-in (localize p f) f)`)
	requirePoint3d(t, geom.NewPoint3d(4, -5, 6), got)

	got2 := eval(t, `
(def f (frame2 (point2 1 1) :x (dir2 0.5)))
(place-in (localize (point2 3 4) f) f)`)
	p, ok := got2.(geom.Point2d)
	require.True(t, ok)
	assert.True(t, p.EqualWithin(geom.NewPoint2d(3, 4), 1e-9))
}

func TestMirroredFrameIsRightHanded(t *testing.T) {
	got := eval(t, `(mirror-across (frame3 (point3 1 2 3)) (plane (point3 0 0 0) (dir3 1 1 0)))`)
	f, ok := got.(geom.Frame3d)
	require.True(t, ok)
	_, err := geom.NewFrame3d(f.Origin(), f.XDirection(), f.YDirection(), f.ZDirection())
	assert.NoError(t, err)
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"zero direction", `(dir3 0 0 0)`, "no well-defined direction"},
		{"zero vector axis", `(axis3 (point3 0 0 0) (vec3 0 0 0))`, "no well-defined direction"},
		{"projected normal", `(project-onto (dir3 :z) (xy-plane))`, "no well-defined direction"},
		{"projected normal axis", `(project-into (axis3 :z) (planar-frame :xy))`, "no well-defined direction"},
		{"collinear plane", `(plane (point3 0 0 0) (point3 1 1 1) (point3 2 2 2))`, "collinear"},
		{"oblique frame", `(frame3 (point3 0 0 0) :x (dir3 :x) :y (dir3 1 1 0))`, "not orthogonal"},
		{"unsupported operands", `(translate (vec3 1 2 3) (vec3 1 1 1))`, "unsupported operands (vec3, vec3)"},
		{"wrong arity", `(point3 1 2)`, "wrong number of arguments"},
		{"not a number", `(point2 1 (vec2 1 1))`, "expected number"},
		{"bad keyword", `(planar-frame :xz)`, "invalid plane"},
		{"negative box", `(box 1 -1 1)`, "must be positive"},
		{"too few segments", `(cylinder 5 1 :segments 2)`, "segments must be at least 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := evalError(t, tt.source)
			assert.Contains(t, msg, tt.want)
		})
	}
}

func TestSolidBuiltins(t *testing.T) {
	got := eval(t, `
(def f (frame3 (point3 10 0 0)))
(place-in (box 1 2 3) f)`)
	s, ok := got.(kernel.Solid)
	require.True(t, ok, "expected kernel.Solid, got %T", got)
	min, max := s.BoundingBox()
	assert.True(t, min.EqualWithin(geom.NewPoint3d(10, 0, 0), 1e-9), "min %v", min)
	assert.True(t, max.EqualWithin(geom.NewPoint3d(11, 2, 3), 1e-9), "max %v", max)

	got = eval(t, `
(difference
  (box 10 10 10)
  (translate (cylinder 12 2 :segments 16) (vec3 5 5 -1)))`)
	s, ok = got.(kernel.Solid)
	require.True(t, ok)
	min, _ = s.BoundingBox()
	assert.True(t, min.EqualWithin(geom.Origin3d(), 1e-9), "min %v", min)

	got = eval(t, `(mirror-across (box 1 1 1) (yz-plane))`)
	s, ok = got.(kernel.Solid)
	require.True(t, ok)
	min, max = s.BoundingBox()
	assert.True(t, min.EqualWithin(geom.NewPoint3d(-1, 0, 0), 1e-9), "min %v", min)
	assert.True(t, max.EqualWithin(geom.NewPoint3d(0, 1, 1), 1e-9), "max %v", max)
}

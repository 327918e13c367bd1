package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/datum/pkg/config"
	"github.com/chazu/datum/pkg/engine"
	"github.com/chazu/datum/pkg/geom"
	"github.com/chazu/datum/pkg/kernel"
	"github.com/chazu/datum/pkg/kernel/sdfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		res  *engine.Result
		want string
	}{
		{"nil", &engine.Result{}, ""},
		{"int", &engine.Result{Value: int64(3), Text: "3"}, "3"},
		{"float", &engine.Result{Value: 1.0 / 3}, "0.333"},
		{"negative zero", &engine.Result{Value: -1e-9}, "0.000"},
		{"point3", &engine.Result{Value: geom.NewPoint3d(1, -2.5, 0)}, "point3 (1.000 -2.500 0.000)"},
		{"vec2", &engine.Result{Value: geom.NewVector2d(0.5, 2)}, "vec2 (0.500 2.000)"},
		{"dir3", &engine.Result{Value: geom.XDirection3d()}, "dir3 (1.000 0.000 0.000)"},
		{"plane", &engine.Result{Value: geom.XYPlane()}, geom.XYPlane().String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.res, 3))
		})
	}
}

func TestLoadConfigOverride(t *testing.T) {
	cfg, err := loadConfig("", "debug")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = loadConfig("", "chatty")
	assert.Error(t, err)
}

func newTestRunner(t *testing.T, meshPath string) (*runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Precision = 3
	cfg.Mesh.Cells = 16

	var out, errOut bytes.Buffer
	return &runner{
		cfg:      cfg,
		logger:   zap.NewNop(),
		engine:   engine.NewEngine(engine.WithKernel(sdfx.New(sdfx.WithMeshCells(cfg.Mesh.Cells)))),
		out:      &out,
		errOut:   &errOut,
		meshPath: meshPath,
	}, &out, &errOut
}

func TestRunExpression(t *testing.T) {
	r, out, _ := newTestRunner(t, "")
	require.NoError(t, r.runAll("(translate (point3 1 2 3) (vec3 1 1 1))", nil))
	assert.Equal(t, "point3 (2.000 3.000 4.000)\n", out.String())
}

func TestRunScriptError(t *testing.T) {
	r, out, errOut := newTestRunner(t, "")
	err := r.runAll("(dir3 0 0 0)", nil)
	assert.ErrorIs(t, err, errScript)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "-e")
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lisp")
	bad := filepath.Join(dir, "bad.lisp")
	require.NoError(t, os.WriteFile(good, []byte("(distance (point3 0 0 0) (point3 3 4 0))"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("(undefined-thing)"), 0o644))

	r, out, errOut := newTestRunner(t, "")
	err := r.runAll("", []string{bad, good})
	assert.ErrorIs(t, err, errScript)
	assert.Equal(t, "5.000\n", out.String())
	assert.Contains(t, errOut.String(), bad)

	err = r.runAll("", []string{filepath.Join(dir, "missing.lisp")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errScript)
}

func TestRunSolidWritesMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.json")
	r, out, _ := newTestRunner(t, path)
	require.NoError(t, r.runAll("(box 1 2 3)", nil))
	assert.Contains(t, out.String(), "solid (0.000 0.000 0.000) .. (1.000 2.000 3.000)")
	assert.Contains(t, out.String(), "-> "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var mesh kernel.Mesh
	require.NoError(t, json.Unmarshal(data, &mesh))
	assert.Equal(t, "-e", mesh.Name)
	assert.Positive(t, mesh.TriangleCount())
	assert.Len(t, mesh.Normals, len(mesh.Vertices))
}

func TestCheckArgs(t *testing.T) {
	assert.NoError(t, checkArgs("(+ 1 2)", nil))
	assert.NoError(t, checkArgs("", []string{"a.lisp"}))
	assert.Error(t, checkArgs("(+ 1 2)", []string{"a.lisp"}))
}

func TestSetMeshTransforms(t *testing.T) {
	r, _, _ := newTestRunner(t, "")
	require.NoError(t, r.setMeshTransforms("(frame3 (point3 1 2 3))", "(yz-plane)"))
	require.NotNil(t, r.meshFrame)
	require.NotNil(t, r.meshMirror)
	assert.Equal(t, geom.NewPoint3d(1, 2, 3), r.meshFrame.Origin())
	assert.Equal(t, geom.YZPlane(), *r.meshMirror)

	tests := []struct {
		name          string
		place, mirror string
		want          string
	}{
		{"plane as frame", "(xy-plane)", "", "-place: expected geom.Frame3d"},
		{"frame as plane", "", "(frame3)", "-mirror: expected geom.Plane3d"},
		{"script error", "(dir3 0 0 0)", "", "no well-defined direction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRunner(t, "")
			err := r.setMeshTransforms(tt.place, tt.mirror)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func readMesh(t *testing.T, path string) *kernel.Mesh {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var mesh kernel.Mesh
	require.NoError(t, json.Unmarshal(data, &mesh))
	return &mesh
}

func TestRunSolidPlacesAndMirrorsMesh(t *testing.T) {
	const slack = 0.25

	path := filepath.Join(t.TempDir(), "placed.json")
	r, out, _ := newTestRunner(t, path)
	require.NoError(t, r.setMeshTransforms("(frame3 (point3 10 0 0))", ""))
	require.NoError(t, r.runAll("(box 1 2 3)", nil))
	// Solid bounds are unaffected; only the written mesh moves.
	assert.Contains(t, out.String(), "solid (0.000 0.000 0.000) .. (1.000 2.000 3.000)")
	assert.Contains(t, out.String(), "mesh ")

	lo, hi, ok := readMesh(t, path).Bounds()
	require.True(t, ok)
	assert.True(t, lo.EqualWithin(geom.NewPoint3d(10, 0, 0), slack), "min %v", lo)
	assert.True(t, hi.EqualWithin(geom.NewPoint3d(11, 2, 3), slack), "max %v", hi)

	path = filepath.Join(t.TempDir(), "mirrored.json")
	r, _, _ = newTestRunner(t, path)
	require.NoError(t, r.setMeshTransforms("(frame3 (point3 10 0 0))", "(yz-plane)"))
	require.NoError(t, r.runAll("(box 1 2 3)", nil))

	mesh := readMesh(t, path)
	lo, hi, ok = mesh.Bounds()
	require.True(t, ok)
	assert.True(t, lo.EqualWithin(geom.NewPoint3d(-11, 0, 0), slack), "min %v", lo)
	assert.True(t, hi.EqualWithin(geom.NewPoint3d(-10, 2, 3), slack), "max %v", hi)
	// Outward normals survive the reflection: the face at x = -11 points -X.
	for i := 0; i < mesh.VertexCount(); i++ {
		v := mesh.Vertex(i)
		if v.X < -10.9 && v.Y > 0.5 && v.Y < 1.5 && v.Z > 1 && v.Z < 2 {
			assert.Negative(t, mesh.Normal(i).X, "vertex %v normal %v", v, mesh.Normal(i))
		}
	}
}

// Command datum evaluates geometry scripts and prints the value of the
// last expression of each one.
//
//	datum [-config datum.yaml] [-e expr | script.lisp ...]
//	      [-mesh out.json [-place frame-expr] [-mirror plane-expr]]
//
// With no script arguments and no -e, the script is read from stdin.
// -place and -mirror are datum expressions, evaluated like scripts, that
// position the written mesh; the mirror is applied after the placement.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chazu/datum/pkg/config"
	"github.com/chazu/datum/pkg/engine"
	"github.com/chazu/datum/pkg/geom"
	"github.com/chazu/datum/pkg/kernel"
	"github.com/chazu/datum/pkg/kernel/sdfx"
	"go.uber.org/zap"
)

// errScript marks a script that failed to evaluate. Its messages were
// already printed.
var errScript = errors.New("script failed")

func main() {
	os.Exit(realMain())
}

func realMain() int {
	var (
		configPath = flag.String("config", "", "YAML configuration file.")
		logLevel   = flag.String("log-level", "", "Override log.level from the configuration.")
		expr       = flag.String("e", "", "Evaluate this expression instead of reading scripts.")
		meshPath   = flag.String("mesh", "", "Write the mesh of a solid result as JSON to this path.")
		placeExpr  = flag.String("place", "", "Frame expression the written mesh is placed in.")
		mirrorExpr = flag.String("mirror", "", "Plane expression the written mesh is mirrored across.")
	)
	flag.Parse()

	if err := checkArgs(*expr, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}

	cfg, err := loadConfig(*configPath, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}

	logger, err := cfg.Log.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	eng := engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithTimeout(cfg.Eval.Timeout),
		engine.WithKernel(sdfx.New(sdfx.WithMeshCells(cfg.Mesh.Cells))),
	)
	r := &runner{
		cfg:      cfg,
		logger:   logger,
		engine:   eng,
		out:      os.Stdout,
		errOut:   os.Stderr,
		meshPath: *meshPath,
	}
	if err := r.setMeshTransforms(*placeExpr, *mirrorExpr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}

	if err := r.runAll(*expr, flag.Args()); err != nil {
		if !errors.Is(err, errScript) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}
	return 0
}

func checkArgs(expr string, paths []string) error {
	if expr != "" && len(paths) > 0 {
		return fmt.Errorf("-e cannot be combined with script arguments %v", paths)
	}
	return nil
}

func loadConfig(path, level string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if level != "" {
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

type runner struct {
	cfg      *config.Config
	logger   *zap.Logger
	engine   *engine.Engine
	out      io.Writer
	errOut   io.Writer
	meshPath string

	// Optional placement of the written mesh.
	meshFrame  *geom.Frame3d
	meshMirror *geom.Plane3d
}

func (r *runner) setMeshTransforms(placeExpr, mirrorExpr string) error {
	if placeExpr != "" {
		f, err := evalDatum[geom.Frame3d](r.engine, "-place", placeExpr)
		if err != nil {
			return err
		}
		r.meshFrame = &f
	}
	if mirrorExpr != "" {
		p, err := evalDatum[geom.Plane3d](r.engine, "-mirror", mirrorExpr)
		if err != nil {
			return err
		}
		r.meshMirror = &p
	}
	return nil
}

// evalDatum evaluates src and requires its value to be a T.
func evalDatum[T any](eng *engine.Engine, name, src string) (T, error) {
	var zero T
	res, evalErrs, err := eng.Evaluate(src)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	if len(evalErrs) > 0 {
		return zero, fmt.Errorf("%s: %w", name, evalErrs[0])
	}
	v, ok := res.Value.(T)
	if !ok {
		return zero, fmt.Errorf("%s: expected %T, got %s", name, zero, res.Text)
	}
	return v, nil
}

func (r *runner) runAll(expr string, paths []string) error {
	if expr != "" {
		return r.run("-e", expr)
	}
	if len(paths) == 0 {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return r.run("stdin", string(src))
	}

	var failed bool
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := r.run(path, string(src)); err != nil {
			if !errors.Is(err, errScript) {
				return err
			}
			failed = true
		}
	}
	if failed {
		return errScript
	}
	return nil
}

// run evaluates one script. Script errors are printed as name:line: message.
func (r *runner) run(name, src string) error {
	res, evalErrs, err := r.engine.Evaluate(src)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			if e.Line > 0 {
				fmt.Fprintf(r.errOut, "%s:%d: %s\n", name, e.Line, e.Message)
			} else {
				fmt.Fprintf(r.errOut, "%s: %s\n", name, e.Message)
			}
		}
		return errScript
	}

	if s, ok := res.Value.(kernel.Solid); ok {
		return r.reportSolid(name, s)
	}
	fmt.Fprintln(r.out, formatValue(res, r.cfg.Output.Precision))
	return nil
}

func (r *runner) reportSolid(name string, s kernel.Solid) error {
	min, max := s.BoundingBox()
	p := r.cfg.Output.Precision
	fmt.Fprintf(r.out, "solid %s .. %s\n", formatPoint(min, p), formatPoint(max, p))
	if r.meshPath == "" {
		return nil
	}

	mesh, err := r.engine.Kernel().ToMesh(s)
	if err != nil {
		return fmt.Errorf("%s: mesh: %w", name, err)
	}
	mesh.Name = name
	if r.meshFrame != nil {
		mesh = mesh.PlaceIn(*r.meshFrame)
	}
	if r.meshMirror != nil {
		mesh = mesh.MirrorAcross(*r.meshMirror)
	}
	// Slivers from marching cubes have no face normal; JSON cannot carry NaN.
	mesh.ComputeFlatNormals()
	if err := writeMesh(r.meshPath, mesh); err != nil {
		return err
	}
	r.logger.Info("wrote mesh",
		zap.String("path", r.meshPath),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)

	fmt.Fprintf(r.out, "mesh %d triangles", mesh.TriangleCount())
	if lo, hi, ok := mesh.Bounds(); ok {
		fmt.Fprintf(r.out, " %s .. %s", formatPoint(lo, p), formatPoint(hi, p))
	}
	fmt.Fprintf(r.out, " -> %s\n", r.meshPath)
	return nil
}

func writeMesh(path string, mesh *kernel.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mesh file: %w", err)
	}
	if err := json.NewEncoder(f).Encode(mesh); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode mesh: %w", err)
	}
	return f.Close()
}

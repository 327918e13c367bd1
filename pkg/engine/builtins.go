package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chazu/datum/pkg/geom"
	"github.com/chazu/datum/pkg/kernel"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms datum Lisp source code before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: rotate-around -> rotate_around
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). Only a hyphen followed by a letter is
//     converted, so builtin names never end a hyphenated part in a digit.
//
//  3. Line comments: ; -> //
//
// All transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, kwPrefix...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpGeom wraps any geom value (points, vectors, directions, axes, planes
// and frames) so it can be passed between builtins.
type sexpGeom struct {
	val fmt.Stringer
}

func (g *sexpGeom) SexpString(ps *zygo.PrintState) string { return g.val.String() }
func (g *sexpGeom) Type() *zygo.RegisteredType            { return nil }

// sexpSolid wraps a kernel.Solid.
type sexpSolid struct {
	solid kernel.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	min, max := s.solid.BoundingBox()
	return fmt.Sprintf("(solid %v %v)", min, max)
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// value unwraps a Sexp into the Go value builtins dispatch on.
func value(s zygo.Sexp) any {
	switch v := s.(type) {
	case *sexpGeom:
		return v.val
	case *sexpSolid:
		return v.solid
	}
	return s
}

// toSexp wraps a builtin's Go result.
func toSexp(v any) zygo.Sexp {
	switch v := v.(type) {
	case float64:
		return &zygo.SexpFloat{Val: v}
	case bool:
		return &zygo.SexpBool{Val: v}
	case kernel.Solid:
		return &sexpSolid{solid: v}
	case fmt.Stringer:
		return &sexpGeom{val: v}
	}
	return zygo.SexpNull
}

// kindOf names a value the way scripts construct it.
func kindOf(s zygo.Sexp) string {
	switch value(s).(type) {
	case geom.Point2d:
		return "point2"
	case geom.Point3d:
		return "point3"
	case geom.Vector2d:
		return "vec2"
	case geom.Vector3d:
		return "vec3"
	case geom.Direction2d:
		return "dir2"
	case geom.Direction3d:
		return "dir3"
	case geom.Axis2d:
		return "axis2"
	case geom.Axis3d:
		return "axis3"
	case geom.Plane3d:
		return "plane"
	case geom.Frame2d:
		return "frame2"
	case geom.Frame3d:
		return "frame3"
	case geom.PlanarFrame3d:
		return "planar-frame"
	case kernel.Solid:
		return "solid"
	case *zygo.SexpInt, *zygo.SexpFloat:
		return "number"
	}
	return fmt.Sprintf("%T", s)
}

// errNoDirection reports a zero-length direction or a projection that
// degenerates to one.
var errNoDirection = errors.New("no well-defined direction")

// unsupported reports an operand combination a builtin does not accept.
func unsupported(args ...zygo.Sexp) error {
	kinds := make([]string, len(args))
	for i, a := range args {
		kinds[i] = kindOf(a)
	}
	return fmt.Errorf("unsupported operands (%s)", strings.Join(kinds, ", "))
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s (%s)", kindOf(s), s.SexpString(nil))
}

// toFloats extracts every arg as a number.
func toFloats(args []zygo.Sexp) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// toGeom extracts a geom value of type T; want names T for error messages.
func toGeom[T any](s zygo.Sexp, want string) (T, error) {
	if v, ok := value(s).(T); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("expected %s, got %s (%s)", want, kindOf(s), s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %s (%s)", kindOf(s), s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toDirection3d accepts a dir3, a non-zero vec3, or one of :x :y :z.
func toDirection3d(s zygo.Sexp) (geom.Direction3d, error) {
	switch v := value(s).(type) {
	case geom.Direction3d:
		return v, nil
	case geom.Vector3d:
		d, ok := v.Direction()
		if !ok {
			return geom.Direction3d{}, errNoDirection
		}
		return d, nil
	case *zygo.SexpStr:
		name, _ := toKeywordString(v)
		switch name {
		case "x":
			return geom.XDirection3d(), nil
		case "y":
			return geom.YDirection3d(), nil
		case "z":
			return geom.ZDirection3d(), nil
		}
		return geom.Direction3d{}, fmt.Errorf("invalid direction %q, expected x, y, or z", name)
	}
	return geom.Direction3d{}, fmt.Errorf("expected dir3, got %s (%s)", kindOf(s), s.SexpString(nil))
}

// toDirection2d accepts a dir2, a non-zero vec2, or one of :x :y.
func toDirection2d(s zygo.Sexp) (geom.Direction2d, error) {
	switch v := value(s).(type) {
	case geom.Direction2d:
		return v, nil
	case geom.Vector2d:
		d, ok := v.Direction()
		if !ok {
			return geom.Direction2d{}, errNoDirection
		}
		return d, nil
	case *zygo.SexpStr:
		name, _ := toKeywordString(v)
		switch name {
		case "x":
			return geom.XDirection2d(), nil
		case "y":
			return geom.YDirection2d(), nil
		}
		return geom.Direction2d{}, fmt.Errorf("invalid direction %q, expected x or y", name)
	}
	return geom.Direction2d{}, fmt.Errorf("expected dir2, got %s (%s)", kindOf(s), s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinFunc is the body of a builtin. Its result is wrapped with toSexp.
type builtinFunc func(args []zygo.Sexp) (any, error)

// define registers fn under name, converting kebab-case to the underscore
// form preprocessSource produces. maxArgs < 0 means unbounded.
func define(env *zygo.Zlisp, name string, minArgs, maxArgs int, fn builtinFunc) {
	env.AddFunction(strings.ReplaceAll(name, "-", "_"), func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
			return zygo.SexpNull, fmt.Errorf("%s: wrong number of arguments (%d)", name, len(args))
		}
		v, err := fn(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		return toSexp(v), nil
	})
}

// builtins holds the state shared by builtin bodies.
type builtins struct {
	k kernel.Kernel
}

// registerBuiltins installs all datum builtins into a zygomys environment.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens and kebab-case names are recognizable.
func registerBuiltins(env *zygo.Zlisp, k kernel.Kernel) {
	b := &builtins{k: k}

	// Constructors
	define(env, "point2", 2, 2, b.point2)
	define(env, "point3", 3, 3, b.point3)
	define(env, "vec2", 2, 2, b.vec2)
	define(env, "vec3", 3, 3, b.vec3)
	define(env, "dir2", 1, 2, b.dir2)
	define(env, "dir3", 1, 3, b.dir3)
	define(env, "axis2", 1, 2, b.axis2)
	define(env, "axis3", 1, 2, b.axis3)
	define(env, "plane", 2, 3, b.plane)
	define(env, "xy-plane", 0, 0, func([]zygo.Sexp) (any, error) { return geom.XYPlane(), nil })
	define(env, "yz-plane", 0, 0, func([]zygo.Sexp) (any, error) { return geom.YZPlane(), nil })
	define(env, "zx-plane", 0, 0, func([]zygo.Sexp) (any, error) { return geom.ZXPlane(), nil })
	define(env, "frame2", 0, 3, b.frame2)
	define(env, "frame3", 0, 5, b.frame3)
	define(env, "planar-frame", 1, 3, b.planarFrame)
	define(env, "deg", 1, 1, b.deg)

	// Accessors
	define(env, "x-of", 1, 1, b.component(0))
	define(env, "y-of", 1, 1, b.component(1))
	define(env, "z-of", 1, 1, b.component(2))
	define(env, "origin-of", 1, 1, b.originOf)
	define(env, "direction-of", 1, 1, b.directionOf)
	define(env, "normal-of", 1, 1, b.normalOf)

	// Transformations (transforms.go)
	define(env, "translate", 2, 2, b.translate)
	define(env, "scale-about", 3, 3, b.scaleAbout)
	define(env, "rotate-around", 3, 3, b.rotateAround)
	define(env, "rotate-by", 2, 2, b.rotateBy)
	define(env, "mirror-across", 2, 2, b.mirrorAcross)
	define(env, "project-onto", 2, 2, b.projectOnto)
	define(env, "project-into", 2, 2, b.projectInto)
	define(env, "place-onto", 2, 2, b.placeOnto)
	define(env, "localize", 2, 2, b.localize)
	define(env, "place-in", 2, 2, b.placeIn)

	// Measurements
	define(env, "vector-to", 2, 2, b.vectorTo)
	define(env, "distance", 2, 2, b.distance)
	define(env, "signed-distance", 2, 2, b.signedDistance)
	define(env, "along", 2, 2, b.along)
	define(env, "interpolate", 3, 3, b.interpolate)
	define(env, "midpoint", 2, 2, b.midpoint)
	define(env, "length", 1, 1, b.length)
	define(env, "dot", 2, 2, b.dot)
	define(env, "cross", 2, 2, b.cross)
	define(env, "angle-to", 2, 2, b.angleTo)
	define(env, "perpendicular", 1, 1, b.perpendicular)

	// Solids
	define(env, "box", 3, 3, b.box)
	define(env, "cylinder", 2, 4, b.cylinder)
	define(env, "union", 2, -1, b.boolean(k.Union))
	define(env, "difference", 2, -1, b.boolean(k.Difference))
	define(env, "intersection", 2, -1, b.boolean(k.Intersection))
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// (point2 1 2)
func (b *builtins) point2(args []zygo.Sexp) (any, error) {
	f, err := toFloats(args)
	if err != nil {
		return nil, err
	}
	return geom.NewPoint2d(f[0], f[1]), nil
}

// (point3 1 2 3)
func (b *builtins) point3(args []zygo.Sexp) (any, error) {
	f, err := toFloats(args)
	if err != nil {
		return nil, err
	}
	return geom.NewPoint3d(f[0], f[1], f[2]), nil
}

// (vec2 1 2)
func (b *builtins) vec2(args []zygo.Sexp) (any, error) {
	f, err := toFloats(args)
	if err != nil {
		return nil, err
	}
	return geom.NewVector2d(f[0], f[1]), nil
}

// (vec3 1 2 3)
func (b *builtins) vec3(args []zygo.Sexp) (any, error) {
	f, err := toFloats(args)
	if err != nil {
		return nil, err
	}
	return geom.NewVector3d(f[0], f[1], f[2]), nil
}

// (dir2 angle) | (dir2 x y) | (dir2 :x) | (dir2 (vec2 ...))
func (b *builtins) dir2(args []zygo.Sexp) (any, error) {
	if len(args) == 2 {
		f, err := toFloats(args)
		if err != nil {
			return nil, err
		}
		return toDirection2d(&sexpGeom{val: geom.NewVector2d(f[0], f[1])})
	}
	if angle, err := toFloat64(args[0]); err == nil {
		return geom.Direction2dFromAngle(angle), nil
	}
	return toDirection2d(args[0])
}

// (dir3 x y z) | (dir3 :z) | (dir3 (vec3 ...))
func (b *builtins) dir3(args []zygo.Sexp) (any, error) {
	switch len(args) {
	case 1:
		return toDirection3d(args[0])
	case 3:
		f, err := toFloats(args)
		if err != nil {
			return nil, err
		}
		d, ok := geom.Direction3dFromComponents(f[0], f[1], f[2])
		if !ok {
			return nil, errNoDirection
		}
		return d, nil
	}
	return nil, fmt.Errorf("expected 1 or 3 arguments, got %d", len(args))
}

// (axis2 :x) | (axis2 origin dir)
func (b *builtins) axis2(args []zygo.Sexp) (any, error) {
	if len(args) == 1 {
		d, err := toDirection2d(args[0])
		if err != nil {
			return nil, err
		}
		return geom.NewAxis2d(geom.Origin2d(), d), nil
	}
	origin, err := toGeom[geom.Point2d](args[0], "point2")
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	d, err := toDirection2d(args[1])
	if err != nil {
		return nil, fmt.Errorf("direction: %w", err)
	}
	return geom.NewAxis2d(origin, d), nil
}

// (axis3 :z) | (axis3 origin dir)
func (b *builtins) axis3(args []zygo.Sexp) (any, error) {
	if len(args) == 1 {
		d, err := toDirection3d(args[0])
		if err != nil {
			return nil, err
		}
		return geom.NewAxis3d(geom.Origin3d(), d), nil
	}
	origin, err := toGeom[geom.Point3d](args[0], "point3")
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	d, err := toDirection3d(args[1])
	if err != nil {
		return nil, fmt.Errorf("direction: %w", err)
	}
	return geom.NewAxis3d(origin, d), nil
}

// (plane origin normal) | (plane p1 p2 p3)
func (b *builtins) plane(args []zygo.Sexp) (any, error) {
	origin, err := toGeom[geom.Point3d](args[0], "point3")
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	if len(args) == 2 {
		n, err := toDirection3d(args[1])
		if err != nil {
			return nil, fmt.Errorf("normal: %w", err)
		}
		return geom.Plane3dWithNormal(origin, n), nil
	}
	p2, err := toGeom[geom.Point3d](args[1], "point3")
	if err != nil {
		return nil, err
	}
	p3, err := toGeom[geom.Point3d](args[2], "point3")
	if err != nil {
		return nil, err
	}
	p, ok := geom.Plane3dThrough(origin, p2, p3)
	if !ok {
		return nil, fmt.Errorf("points are collinear: %w", errNoDirection)
	}
	return p, nil
}

// (frame2) | (frame2 origin) | (frame2 origin :x dir)
func (b *builtins) frame2(args []zygo.Sexp) (any, error) {
	pa := parseArgs(args)
	if len(pa.positional) == 0 {
		return geom.GlobalFrame2d(), nil
	}
	origin, err := toGeom[geom.Point2d](pa.positional[0], "point2")
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	v, ok := pa.kw["x"]
	if !ok {
		return geom.Frame2dAt(origin), nil
	}
	x, err := toDirection2d(v)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	return geom.Frame2dWithXDirection(origin, x), nil
}

// (frame3) | (frame3 origin) | (frame3 origin :z dir) | (frame3 origin :x dir :y dir)
func (b *builtins) frame3(args []zygo.Sexp) (any, error) {
	pa := parseArgs(args)
	if len(pa.positional) == 0 {
		return geom.GlobalFrame3d(), nil
	}
	origin, err := toGeom[geom.Point3d](pa.positional[0], "point3")
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	if v, ok := pa.kw["z"]; ok {
		z, err := toDirection3d(v)
		if err != nil {
			return nil, fmt.Errorf("z: %w", err)
		}
		return geom.Frame3dWithZDirection(origin, z), nil
	}
	xv, hasX := pa.kw["x"]
	yv, hasY := pa.kw["y"]
	if !hasX && !hasY {
		return geom.Frame3dAt(origin), nil
	}
	if !hasX || !hasY {
		return nil, fmt.Errorf("both :x and :y are required")
	}
	x, err := toDirection3d(xv)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y, err := toDirection3d(yv)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	return geom.Frame3dFromXY(origin, x, y)
}

// (planar-frame :xy) | (planar-frame plane) | (planar-frame origin x y)
func (b *builtins) planarFrame(args []zygo.Sexp) (any, error) {
	if len(args) == 1 {
		if p, err := toGeom[geom.Plane3d](args[0], "plane"); err == nil {
			return p.PlanarFrame(), nil
		}
		name, err := toKeywordString(args[0])
		if err != nil {
			return nil, err
		}
		switch name {
		case "xy":
			return geom.XYPlanarFrame(), nil
		case "yz":
			return geom.YZPlanarFrame(), nil
		case "zx":
			return geom.ZXPlanarFrame(), nil
		}
		return nil, fmt.Errorf("invalid plane %q, expected xy, yz, or zx", name)
	}
	if len(args) != 3 {
		return nil, fmt.Errorf("expected 1 or 3 arguments, got %d", len(args))
	}
	origin, err := toGeom[geom.Point3d](args[0], "point3")
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	x, err := toDirection3d(args[1])
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y, err := toDirection3d(args[2])
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	return geom.NewPlanarFrame3d(origin, x, y)
}

// (deg 90) converts degrees to radians.
func (b *builtins) deg(args []zygo.Sexp) (any, error) {
	d, err := toFloat64(args[0])
	if err != nil {
		return nil, err
	}
	return d * math.Pi / 180, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// component returns the accessor for coordinate i of points, vectors and
// directions.
func (b *builtins) component(i int) builtinFunc {
	return func(args []zygo.Sexp) (any, error) {
		var c []float64
		switch v := value(args[0]).(type) {
		case geom.Point2d:
			c = []float64{v.X, v.Y}
		case geom.Point3d:
			c = []float64{v.X, v.Y, v.Z}
		case geom.Vector2d:
			c = []float64{v.X, v.Y}
		case geom.Vector3d:
			c = []float64{v.X, v.Y, v.Z}
		case geom.Direction2d:
			x, y := v.Components()
			c = []float64{x, y}
		case geom.Direction3d:
			x, y, z := v.Components()
			c = []float64{x, y, z}
		}
		if i >= len(c) {
			return nil, unsupported(args...)
		}
		return c[i], nil
	}
}

func (b *builtins) originOf(args []zygo.Sexp) (any, error) {
	switch v := value(args[0]).(type) {
	case geom.Axis2d:
		return v.Origin(), nil
	case geom.Axis3d:
		return v.Origin(), nil
	case geom.Plane3d:
		return v.Origin(), nil
	case geom.Frame2d:
		return v.Origin(), nil
	case geom.Frame3d:
		return v.Origin(), nil
	case geom.PlanarFrame3d:
		return v.Origin(), nil
	}
	return nil, unsupported(args...)
}

func (b *builtins) directionOf(args []zygo.Sexp) (any, error) {
	switch v := value(args[0]).(type) {
	case geom.Axis2d:
		return v.Direction(), nil
	case geom.Axis3d:
		return v.Direction(), nil
	case geom.Vector2d:
		return toDirection2d(args[0])
	case geom.Vector3d:
		return toDirection3d(args[0])
	}
	return nil, unsupported(args...)
}

func (b *builtins) normalOf(args []zygo.Sexp) (any, error) {
	switch v := value(args[0]).(type) {
	case geom.Plane3d:
		return v.NormalDirection(), nil
	case geom.PlanarFrame3d:
		return v.NormalDirection(), nil
	}
	return nil, unsupported(args...)
}

// ---------------------------------------------------------------------------
// Measurements
// ---------------------------------------------------------------------------

// (vector-to p q) is the displacement q - p.
func (b *builtins) vectorTo(args []zygo.Sexp) (any, error) {
	switch p := value(args[0]).(type) {
	case geom.Point2d:
		if q, ok := value(args[1]).(geom.Point2d); ok {
			return p.VectorTo(q), nil
		}
	case geom.Point3d:
		if q, ok := value(args[1]).(geom.Point3d); ok {
			return p.VectorTo(q), nil
		}
	}
	return nil, unsupported(args...)
}

// (distance p q) | (distance p axis3)
func (b *builtins) distance(args []zygo.Sexp) (any, error) {
	switch p := value(args[0]).(type) {
	case geom.Point2d:
		if q, ok := value(args[1]).(geom.Point2d); ok {
			return p.DistanceFrom(q), nil
		}
	case geom.Point3d:
		switch q := value(args[1]).(type) {
		case geom.Point3d:
			return p.DistanceFrom(q), nil
		case geom.Axis3d:
			return p.DistanceFromAxis(q), nil
		}
	}
	return nil, unsupported(args...)
}

// (signed-distance p plane) | (signed-distance p axis2)
func (b *builtins) signedDistance(args []zygo.Sexp) (any, error) {
	switch p := value(args[0]).(type) {
	case geom.Point2d:
		if a, ok := value(args[1]).(geom.Axis2d); ok {
			return p.SignedDistanceFrom(a), nil
		}
	case geom.Point3d:
		switch m := value(args[1]).(type) {
		case geom.Plane3d:
			return p.SignedDistanceFrom(m), nil
		case geom.Axis3d:
			return p.SignedDistanceAlong(m), nil
		}
	}
	return nil, unsupported(args...)
}

// (along axis d)
func (b *builtins) along(args []zygo.Sexp) (any, error) {
	d, err := toFloat64(args[1])
	if err != nil {
		return nil, err
	}
	switch a := value(args[0]).(type) {
	case geom.Axis2d:
		return a.Along(d), nil
	case geom.Axis3d:
		return a.Along(d), nil
	}
	return nil, unsupported(args...)
}

// (interpolate a b t) extrapolates outside [0, 1].
func (b *builtins) interpolate(args []zygo.Sexp) (any, error) {
	t, err := toFloat64(args[2])
	if err != nil {
		return nil, err
	}
	switch p := value(args[0]).(type) {
	case geom.Point2d:
		if q, ok := value(args[1]).(geom.Point2d); ok {
			return geom.Interpolate2d(p, q, t), nil
		}
	case geom.Point3d:
		if q, ok := value(args[1]).(geom.Point3d); ok {
			return geom.Interpolate3d(p, q, t), nil
		}
	case geom.Vector2d:
		if q, ok := value(args[1]).(geom.Vector2d); ok {
			return p.Interpolate(q, t), nil
		}
	case geom.Vector3d:
		if q, ok := value(args[1]).(geom.Vector3d); ok {
			return p.Interpolate(q, t), nil
		}
	}
	return nil, unsupported(args...)
}

func (b *builtins) midpoint(args []zygo.Sexp) (any, error) {
	switch p := value(args[0]).(type) {
	case geom.Point2d:
		if q, ok := value(args[1]).(geom.Point2d); ok {
			return geom.Midpoint2d(p, q), nil
		}
	case geom.Point3d:
		if q, ok := value(args[1]).(geom.Point3d); ok {
			return geom.Midpoint3d(p, q), nil
		}
	}
	return nil, unsupported(args...)
}

func (b *builtins) length(args []zygo.Sexp) (any, error) {
	switch v := value(args[0]).(type) {
	case geom.Vector2d:
		return v.Length(), nil
	case geom.Vector3d:
		return v.Length(), nil
	}
	return nil, unsupported(args...)
}

func (b *builtins) dot(args []zygo.Sexp) (any, error) {
	switch v := value(args[0]).(type) {
	case geom.Vector2d:
		if w, ok := value(args[1]).(geom.Vector2d); ok {
			return v.Dot(w), nil
		}
	case geom.Vector3d:
		if w, ok := value(args[1]).(geom.Vector3d); ok {
			return v.Dot(w), nil
		}
	case geom.Direction2d:
		if w, ok := value(args[1]).(geom.Direction2d); ok {
			return v.ComponentIn(w), nil
		}
	case geom.Direction3d:
		if w, ok := value(args[1]).(geom.Direction3d); ok {
			return v.ComponentIn(w), nil
		}
	}
	return nil, unsupported(args...)
}

// (cross a b) is a vec3 in 3D and a signed number in 2D.
func (b *builtins) cross(args []zygo.Sexp) (any, error) {
	switch v := value(args[0]).(type) {
	case geom.Vector2d:
		if w, ok := value(args[1]).(geom.Vector2d); ok {
			return v.Cross(w), nil
		}
	case geom.Vector3d:
		if w, ok := value(args[1]).(geom.Vector3d); ok {
			return v.Cross(w), nil
		}
	case geom.Direction3d:
		if w, ok := value(args[1]).(geom.Direction3d); ok {
			return v.Cross(w), nil
		}
	}
	return nil, unsupported(args...)
}

// (angle-to a b) is unsigned in 3D and counterclockwise-signed in 2D.
func (b *builtins) angleTo(args []zygo.Sexp) (any, error) {
	switch d := value(args[0]).(type) {
	case geom.Direction2d:
		if e, ok := value(args[1]).(geom.Direction2d); ok {
			return d.AngleTo(e), nil
		}
	case geom.Direction3d:
		if e, ok := value(args[1]).(geom.Direction3d); ok {
			return d.AngleTo(e), nil
		}
	}
	return nil, unsupported(args...)
}

func (b *builtins) perpendicular(args []zygo.Sexp) (any, error) {
	switch v := value(args[0]).(type) {
	case geom.Vector2d:
		return v.Perpendicular(), nil
	case geom.Vector3d:
		return v.Perpendicular(), nil
	case geom.Direction2d:
		return v.Perpendicular(), nil
	case geom.Direction3d:
		return v.Perpendicular(), nil
	}
	return nil, unsupported(args...)
}

// ---------------------------------------------------------------------------
// Solids
// ---------------------------------------------------------------------------

// (box 100 50 25) with its minimum corner at the origin.
func (b *builtins) box(args []zygo.Sexp) (any, error) {
	f, err := toFloats(args)
	if err != nil {
		return nil, err
	}
	for i, d := range f {
		if d <= 0 {
			return nil, fmt.Errorf("dimension %d must be positive, got %g", i+1, d)
		}
	}
	return b.k.Box(f[0], f[1], f[2]), nil
}

// (cylinder height radius :segments 32) along +Z from the origin.
// :segments is a tessellation hint for faceting kernels; the sdfx kernel
// models the cylinder exactly and ignores it. It must still be at least 3.
func (b *builtins) cylinder(args []zygo.Sexp) (any, error) {
	pa := parseArgs(args)
	if len(pa.positional) != 2 {
		return nil, fmt.Errorf("expected height and radius")
	}
	f, err := toFloats(pa.positional)
	if err != nil {
		return nil, err
	}
	if f[0] <= 0 || f[1] <= 0 {
		return nil, fmt.Errorf("height and radius must be positive")
	}
	segments := 32
	if v, ok := pa.kw["segments"]; ok {
		s, err := toFloat64(v)
		if err != nil {
			return nil, fmt.Errorf("segments: %w", err)
		}
		if s < 3 {
			return nil, fmt.Errorf("segments must be at least 3, got %g", s)
		}
		segments = int(s)
	}
	return b.k.Cylinder(f[0], f[1], segments), nil
}

// boolean folds a binary kernel operation over two or more solids.
func (b *builtins) boolean(op func(a, b kernel.Solid) kernel.Solid) builtinFunc {
	return func(args []zygo.Sexp) (any, error) {
		acc, err := toGeom[kernel.Solid](args[0], "solid")
		if err != nil {
			return nil, err
		}
		for _, a := range args[1:] {
			s, err := toGeom[kernel.Solid](a, "solid")
			if err != nil {
				return nil, err
			}
			acc = op(acc, s)
		}
		return acc, nil
	}
}

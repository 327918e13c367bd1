package geom

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance bounds the deviation from unit length, orthogonality and
// right-handedness accepted by the validating datum constructors.
const Tolerance = 1e-9

var (
	// ErrNotUnit is returned when a datum direction does not have unit length.
	ErrNotUnit = errors.New("direction is not unit length")
	// ErrNotOrthogonal is returned when two datum directions are not perpendicular.
	ErrNotOrthogonal = errors.New("directions are not orthogonal")
	// ErrLeftHanded is returned when a basis is orthonormal but left-handed.
	ErrLeftHanded = errors.New("basis is left-handed")
)

// checkUnit reports ErrNotUnit for a direction that escaped normalization,
// such as the zero value.
func checkUnit(name string, d Direction3d) error {
	if dev := math.Abs(d.v.SquaredLength() - 1); dev > Tolerance {
		return fmt.Errorf("%s %v: %w (|len²-1| = %g)", name, d.v, ErrNotUnit, dev)
	}
	return nil
}

func checkOrthogonal(nameA string, a Direction3d, nameB string, b Direction3d) error {
	if dot := math.Abs(a.v.Dot(b.v)); dot > Tolerance {
		return fmt.Errorf("%s·%s = %g: %w", nameA, nameB, dot, ErrNotOrthogonal)
	}
	return nil
}

// checkBasis validates that {x, y, z} is orthonormal and right-handed.
func checkBasis(x, y, z Direction3d) error {
	for _, err := range []error{
		checkUnit("x", x),
		checkUnit("y", y),
		checkUnit("z", z),
		checkOrthogonal("x", x, "y", y),
		checkOrthogonal("y", y, "z", z),
		checkOrthogonal("z", z, "x", x),
	} {
		if err != nil {
			return err
		}
	}
	if triple := x.v.Cross(y.v).Dot(z.v); triple < 0 {
		return fmt.Errorf("(x×y)·z = %g: %w", triple, ErrLeftHanded)
	}
	return nil
}

// checkBasis2d validates that {x, y} is orthonormal with y counterclockwise
// of x.
func checkBasis2d(x, y Direction2d) error {
	lift := func(d Direction2d) Direction3d { return Direction3d{Vector3d{d.v.X, d.v.Y, 0}} }
	if err := checkUnit("x", lift(x)); err != nil {
		return err
	}
	if err := checkUnit("y", lift(y)); err != nil {
		return err
	}
	if err := checkOrthogonal("x", lift(x), "y", lift(y)); err != nil {
		return err
	}
	if c := x.v.Cross(y.v); c < 0 {
		return fmt.Errorf("x×y = %g: %w", c, ErrLeftHanded)
	}
	return nil
}

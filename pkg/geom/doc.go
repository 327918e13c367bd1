// Package geom is an immutable 2D/3D geometry value library: points,
// vectors, unit directions, axes, planes and orthonormal frames, plus the
// algebra that moves values between coordinate systems.
//
// Every type is a plain value. Every function is pure and may be called
// concurrently from any number of goroutines without synchronization.
//
// Point and datum transformations follow a single pattern: take the
// displacement from the transformation's anchor, apply the linear part to
// that displacement, and add it back to the anchor. Directions and datums
// reuse the same linear parts on their unit vectors; rotation and
// mirroring are orthogonal maps, so unit length and orthonormality are
// preserved without renormalizing.
package geom

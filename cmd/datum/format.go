package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/datum/pkg/engine"
	"github.com/chazu/datum/pkg/geom"
)

// formatValue prints coordinates and numbers with prec decimals. Datums
// built from several parts fall back to their own String form.
func formatValue(res *engine.Result, prec int) string {
	switch v := res.Value.(type) {
	case nil:
		return res.Text
	case float64:
		return formatFloat(v, prec)
	case geom.Point3d:
		return "point3 " + formatPoint(v, prec)
	case geom.Vector3d:
		return "vec3 " + formatCoords(prec, v.X, v.Y, v.Z)
	case geom.Direction3d:
		x, y, z := v.Components()
		return "dir3 " + formatCoords(prec, x, y, z)
	case geom.Point2d:
		return "point2 " + formatCoords(prec, v.X, v.Y)
	case geom.Vector2d:
		return "vec2 " + formatCoords(prec, v.X, v.Y)
	case geom.Direction2d:
		x, y := v.Components()
		return "dir2 " + formatCoords(prec, x, y)
	case fmt.Stringer:
		return v.String()
	}
	return res.Text
}

func formatPoint(p geom.Point3d, prec int) string {
	return formatCoords(prec, p.X, p.Y, p.Z)
}

func formatCoords(prec int, cs ...float64) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = formatFloat(c, prec)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// formatFloat never prints negative zero.
func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.TrimLeft(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}

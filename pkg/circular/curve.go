package circular

import (
	"math"

	"github.com/matzehuels/orbit/pkg/geom"
)

// Curve formula names accepted by [LookupCurve].
const (
	FormulaSigned = "signed"
	FormulaLegacy = "legacy"
)

// CurveFunc computes the quadratic control point for an edge from p1 to p2.
// It returns false when the edge should be drawn as a straight segment.
type CurveFunc func(p1, p2 geom.Point, curvature float64) (geom.Point, bool)

// LookupCurve returns the curve function registered under name.
// An empty name selects [FormulaSigned].
func LookupCurve(name string) (CurveFunc, bool) {
	switch name {
	case "", FormulaSigned:
		return ControlPoint, true
	case FormulaLegacy:
		return LegacyControlPoint, true
	default:
		return nil, false
	}
}

// straight reports whether an edge gets no control point.
// NaN counts as zero curvature.
func straight(p1, p2 geom.Point, curvature float64) bool {
	return curvature == 0 || math.IsNaN(curvature) || p1 == p2
}

// ControlPoint returns the control point of an edge bowed by curvature.
//
// The point sits on the perpendicular bisector of p1p2, at a distance of
// |curvature|·|p1p2|/2 from the midpoint. Positive curvature bends towards
// the left of the direction p1→p2 in a y-down coordinate system.
func ControlPoint(p1, p2 geom.Point, curvature float64) (geom.Point, bool) {
	if straight(p1, p2, curvature) {
		return geom.Point{}, false
	}
	d := p2.Sub(p1)
	mid := p1.Midpoint(p2)
	return geom.Pt(mid.X-curvature*d.Y/2, mid.Y+curvature*d.X/2), true
}

const deg = math.Pi / 180

// LegacyControlPoint computes the control point with the quadrant case
// analysis used by earlier releases.
//
// Each of the four main cases builds a corner point at distance hyp·√2/2 from
// p1, then displaces it by (sin, cos)·scale of the segment angle. The fifth
// case is reached only when no ordering comparison holds (NaN coordinates);
// it anchors on p1 for negative curvature and on p2 otherwise. The results
// equal [ControlPoint] up to rounding.
func LegacyControlPoint(p1, p2 geom.Point, curvature float64) (geom.Point, bool) {
	if straight(p1, p2, curvature) {
		return geom.Point{}, false
	}

	dx := math.Abs(p1.X - p2.X)
	dy := math.Abs(p1.Y - p2.Y)
	hyp := math.Sqrt(dx*dx + dy*dy)
	halfDiag := math.Sqrt2 * hyp / 2
	angle := math.Atan(dy / dx)
	scale := hyp / 2 * (1 + curvature)

	var ax, ay, x, y, tempAngle, cpx, cpy float64
	switch {
	case p1.X >= p2.X && p1.Y >= p2.Y:
		x = math.Sin(angle) * scale
		y = math.Cos(angle) * scale
		if dx > dy {
			tempAngle = 45*deg + angle
			ax = p1.X - math.Sin(tempAngle)*halfDiag
			ay = p1.Y + math.Cos(tempAngle)*halfDiag
		} else {
			tempAngle = 135*deg - angle
			ax = p1.X - math.Sin(tempAngle)*halfDiag
			ay = p1.Y - math.Cos(tempAngle)*halfDiag
		}
		cpx = ax + x
		cpy = ay - y
	case p1.X <= p2.X && p1.Y >= p2.Y:
		x = math.Sin(angle) * scale
		y = math.Cos(angle) * scale
		if dx > dy {
			tempAngle = 45*deg - angle
			ax = p1.X + math.Sin(tempAngle)*halfDiag
			ay = p1.Y - math.Cos(tempAngle)*halfDiag
		} else {
			tempAngle = 135*deg - angle
			ax = p1.X - math.Cos(tempAngle)*halfDiag
			ay = p1.Y - math.Sin(tempAngle)*halfDiag
		}
		cpx = ax + x
		cpy = ay + y
	case p1.X <= p2.X && p1.Y <= p2.Y:
		x = math.Sin(angle) * scale
		y = math.Cos(angle) * scale
		if dx > dy {
			tempAngle = 45*deg + angle
			ax = p1.X + math.Sin(tempAngle)*halfDiag
			ay = p1.Y - math.Cos(tempAngle)*halfDiag
		} else {
			tempAngle = angle - 45*deg
			ax = p1.X + math.Cos(tempAngle)*halfDiag
			ay = p1.Y + math.Sin(tempAngle)*halfDiag
		}
		cpx = ax - x
		cpy = ay + y
	case p1.X >= p2.X && p1.Y <= p2.Y:
		x = math.Sin(angle) * scale
		y = math.Cos(angle) * scale
		if dx > dy {
			tempAngle = 45*deg + angle
			ax = p1.X - math.Cos(tempAngle)*halfDiag
			ay = p1.Y + math.Sin(tempAngle)*halfDiag
		} else {
			tempAngle = 135*deg - angle
			ax = p1.X + math.Cos(tempAngle)*halfDiag
			ay = p1.Y + math.Sin(tempAngle)*halfDiag
		}
		cpx = ax - x
		cpy = ay - y
	default:
		angle = math.Atan(dx / dy)
		tempAngle = 135*deg - angle
		x = math.Cos(angle) * scale
		y = math.Sin(angle) * scale
		anchor := p2
		if curvature < 0 {
			anchor = p1
		}
		ax = anchor.X - math.Sin(tempAngle)*halfDiag
		ay = anchor.Y + math.Cos(tempAngle)*halfDiag
		cpx = ax + x
		cpy = ay - y
	}
	return geom.Pt(cpx, cpy), true
}

package circular

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/orbit/pkg/geom"
)

func TestLayoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("nodes lie on the inscribed circle", prop.ForAll(
		func(w, h float64, weights []float64) bool {
			rect := geom.Rect{X: -w / 3, Y: h / 5, Width: w, Height: h}
			p := Place(rect, len(weights), weightsOf(weights...), SumWeights(len(weights), weightsOf(weights...)))
			r2 := p.Radius * p.Radius
			for _, pos := range p.Positions {
				dx, dy := pos.X-p.Center.X, pos.Y-p.Center.Y
				if math.Abs(dx*dx+dy*dy-r2) > 1e-7*(1+r2) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1, 2000),
		gen.Float64Range(1, 2000),
		gen.SliceOf(gen.Float64Range(0.01, 50)),
	))

	properties.Property("spans sum to a full turn", prop.ForAll(
		func(weights []float64, uniform bool) bool {
			total := SumWeights(len(weights), weightsOf(weights...))
			if uniform {
				total = 0
			}
			p := Place(square, len(weights), weightsOf(weights...), total)
			var sum float64
			for _, s := range p.Spans {
				sum += s
			}
			return math.Abs(sum-2*math.Pi) < 1e-9
		},
		gen.SliceOfN(12, gen.Float64Range(0.01, 100)),
		gen.Bool(),
	))

	properties.Property("negated curvature mirrors the control point", prop.ForAll(
		func(x1, y1, x2, y2, c float64) bool {
			p1, p2 := geom.Pt(x1, y1), geom.Pt(x2, y2)
			if p1 == p2 {
				return true
			}
			pos, _ := ControlPoint(p1, p2, c)
			neg, _ := ControlPoint(p1, p2, -c)
			mid := p1.Midpoint(p2)
			m := pos.Midpoint(neg)
			return math.Abs(m.X-mid.X) < 1e-9*(1+math.Abs(mid.X)) &&
				math.Abs(m.Y-mid.Y) < 1e-9*(1+math.Abs(mid.Y))
		},
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(0.01, 1),
	))

	properties.Property("control point bows by |curvature|·length/2", prop.ForAll(
		func(x1, y1, x2, y2, c float64) bool {
			p1, p2 := geom.Pt(x1, y1), geom.Pt(x2, y2)
			cp, ok := ControlPoint(p1, p2, c)
			if !ok {
				return p1 == p2 || c == 0
			}
			want := math.Abs(c) * p1.Distance(p2) / 2
			return math.Abs(p1.Midpoint(p2).Distance(cp)-want) < 1e-9*(1+want)
		},
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-1, 1),
	))

	properties.Property("legacy formula agrees with the signed formula", prop.ForAll(
		func(x1, y1, x2, y2, c float64) bool {
			p1, p2 := geom.Pt(x1, y1), geom.Pt(x2, y2)
			a, okA := ControlPoint(p1, p2, c)
			b, okB := LegacyControlPoint(p1, p2, c)
			if okA != okB {
				return false
			}
			tol := 1e-8 * (1 + p1.Distance(p2))
			return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
		},
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-1, 1),
	))

	properties.TestingRun(t)
}

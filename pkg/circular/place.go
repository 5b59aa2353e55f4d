package circular

import (
	"math"

	"github.com/matzehuels/orbit/pkg/geom"
)

// rotationOffset turns the first node from 3 o'clock towards the top of the circle.
const rotationOffset = math.Pi / 2

// WeightFunc returns the weight of the i-th node in iteration order.
type WeightFunc func(i int) float64

// Placement is the output of [Place].
// Angles, Spans and Positions are indexed like the input nodes.
type Placement struct {
	Center    geom.Point
	Radius    float64
	Angles    []float64    // placement angle in radians
	Spans     []float64    // angular share of the circle in radians
	Positions []geom.Point // point on the circle at the placement angle
}

// Place distributes count nodes around the circle inscribed in rect.
//
// If total is positive, node i receives a span of 2π·weightOf(i)/total.
// Otherwise every node receives 2π/count and weightOf is never called.
// The running angle starts at zero on every call, so repeated calls with the
// same input return identical placements.
//
// Place performs no validation: NaN weights or negative rectangle sizes
// yield NaN or mirrored coordinates.
func Place(rect geom.Rect, count int, weightOf WeightFunc, total float64) Placement {
	weighted := total > 0
	divisor := float64(count)
	if weighted {
		divisor = total
	}
	unit := math.Pi * 2 / divisor

	p := Placement{
		Center:    rect.Center(),
		Radius:    rect.InscribedRadius(),
		Angles:    make([]float64, count),
		Spans:     make([]float64, count),
		Positions: make([]geom.Point, count),
	}

	var angle float64
	for i := 0; i < count; i++ {
		w := 1.0
		if weighted {
			w = weightOf(i)
		}
		half := unit * w / 2

		// The offset is added before evaluating the position and removed
		// afterwards, so the running angle advances by exactly the span.
		angle += half + rotationOffset
		p.Angles[i] = angle
		p.Spans[i] = 2 * half
		p.Positions[i] = geom.Pt(
			p.Radius*math.Cos(angle)+p.Center.X,
			p.Radius*math.Sin(angle)+p.Center.Y,
		)
		angle += half - rotationOffset
	}
	return p
}

// SumWeights returns the aggregate weight of count nodes.
// NaN weights are skipped, matching how the graph model totals a value column.
func SumWeights(count int, weightOf WeightFunc) float64 {
	var sum float64
	for i := 0; i < count; i++ {
		if w := weightOf(i); !math.IsNaN(w) {
			sum += w
		}
	}
	return sum
}

package circular

import (
	"math"
	"testing"

	"github.com/matzehuels/orbit/pkg/geom"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= eps }

func approxPt(a, b geom.Point) bool { return approx(a.X, b.X) && approx(a.Y, b.Y) }

func weightsOf(ws ...float64) WeightFunc {
	return func(i int) float64 { return ws[i] }
}

var square = geom.Rect{Width: 100, Height: 100}

func TestPlaceUniform(t *testing.T) {
	p := Place(square, 4, weightsOf(1, 1, 1, 1), 0)

	if p.Center != geom.Pt(50, 50) {
		t.Errorf("Center = %v, want (50, 50)", p.Center)
	}
	if p.Radius != 50 {
		t.Errorf("Radius = %v, want 50", p.Radius)
	}

	wantAngles := []float64{0.75 * math.Pi, 1.25 * math.Pi, 1.75 * math.Pi, 2.25 * math.Pi}
	for i, want := range wantAngles {
		if !approx(p.Angles[i], want) {
			t.Errorf("Angles[%d] = %v, want %v", i, p.Angles[i], want)
		}
	}

	d := 50 * math.Sqrt2 / 2
	wantPos := []geom.Point{
		geom.Pt(50-d, 50+d),
		geom.Pt(50-d, 50-d),
		geom.Pt(50+d, 50-d),
		geom.Pt(50+d, 50+d),
	}
	for i, want := range wantPos {
		if !approxPt(p.Positions[i], want) {
			t.Errorf("Positions[%d] = %v, want %v", i, p.Positions[i], want)
		}
	}

	// Literal from the reference scenario.
	if got := p.Positions[0]; math.Abs(got.X-14.64) > 0.01 || math.Abs(got.Y-85.36) > 0.01 {
		t.Errorf("first node = %v, want ≈ (14.64, 85.36)", got)
	}
}

func TestPlaceWeighted(t *testing.T) {
	p := Place(square, 2, weightsOf(1, 3), 4)

	if !approx(p.Spans[0], math.Pi/2) {
		t.Errorf("Spans[0] = %v, want π/2", p.Spans[0])
	}
	if !approx(p.Spans[1], 3*math.Pi/2) {
		t.Errorf("Spans[1] = %v, want 3π/2", p.Spans[1])
	}
	if !approx(p.Angles[0], 3*math.Pi/4) {
		t.Errorf("Angles[0] = %v, want 3π/4", p.Angles[0])
	}
	if !approx(p.Angles[1], 7*math.Pi/4) {
		t.Errorf("Angles[1] = %v, want 7π/4", p.Angles[1])
	}

	d := 50 * math.Sqrt2 / 2
	if want := geom.Pt(50-d, 50+d); !approxPt(p.Positions[0], want) {
		t.Errorf("Positions[0] = %v, want %v", p.Positions[0], want)
	}
	if want := geom.Pt(50+d, 50-d); !approxPt(p.Positions[1], want) {
		t.Errorf("Positions[1] = %v, want %v", p.Positions[1], want)
	}
}

func TestPlaceSpansSumToFullTurn(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		total   float64
	}{
		{name: "uniform", weights: []float64{1, 1, 1, 1, 1}, total: 0},
		{name: "weighted", weights: []float64{1, 2, 3, 4}, total: 10},
		{name: "fractional", weights: []float64{0.1, 0.7, 0.2}, total: 1},
		{name: "zero weights fall back", weights: []float64{0, 0, 0}, total: 0},
		{name: "negative total falls back", weights: []float64{2, -5}, total: -3},
		{name: "NaN total falls back", weights: []float64{1, 1}, total: math.NaN()},
		{name: "single", weights: []float64{7}, total: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Place(square, len(tt.weights), weightsOf(tt.weights...), tt.total)
			var sum float64
			for _, s := range p.Spans {
				sum += s
			}
			if !approx(sum, 2*math.Pi) {
				t.Errorf("sum of spans = %v, want 2π", sum)
			}
		})
	}
}

func TestPlaceUniformIgnoresWeights(t *testing.T) {
	called := false
	p := Place(square, 3, func(int) float64 { called = true; return 100 }, 0)
	if called {
		t.Error("weightOf should not be called when total is not positive")
	}
	for i, s := range p.Spans {
		if !approx(s, 2*math.Pi/3) {
			t.Errorf("Spans[%d] = %v, want 2π/3", i, s)
		}
	}
}

func TestPlaceCircleMembership(t *testing.T) {
	rect := geom.Rect{X: 30, Y: -10, Width: 640, Height: 480}
	ws := []float64{5, 1, 0.5, 3, 8, 2, 2}
	p := Place(rect, len(ws), weightsOf(ws...), 21.5)

	if p.Center != geom.Pt(350, 230) {
		t.Errorf("Center = %v, want (350, 230)", p.Center)
	}
	if p.Radius != 240 {
		t.Errorf("Radius = %v, want 240", p.Radius)
	}
	for i, pos := range p.Positions {
		dx, dy := pos.X-p.Center.X, pos.Y-p.Center.Y
		if got := dx*dx + dy*dy; math.Abs(got-p.Radius*p.Radius) > 1e-6 {
			t.Errorf("node %d: squared distance %v, want %v", i, got, p.Radius*p.Radius)
		}
	}
}

func TestPlaceEmpty(t *testing.T) {
	p := Place(geom.Rect{X: 10, Y: 10, Width: 20, Height: 40}, 0, nil, 0)
	if len(p.Positions) != 0 || len(p.Angles) != 0 || len(p.Spans) != 0 {
		t.Errorf("expected empty placement, got %+v", p)
	}
	if p.Center != geom.Pt(20, 30) {
		t.Errorf("Center = %v, want (20, 30)", p.Center)
	}
	if p.Radius != 10 {
		t.Errorf("Radius = %v, want 10", p.Radius)
	}
}

func TestPlaceIdempotent(t *testing.T) {
	ws := weightsOf(3, 1, 4, 1, 5, 9, 2, 6)
	a := Place(square, 8, ws, 31)
	b := Place(square, 8, ws, 31)
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] || a.Angles[i] != b.Angles[i] {
			t.Fatalf("node %d differs between calls: %v vs %v", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestPlaceDegenerateInput(t *testing.T) {
	t.Run("NaN weight poisons later nodes", func(t *testing.T) {
		ws := []float64{1, math.NaN(), 1}
		p := Place(square, 3, weightsOf(ws...), SumWeights(3, weightsOf(ws...)))
		if !p.Positions[0].IsFinite() {
			t.Errorf("node 0 should be finite, got %v", p.Positions[0])
		}
		for i := 1; i < 3; i++ {
			if p.Positions[i].IsFinite() {
				t.Errorf("node %d should be NaN, got %v", i, p.Positions[i])
			}
		}
	})

	t.Run("zero area collapses to center", func(t *testing.T) {
		p := Place(geom.Rect{X: 5, Y: 7}, 3, nil, 0)
		for i, pos := range p.Positions {
			if pos != geom.Pt(5, 7) {
				t.Errorf("node %d = %v, want (5, 7)", i, pos)
			}
		}
	})

	t.Run("negative size mirrors", func(t *testing.T) {
		p := Place(geom.Rect{Width: -100, Height: -100}, 1, nil, 0)
		if p.Radius != -50 {
			t.Errorf("Radius = %v, want -50", p.Radius)
		}
		// Single node at 3π/2; the negative radius flips it below the center.
		if want := geom.Pt(-50, 0); !approxPt(p.Positions[0], want) {
			t.Errorf("Positions[0] = %v, want %v", p.Positions[0], want)
		}
	})
}

func TestSumWeights(t *testing.T) {
	tests := []struct {
		name string
		ws   []float64
		want float64
	}{
		{name: "empty", ws: nil, want: 0},
		{name: "plain", ws: []float64{1, 2, 3}, want: 6},
		{name: "skips NaN", ws: []float64{1, math.NaN(), 3}, want: 4},
		{name: "negative", ws: []float64{1, -1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SumWeights(len(tt.ws), weightsOf(tt.ws...)); got != tt.want {
				t.Errorf("SumWeights() = %v, want %v", got, tt.want)
			}
		})
	}
}

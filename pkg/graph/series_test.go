package graph

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/orbit/pkg/circular"
	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/geom"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func squareGraph() *Graph {
	return &Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Edges: []Edge{
			{From: "a", To: "b"},
			{From: "a", To: "c", LineStyle: &LineStyle{Curvature: Float(0.5)}},
		},
	}
}

func TestViewBoundingRect(t *testing.T) {
	tests := []struct {
		name string
		view View
		want geom.Rect
	}{
		{"NoMargin", View{Width: 800, Height: 600}, geom.Rect{Width: 800, Height: 600}},
		{"Margin", View{Width: 800, Height: 600, Margin: 40}, geom.Rect{X: 40, Y: 40, Width: 720, Height: 520}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.view.BoundingRect(); got != tt.want {
				t.Errorf("BoundingRect() = %+v, want %+v", got, tt.want)
			}
			if tt.view.Kind() != circular.KindView {
				t.Errorf("Kind() = %q, want view", tt.view.Kind())
			}
		})
	}
}

func TestSeriesWeights(t *testing.T) {
	g := &Graph{Nodes: []Node{{ID: "a", Value: Float(3)}, {ID: "b"}, {ID: "c", Value: Float(0)}}}
	s := NewSeries(g, View{Width: 10, Height: 10})

	want := []float64{3, 1, 0}
	for i, w := range want {
		if got := s.Weight(i); got != w {
			t.Errorf("Weight(%d) = %v, want %v", i, got, w)
		}
	}
	if s.WeightSum() != 4 {
		t.Errorf("WeightSum() = %v, want 4", s.WeightSum())
	}
	if s.NodeCount() != 3 || s.EdgeCount() != 0 {
		t.Errorf("counts = %d/%d, want 3/0", s.NodeCount(), s.EdgeCount())
	}
}

func TestSeriesCurvature(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{
			{From: "a", To: "b"},
			{From: "b", To: "a", LineStyle: &LineStyle{Curvature: Float(-0.4)}},
			{From: "a", To: "a", LineStyle: &LineStyle{}},
		},
	}

	s := NewSeries(g, View{})
	for i, want := range []float64{0, -0.4, 0} {
		if got := s.Curvature(i); got != want {
			t.Errorf("without default: Curvature(%d) = %v, want %v", i, got, want)
		}
	}

	g.LineStyle = &LineStyle{Curvature: Float(0.2)}
	for i, want := range []float64{0.2, -0.4, 0.2} {
		if got := s.Curvature(i); got != want {
			t.Errorf("with default: Curvature(%d) = %v, want %v", i, got, want)
		}
	}

	if src, dst := s.Edge(1); src != 1 || dst != 0 {
		t.Errorf("Edge(1) = (%d, %d), want (1, 0)", src, dst)
	}
}

func TestSeriesCoordinateSystem(t *testing.T) {
	g := squareGraph()
	g.CoordinateSystem = "geo"
	s := NewSeries(g, View{Width: 100, Height: 100})

	if got := s.CoordinateSystem().Kind(); got != "geo" {
		t.Fatalf("Kind() = %q, want geo", got)
	}
	if _, ok := circular.Layout(s); ok {
		t.Error("Layout() ran in a non-view coordinate system")
	}
}

func TestSeriesApply(t *testing.T) {
	s := NewSeries(squareGraph(), View{Width: 100, Height: 100})
	res, ok := circular.Layout(s)
	if !ok {
		t.Fatal("Layout() skipped a view graph")
	}
	l := s.Apply(res)

	if l.Center != (Center{CX: 50, CY: 50}) || l.Radius != 50 {
		t.Errorf("center/radius = %+v/%v, want (50,50)/50", l.Center, l.Radius)
	}

	d := 50 * math.Sqrt2 / 2
	want := [][2]float64{{50 - d, 50 + d}, {50 - d, 50 - d}, {50 + d, 50 - d}, {50 + d, 50 + d}}
	for i, w := range want {
		got := l.Nodes[i].Layout
		if !near(got[0], w[0]) || !near(got[1], w[1]) {
			t.Errorf("node %s at %v, want %v", l.Nodes[i].ID, got, w)
		}
	}

	if l.Edges[0].Layout.Curved() {
		t.Error("edge a->b has a control point without curvature")
	}
	cp := l.Edges[1].Layout.Control
	if cp == nil {
		t.Fatal("edge a->c has no control point")
	}
	if !near(cp[0], 50+d/2) || !near(cp[1], 50+d/2) {
		t.Errorf("control = %v, want (%v, %v)", *cp, 50+d/2, 50+d/2)
	}
	if l.Edges[1].Curvature != 0.5 {
		t.Errorf("curvature = %v, want 0.5", l.Edges[1].Curvature)
	}
}

func TestEdgeShapeJSON(t *testing.T) {
	straight := EdgeShape{P1: [2]float64{0, 0}, P2: [2]float64{10, 0}}
	data, err := json.Marshal(straight)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[[0,0],[10,0],null]" {
		t.Errorf("straight = %s", data)
	}

	curved := straight
	curved.Control = &[2]float64{5, 2.5}
	data, err = json.Marshal(curved)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[[0,0],[10,0],[5,2.5]]" {
		t.Errorf("curved = %s", data)
	}

	var back EdgeShape
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.P2 != curved.P2 || *back.Control != *curved.Control {
		t.Errorf("round trip = %+v", back)
	}

	for _, bad := range []string{`[[0,0],[1,1]]`, `[null,[1,1],null]`, `{"p1":[0,0]}`} {
		if err := json.Unmarshal([]byte(bad), &back); err == nil {
			t.Errorf("Unmarshal(%s) succeeded", bad)
		}
	}
}

func TestMarshalLayoutDegenerate(t *testing.T) {
	g := &Graph{Nodes: []Node{{ID: "a", Value: Float(math.NaN())}, {ID: "b"}}}
	s := NewSeries(g, View{Width: 100, Height: 100})
	res, _ := circular.Layout(s)

	_, err := MarshalLayout(s.Apply(res))
	if !errors.Is(err, errors.ErrCodeDegenerateLayout) {
		t.Errorf("MarshalLayout() error = %v, want DEGENERATE_LAYOUT", err)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	s := NewSeries(squareGraph(), View{Width: 200, Height: 100, Margin: 10})
	res, _ := circular.Layout(s)
	in := s.Apply(res)
	in.ID = "0b6f1c7e-6f8e-4c1a-9d6e-3f3b3c2a1d00"

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(in, path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	out, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}

	if out.ID != in.ID || out.Rect != in.Rect || out.Radius != 40 {
		t.Errorf("header = %+v", out)
	}
	if len(out.Nodes) != 4 || len(out.Edges) != 2 {
		t.Fatalf("counts = %d/%d", len(out.Nodes), len(out.Edges))
	}
	if out.Edges[0].Layout.Control != nil || out.Edges[1].Layout.Control == nil {
		t.Errorf("control points not preserved: %+v", out.Edges)
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	_, err := UnmarshalLayout([]byte(`{"nodes": 3}`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
	if err != nil && !strings.Contains(err.Error(), "unmarshal layout") {
		t.Errorf("error = %v", err)
	}
}

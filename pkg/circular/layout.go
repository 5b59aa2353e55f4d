package circular

import "github.com/matzehuels/orbit/pkg/geom"

// KindView is the only coordinate system kind circular layout runs in.
const KindView = "view"

// CoordinateSystem supplies the drawing area.
type CoordinateSystem interface {
	// Kind identifies the coordinate system, e.g. "view" or "geo".
	Kind() string
	// BoundingRect returns the rectangle the layout circle is inscribed in.
	BoundingRect() geom.Rect
}

// Model is the read side of a graph as seen by [Layout].
// Nodes and edges are addressed by their index in a stable iteration order;
// the node order decides the order around the circle.
type Model interface {
	// CoordinateSystem returns nil if the graph is not attached to one.
	CoordinateSystem() CoordinateSystem

	NodeCount() int
	// Weight returns the weight of node i.
	Weight(i int) float64
	// WeightSum returns the aggregate weight used to proportion the circle.
	WeightSum() float64

	EdgeCount() int
	// Edge returns the node indices of the two endpoints of edge i.
	Edge(i int) (source, target int)
	// Curvature returns the signed curvature of edge i, 0 for straight.
	Curvature(i int) float64
}

// EdgeGeometry is the computed shape of one edge.
// P1 and P2 are copies of the endpoint positions. Control is meaningful
// only when Curved is true.
type EdgeGeometry struct {
	P1      geom.Point
	P2      geom.Point
	Control geom.Point
	Curved  bool
}

// Result is the output of [Layout].
type Result struct {
	Placement
	Edges []EdgeGeometry
}

// Option configures [Layout].
type Option func(*options)

type options struct {
	curve CurveFunc
}

// WithCurve selects the control point formula. The default is [ControlPoint].
func WithCurve(fn CurveFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.curve = fn
		}
	}
}

// Layout places the nodes of m on a circle and computes edge geometry.
//
// It returns false without computing anything when m has no coordinate
// system or its kind is not [KindView]. Nodes are placed before any edge is
// evaluated, since every control point depends on both endpoint positions.
func Layout(m Model, opts ...Option) (Result, bool) {
	cs := m.CoordinateSystem()
	if cs == nil || cs.Kind() != KindView {
		return Result{}, false
	}

	o := options{curve: ControlPoint}
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{
		Placement: Place(cs.BoundingRect(), m.NodeCount(), m.Weight, m.WeightSum()),
		Edges:     make([]EdgeGeometry, m.EdgeCount()),
	}
	for i := range res.Edges {
		s, t := m.Edge(i)
		e := EdgeGeometry{P1: res.Positions[s], P2: res.Positions[t]}
		e.Control, e.Curved = o.curve(e.P1, e.P2, m.Curvature(i))
		res.Edges[i] = e
	}
	return res, true
}

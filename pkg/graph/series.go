package graph

import (
	"github.com/matzehuels/orbit/pkg/circular"
	"github.com/matzehuels/orbit/pkg/geom"
)

// View is a rectangular drawing frame. The layout circle is inscribed in the
// frame minus Margin on every side.
type View struct {
	Width  float64
	Height float64
	Margin float64
	System string // Coordinate system kind; empty means "view"
}

// Kind implements [circular.CoordinateSystem].
func (v View) Kind() string {
	if v.System == "" {
		return CoordinateSystemView
	}
	return v.System
}

// BoundingRect implements [circular.CoordinateSystem].
func (v View) BoundingRect() geom.Rect {
	return geom.Rect{Width: v.Width, Height: v.Height}.Inset(v.Margin)
}

// Series adapts a validated [Graph] to [circular.Model].
//
// Edge endpoints are resolved to node indices once; weights and curvatures
// are read from the graph on demand. A Series does not copy the graph, so
// the graph must not be modified while the series is in use.
type Series struct {
	graph     *Graph
	view      View
	edges     [][2]int
	weightSum float64
}

var _ circular.Model = (*Series)(nil)

// NewSeries resolves g against the frame v. The graph's coordinate system
// kind overrides v.System. g must have passed [Graph.Validate].
func NewSeries(g *Graph, v View) *Series {
	v.System = g.Kind()

	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		index[n.ID] = i
	}
	edges := make([][2]int, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = [2]int{index[e.From], index[e.To]}
	}

	s := &Series{graph: g, view: v, edges: edges}
	s.weightSum = circular.SumWeights(len(g.Nodes), s.Weight)
	return s
}

// CoordinateSystem returns the frame the series is drawn in.
func (s *Series) CoordinateSystem() circular.CoordinateSystem { return s.view }

func (s *Series) NodeCount() int { return len(s.graph.Nodes) }

// Weight returns the value of node i, 1 when unset.
func (s *Series) Weight(i int) float64 { return s.graph.Nodes[i].Weight() }

func (s *Series) WeightSum() float64 { return s.weightSum }

func (s *Series) EdgeCount() int { return len(s.edges) }

func (s *Series) Edge(i int) (source, target int) { return s.edges[i][0], s.edges[i][1] }

// Curvature returns the edge's own curvature, falling back to the graph
// line style and then to 0.
func (s *Series) Curvature(i int) float64 {
	if c, ok := s.graph.Edges[i].LineStyle.curvature(); ok {
		return c
	}
	c, _ := s.graph.LineStyle.curvature()
	return c
}

// Apply builds the serializable layout for a result computed from s.
// The returned layout has no ID; storage layers assign one.
func (s *Series) Apply(res circular.Result) Layout {
	rect := s.view.BoundingRect()
	l := Layout{
		Width:  s.view.Width,
		Height: s.view.Height,
		Margin: s.view.Margin,
		Rect:   rect,
		Center: Center{CX: res.Center.X, CY: res.Center.Y},
		Radius: res.Radius,
		Nodes:  make([]LayoutNode, len(s.graph.Nodes)),
		Edges:  make([]LayoutEdge, len(s.graph.Edges)),
	}
	for i, n := range s.graph.Nodes {
		l.Nodes[i] = LayoutNode{
			ID:     n.ID,
			Label:  n.Label,
			Value:  n.Value,
			Angle:  res.Angles[i],
			Layout: res.Positions[i].Array(),
		}
	}
	for i, e := range s.graph.Edges {
		g := res.Edges[i]
		shape := EdgeShape{P1: g.P1.Array(), P2: g.P2.Array()}
		if g.Curved {
			cp := g.Control.Array()
			shape.Control = &cp
		}
		l.Edges[i] = LayoutEdge{
			From:      e.From,
			To:        e.To,
			Curvature: s.Curvature(i),
			Layout:    shape,
		}
	}
	return l
}

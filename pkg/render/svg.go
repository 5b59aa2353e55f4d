package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/orbit/pkg/graph"
)

// DefaultNodeRadius is the node radius when none is configured.
const DefaultNodeRadius = 6.0

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      Style
	nodeRadius float64
	labels     bool
}

// WithStyle selects the style. A nil style keeps the default.
func WithStyle(s Style) SVGOption {
	return func(r *svgRenderer) {
		if s != nil {
			r.style = s
		}
	}
}

// WithNodeRadius sets the radius of node circles.
func WithNodeRadius(radius float64) SVGOption {
	return func(r *svgRenderer) {
		if radius > 0 {
			r.nodeRadius = radius
		}
	}
}

// WithLabels draws node labels outside the circle.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// RenderSVG draws l as a standalone SVG document sized to the layout frame.
// Edges are drawn first so nodes sit on top of them.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: Simple{}, nodeRadius: DefaultNodeRadius}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	r.style.Defs(&buf)

	buf.WriteString("  <g class=\"edges\">\n")
	for _, e := range buildEdges(l) {
		r.style.Edge(&buf, e)
	}
	buf.WriteString("  </g>\n")

	nodes := buildNodes(l, r.nodeRadius)
	buf.WriteString("  <g class=\"nodes\">\n")
	for _, n := range nodes {
		r.style.Node(&buf, n)
	}
	buf.WriteString("  </g>\n")

	if r.labels {
		buf.WriteString("  <g class=\"labels\">\n")
		for _, n := range nodes {
			r.style.Label(&buf, n)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildNodes(l graph.Layout, radius float64) []Node {
	nodes := make([]Node, len(l.Nodes))
	for i, n := range l.Nodes {
		weight := 1.0
		if n.Value != nil {
			weight = *n.Value
		}
		nodes[i] = Node{
			Index:  i,
			ID:     n.ID,
			Label:  n.DisplayLabel(),
			X:      n.Layout[0],
			Y:      n.Layout[1],
			R:      radius,
			Angle:  n.Angle,
			Weight: weight,
		}
	}
	return nodes
}

func buildEdges(l graph.Layout) []Edge {
	edges := make([]Edge, len(l.Edges))
	for i, e := range l.Edges {
		s := e.Layout
		edge := Edge{
			FromID: e.From, ToID: e.To,
			X1: s.P1[0], Y1: s.P1[1],
			X2: s.P2[0], Y2: s.P2[1],
		}
		if s.Control != nil {
			edge.Curved = true
			edge.CX, edge.CY = s.Control[0], s.Control[1]
		}
		edges[i] = edge
	}
	return edges
}

package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"slices"
)

// Style names.
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

// Styles lists the style names accepted by [LookupStyle].
var Styles = []string{StyleSimple, StyleOutline}

// LookupStyle returns the style registered under name. The empty name
// selects [Simple].
func LookupStyle(name string) (Style, bool) {
	switch name {
	case StyleSimple, "":
		return Simple{}, true
	case StyleOutline:
		return Outline{}, true
	}
	return nil, false
}

// IsStyle reports whether name is a known style.
func IsStyle(name string) bool { return name == "" || slices.Contains(Styles, name) }

// Style draws the elements of a circular layout.
type Style interface {
	// Defs writes SVG <defs> content (markers, gradients).
	Defs(buf *bytes.Buffer)
	// Edge writes one edge path.
	Edge(buf *bytes.Buffer, e Edge)
	// Node writes one node shape.
	Node(buf *bytes.Buffer, n Node)
	// Label writes one node label.
	Label(buf *bytes.Buffer, n Node)
}

// Node contains the data needed to draw a node.
type Node struct {
	Index  int
	ID     string
	Label  string
	X, Y   float64
	R      float64 // Node radius
	Angle  float64 // Placement angle, used to push labels outward
	Weight float64
}

// Edge contains the data needed to draw an edge.
type Edge struct {
	FromID, ToID   string
	X1, Y1, X2, Y2 float64
	Curved         bool
	CX, CY         float64 // Control point, when Curved
}

// Path returns the SVG path data: a quadratic curve through the control
// point when curved, a straight segment otherwise.
func (e Edge) Path() string {
	if e.Curved {
		return fmt.Sprintf("M %.2f %.2f Q %.2f %.2f %.2f %.2f", e.X1, e.Y1, e.CX, e.CY, e.X2, e.Y2)
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f", e.X1, e.Y1, e.X2, e.Y2)
}

const labelGap = 6.0

// labelAnchor places a label just outside the circle at the node's angle.
func labelAnchor(n Node) (x, y float64, anchor string) {
	cos, sin := math.Cos(n.Angle), math.Sin(n.Angle)
	x = n.X + (n.R+labelGap)*cos
	y = n.Y + (n.R+labelGap)*sin
	switch {
	case cos > 0.1:
		anchor = "start"
	case cos < -0.1:
		anchor = "end"
	default:
		anchor = "middle"
	}
	return x, y, anchor
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// =============================================================================
// Simple
// =============================================================================

var palette = []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948", "#b07aa1", "#ff9da7"}

// Simple fills nodes from a categorical palette in layout order.
type Simple struct{}

func (Simple) Defs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n    <style>.edge{fill:none;stroke:#8c8c8c;stroke-opacity:0.7;stroke-width:1.5}.label{font-family:sans-serif;font-size:12px;fill:#333}</style>\n  </defs>\n")
}

func (Simple) Edge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, "    <path class=\"edge\" data-from=\"%s\" data-to=\"%s\" d=\"%s\"/>\n", escape(e.FromID), escape(e.ToID), e.Path())
}

func (Simple) Node(buf *bytes.Buffer, n Node) {
	fill := palette[n.Index%len(palette)]
	fmt.Fprintf(buf, "    <circle id=\"node-%s\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" stroke=\"#fff\" stroke-width=\"1.5\"/>\n",
		escape(n.ID), n.X, n.Y, n.R, fill)
}

func (Simple) Label(buf *bytes.Buffer, n Node) {
	x, y, anchor := labelAnchor(n)
	fmt.Fprintf(buf, "    <text class=\"label\" x=\"%.2f\" y=\"%.2f\" text-anchor=\"%s\" dominant-baseline=\"middle\">%s</text>\n",
		x, y, anchor, escape(n.Label))
}

// =============================================================================
// Outline
// =============================================================================

// Outline draws unfilled black shapes on white.
type Outline struct{}

func (Outline) Defs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n    <style>.edge{fill:none;stroke:#000;stroke-width:1}.label{font-family:serif;font-size:12px;fill:#000}</style>\n  </defs>\n")
	buf.WriteString("  <rect width=\"100%\" height=\"100%\" fill=\"#fff\"/>\n")
}

func (Outline) Edge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, "    <path class=\"edge\" data-from=\"%s\" data-to=\"%s\" d=\"%s\"/>\n", escape(e.FromID), escape(e.ToID), e.Path())
}

func (Outline) Node(buf *bytes.Buffer, n Node) {
	fmt.Fprintf(buf, "    <circle id=\"node-%s\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"#fff\" stroke=\"#000\" stroke-width=\"1.5\"/>\n",
		escape(n.ID), n.X, n.Y, n.R)
}

func (Outline) Label(buf *bytes.Buffer, n Node) {
	x, y, anchor := labelAnchor(n)
	fmt.Fprintf(buf, "    <text class=\"label\" x=\"%.2f\" y=\"%.2f\" text-anchor=\"%s\" dominant-baseline=\"middle\">%s</text>\n",
		x, y, anchor, escape(n.Label))
}

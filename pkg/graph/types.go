package graph

import "github.com/matzehuels/orbit/pkg/circular"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// CoordinateSystemView is the default coordinate system of a graph file.
// It is the only one circular layout runs in.
const CoordinateSystemView = circular.KindView

// File formats understood by [ReadGraph].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// =============================================================================
// Graph - Node-Link Input
// =============================================================================

// Graph is the serialization format for layout input.
//
// Node order is significant: it is the order nodes are laid out around the
// circle, counter-clockwise in screen terms starting from the bottom.
type Graph struct {
	Nodes            []Node     `json:"nodes" yaml:"nodes" bson:"nodes"`
	Edges            []Edge     `json:"edges,omitempty" yaml:"edges,omitempty" bson:"edges,omitempty"`
	LineStyle        *LineStyle `json:"line_style,omitempty" yaml:"line_style,omitempty" bson:"line_style,omitempty"` // Default for every edge
	CoordinateSystem string     `json:"coordinate_system,omitempty" yaml:"coordinate_system,omitempty" bson:"coordinate_system,omitempty"`
}

// Kind returns the coordinate system kind, defaulting to "view".
func (g *Graph) Kind() string {
	if g.CoordinateSystem == "" {
		return CoordinateSystemView
	}
	return g.CoordinateSystem
}

// =============================================================================
// Node, Edge, LineStyle
// =============================================================================

// Node is a graph vertex. Value is the node's weight; a nil Value weighs 1.
type Node struct {
	ID    string         `json:"id" yaml:"id" bson:"id"`
	Label string         `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Value *float64       `json:"value,omitempty" yaml:"value,omitempty" bson:"value,omitempty"`
	Meta  map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Weight returns the node value, or 1 when unset.
func (n *Node) Weight() float64 {
	if n.Value == nil {
		return 1
	}
	return *n.Value
}

// Edge connects two nodes by ID.
type Edge struct {
	From      string     `json:"from" yaml:"from" bson:"from"`
	To        string     `json:"to" yaml:"to" bson:"to"`
	LineStyle *LineStyle `json:"line_style,omitempty" yaml:"line_style,omitempty" bson:"line_style,omitempty"`
}

// LineStyle carries edge styling. Only curvature affects layout.
type LineStyle struct {
	Curvature *float64 `json:"curvature,omitempty" yaml:"curvature,omitempty" bson:"curvature,omitempty"`
}

func (s *LineStyle) curvature() (float64, bool) {
	if s == nil || s.Curvature == nil {
		return 0, false
	}
	return *s.Curvature, true
}

// Float returns a pointer to v, for filling optional fields.
func Float(v float64) *float64 { return &v }

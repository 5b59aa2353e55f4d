package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/geom"
)

// =============================================================================
// Layout - Computed Positions
// =============================================================================

// Layout is the serialization format for a computed circular layout.
//
// Positions are absolute frame coordinates. Rect is the frame after the
// margin is removed, and the circle of the given Radius around Center is
// inscribed in it.
type Layout struct {
	ID           string       `json:"id,omitempty" bson:"_id,omitempty"`
	Width        float64      `json:"width" bson:"width"`
	Height       float64      `json:"height" bson:"height"`
	Margin       float64      `json:"margin,omitempty" bson:"margin,omitempty"`
	Rect         geom.Rect    `json:"rect" bson:"rect"`
	Center       Center       `json:"center" bson:"center"`
	Radius       float64      `json:"radius" bson:"radius"`
	CurveFormula string       `json:"curve_formula,omitempty" bson:"curve_formula,omitempty"`
	Nodes        []LayoutNode `json:"nodes" bson:"nodes"`
	Edges        []LayoutEdge `json:"edges" bson:"edges"`
}

// Center is the layout circle's center.
type Center struct {
	CX float64 `json:"cx" bson:"cx"`
	CY float64 `json:"cy" bson:"cy"`
}

// Point returns the center as a [geom.Point].
func (c Center) Point() geom.Point { return geom.Pt(c.CX, c.CY) }

// LayoutNode is a positioned node. Angle is the placement angle in radians.
type LayoutNode struct {
	ID     string     `json:"id" bson:"id"`
	Label  string     `json:"label,omitempty" bson:"label,omitempty"`
	Value  *float64   `json:"value,omitempty" bson:"value,omitempty"`
	Angle  float64    `json:"angle" bson:"angle"`
	Layout [2]float64 `json:"layout" bson:"layout"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *LayoutNode) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Position returns the node position as a [geom.Point].
func (n *LayoutNode) Position() geom.Point { return geom.FromArray(n.Layout) }

// LayoutEdge is an edge with its computed geometry.
type LayoutEdge struct {
	From      string    `json:"from" bson:"from"`
	To        string    `json:"to" bson:"to"`
	Curvature float64   `json:"curvature,omitempty" bson:"curvature,omitempty"`
	Layout    EdgeShape `json:"layout" bson:"layout"`
}

// EdgeShape holds the endpoints and optional quadratic control point.
// In JSON it is the triple [p1, p2, control] with a null control for
// straight edges.
type EdgeShape struct {
	P1      [2]float64  `bson:"p1"`
	P2      [2]float64  `bson:"p2"`
	Control *[2]float64 `bson:"control,omitempty"`
}

// Curved reports whether the edge has a control point.
func (s EdgeShape) Curved() bool { return s.Control != nil }

// MarshalJSON implements json.Marshaler.
func (s EdgeShape) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]*[2]float64{&s.P1, &s.P2, s.Control})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *EdgeShape) UnmarshalJSON(data []byte) error {
	var raw []*[2]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 || raw[0] == nil || raw[1] == nil {
		return fmt.Errorf("edge layout must be [p1, p2, control|null]")
	}
	*s = EdgeShape{P1: *raw[0], P2: *raw[1], Control: raw[2]}
	return nil
}

// =============================================================================
// Validation
// =============================================================================

// CheckFinite returns a DEGENERATE_LAYOUT error naming the first non-finite
// coordinate. NaN or infinite input (a NaN node value, a negative or
// infinite frame) propagates into positions and cannot be encoded as JSON.
func (l *Layout) CheckFinite() error {
	if !finite(l.Center.CX, l.Center.CY, l.Radius) {
		return errors.New(errors.ErrCodeDegenerateLayout, "layout center or radius is not finite")
	}
	for _, n := range l.Nodes {
		if !finite(n.Layout[0], n.Layout[1]) {
			return errors.New(errors.ErrCodeDegenerateLayout, "node %q has no finite position", n.ID)
		}
	}
	for _, e := range l.Edges {
		if e.Layout.Control != nil && !finite(e.Layout.Control[0], e.Layout.Control[1]) {
			return errors.New(errors.ErrCodeDegenerateLayout, "edge %s->%s has no finite control point", e.From, e.To)
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	if err := l.CheckFinite(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
		}
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

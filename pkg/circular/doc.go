// Package circular computes a static circular layout for node-link graphs.
//
// # Overview
//
// Nodes are placed on the circle inscribed in a drawing rectangle. Each node
// receives an angular span proportional to its weight, and its coordinate is
// evaluated at the middle of that span, rotated so the first node starts near
// the top of the circle. Edges with a nonzero curvature receive a control
// point so renderers can draw them as quadratic Bézier curves.
//
// # Placement
//
// [Place] is the positioner. Given the bounding rectangle, the node count, a
// weight accessor and the aggregate weight it returns a [Placement] holding
// the center, the radius and one angle, span and position per node:
//
//	p := circular.Place(rect, len(weights), func(i int) float64 { return weights[i] }, total)
//
// When the aggregate weight is not positive (zero, negative or NaN) every
// node receives an equal span of 2π/n. The spans always sum to a full turn.
//
// # Edge Curves
//
// [ControlPoint] bows an edge by curvature/2 times the segment length,
// perpendicular to the segment, from the midpoint. The sign of the curvature
// selects the side. [LegacyControlPoint] is the older quadrant-by-quadrant
// formulation and returns the same points; it is kept for layouts that must
// reproduce historical output exactly. Both return false for a zero
// curvature or coincident endpoints.
//
// # Layout
//
// [Layout] runs both stages against a [Model]. It does nothing and returns
// false unless the model's coordinate system is of kind [KindView]:
//
//	res, ok := circular.Layout(model, circular.WithCurve(circular.LegacyControlPoint))
//	if !ok {
//	    return // not a planar view
//	}
//	for i, pos := range res.Positions { ... }
//
// Results are plain values. Edge endpoints are copies of the node positions,
// so later edits to one never show up in the other.
//
// # Concurrency
//
// All functions are pure. Concurrent calls are safe as long as each call
// reads from a model that is not being written concurrently.
package circular

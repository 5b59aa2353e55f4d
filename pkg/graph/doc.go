// Package graph provides the input and output formats of orbit.
//
// This package defines the wire format for node-link graphs and computed
// circular layouts, used for files, API requests and responses, caching and
// storage.
//
// # Core Types
//
//   - [Graph], [Node], [Edge], [LineStyle]: layout input
//   - [Layout], [LayoutNode], [LayoutEdge], [EdgeShape]: layout output
//   - [View]: the drawing frame, a [circular.CoordinateSystem]
//   - [Series]: adapts a Graph to [circular.Model]
//
// # Graph Files
//
// Graphs are JSON or YAML. Node order is the order around the circle:
//
//	{
//	  "nodes": [{"id": "a", "value": 3}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b", "line_style": {"curvature": 0.3}}],
//	  "line_style": {"curvature": 0},
//	  "coordinate_system": "view"
//	}
//
// A node without value weighs 1. An edge without its own curvature inherits
// the graph's line_style, and is straight when neither is set.
//
// # Computing a Layout
//
//	g, _ := graph.ReadGraphFile("deps.yaml")
//	s := graph.NewSeries(&g, graph.View{Width: 800, Height: 600, Margin: 40})
//	res, ok := circular.Layout(s)
//	if ok {
//	    layout := s.Apply(res)
//	}
//
// # Layout Files
//
// Node positions are [x, y] pairs and edge geometry is the triple
// [p1, p2, control], with control null for straight edges:
//
//	{
//	  "center": {"cx": 400, "cy": 300},
//	  "radius": 260,
//	  "nodes": [{"id": "a", "angle": 2.35, "layout": [216.2, 483.8]}],
//	  "edges": [{"from": "a", "to": "b", "layout": [[216.2, 483.8], [583.8, 116.2], null]}]
//	}
package graph

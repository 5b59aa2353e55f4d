// Package render draws computed circular layouts.
//
// # Overview
//
// The renderer reads a [graph.Layout] and never recomputes positions:
//
//   - [RenderSVG]: native SVG, circles for nodes, quadratic Bézier paths
//     for curved edges and straight lines otherwise
//   - [ToDOT], [RenderGraphviz]: Graphviz DOT with every node pinned at its
//     computed position, drawn by the neato engine
//   - [ToPDF], [ToPNG]: convert any SVG using the external rsvg-convert tool
//
// [Render] dispatches on an output format and engine:
//
//	svg, err := render.Render(ctx, layout, render.FormatSVG, render.Options{})
//	png, err := render.Render(ctx, layout, render.FormatPNG, render.Options{Style: render.StyleOutline})
//
// # Styles
//
// A [Style] decides how nodes, edges and labels look. [Simple] fills nodes
// from a palette; [Outline] draws unfilled black-and-white shapes suited to
// print.
package render

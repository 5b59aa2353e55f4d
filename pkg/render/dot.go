package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orbit/pkg/graph"
)

// pointsPerInch converts layout units (pixels at 72 dpi) to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a layout to Graphviz DOT. Every node carries a pinned
// pos attribute ("x,y!") so neato keeps the circular placement; Graphviz's
// y axis points up, so y is flipped against the frame height.
//
// Graphviz cannot take a quadratic control point directly. Curved edges
// are drawn with splines=curved, which bends them without matching the
// computed control point; use [RenderSVG] for exact curves.
func ToDOT(l graph.Layout, nodeRadius float64) string {
	if nodeRadius <= 0 {
		nodeRadius = DefaultNodeRadius
	}
	curved := false
	for _, e := range l.Edges {
		if e.Layout.Curved() {
			curved = true
			break
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%.2f,%.2f\";\n", l.Width, l.Height)
	if curved {
		buf.WriteString("  splines=curved;\n")
	} else {
		buf.WriteString("  splines=line;\n")
	}
	d := 2 * nodeRadius / pointsPerInch
	fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, width=%.3f, style=filled, fillcolor=\"#4e79a7\", fontsize=10, xlabel=\"\"];\n", d)
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, "  %q [label=\"\", xlabel=%q, pos=\"%.2f,%.2f!\"];\n",
			n.ID, n.DisplayLabel(), n.Layout[0], l.Height-n.Layout[1])
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderGraphviz renders DOT to SVG with the neato engine.
func RenderGraphviz(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so the output scales like [RenderSVG] output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

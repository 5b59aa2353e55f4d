package render

import (
	"context"
	"slices"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/graph"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// Formats lists the formats accepted by [Render].
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT}

// Engines.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// Options configures [Render]. Zero values select the defaults.
type Options struct {
	Style      string  // Style name, see [Styles]
	Engine     string  // "native" (default) or "graphviz"
	NodeRadius float64 // Node circle radius
	ShowLabels bool
	Scale      float64 // PNG scale factor, default 2
}

// Render draws l in the given format.
//
// SVG, PNG and PDF come from the native renderer unless Engine is
// "graphviz". PNG and PDF need rsvg-convert. DOT returns the DOT source.
func Render(ctx context.Context, l graph.Layout, format string, opts Options) ([]byte, error) {
	if !slices.Contains(Formats, format) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want one of %v)", format, Formats)
	}
	if err := l.CheckFinite(); err != nil {
		return nil, err
	}
	if format == FormatDOT {
		return []byte(ToDOT(l, opts.NodeRadius)), nil
	}

	svg, err := renderSVG(ctx, l, opts)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatPNG:
		scale := opts.Scale
		if scale <= 0 {
			scale = 2
		}
		return ToPNG(ctx, svg, scale)
	case FormatPDF:
		return ToPDF(ctx, svg)
	default:
		return svg, nil
	}
}

func renderSVG(ctx context.Context, l graph.Layout, opts Options) ([]byte, error) {
	switch opts.Engine {
	case EngineNative, "":
		style, ok := LookupStyle(opts.Style)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want one of %v)", opts.Style, Styles)
		}
		svgOpts := []SVGOption{WithStyle(style), WithNodeRadius(opts.NodeRadius)}
		if opts.ShowLabels {
			svgOpts = append(svgOpts, WithLabels())
		}
		return RenderSVG(l, svgOpts...), nil
	case EngineGraphviz:
		return RenderGraphviz(ctx, ToDOT(l, opts.NodeRadius))
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown render engine %q", opts.Engine)
	}
}

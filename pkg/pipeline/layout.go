package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/orbit/pkg/circular"
	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/graph"
	"github.com/matzehuels/orbit/pkg/observability"
)

// ComputeLayout runs circular layout on g.
//
// Options must have passed [Options.ValidateForLayout]. A graph outside the
// view coordinate system fails with LAYOUT_SKIPPED; non-finite results
// (from NaN values or a degenerate frame) fail with DEGENERATE_LAYOUT.
func ComputeLayout(ctx context.Context, g *graph.Graph, opts Options) (graph.Layout, error) {
	curve, ok := circular.LookupCurve(opts.CurveFormula)
	if !ok {
		return graph.Layout{}, ValidateCurveFormula(opts.CurveFormula)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(g.Nodes), len(g.Edges))
	start := time.Now()

	l, curved, err := computeLayout(g, opts, curve)
	hooks.OnLayoutComplete(ctx, curved, time.Since(start), err)
	return l, err
}

func computeLayout(g *graph.Graph, opts Options, curve circular.CurveFunc) (graph.Layout, int, error) {
	s := graph.NewSeries(g, opts.View())
	res, ok := circular.Layout(s, circular.WithCurve(curve))
	if !ok {
		return graph.Layout{}, 0, errors.New(errors.ErrCodeLayoutSkipped,
			"circular layout needs the %q coordinate system, graph uses %q", graph.CoordinateSystemView, g.Kind())
	}

	l := s.Apply(res)
	l.CurveFormula = opts.CurveFormula
	if err := l.CheckFinite(); err != nil {
		return graph.Layout{}, 0, err
	}
	return l, countCurved(res), nil
}

func countCurved(res circular.Result) int {
	n := 0
	for _, e := range res.Edges {
		if e.Curved {
			n++
		}
	}
	return n
}

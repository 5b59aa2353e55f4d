package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/matzehuels/orbit/pkg/graph"
	"github.com/matzehuels/orbit/pkg/observability"
)

// ParseGraph decodes and validates a graph.
func ParseGraph(ctx context.Context, r io.Reader, format string) (graph.Graph, error) {
	if format == "" {
		format = graph.FormatJSON
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, format)
	start := time.Now()

	g, err := graph.ReadGraph(r, format)
	hooks.OnParseComplete(ctx, format, len(g.Nodes), time.Since(start), err)
	return g, err
}

// ReadGraphFile decodes and validates a graph file, picking the format from
// the extension.
func ReadGraphFile(ctx context.Context, path string) (graph.Graph, error) {
	format := graph.FormatFromPath(path)
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, format)
	start := time.Now()

	g, err := graph.ReadGraphFile(path)
	hooks.OnParseComplete(ctx, format, len(g.Nodes), time.Since(start), err)
	return g, err
}

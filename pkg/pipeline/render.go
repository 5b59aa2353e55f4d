package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/orbit/pkg/graph"
	"github.com/matzehuels/orbit/pkg/observability"
	"github.com/matzehuels/orbit/pkg/render"
)

// RenderLayout generates output artifacts in the requested formats.
// Options must have passed [Options.ValidateForRender].
func RenderLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderLayout(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		if format == FormatJSON {
			data, err = graph.MarshalLayout(l)
		} else {
			data, err = render.Render(ctx, l, format, opts.RenderOptions())
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/orbit/pkg/errors"
)

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		format   string
		wantErr  errors.Code
		wantNode int
		wantEdge int
	}{
		{
			name:     "JSON",
			input:    `{"nodes":[{"id":"a","value":2},{"id":"b"}],"edges":[{"from":"a","to":"b"}]}`,
			format:   FormatJSON,
			wantNode: 2,
			wantEdge: 1,
		},
		{
			name: "YAML",
			input: `
nodes:
  - id: a
    value: 2
  - id: b
    label: Bee
edges:
  - from: a
    to: b
    line_style:
      curvature: 0.3
line_style:
  curvature: -0.1
`,
			format:   FormatYAML,
			wantNode: 2,
			wantEdge: 1,
		},
		{
			name:     "SelfLoop",
			input:    `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"a"}]}`,
			format:   FormatJSON,
			wantNode: 1,
			wantEdge: 1,
		},
		{
			name:    "DuplicateID",
			input:   `{"nodes":[{"id":"a"},{"id":"a"}]}`,
			format:  FormatJSON,
			wantErr: errors.ErrCodeInvalidGraph,
		},
		{
			name:    "EmptyID",
			input:   `{"nodes":[{"id":""}]}`,
			format:  FormatJSON,
			wantErr: errors.ErrCodeInvalidGraph,
		},
		{
			name:    "UnknownTarget",
			input:   `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"z"}]}`,
			format:  FormatJSON,
			wantErr: errors.ErrCodeInvalidGraph,
		},
		{
			name:    "Malformed",
			input:   `{"nodes":[`,
			format:  FormatJSON,
			wantErr: errors.ErrCodeInvalidFormat,
		},
		{
			name:    "UnknownFormat",
			input:   `{}`,
			format:  "toml",
			wantErr: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input), tt.format)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadGraph() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadGraph() error = %v", err)
			}
			if len(g.Nodes) != tt.wantNode {
				t.Errorf("nodes = %d, want %d", len(g.Nodes), tt.wantNode)
			}
			if len(g.Edges) != tt.wantEdge {
				t.Errorf("edges = %d, want %d", len(g.Edges), tt.wantEdge)
			}
		})
	}
}

func TestReadGraphYAMLFields(t *testing.T) {
	input := `
nodes:
  - id: a
    value: 2.5
    meta:
      team: core
  - id: b
    label: Bee
edges:
  - from: a
    to: b
    line_style:
      curvature: 0.3
line_style:
  curvature: -0.1
coordinate_system: geo
`
	g, err := ReadGraph(strings.NewReader(input), FormatYAML)
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}
	if v := g.Nodes[0].Value; v == nil || *v != 2.5 {
		t.Errorf("value = %v, want 2.5", v)
	}
	if g.Nodes[0].Meta["team"] != "core" {
		t.Errorf("meta team = %v, want core", g.Nodes[0].Meta["team"])
	}
	if got := g.Nodes[1].DisplayLabel(); got != "Bee" {
		t.Errorf("DisplayLabel() = %q, want Bee", got)
	}
	if c := g.Edges[0].LineStyle.Curvature; c == nil || *c != 0.3 {
		t.Errorf("edge curvature = %v, want 0.3", c)
	}
	if c := g.LineStyle.Curvature; c == nil || *c != -0.1 {
		t.Errorf("graph curvature = %v, want -0.1", c)
	}
	if g.Kind() != "geo" {
		t.Errorf("Kind() = %q, want geo", g.Kind())
	}
}

func TestWriteGraphRoundTrip(t *testing.T) {
	in := Graph{
		Nodes: []Node{{ID: "a", Value: Float(3)}, {ID: "b", Label: "Bee"}},
		Edges: []Edge{{From: "a", To: "b", LineStyle: &LineStyle{Curvature: Float(0.5)}}},
	}

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteGraph(in, &buf, format); err != nil {
				t.Fatalf("WriteGraph() error = %v", err)
			}
			out, err := ReadGraph(&buf, format)
			if err != nil {
				t.Fatalf("ReadGraph() error = %v", err)
			}
			if *out.Nodes[0].Value != 3 || out.Nodes[1].Label != "Bee" {
				t.Errorf("nodes = %+v", out.Nodes)
			}
			if *out.Edges[0].LineStyle.Curvature != 0.5 {
				t.Errorf("curvature = %v, want 0.5", *out.Edges[0].LineStyle.Curvature)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"graph.json":     FormatJSON,
		"graph.yaml":     FormatYAML,
		"graph.YML":      FormatYAML,
		"graph":          FormatJSON,
		"dir.yaml/graph": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestReadGraphFileNotFound(t *testing.T) {
	_, err := ReadGraphFile(t.TempDir() + "/missing.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadGraphFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/orbit/pkg/circular"
	"github.com/matzehuels/orbit/pkg/graph"
)

func ExampleSeries_Apply() {
	g, err := graph.ReadGraph(strings.NewReader(`
nodes:
  - id: api
    value: 1
  - id: db
    value: 3
edges:
  - from: api
    to: db
    line_style:
      curvature: 0.5
`), graph.FormatYAML)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	s := graph.NewSeries(&g, graph.View{Width: 100, Height: 100})
	res, ok := circular.Layout(s)
	if !ok {
		return
	}
	l := s.Apply(res)

	for _, n := range l.Nodes {
		fmt.Printf("%s (%.2f, %.2f)\n", n.ID, n.Layout[0], n.Layout[1])
	}
	cp := l.Edges[0].Layout.Control
	fmt.Printf("control (%.2f, %.2f)\n", cp[0], cp[1])
	// Output:
	// api (14.64, 85.36)
	// db (85.36, 14.64)
	// control (67.68, 67.68)
}

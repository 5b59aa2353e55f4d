package render_test

import (
	"fmt"

	"github.com/matzehuels/orbit/pkg/render"
)

func ExampleEdge_Path() {
	straight := render.Edge{X1: 0, Y1: 0, X2: 10, Y2: 0}
	curved := render.Edge{X1: 0, Y1: 0, X2: 10, Y2: 0, Curved: true, CX: 5, CY: 2.5}

	fmt.Println(straight.Path())
	fmt.Println(curved.Path())
	// Output:
	// M 0.00 0.00 L 10.00 0.00
	// M 0.00 0.00 Q 5.00 2.50 10.00 0.00
}

// File: laplacian/example_test.go
package laplacian_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/geomesh/dist"
	"github.com/katalvlaran/geomesh/laplacian"
	"github.com/katalvlaran/geomesh/mesh"
)

// ExampleBuild turns a 3×1 path into its Laplacian on a single worker.
func ExampleBuild() {
	d, _ := dist.NewBlock(3, 1)
	_ = dist.Run(context.Background(), 1, func(_ context.Context, c *dist.Comm) error {
		m, err := mesh.Structured(c, d, []int{3, 1}, []float64{1, 1}, mesh.WithWeight(2))
		if err != nil {
			return err
		}
		lap, err := laplacian.Build(m.Adjacency)
		if err != nil {
			return err
		}
		for l := 0; l < lap.LocalRows(); l++ {
			cols, vals := lap.Row(l)
			fmt.Println(cols, vals)
		}
		return nil
	})

	// Output:
	// [0 1] [2 -2]
	// [0 1 2] [-2 4 -2]
	// [1 2] [-2 2]
}

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/lcamatrix/matrix"
)

// ExampleSparse_Triplets shows accumulation and serialization for a solver.
func ExampleSparse_Triplets() {
	a, _ := matrix.NewSparse(2, 2)
	_ = a.Add(0, 0, 1)
	_ = a.Add(1, 0, -0.5)
	_ = a.Add(1, 0, -0.5) // a second link into the same cell
	_ = a.Add(1, 1, 1)

	t := a.Triplets()
	fmt.Println(t.I, t.J, t.V)
	// Output:
	// [0 1 1] [0 0 1] [1 -1 1]
}

package solver_test

import (
	"testing"

	"github.com/RoaringBitmap/roaring"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lcamatrix/matrix"
	"github.com/katalvlaran/lcamatrix/solver"
)

func triplets(t *testing.T, rows [][]float64) *matrix.Triplets {
	t.Helper()
	n := len(rows)
	tr := &matrix.Triplets{Rows: n, Cols: n}
	for i, row := range rows {
		require.Len(t, row, n)
		for j, v := range row {
			if v != 0 {
				tr.I = append(tr.I, i)
				tr.J = append(tr.J, j)
				tr.V = append(tr.V, v)
			}
		}
	}
	return tr
}

// loop is the technology matrix of two processes feeding each other.
var loop = [][]float64{{1, -0.5}, {-0.2, 1}}

// ring builds an n-process ring where process i needs 0.3 of process i+1.
func ring(t *testing.T, n int) *matrix.Triplets {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	for i := range rows {
		rows[i][i] = 2
		rows[(i+1)%n][i] = -0.3
	}
	return triplets(t, rows)
}

// chain is an acyclic supply chain 1 <- 0.5·2 <- 0.5·3, lower triangular
// with a unit diagonal.
var chain = [][]float64{
	{1, 0, 0},
	{-0.5, 1, 0},
	{0, -0.5, 1},
}

// column reads column j of d through At.
func column(t *testing.T, d *matrix.Dense, j int) []float64 {
	t.Helper()
	out := make([]float64, d.Rows())
	for i := range out {
		v, err := d.At(i, j)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func solvers(t *testing.T) map[string]solver.Solver {
	lu, err := solver.New(solver.KindLU)
	require.NoError(t, err)
	it, err := solver.New(solver.KindBiCGStab, solver.WithTolerance(1e-12))
	require.NoError(t, err)
	return map[string]solver.Solver{"lu": lu, "bicgstab": it}
}

func TestSolveLoop(t *testing.T) {
	for name, s := range solvers(t) {
		t.Run(name, func(t *testing.T) {
			x, err := s.Solve(triplets(t, loop), []float64{1, 0})
			require.NoError(t, err)
			require.InDelta(t, 1/0.9, x[0], 1e-9)
			require.InDelta(t, 0.2/0.9, x[1], 1e-9)
		})
	}
}

func TestSolveTriangularChain(t *testing.T) {
	for name, s := range solvers(t) {
		t.Run(name, func(t *testing.T) {
			x, err := s.Solve(triplets(t, chain), []float64{1, 0, 0})
			require.NoError(t, err)
			require.InDeltaSlice(t, []float64{1, 0.5, 0.25}, x, 1e-9)

			inv, err := s.Invert(triplets(t, chain))
			require.NoError(t, err)
			for j, want := range [][]float64{{1, 0.5, 0.25}, {0, 1, 0.5}, {0, 0, 1}} {
				require.InDeltaSlice(t, want, column(t, inv, j), 1e-9, "column %d", j)
			}
		})
	}
}

func TestSolveDoesNotModifyInput(t *testing.T) {
	for name, s := range solvers(t) {
		t.Run(name, func(t *testing.T) {
			a := triplets(t, loop)
			b := []float64{1, 2}
			_, err := s.Solve(a, b)
			require.NoError(t, err)
			require.Equal(t, []float64{1, 2}, b)
			require.Equal(t, triplets(t, loop), a)
		})
	}
}

func TestSolveDuplicateTriplets(t *testing.T) {
	// 2 = 1 + 1 on the diagonal
	a := &matrix.Triplets{Rows: 1, Cols: 1, I: []int{0, 0}, J: []int{0, 0}, V: []float64{1, 1}}
	for name, s := range solvers(t) {
		t.Run(name, func(t *testing.T) {
			x, err := s.Solve(a, []float64{4})
			require.NoError(t, err)
			require.InDelta(t, 2, x[0], 1e-12)
		})
	}
}

func TestInvertMatchesIdentity(t *testing.T) {
	for name, s := range solvers(t) {
		t.Run(name, func(t *testing.T) {
			a := ring(t, 6)
			inv, err := s.Invert(a)
			require.NoError(t, err)

			sp, err := a.ToSparse()
			require.NoError(t, err)
			prod, err := matrix.Mul(sp, inv)
			require.NoError(t, err)
			for i := 0; i < 6; i++ {
				for j := 0; j < 6; j++ {
					v, err := prod.At(i, j)
					require.NoError(t, err)
					want := 0.0
					if i == j {
						want = 1
					}
					require.InDelta(t, want, v, 1e-9, "(%d,%d)", i, j)
				}
			}
		})
	}
}

func TestInvertColumnsSubset(t *testing.T) {
	a := ring(t, 5)
	lu, err := solver.New(solver.KindLU)
	require.NoError(t, err)
	full, err := lu.Invert(a)
	require.NoError(t, err)

	for name, s := range solvers(t) {
		t.Run(name, func(t *testing.T) {
			cols, err := s.InvertColumns(a, roaring.BitmapOf(1, 3))
			require.NoError(t, err)
			require.Len(t, cols, 2)
			for _, j := range []int{1, 3} {
				require.InDeltaSlice(t, column(t, full, j), cols[j], 1e-9)
			}

			none, err := s.InvertColumns(a, nil)
			require.NoError(t, err)
			require.Empty(t, none)

			_, err = s.InvertColumns(a, roaring.BitmapOf(5))
			require.ErrorIs(t, err, solver.ErrDimensionMismatch)
		})
	}
}

func TestSingularMatrix(t *testing.T) {
	for name, s := range solvers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Solve(triplets(t, [][]float64{{1, 1}, {1, 1}}), []float64{1, 0})
			require.ErrorIs(t, err, solver.ErrSingular)
		})
	}
}

func TestLUZeroColumnIsSingular(t *testing.T) {
	s, err := solver.New(solver.KindLU)
	require.NoError(t, err)
	_, err = s.Invert(triplets(t, [][]float64{{1, 0}, {0, 0}}))
	require.ErrorIs(t, err, solver.ErrSingular)
}

func TestBiCGStabNoConvergence(t *testing.T) {
	rows := make([][]float64, 5)
	for i := range rows {
		rows[i] = make([]float64, 5)
		rows[i][i] = 4
		if i > 0 {
			rows[i][i-1] = -1
		}
		if i < 4 {
			rows[i][i+1] = -1
		}
	}
	s, err := solver.New(solver.KindBiCGStab, solver.WithMaxIterations(1), solver.WithTolerance(1e-14))
	require.NoError(t, err)

	_, err = s.Solve(triplets(t, rows), []float64{1, 0, 0, 0, 0})
	require.ErrorIs(t, err, solver.ErrNoConvergence)
}

func TestZeroRightHandSide(t *testing.T) {
	for name, s := range solvers(t) {
		t.Run(name, func(t *testing.T) {
			x, err := s.Solve(triplets(t, loop), []float64{0, 0})
			require.NoError(t, err)
			require.InDeltaSlice(t, []float64{0, 0}, x, 1e-15)
		})
	}
}

func TestShapeErrors(t *testing.T) {
	for name, s := range solvers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Solve(&matrix.Triplets{Rows: 2, Cols: 3}, []float64{1, 1})
			require.ErrorIs(t, err, solver.ErrNotSquare)

			_, err = s.Solve(triplets(t, loop), []float64{1})
			require.ErrorIs(t, err, solver.ErrDimensionMismatch)

			bad := &matrix.Triplets{Rows: 1, Cols: 1, I: []int{3}, J: []int{0}, V: []float64{1}}
			_, err = s.Solve(bad, []float64{1})
			require.ErrorIs(t, err, matrix.ErrMalformedTriplets)
		})
	}
}

func TestSolversAgree(t *testing.T) {
	a := ring(t, 50)
	b := make([]float64, 50)
	for i := range b {
		b[i] = float64(i%7) - 3
	}
	all := solvers(t)
	x1, err := all["lu"].Solve(a, b)
	require.NoError(t, err)
	x2, err := all["bicgstab"].Solve(a, b)
	require.NoError(t, err)
	require.InDeltaSlice(t, x1, x2, 1e-8)
}

func TestNewAndParseKind(t *testing.T) {
	k, err := solver.ParseKind("bicgstab")
	require.NoError(t, err)
	require.Equal(t, solver.KindBiCGStab, k)

	_, err = solver.ParseKind("qr")
	require.ErrorIs(t, err, solver.ErrUnknownKind)

	_, err = solver.New("qr")
	require.ErrorIs(t, err, solver.ErrUnknownKind)

	_, err = solver.New(solver.KindLU, solver.WithMaxCondition(0))
	require.ErrorIs(t, err, solver.ErrOptionViolation)
	_, err = solver.New(solver.KindBiCGStab, solver.WithTolerance(2))
	require.ErrorIs(t, err, solver.ErrOptionViolation)
	_, err = solver.New(solver.KindBiCGStab, solver.WithMaxIterations(0))
	require.ErrorIs(t, err, solver.ErrOptionViolation)

	require.NotNil(t, solver.NewLU())
	require.NotNil(t, solver.NewBiCGStab())
}

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lcamatrix/matrix"
	"github.com/stretchr/testify/require"
)

func TestSparseAccumulates(t *testing.T) {
	s, err := matrix.NewSparse(3, 3)
	require.NoError(t, err)

	require.NoError(t, s.Add(2, 0, 1.5))
	require.NoError(t, s.Add(2, 0, 2.5)) // duplicate link sums
	v, err := s.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)
	require.Equal(t, 1, s.NonZeros())

	// cancelling to zero removes the cell
	require.NoError(t, s.Add(2, 0, -4))
	require.Equal(t, 0, s.NonZeros())

	require.NoError(t, s.Set(1, 1, 3))
	require.NoError(t, s.Set(1, 1, 0))
	require.Equal(t, 0, s.NonZeros())
}

func TestSparseBoundsAndPolicy(t *testing.T) {
	s, err := matrix.NewSparse(2, 2)
	require.NoError(t, err)

	_, err = s.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, s.Add(0, -1, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, s.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, s.Add(0, 0, math.Inf(-1)), matrix.ErrNaNInf)

	_, err = matrix.NewSparse(-1, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	empty, err := matrix.NewSparse(0, 4)
	require.NoError(t, err)
	require.Equal(t, 0, empty.ToDense().Rows())
}

func TestSparseDeterministicTraversal(t *testing.T) {
	s, err := matrix.NewSparse(4, 3)
	require.NoError(t, err)
	_ = s.Add(3, 1, 1)
	_ = s.Add(0, 2, 2)
	_ = s.Add(1, 1, 3)
	_ = s.Add(2, 0, 4)

	type cell struct{ i, j int }
	var order []cell
	s.Do(func(i, j int, _ float64) bool {
		order = append(order, cell{i, j})
		return true
	})
	require.Equal(t, []cell{{2, 0}, {1, 1}, {3, 1}, {0, 2}}, order)

	col, err := s.Column(1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 3, 0, 1}, col)
}

func TestSparseCloneAndDiagonal(t *testing.T) {
	s, err := matrix.NewSparse(2, 2)
	require.NoError(t, err)
	_ = s.Set(0, 0, 2)
	_ = s.Set(1, 1, 5)
	_ = s.Set(1, 0, -1)

	cp := s.CloneSparse()
	_ = cp.Set(0, 0, 9)
	v, _ := s.At(0, 0)
	require.Equal(t, 2.0, v)
	require.Equal(t, []float64{2, 5}, s.Diagonal())

	d := s.ToDense()
	require.Equal(t, []float64{2, 0, -1, 5}, d.RawRowMajor())
}

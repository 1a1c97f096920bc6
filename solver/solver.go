// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/lcamatrix/matrix"
)

// Solver solves linear systems given in triplet form. Implementations are
// stateless between calls and safe for concurrent use.
type Solver interface {
	// Solve returns x with A·x = b.
	Solve(a *matrix.Triplets, b []float64) ([]float64, error)
	// InvertColumns returns the columns of A⁻¹ listed in cols, keyed by column.
	InvertColumns(a *matrix.Triplets, cols *roaring.Bitmap) (map[int][]float64, error)
	// Invert returns A⁻¹.
	Invert(a *matrix.Triplets) (*matrix.Dense, error)
}

// Kind names a Solver implementation.
type Kind string

const (
	KindLU       Kind = "lu"
	KindBiCGStab Kind = "bicgstab"
)

// ParseKind validates a solver name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindLU, KindBiCGStab:
		return k, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Defaults for Options.
const (
	DefaultMaxCondition  = 1e14
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 1000
)

// Option configures a Solver via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the parameters of all implementations; each reads what it needs.
type Options struct {
	MaxCondition  float64 // LU: reciprocal condition guard
	Tolerance     float64 // BiCGStab: relative residual
	MaxIterations int     // BiCGStab: iteration cap per right-hand side
	Logger        zerolog.Logger
	err           error
}

// DefaultOptions returns the documented defaults and a disabled logger.
func DefaultOptions() Options {
	return Options{
		MaxCondition:  DefaultMaxCondition,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Logger:        zerolog.Nop(),
	}
}

// WithMaxCondition sets the largest acceptable condition number for LU.
func WithMaxCondition(c float64) Option {
	return func(o *Options) {
		if !(c >= 1) || math.IsInf(c, 0) {
			o.err = fmt.Errorf("%w: max condition must be finite and >= 1 (%v)", ErrOptionViolation, c)
			return
		}
		o.MaxCondition = c
	}
}

// WithTolerance sets the BiCGStab relative residual target.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || tol >= 1 {
			o.err = fmt.Errorf("%w: tolerance must be in (0,1) (%v)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxIterations sets the BiCGStab iteration cap.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: max iterations must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithLogger sets the logger used for factorization diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// New returns the Solver of the given kind.
func New(kind Kind, opts ...Option) (Solver, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	switch kind {
	case KindLU:
		return &LU{opts: o}, nil
	case KindBiCGStab:
		return &BiCGStab{opts: o}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// checkSquare validates a and returns its order.
func checkSquare(a *matrix.Triplets) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if a.Rows != a.Cols {
		return 0, ErrNotSquare
	}

	return a.Rows, nil
}

// checkColumns rejects columns outside [0, n).
func checkColumns(cols *roaring.Bitmap, n int) error {
	if cols == nil || cols.IsEmpty() {
		return nil
	}
	if int(cols.Maximum()) >= n {
		return fmt.Errorf("%w: column %d for order %d", ErrDimensionMismatch, cols.Maximum(), n)
	}

	return nil
}

func unit(n, j int) []float64 {
	e := make([]float64, n)
	e[j] = 1

	return e
}

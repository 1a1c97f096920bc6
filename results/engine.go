// SPDX-License-Identifier: MIT

package results

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/inventory"
	"github.com/katalvlaran/lcamatrix/matrix"
	"github.com/katalvlaran/lcamatrix/solver"
)

// State is the lifecycle position of an Engine.
type State uint8

const (
	StateEmpty State = iota
	StateSolved
	StateDecomposed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateSolved:
		return "solved"
	case StateDecomposed:
		return "decomposed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithImpacts attaches a characterization matrix (categories × flows) whose
// columns follow the inventory's flow index.
func WithImpacts(categories *index.LongIndex, c *matrix.Sparse) Option {
	return func(e *Engine) {
		e.categories = categories
		e.characterization = c
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine computes results for one inventory. It is not safe for concurrent use.
type Engine struct {
	inv              *inventory.Inventory
	solver           solver.Solver
	technology       *matrix.Triplets
	categories       *index.LongIndex
	characterization *matrix.Sparse
	logger           zerolog.Logger

	state  State
	result *ContributionResult
	full   *FullResult
}

// NewEngine prepares an engine in StateEmpty.
// Errors: ErrEmptyInventory, ErrNilSolver, ErrDimensionMismatch for a
// characterization matrix whose column count differs from the flow count.
func NewEngine(inv *inventory.Inventory, s solver.Solver, opts ...Option) (*Engine, error) {
	if inv.IsEmpty() {
		return nil, resultsErrorf(opNewEngine, ErrEmptyInventory)
	}
	if s == nil {
		return nil, resultsErrorf(opNewEngine, ErrNilSolver)
	}
	e := &Engine{inv: inv, solver: s, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.characterization != nil {
		if e.characterization.Cols() != inv.FlowIndex().Size() ||
			e.characterization.Rows() != e.categories.Size() {
			return nil, resultsErrorf(opNewEngine, fmt.Errorf("%w: characterization %dx%d for %d categories and %d flows",
				ErrDimensionMismatch, e.characterization.Rows(), e.characterization.Cols(),
				e.categories.Size(), inv.FlowIndex().Size()))
		}
	}
	e.technology = inv.Technology().Triplets()

	return e, nil
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Inventory returns the inventory the engine works on.
func (e *Engine) Inventory() *inventory.Inventory { return e.inv }

// Solve computes total and direct results for demand f. A nil demand uses the
// inventory's reference demand. Solve may be repeated; it replaces any earlier
// results and returns the engine to StateSolved. Solver errors are returned
// wrapped, so errors.Is matches the solver's sentinels; the state is left
// unchanged on error.
func (e *Engine) Solve(demand []float64) (*SimpleResult, error) {
	if demand == nil {
		demand = e.inv.Demand()
	}
	n := e.inv.TechIndex().Size()
	if len(demand) != n {
		return nil, resultsErrorf(opSolve, fmt.Errorf("%w: demand length %d for %d columns", ErrDimensionMismatch, len(demand), n))
	}

	s, err := e.solver.Solve(e.technology, demand)
	if err != nil {
		return nil, resultsErrorf(opSolve, err)
	}
	r, err := e.newContributionResult(s)
	if err != nil {
		return nil, resultsErrorf(opSolve, err)
	}

	e.result, e.full, e.state = r, nil, StateSolved
	e.logger.Debug().Int("columns", n).Int("flows", e.inv.FlowIndex().Size()).Msg("inventory solved")

	return r.SimpleResult, nil
}

// Contributions returns the direct results of the last Solve.
func (e *Engine) Contributions() (*ContributionResult, error) {
	if e.state == StateEmpty {
		return nil, resultsErrorf("Contributions", fmt.Errorf("%w: %s", ErrInvalidState, e.state))
	}

	return e.result, nil
}

// Decompose computes upstream results. It requires StateSolved; in
// StateDecomposed it returns the existing result.
func (e *Engine) Decompose() (*FullResult, error) {
	switch e.state {
	case StateDecomposed:
		return e.full, nil
	case StateSolved:
	default:
		return nil, resultsErrorf(opDecompose, fmt.Errorf("%w: %s", ErrInvalidState, e.state))
	}

	n := e.inv.TechIndex().Size()
	cols := roaring.New()
	cols.AddRange(0, uint64(n))
	inverse, err := e.solver.InvertColumns(e.technology, cols)
	if err != nil {
		return nil, resultsErrorf(opDecompose, err)
	}
	full, err := e.newFullResult(inverse)
	if err != nil {
		return nil, resultsErrorf(opDecompose, err)
	}

	e.full, e.state = full, StateDecomposed
	e.logger.Debug().Int("columns", n).Msg("upstream results decomposed")

	return full, nil
}

func (e *Engine) newSimpleResult(s []float64) (*SimpleResult, error) {
	flows, err := matrix.MatVec(e.inv.Interventions(), s)
	if err != nil {
		return nil, err
	}
	r := &SimpleResult{
		techIndex:         e.inv.TechIndex(),
		flowIndex:         e.inv.FlowIndex(),
		impactIndex:       e.categories,
		scaling:           s,
		totalRequirements: make([]float64, len(s)),
		totalFlows:        flows,
	}
	for j, d := range e.inv.Technology().Diagonal() {
		r.totalRequirements[j] = s[j] * d
	}
	if e.characterization != nil {
		if r.totalImpacts, err = matrix.MatVec(e.characterization, flows); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (e *Engine) newContributionResult(s []float64) (*ContributionResult, error) {
	simple, err := e.newSimpleResult(s)
	if err != nil {
		return nil, err
	}
	r := &ContributionResult{SimpleResult: simple}
	if r.singleFlows, err = matrix.ScaleColumns(e.inv.Interventions(), s); err != nil {
		return nil, err
	}
	if e.characterization != nil {
		if r.singleImpacts, err = matrix.Mul(e.characterization, r.singleFlows); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// newFullResult scales each inverse column by the total requirement of its
// process-product and projects it onto flows and categories.
func (e *Engine) newFullResult(inverse map[int][]float64) (*FullResult, error) {
	n := e.inv.TechIndex().Size()
	scaled, err := matrix.NewZeros(n, n)
	if err != nil {
		return nil, err
	}
	t := e.result.totalRequirements
	for j := 0; j < n; j++ {
		col, ok := inverse[j]
		if !ok || len(col) != n {
			return nil, fmt.Errorf("%w: inverse column %d missing", ErrDimensionMismatch, j)
		}
		out := make([]float64, n)
		for i, v := range col {
			out[i] = v * t[j]
		}
		if err = scaled.SetCol(j, out); err != nil {
			return nil, err
		}
	}

	r := &FullResult{ContributionResult: e.result}
	if r.upstreamFlows, err = matrix.Mul(e.inv.Interventions(), scaled); err != nil {
		return nil, err
	}
	if e.characterization != nil {
		if r.upstreamImpacts, err = matrix.Mul(e.characterization, r.upstreamFlows); err != nil {
			return nil, err
		}
	}

	return r, nil
}

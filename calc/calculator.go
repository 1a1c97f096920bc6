// SPDX-License-Identifier: MIT

// Package calc runs calculations end to end: inventory build,
// characterization, solve and the requested result depth.
package calc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/lcamatrix/config"
	"github.com/katalvlaran/lcamatrix/index"
	"github.com/katalvlaran/lcamatrix/inventory"
	"github.com/katalvlaran/lcamatrix/provider"
	"github.com/katalvlaran/lcamatrix/results"
	"github.com/katalvlaran/lcamatrix/solver"
)

var (
	// ErrUnknownSystem indicates a setup naming a product system the provider lacks.
	ErrUnknownSystem = errors.New("calc: unknown product system")

	// ErrUnknownMethod indicates a setup naming an impact method the provider lacks.
	ErrUnknownMethod = errors.New("calc: unknown impact method")

	// ErrNilProvider is returned by New for a missing provider.
	ErrNilProvider = errors.New("calc: nil provider")
)

// SetupType selects how deep results are computed.
type SetupType uint8

const (
	// Simple computes scaling, total flow and total impact results.
	Simple SetupType = iota
	// Contribution adds direct per-process-product results.
	Contribution
	// Full adds upstream results.
	Full
)

// String implements fmt.Stringer.
func (t SetupType) String() string {
	switch t {
	case Simple:
		return "simple"
	case Contribution:
		return "contribution"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("SetupType(%d)", uint8(t))
	}
}

// Setup describes one calculation. Method is optional; Demand, when set,
// replaces the system's reference demand.
type Setup struct {
	SystemID int64
	Method   string
	Type     SetupType
	Demand   map[index.ProcessProduct]float64
}

// Calculation is the outcome of one Setup.
type Calculation struct {
	ID        uuid.UUID
	Setup     Setup
	Inventory *inventory.Inventory

	Simple       *results.SimpleResult
	Contribution *results.ContributionResult // Contribution and Full only
	Full         *results.FullResult         // Full only

	Gaps     []inventory.Gap
	Duration time.Duration
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Calculator) { c.logger = l }
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(c *Calculator) { c.metrics = m }
}

// WithSolver replaces the solver built from the settings.
func WithSolver(s solver.Solver) Option {
	return func(c *Calculator) { c.solver = s }
}

// Calculator runs calculations against one provider. It is safe for
// concurrent use: each calculation owns its indexes and matrices, and the
// provider and solver are only read.
type Calculator struct {
	provider provider.Provider
	settings config.Settings
	builder  []inventory.Option
	solver   solver.Solver
	logger   zerolog.Logger
	metrics  *Metrics
}

// New returns a Calculator. A nil settings uses the config defaults.
func New(p provider.Provider, settings *config.Settings, opts ...Option) (*Calculator, error) {
	if p == nil {
		return nil, ErrNilProvider
	}
	if settings == nil {
		var err error
		if settings, err = config.Load(""); err != nil {
			return nil, err
		}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	c := &Calculator{provider: p, settings: *settings, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.builder, err = settings.BuilderOptions(); err != nil {
		return nil, err
	}
	if c.solver == nil {
		if c.solver, err = settings.NewSolver(c.logger); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Calculate runs setup. ctx is checked before each solver call (the solve
// and, for Full setups, the inversion); a running solver call is not
// interrupted.
func (c *Calculator) Calculate(ctx context.Context, setup Setup) (*Calculation, error) {
	start := time.Now()
	res := &Calculation{ID: uuid.New(), Setup: setup}
	log := c.logger.With().Str("run", res.ID.String()).Int64("system", setup.SystemID).Logger()

	err := c.run(ctx, res, log)
	res.Duration = time.Since(start)
	outcome := classify(err)
	c.metrics.observe(outcome, res.Duration)
	if err != nil {
		log.Error().Err(err).Str("outcome", outcome).Msg("calculation failed")
		return nil, err
	}
	log.Info().
		Str("type", setup.Type.String()).
		Int("columns", res.Inventory.TechIndex().Size()).
		Int("gaps", len(res.Gaps)).
		Dur("duration", res.Duration).
		Msg("calculation finished")

	return res, nil
}

func (c *Calculator) run(ctx context.Context, res *Calculation, log zerolog.Logger) error {
	setup := res.Setup
	sys, ok := c.provider.System(setup.SystemID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSystem, setup.SystemID)
	}

	inv, err := inventory.Build(c.provider, sys, append(c.builder, inventory.WithLogger(log))...)
	if err != nil {
		return err
	}
	res.Inventory, res.Gaps = inv, inv.Gaps()
	c.metrics.inventory(inv.TechIndex().Size(), len(res.Gaps))

	engineOpts := []results.Option{results.WithLogger(log)}
	if setup.Method != "" {
		table, ok := c.provider.Method(setup.Method)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMethod, setup.Method)
		}
		categories, cm, err := table.Matrix(inv.FlowIndex())
		if err != nil {
			return err
		}
		engineOpts = append(engineOpts, results.WithImpacts(categories, cm))
	}
	engine, err := results.NewEngine(inv, c.solver, engineOpts...)
	if err != nil {
		return err
	}

	var demand []float64
	if setup.Demand != nil {
		if demand, err = inv.DemandFor(setup.Demand); err != nil {
			return err
		}
	}

	if err = ctx.Err(); err != nil {
		return err
	}
	if res.Simple, err = engine.Solve(demand); err != nil {
		return err
	}
	if setup.Type >= Contribution {
		if res.Contribution, err = engine.Contributions(); err != nil {
			return err
		}
	}
	if setup.Type == Full {
		if err = ctx.Err(); err != nil {
			return err
		}
		if res.Full, err = engine.Decompose(); err != nil {
			return err
		}
	}

	return nil
}

func classify(err error) string {
	var be *inventory.BuildError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &be):
		return OutcomeBuildError
	case errors.Is(err, solver.ErrSingular), errors.Is(err, solver.ErrNoConvergence):
		return OutcomeSolverError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

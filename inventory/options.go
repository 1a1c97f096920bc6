// SPDX-License-Identifier: MIT

package inventory

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// DefaultEpsilon is the tolerance used when checking that allocation factors sum to 1.
const DefaultEpsilon = 1e-9

// Option configures Build via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by Build.
type Option func(*Options)

// Options holds the builder parameters.
type Options struct {
	// Allocation overrides the per-process default method unless it is
	// AllocationUseDefault.
	Allocation AllocationMethod

	// StrictLinking turns the first unlinked technical exchange into an error
	// instead of a Gap.
	StrictLinking bool

	// Epsilon bounds |sum(factors) - 1| for allocation validation.
	Epsilon float64

	// Logger receives gap warnings and build summaries.
	Logger zerolog.Logger

	err error
}

// DefaultOptions returns Options with per-process allocation, lenient
// linking, DefaultEpsilon and a disabled logger.
func DefaultOptions() Options {
	return Options{
		Allocation: AllocationUseDefault,
		Epsilon:    DefaultEpsilon,
		Logger:     zerolog.Nop(),
	}
}

// WithAllocation sets the allocation method applied to all processes.
func WithAllocation(m AllocationMethod) Option {
	return func(o *Options) {
		if m > AllocationCausal {
			o.err = fmt.Errorf("%w: unknown allocation method %d", ErrOptionViolation, m)
			return
		}
		o.Allocation = m
	}
}

// WithStrictLinking makes unlinked technical exchanges fatal.
func WithStrictLinking() Option {
	return func(o *Options) { o.StrictLinking = true }
}

// WithEpsilon sets the allocation-sum tolerance. eps must be positive and finite.
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if !(eps > 0) || math.IsInf(eps, 0) {
			o.err = fmt.Errorf("%w: epsilon must be positive and finite (%v)", ErrOptionViolation, eps)
			return
		}
		o.Epsilon = eps
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

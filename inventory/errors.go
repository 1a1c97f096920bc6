// SPDX-License-Identifier: MIT

package inventory

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lcamatrix/index"
)

// Sentinel errors for inventory construction.
var (
	// ErrInvalidSystem is returned for a nil product system, a nil source or a
	// missing reference process-product.
	ErrInvalidSystem = errors.New("inventory: invalid product system")

	// ErrUnknownProcess indicates that a linked process is absent from the source.
	ErrUnknownProcess = errors.New("inventory: unknown process")

	// ErrZeroReference indicates a zero or missing reference amount for a column.
	ErrZeroReference = errors.New("inventory: zero or missing reference amount")

	// ErrAllocation indicates allocation factors that do not resolve to a usable fraction.
	ErrAllocation = errors.New("inventory: unusable allocation factors")

	// ErrUnknownFlowType indicates an exchange without a valid flow type.
	ErrUnknownFlowType = errors.New("inventory: unknown flow type")

	// ErrUnlinkedExchange is returned under WithStrictLinking for the first gap.
	ErrUnlinkedExchange = errors.New("inventory: unlinked technical exchange")

	// ErrUnknownProduct is returned by DemandFor for keys without a column.
	ErrUnknownProduct = errors.New("inventory: unknown process-product")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("inventory: invalid option supplied")
)

// BuildError is the single typed failure of a build. Key names the offending
// process-product; Err is one of the sentinels above, possibly wrapped.
type BuildError struct {
	Key index.ProcessProduct
	Err error
}

// Error implements error.
func (e *BuildError) Error() string {
	return fmt.Sprintf("inventory: build failed at %s: %v", e.Key, e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *BuildError) Unwrap() error { return e.Err }

func buildErrorf(key index.ProcessProduct, err error, format string, args ...any) error {
	return &BuildError{Key: key, Err: fmt.Errorf("%w: "+format, append([]any{err}, args...)...)}
}

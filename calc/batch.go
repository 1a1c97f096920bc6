// SPDX-License-Identifier: MIT

package calc

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// Outcome pairs a setup with its calculation or error.
type Outcome struct {
	Setup       Setup
	Calculation *Calculation
	Err         error
}

// RunAll runs independent setups concurrently, at most calc.maxParallel at
// a time. Outcomes keep the order of setups. The returned error joins all
// per-setup errors; one failing setup does not stop the others.
func (c *Calculator) RunAll(ctx context.Context, setups []Setup) ([]Outcome, error) {
	out := make([]Outcome, len(setups))
	p := pool.New().WithMaxGoroutines(c.settings.Calc.MaxParallel).WithContext(ctx)
	for i, setup := range setups {
		i, setup := i, setup
		p.Go(func(ctx context.Context) error {
			res, err := c.Calculate(ctx, setup)
			out[i] = Outcome{Setup: setup, Calculation: res, Err: err}
			if err != nil {
				return fmt.Errorf("system %d: %w", setup.SystemID, err)
			}
			return nil
		})
	}
	err := p.Wait()

	return out, err
}

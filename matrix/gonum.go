// SPDX-License-Identifier: MIT

package matrix

import "gonum.org/v1/gonum/mat"

// ToGonum copies m into a gonum dense matrix for the factorizations gonum
// provides. gonum has no zero-sized matrices, so empty shapes return nil.
func (m *Dense) ToGonum() *mat.Dense {
	if m.r == 0 || m.c == 0 {
		return nil
	}

	return mat.NewDense(m.r, m.c, m.RawRowMajor())
}

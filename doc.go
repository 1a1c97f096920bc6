// SPDX-License-Identifier: MIT

// Package lcamatrix builds life cycle inventory matrices from process data
// and propagates a final demand through them.
//
// What is in the box?
//
//	index/        - dense positions for process-products and elementary flows
//	matrix/       - Dense and accumulating Sparse storage, triplets, kernels
//	inventory/    - product system walk, allocation, technology and intervention matrices
//	impact/       - characterization factor tables as sparse C matrices
//	solver/       - LU (gonum) and sparse BiCGStab behind one Solver interface
//	results/      - simple, contribution and full (upstream) results
//	contribution/ - shares relative to max(|max|, |min|)
//	provider/     - in-memory master-data snapshot with a YAML loader
//	config/       - viper settings and the zerolog logger
//	calc/         - calculation runs, batches and prometheus metrics
//
// The core identity is the classic one:
//
//	A·s = f,  g = B·s,  h = C·g
//
// where A is the technology matrix, B the intervention matrix, f the final
// demand and s the scaling vector.
//
// Quick example, loading a snapshot and reading one total flow:
//
//	snap, _ := provider.LoadFile("snapshot.yaml")
//	c, _ := calc.New(snap, nil)
//	res, _ := c.Calculate(ctx, calc.Setup{SystemID: 1, Type: calc.Simple})
//	co2 := res.Simple.TotalFlowResult(co2FlowID)
//
//	go get github.com/katalvlaran/lcamatrix
package lcamatrix

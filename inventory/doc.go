// SPDX-License-Identifier: MIT

// Package inventory builds the technology and intervention matrices of a
// product system.
//
// # What
//
//   - Walks the linked graph breadth-first from the reference process-product
//     and assigns one technology column per reachable process-product.
//   - Classifies every exchange once (elementary, supplied product, demanded
//     product) and writes it with the sign convention below.
//   - Applies allocation factors for multi-output processes.
//   - Records unlinked technical inputs as gaps instead of failing.
//
// # Sign convention
//
//   - Supplied products (product outputs, waste inputs): +amount.
//   - Demanded products (product inputs, waste outputs): -amount.
//   - Avoided products and avoided wastes are demanded with +amount.
//   - Elementary outputs: +amount; elementary inputs: -amount.
//
// # Cycles
//
// Closed loops (A consumes from B which consumes from A) are legal. The
// reachability walk keeps a visited set, so each process-product gets one
// column no matter how many paths lead to it. No cycle detection or
// ordering is attempted; the solver resolves loops.
//
// # Errors
//
//   - ErrInvalidSystem: nil system or missing reference.
//   - ErrUnknownProcess: a linked process is not in the data source.
//   - ErrZeroReference: a column's reference amount is zero or missing.
//   - ErrAllocation: allocation factors missing, invalid or not summing to 1.
//   - ErrUnknownFlowType: an exchange has no flow type.
//   - ErrUnlinkedExchange: only with WithStrictLinking: a gap was found.
//
// Structural errors come wrapped in *BuildError carrying the offending
// process-product; match them with errors.Is / errors.As.
package inventory

// SPDX-License-Identifier: MIT

package index

import "fmt"

// NotFound is the position returned for keys that were never inserted.
const NotFound = -1

// ProcessProduct identifies one product (or waste) output of one process.
// It is the column key of the technology and intervention matrices.
type ProcessProduct struct {
	ProcessID int64 // owning process
	FlowID    int64 // provided product or treated waste flow
}

// Of is a small constructor used heavily in tests and builders.
func Of(processID, flowID int64) ProcessProduct {
	return ProcessProduct{ProcessID: processID, FlowID: flowID}
}

// String renders the pair as "process/flow" for logs and error messages.
func (p ProcessProduct) String() string {
	return fmt.Sprintf("%d/%d", p.ProcessID, p.FlowID)
}

// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.
//
// Call-array expansion and atomic batch execution. Expansion is a
// pure transform; execution is the only side-effecting stage of a
// transaction and runs strictly in call-array order.

package account

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
)

// ExpandCallArray converts compact call descriptors into
// self-contained calls. One Call is produced per descriptor,
// preserving input order, which is execution order. Each call's
// Calldata is a view into calldata sliced at the descriptor's window;
// a window reaching past the buffer fails with ErrArgsOutOfBounds
// before anything is dispatched.
func ExpandCallArray(descriptors []CallDescriptor, calldata []*felt.Felt) ([]Call, error) {
	calls := make([]Call, 0, len(descriptors))
	size := uint64(len(calldata))
	for i, desc := range descriptors {
		// Guard the sum against wraparound as well as the buffer end.
		if desc.DataOffset > size || desc.DataLen > size-desc.DataOffset {
			return nil, fmt.Errorf("%w: call %d window [%d, %d+%d) exceeds calldata length %d",
				ErrArgsOutOfBounds, i, desc.DataOffset, desc.DataOffset, desc.DataLen, size)
		}
		calls = append(calls, Call{
			To:       desc.To,
			Selector: desc.Selector,
			Calldata: calldata[desc.DataOffset : desc.DataOffset+desc.DataLen],
		})
	}
	return calls, nil
}

// BatchExecutor runs expanded calls against the external dispatch
// primitive with atomic batch semantics.
type BatchExecutor struct {
	dispatcher Dispatcher
}

// NewBatchExecutor returns an executor dispatching through dispatcher.
func NewBatchExecutor(dispatcher Dispatcher) *BatchExecutor {
	return &BatchExecutor{dispatcher: dispatcher}
}

// ExecuteAll dispatches calls one at a time, strictly in input order,
// and returns the concatenation of their results. Call boundaries are
// not preserved in the response; order is the only delimiter callers
// can rely on. If any call fails the whole batch fails with
// ErrDispatchFailed and no partial response is returned. An empty
// batch succeeds with an empty response.
func (e *BatchExecutor) ExecuteAll(calls []Call) ([]*felt.Felt, error) {
	response := make([]*felt.Felt, 0, len(calls))
	for i, call := range calls {
		result, err := e.dispatcher.CallContract(call.To, call.Selector, call.Calldata)
		if err != nil {
			return nil, fmt.Errorf("%w: call %d to %s: %v", ErrDispatchFailed, i, call.To, err)
		}
		response = append(response, result...)
	}
	return response, nil
}

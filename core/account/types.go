// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.
//
// Core data types for batched account execution, plus the interfaces
// the account expects its execution environment to provide.

package account

import (
	"github.com/NethermindEth/juno/core/felt"
)

// CallDescriptor is the compact, over-the-wire form of one sub-call.
// Instead of owning its arguments it references a window of the shared
// calldata buffer carried by the transaction, so overlapping argument
// data is never encoded twice.
type CallDescriptor struct {
	To         *felt.Felt `json:"to"`
	Selector   *felt.Felt `json:"selector"`
	DataOffset uint64     `json:"data_offset"`
	DataLen    uint64     `json:"data_len"`
}

// Call is the expanded, self-contained form of one sub-call. Calldata
// is a view into the transaction's shared buffer, sliced at
// [DataOffset, DataOffset+DataLen); it borrows from that buffer and
// must not be mutated.
type Call struct {
	To       *felt.Felt
	Selector *felt.Felt
	Calldata []*felt.Felt
}

// CallContext supplies the ambient execution environment of the
// current transaction. Identities are opaque field elements, only
// comparable for equality; a zero caller address is the sentinel for
// "no caller", i.e. a top-level transaction.
type CallContext interface {
	// CallerAddress returns the immediate caller identity.
	CallerAddress() *felt.Felt

	// AccountAddress returns the identity of the executing account.
	AccountAddress() *felt.Felt

	// TransactionHash returns the canonical digest of the current
	// transaction, the message the account signature covers.
	TransactionHash() *felt.Felt

	// TransactionSignature returns the signature attached to the
	// current transaction.
	TransactionSignature() []*felt.Felt
}

// Dispatcher executes a single sub-call in another contract. A call
// either returns its result sequence or fails; from the account's
// point of view it is synchronous and atomic.
type Dispatcher interface {
	CallContract(to, selector *felt.Felt, calldata []*felt.Felt) ([]*felt.Felt, error)
}

// Verifier is the elliptic-curve signature primitive. It reports
// whether (r, s) is a valid signature over digest for the given
// public key. Implementations must be side-effect free.
type Verifier interface {
	Verify(publicKey, digest, r, s *felt.Felt) bool
}

// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.
//
// Invoke transaction envelope and its canonical digest. The digest is
// the message account signatures cover; it commits to the flattened
// execute payload, the fee bound, the chain and the nonce.

package types

import (
	"github.com/NethermindEth/juno/core/crypto"
	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
)

// InvokeTxVersion is the transaction-hash version this envelope
// encodes.
const InvokeTxVersion = 1

// invokeTxPrefix domain-separates invoke digests from other
// transaction kinds sharing the hash construction.
var invokeTxPrefix = new(felt.Felt).SetBytes([]byte("invoke"))

// InvokeTx is one account transaction as submitted to the network:
// the sender account, the flattened execute payload, the anti-replay
// nonce and the two-scalar signature produced over Hash().
type InvokeTx struct {
	SenderAddress *felt.Felt
	ChainID       *felt.Felt
	Nonce         *uint256.Int
	MaxFee        *uint256.Int

	// Calldata is the flattened execute payload: the call-descriptor
	// array followed by the shared argument buffer.
	Calldata []*felt.Felt

	// Signature is the (r, s) scalar pair over Hash().
	Signature []*felt.Felt
}

// Copy returns a deep copy of the transaction.
func (tx *InvokeTx) Copy() *InvokeTx {
	cpy := &InvokeTx{
		Calldata:  make([]*felt.Felt, len(tx.Calldata)),
		Signature: make([]*felt.Felt, len(tx.Signature)),
	}
	if tx.SenderAddress != nil {
		cpy.SenderAddress = new(felt.Felt).Set(tx.SenderAddress)
	}
	if tx.ChainID != nil {
		cpy.ChainID = new(felt.Felt).Set(tx.ChainID)
	}
	if tx.Nonce != nil {
		cpy.Nonce = new(uint256.Int).Set(tx.Nonce)
	}
	if tx.MaxFee != nil {
		cpy.MaxFee = new(uint256.Int).Set(tx.MaxFee)
	}
	for i, d := range tx.Calldata {
		cpy.Calldata[i] = new(felt.Felt).Set(d)
	}
	for i, s := range tx.Signature {
		cpy.Signature[i] = new(felt.Felt).Set(s)
	}
	return cpy
}

// Hash computes the canonical transaction digest: a Pedersen array
// over the envelope fields, with the calldata committed through its
// own Pedersen array. The signature is not part of the digest.
func (tx *InvokeTx) Hash() *felt.Felt {
	return crypto.PedersenArray(
		invokeTxPrefix,
		new(felt.Felt).SetUint64(InvokeTxVersion),
		feltOrZero(tx.SenderAddress),
		new(felt.Felt), // reserved entry-point field, zero for __execute__
		crypto.PedersenArray(tx.Calldata...),
		feltFromUint256(tx.MaxFee),
		feltOrZero(tx.ChainID),
		feltFromUint256(tx.Nonce),
	)
}

func feltOrZero(f *felt.Felt) *felt.Felt {
	if f == nil {
		return new(felt.Felt)
	}
	return f
}

func feltFromUint256(v *uint256.Int) *felt.Felt {
	if v == nil {
		return new(felt.Felt)
	}
	b := v.Bytes32()
	return new(felt.Felt).SetBytes(b[:])
}

// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.
//
// Account state and the transaction orchestrator tying signature
// validation, replay protection and batch execution together.

package account

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

var (
	ErrInvalidSignature   = errors.New("invalid account signature")
	ErrMalformedSignature = errors.New("malformed account signature")
	ErrReentrantCall      = errors.New("account entry point called reentrantly")
	ErrNonceMismatch      = errors.New("invalid account nonce")
	ErrNonceOverflow      = errors.New("account nonce counter exhausted")
	ErrArgsOutOfBounds    = errors.New("call arguments out of calldata bounds")
	ErrDispatchFailed     = errors.New("sub-call dispatch failed")
	ErrUnauthorized       = errors.New("caller is not the account itself")
)

// Account is the singleton state of one deployed account contract:
// the verification key and the per-key nonce counters, plus the
// injected environment collaborators. All mutation goes through the
// guarded entry points; the orchestrator owns the nonce registry
// exclusively for the duration of a transaction.
type Account struct {
	publicKey *felt.Felt
	nonces    *NonceRegistry

	validator *SignatureValidator
	executor  *BatchExecutor
}

// NewAccount initializes an account with its verification key and the
// environment primitives it executes against. Called once, at
// deployment.
func NewAccount(publicKey *felt.Felt, verifier Verifier, dispatcher Dispatcher) *Account {
	return &Account{
		publicKey: new(felt.Felt).Set(publicKey),
		nonces:    NewNonceRegistry(),
		validator: NewSignatureValidator(verifier),
		executor:  NewBatchExecutor(dispatcher),
	}
}

// Execute is the account's only externally invocable mutating entry
// point. It authenticates the ambient transaction, consumes its
// nonce, expands the call array over the shared calldata buffer and
// dispatches the batch atomically, returning the concatenated
// sub-call results.
//
// The nonce is consumed before any dispatch: a transaction whose
// batch fails mid-flight still spends its nonce, so a failed attempt
// cannot be replayed to probe for a different outcome.
func (a *Account) Execute(env CallContext, descriptors []CallDescriptor, calldata []*felt.Felt, nonce *uint256.Int) ([]*felt.Felt, error) {
	ok, err := a.validator.IsValid(a.publicKey, env.TransactionHash(), env.TransactionSignature())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidSignature
	}
	return a.executeRaw(env, descriptors, calldata, nonce)
}

// executeRaw runs the post-authentication stages: reentrancy guard,
// nonce consumption, expansion and dispatch. It is deliberately
// unexported so the only path reaching it is Execute, after the
// signature check has already succeeded.
func (a *Account) executeRaw(env CallContext, descriptors []CallDescriptor, calldata []*felt.Felt, nonce *uint256.Int) ([]*felt.Felt, error) {
	if caller := env.CallerAddress(); caller != nil && !caller.IsZero() {
		return nil, fmt.Errorf("%w: caller %s", ErrReentrantCall, caller)
	}
	if nonce == nil {
		return nil, fmt.Errorf("%w: missing nonce", ErrNonceMismatch)
	}

	key := NonceKey(nonce)
	if err := a.nonces.ValidateAndConsume(key, nonce); err != nil {
		return nil, err
	}

	calls, err := ExpandCallArray(descriptors, calldata)
	if err != nil {
		return nil, err
	}

	response, err := a.executor.ExecuteAll(calls)
	if err != nil {
		log.Warn("Account batch failed", "account", env.AccountAddress(), "nonceKey", key, "calls", len(calls), "err", err)
		return nil, err
	}

	log.Debug("Account batch executed", "account", env.AccountAddress(), "nonceKey", key, "calls", len(calls), "responseLen", len(response))
	return response, nil
}

// IsValidSignature checks a two-scalar signature over an arbitrary
// digest against the account's public key. Read-only; exposed for
// off-chain consumers and other contracts.
func (a *Account) IsValidSignature(digest *felt.Felt, signature []*felt.Felt) (bool, error) {
	return a.validator.IsValid(a.publicKey, digest, signature)
}

// GetPublicKey returns the account's verification key.
func (a *Account) GetPublicKey() *felt.Felt {
	return new(felt.Felt).Set(a.publicKey)
}

// SetPublicKey rotates the account's verification key. Only the
// account itself may call it: the immediate caller identity must
// equal the executing account's identity, i.e. the rotation must
// arrive as a self-call from an already-authenticated batch.
func (a *Account) SetPublicKey(env CallContext, newKey *felt.Felt) error {
	caller, self := env.CallerAddress(), env.AccountAddress()
	if caller == nil || self == nil || !caller.Equal(self) {
		return fmt.Errorf("%w: caller %s, account %s", ErrUnauthorized, caller, self)
	}
	a.publicKey = new(felt.Felt).Set(newKey)
	log.Info("Account public key rotated", "account", self)
	return nil
}

// GetNonce returns the logical nonce (key*2^64 + counter) expected
// for the next transaction under key. Fails with ErrNonceOverflow
// once the key's counter space is exhausted.
func (a *Account) GetNonce(key *uint256.Int) (*uint256.Int, error) {
	return a.nonces.Logical(key)
}

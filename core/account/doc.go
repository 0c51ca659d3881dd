// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.

/*
Package account implements the authorization and execution core of a
Starknet-style smart-contract account.

An Account decides whether a submitted transaction is authentic,
prevents it from being replayed, and executes a batch of sub-calls
atomically within that transaction.

# Architecture

The package is built from four components wired into one pipeline:

 1. SignatureValidator - checks that the ambient transaction signature
    is a well-formed (r, s) scalar pair and verifies it against the
    account's public key through an injected curve verifier.

 2. NonceRegistry - a two-dimensional anti-replay counter. A logical
    nonce is nonceKey*2^64 + counter; counters advance by exactly one
    per executed transaction and never roll over.

 3. Call expansion - compact call descriptors referencing windows of a
    shared calldata buffer are expanded into self-contained calls that
    borrow (never copy) their argument views.

 4. BatchExecutor - dispatches the expanded calls strictly in order
    through an injected Dispatcher, concatenating the per-call results
    into a single response. Any sub-call failure aborts the whole
    batch with nothing applied.

# Transaction Flow

	Caller invokes Account.Execute
	    1. Verify signature over the ambient transaction hash
	    2. Reentrancy guard: caller must be the zero sentinel
	    3. Validate and consume the nonce (the only state write
	       before dispatch; it stays consumed even if a later
	       step fails)
	    4. Expand the call array over the shared calldata
	    5. Dispatch each call in order, concatenate results

The external environment (caller identity, account address, ambient
transaction hash and signature) is supplied through the CallContext
interface; the cross-contract call mechanism through Dispatcher. Both
are injected at construction, which keeps every component testable
against in-memory fakes.
*/
package account

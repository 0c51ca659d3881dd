// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.
//
// Signature validation over the ambient transaction digest. The
// validator is pure: it holds no account state and performs no
// external calls, which keeps it reusable for non-transaction
// signature checks (IsValidSignature queries).

package account

import (
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
)

// signatureLen is the only accepted signature shape: the scalar pair
// (r, s). Anything else is rejected as malformed rather than silently
// truncated.
const signatureLen = 2

// SignatureValidator checks two-scalar signatures against a public
// key through an injected curve primitive.
type SignatureValidator struct {
	verifier Verifier
}

// NewSignatureValidator returns a validator delegating scalar-pair
// verification to verifier.
func NewSignatureValidator(verifier Verifier) *SignatureValidator {
	return &SignatureValidator{verifier: verifier}
}

// IsValid reports whether signature is a valid (r, s) pair over
// digest for publicKey. A cryptographic mismatch is a false result,
// not an error; the caller decides whether that is fatal. A signature
// that does not decode into exactly two scalars fails with
// ErrMalformedSignature.
func (v *SignatureValidator) IsValid(publicKey, digest *felt.Felt, signature []*felt.Felt) (bool, error) {
	if len(signature) != signatureLen {
		return false, fmt.Errorf("%w: got %d elements, want %d", ErrMalformedSignature, len(signature), signatureLen)
	}
	r, s := signature[0], signature[1]
	if r == nil || s == nil {
		return false, fmt.Errorf("%w: nil scalar", ErrMalformedSignature)
	}
	return v.verifier.Verify(publicKey, digest, r, s), nil
}

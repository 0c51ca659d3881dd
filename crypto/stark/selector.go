// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.

package stark

import (
	"github.com/NethermindEth/juno/core/felt"
	"golang.org/x/crypto/sha3"
)

// SelectorFromName derives the entry-point selector for a function
// name: the Keccak-256 of the name truncated to its low 250 bits
// (the starknet_keccak construction), so the result always fits a
// field element.
func SelectorFromName(name string) *felt.Felt {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))
	digest := h.Sum(nil)
	digest[0] &= 0x03 // keep 250 bits
	return new(felt.Felt).SetBytes(digest)
}

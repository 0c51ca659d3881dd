// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.
//
// Two-dimensional anti-replay nonce registry. The high bits of a
// logical nonce select an independent counter stream, so unrelated
// transaction flows need no ordering between each other while each
// stream stays strictly monotonic.

package account

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

// nonceKeyBits is the bit position splitting a logical nonce into its
// (key, counter) components: nonce = key*2^64 + counter.
const nonceKeyBits = 64

// nonceSlot is the persisted per-key state. exhausted marks a counter
// that has reached 2^64, a value uint64 cannot carry; the key is then
// terminally unusable (no rollover).
type nonceSlot struct {
	counter   uint64
	exhausted bool
}

// NonceRegistry maps nonce keys to the next expected counter value.
// The zero value is not usable; construct with NewNonceRegistry.
type NonceRegistry struct {
	slots map[uint256.Int]nonceSlot
}

// NewNonceRegistry returns an empty registry: every key starts at
// counter zero.
func NewNonceRegistry() *NonceRegistry {
	return &NonceRegistry{
		slots: make(map[uint256.Int]nonceSlot),
	}
}

// NonceKey extracts the key component of a logical nonce.
func NonceKey(nonce *uint256.Int) *uint256.Int {
	return new(uint256.Int).Rsh(nonce, nonceKeyBits)
}

// NextExpected returns the counter value the next transaction under
// key must carry. Fails with ErrNonceOverflow once the key's counter
// space is exhausted.
func (r *NonceRegistry) NextExpected(key *uint256.Int) (uint64, error) {
	slot := r.slots[*key]
	if slot.exhausted {
		return 0, fmt.Errorf("%w: key %s", ErrNonceOverflow, key)
	}
	return slot.counter, nil
}

// Logical returns the full logical nonce currently expected under key,
// i.e. key*2^64 + counter. Fails with ErrNonceOverflow for an
// exhausted key.
func (r *NonceRegistry) Logical(key *uint256.Int) (*uint256.Int, error) {
	counter, err := r.NextExpected(key)
	if err != nil {
		return nil, err
	}
	nonce := new(uint256.Int).Lsh(key, nonceKeyBits)
	return nonce.Or(nonce, uint256.NewInt(counter)), nil
}

// ValidateAndConsume checks that proposed equals the logical nonce
// currently expected under key and, on success, advances the stored
// counter by exactly one. This is the registry's only mutator and must
// run at most once per transaction, after signature validation and
// before any external dispatch.
func (r *NonceRegistry) ValidateAndConsume(key, proposed *uint256.Int) error {
	expected, err := r.Logical(key)
	if err != nil {
		return err
	}
	if !expected.Eq(proposed) {
		return fmt.Errorf("%w: expected %s, got %s", ErrNonceMismatch, expected, proposed)
	}

	slot := r.slots[*key]
	if slot.counter == math.MaxUint64 {
		// The consumed counter was 2^64-1; the next one would be
		// 2^64, out of the representable range. Poison the key.
		slot.exhausted = true
	}
	slot.counter++
	r.slots[*key] = slot
	return nil
}

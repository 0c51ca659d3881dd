// Copyright 2025 The starknet-accounts Authors
// This file is part of the starknet-accounts library.

package account

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestNonceRegistryFreshKey(t *testing.T) {
	reg := NewNonceRegistry()

	counter, err := reg.NextExpected(uint256.NewInt(0))
	require.NoError(t, err)
	require.Zero(t, counter)

	counter, err = reg.NextExpected(uint256.NewInt(42))
	require.NoError(t, err)
	require.Zero(t, counter)
}

func TestNonceRegistryStrictIncrement(t *testing.T) {
	reg := NewNonceRegistry()
	key := uint256.NewInt(0)

	for i := uint64(0); i < 3; i++ {
		require.NoError(t, reg.ValidateAndConsume(key, uint256.NewInt(i)))
	}

	counter, err := reg.NextExpected(key)
	require.NoError(t, err)
	require.Equal(t, uint64(3), counter)
}

func TestNonceRegistryMismatch(t *testing.T) {
	reg := NewNonceRegistry()
	key := uint256.NewInt(0)

	// Skipping ahead is rejected, as is re-using a consumed value.
	require.ErrorIs(t, reg.ValidateAndConsume(key, uint256.NewInt(1)), ErrNonceMismatch)
	require.NoError(t, reg.ValidateAndConsume(key, uint256.NewInt(0)))
	require.ErrorIs(t, reg.ValidateAndConsume(key, uint256.NewInt(0)), ErrNonceMismatch)

	// A failed validation must not advance the counter.
	counter, err := reg.NextExpected(key)
	require.NoError(t, err)
	require.Equal(t, uint64(1), counter)
}

func TestNonceRegistryLogicalEncoding(t *testing.T) {
	reg := NewNonceRegistry()
	key := uint256.NewInt(5)

	nonce, err := reg.Logical(key)
	require.NoError(t, err)
	want := new(uint256.Int).Lsh(key, 64)
	require.True(t, nonce.Eq(want))

	// A proposed nonce must carry the key in its high bits; the bare
	// counter is a mismatch for a non-zero key.
	require.ErrorIs(t, reg.ValidateAndConsume(key, uint256.NewInt(0)), ErrNonceMismatch)
	require.NoError(t, reg.ValidateAndConsume(key, want))

	nonce, err = reg.Logical(key)
	require.NoError(t, err)
	require.True(t, nonce.Eq(new(uint256.Int).Or(want, uint256.NewInt(1))))
}

func TestNonceRegistryKeysAreIndependent(t *testing.T) {
	reg := NewNonceRegistry()

	require.NoError(t, reg.ValidateAndConsume(uint256.NewInt(0), uint256.NewInt(0)))
	require.NoError(t, reg.ValidateAndConsume(uint256.NewInt(0), uint256.NewInt(1)))

	counter, err := reg.NextExpected(uint256.NewInt(9))
	require.NoError(t, err)
	require.Zero(t, counter, "traffic on one key must not advance another")
}

func TestNonceRegistryExhaustion(t *testing.T) {
	reg := NewNonceRegistry()
	key := uint256.NewInt(0)
	reg.slots[*key] = nonceSlot{counter: math.MaxUint64}

	// The final representable counter is still consumable.
	require.NoError(t, reg.ValidateAndConsume(key, uint256.NewInt(math.MaxUint64)))

	// After that the key is terminally exhausted: no reads, no
	// consumption, no wraparound to zero.
	_, err := reg.NextExpected(key)
	require.ErrorIs(t, err, ErrNonceOverflow)
	_, err = reg.Logical(key)
	require.ErrorIs(t, err, ErrNonceOverflow)
	require.ErrorIs(t, reg.ValidateAndConsume(key, uint256.NewInt(0)), ErrNonceOverflow)
}

func TestNonceKeyDerivation(t *testing.T) {
	nonce := new(uint256.Int).Lsh(uint256.NewInt(7), 64)
	nonce.Or(nonce, uint256.NewInt(123))
	require.True(t, NonceKey(nonce).Eq(uint256.NewInt(7)))
	require.True(t, NonceKey(uint256.NewInt(123)).IsZero())
}

// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmissionZeroAtCurveStart(t *testing.T) {
	// ln(1) = 0, so the first submission mints nothing
	mint, carry, err := computeEmission(1000000, 1, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), mint)
	assert.True(t, carry.IsZero())
}

func TestEmissionZeroBelowCurveStart(t *testing.T) {
	mint, carry, err := computeEmission(1000000, 0, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), mint)
	assert.True(t, carry.IsZero())
}

func TestEmissionZeroMultiplier(t *testing.T) {
	prior := decimal.RequireFromString("0.75")
	mint, carry, err := computeEmission(0, 10, prior)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), mint)
	assert.True(t, carry.Equal(prior), "carry must pass through unchanged")
}

func TestEmissionKnownValue(t *testing.T) {
	// 100 * ln(10) / 10 = 23.02585...
	mint, carry, err := computeEmission(100, 10, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, uint64(23), mint)
	assert.True(t, carry.IsPositive())
	assert.True(t, carry.LessThan(decimal.NewFromInt(1)))
}

func TestEmissionCarryLiftsMint(t *testing.T) {
	// The same inputs with a carry just below the next integer must mint
	// one more token than with no carry
	base, _, err := computeEmission(100, 10, decimal.Zero)
	require.NoError(t, err)
	lifted, newCarry, err := computeEmission(
		100,
		10,
		decimal.RequireFromString("0.99"),
	)
	require.NoError(t, err)
	assert.Equal(t, base+1, lifted)
	assert.True(t, newCarry.LessThan(decimal.NewFromInt(1)))
}

func TestEmissionDecay(t *testing.T) {
	// ln(x)/x falls monotonically past x=e, so later submissions always
	// mint less at the same multiplier
	var prev uint64
	for i, x := range []uint64{3, 10, 100, 1000, 10000} {
		mint, _, err := computeEmission(100000000, x, decimal.Zero)
		require.NoError(t, err)
		if i > 0 {
			assert.Less(t, mint, prev, "emission must decay with x")
		}
		prev = mint
	}
}

func TestEmissionClampedAtCeiling(t *testing.T) {
	// A pathological multiplier is clamped to the supply ceiling before
	// truncation, leaving no carry
	mint, carry, err := computeEmission(^uint64(0), 3, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, MaxMint, mint)
	assert.True(t, carry.IsZero())
}

func TestEmissionCarryConservation(t *testing.T) {
	// Chained truncation with carry must conserve the exact curve total:
	// after any number of steps, minted + carry equals the sum of the
	// exact per-step values
	const mult = 12345
	carry := decimal.Zero
	var minted uint64
	exact := decimal.Zero
	multDec := decimal.NewFromInt(mult)
	for x := uint64(2); x <= 50; x++ {
		mint, newCarry, err := computeEmission(mult, x, carry)
		require.NoError(t, err)
		minted += mint
		carry = newCarry

		xDec := decimal.NewFromUint64(x)
		lnX, err := xDec.Ln(emissionPrecision)
		require.NoError(t, err)
		exact = exact.Add(multDec.Mul(lnX).DivRound(xDec, emissionPrecision))

		assert.False(t, carry.IsNegative(), "carry must never go negative")
		assert.True(
			t,
			carry.LessThan(decimal.NewFromInt(1)),
			"carry must stay below one whole token",
		)
		total := decimal.NewFromUint64(minted).Add(carry)
		assert.True(
			t,
			total.Equal(exact),
			"minted+carry %s diverged from exact curve sum %s at x=%d",
			total,
			exact,
			x,
		)
	}
	assert.Positive(t, minted)
}

func TestEmissionDeterministic(t *testing.T) {
	carry := decimal.RequireFromString("0.123456789")
	mintA, carryA, err := computeEmission(98765, 4321, carry)
	require.NoError(t, err)
	mintB, carryB, err := computeEmission(98765, 4321, carry)
	require.NoError(t, err)
	assert.Equal(t, mintA, mintB)
	assert.True(t, carryA.Equal(carryB))
}

func TestParseCarry(t *testing.T) {
	zero, err := parseCarry("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	half, err := parseCarry("0.5")
	require.NoError(t, err)
	assert.True(t, half.Equal(decimal.RequireFromString("0.5")))

	_, err = parseCarry("not-a-number")
	require.ErrorIs(t, err, ErrCorruptState)
}

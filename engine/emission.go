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
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// emissionPrecision is the fixed decimal precision used for the curve.
	// All nodes evaluating the same inputs produce bit-identical results.
	emissionPrecision = 32

	// MaxMint is the hard supply ceiling applied before truncation
	MaxMint = uint64(10_000_000_000_000_000)
)

var maxMintDecimal = decimal.NewFromUint64(MaxMint)

// computeEmission prices one submission on the logarithmic decay curve
// mint = multiplier * ln(x) / x + carry. The result is clamped to MaxMint
// and truncated to an integer token amount; the fractional remainder is
// returned as the new carry so long-run minted supply converges to the
// integral of the curve instead of losing dust on every truncation.
//
// The curve yields zero for x < 1 (ln is undefined below 1).
func computeEmission(
	multiplier uint64,
	x uint64,
	carry decimal.Decimal,
) (uint64, decimal.Decimal, error) {
	if x < 1 || multiplier == 0 {
		return 0, carry, nil
	}
	xDec := decimal.NewFromUint64(x)
	lnX, err := xDec.Ln(emissionPrecision)
	if err != nil {
		return 0, carry, fmt.Errorf("emission curve: %w", err)
	}
	raw := decimal.NewFromUint64(multiplier).
		Mul(lnX).
		DivRound(xDec, emissionPrecision)
	total := raw.Add(carry)
	// Clamp to the supply ceiling before truncation
	if total.GreaterThan(maxMintDecimal) {
		total = maxMintDecimal
	}
	truncated := total.Floor()
	mint := truncated.BigInt().Uint64()
	newCarry := total.Sub(truncated)
	return mint, newCarry, nil
}

// parseCarry decodes the persisted fractional carry. An empty value decodes
// to zero so a freshly initialized registry needs no special case.
func parseCarry(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	carry, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: carry %q", ErrCorruptState, s)
	}
	return carry, nil
}

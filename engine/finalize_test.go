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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submitEscrowedClaim anchors a claim with a nonzero escrow by burning the
// zero-emission first counter position on a throwaway submission when needed.
// Returns the hash and the escrowed amount.
func submitEscrowedClaim(
	t *testing.T,
	h *testHarness,
	name string,
	author string,
) ([]byte, uint64) {
	t.Helper()
	globals, err := h.engine.Globals()
	require.NoError(t, err)
	if globals.X == 1 {
		require.NoError(t, h.engine.Submit(
			"curve.warmup",
			EventTypeAddClaim,
			hashOf(name+" warmup"),
			nil,
			h.now,
			nil,
			nil,
		))
	}
	hash := hashOf(name)
	require.NoError(t, h.engine.Submit(
		author,
		EventTypeAddClaim,
		hash,
		nil,
		h.now,
		nil,
		nil,
	))
	anchor, err := h.db.GetAnchorByHash(hash, nil)
	require.NoError(t, err)
	require.NotNil(t, anchor)
	require.Positive(t, anchor.EscrowedAmount)
	return hash, anchor.EscrowedAmount
}

// closeWindow advances the clock past every default vote window
func closeWindow(h *testHarness) {
	h.advance(uint64(MaxVoteWindow))
}

func TestFinalizeWindowStillOpen(t *testing.T) {
	h := newInitializedHarness(t)
	hash := submitClaim(t, h, "open window")
	require.NoError(t, h.engine.Vote("bob", hash, 1))
	require.ErrorIs(t, h.engine.Finalize(hash), ErrWindowOpen)
}

func TestFinalizeIdempotenceGuard(t *testing.T) {
	h := newInitializedHarness(t)
	hash := submitClaim(t, h, "finalize twice")
	closeWindow(h)
	require.NoError(t, h.engine.Finalize(hash))
	require.ErrorIs(t, h.engine.Finalize(hash), ErrAlreadyFinalized)
}

func TestFinalizeUnknownAnchor(t *testing.T) {
	h := newInitializedHarness(t)
	require.ErrorIs(t, h.engine.Finalize(hashOf("missing")), ErrNotFound)
}

func TestFinalizeNoVotesRejects(t *testing.T) {
	h := newInitializedHarness(t)
	hash := submitClaim(t, h, "no votes")
	closeWindow(h)
	require.NoError(t, h.engine.Finalize(hash))

	anchor, err := h.db.GetAnchorByHash(hash, nil)
	require.NoError(t, err)
	assert.True(t, anchor.Finalized)
}

func TestFinalizeAcceptedDistribution(t *testing.T) {
	h := newInitializedHarness(t)
	hash, escrowed := submitEscrowedClaim(t, h, "accepted claim", "alice")
	require.NoError(t, h.engine.Vote("bob", hash, 1))
	require.NoError(t, h.engine.Vote("carol", hash, 1))
	closeWindow(h)

	escrowBefore := h.tokens.Balance(DefaultEscrowAccount)
	require.NoError(t, h.engine.Finalize(hash))

	// Author takes the configured split, voters divide the remainder
	authorShare := escrowed * 5000 / 10000
	votersShare := escrowed - authorShare
	perVoter := votersShare / 2
	assert.Equal(t, authorShare, h.tokens.Balance("alice"))
	assert.Equal(t, perVoter, h.tokens.Balance("bob"))
	assert.Equal(t, perVoter, h.tokens.Balance("carol"))

	// Whatever integer division leaves behind stays in escrow
	paid := authorShare + 2*perVoter
	assert.Equal(
		t,
		escrowBefore-paid,
		h.tokens.Balance(DefaultEscrowAccount),
	)
}

func TestFinalizeRejectedDistribution(t *testing.T) {
	h := newInitializedHarness(t)
	hash, escrowed := submitEscrowedClaim(t, h, "rejected claim", "alice")
	require.NoError(t, h.engine.Vote("bob", hash, -1))
	require.NoError(t, h.engine.Vote("carol", hash, 1))
	// 1 up vs 1 down is far below the 90% threshold
	closeWindow(h)
	require.NoError(t, h.engine.Finalize(hash))

	votersShare := escrowed * 5000 / 10000
	assert.Equal(t, uint64(0), h.tokens.Balance("alice"))
	assert.Equal(t, votersShare, h.tokens.Balance("bob"))
	assert.Equal(t, uint64(0), h.tokens.Balance("carol"))
}

func TestFinalizeThresholdBoundary(t *testing.T) {
	h := newInitializedHarness(t)

	// Exactly at the 9000bp threshold: 9 up, 1 down out of 10 accepts
	accept := submitClaim(t, h, "boundary accept")
	for _, voter := range []string{
		"v1", "v2", "v3", "v4", "v5", "v6", "v7", "v8", "v9",
	} {
		require.NoError(t, h.engine.Vote(voter, accept, 1))
	}
	require.NoError(t, h.engine.Vote("v10", accept, -1))

	// Just below: 10 up, 90 down by weight rejects
	reject := submitClaim(t, h, "boundary reject")
	setReputation(t, h, "small", 10)
	setReputation(t, h, "large", 90)
	require.NoError(t, h.engine.Vote("small", reject, 1))
	require.NoError(t, h.engine.Vote("large", reject, -1))

	closeWindow(h)
	require.NoError(t, h.engine.Finalize(accept))
	require.NoError(t, h.engine.Finalize(reject))

	acceptAnchor, err := h.db.GetAnchorByHash(accept, nil)
	require.NoError(t, err)
	rejectAnchor, err := h.db.GetAnchorByHash(reject, nil)
	require.NoError(t, err)
	assert.True(t, acceptAnchor.Finalized)
	assert.True(t, rejectAnchor.Finalized)

	// Authors of zero-escrow anchors see no payment either way; distinguish
	// outcomes through the recorded votes instead
	votes, err := h.db.GetVotesByAnchor(reject, nil)
	require.NoError(t, err)
	var up, down uint64
	for _, vote := range votes {
		if vote.Value > 0 {
			up += uint64(vote.Weight)
		} else if vote.Value < 0 {
			down += uint64(vote.Weight)
		}
	}
	assert.Equal(t, uint64(10), up)
	assert.Equal(t, uint64(90), down)
	assert.Negative(t, cmp128(up, 10000, up+down, 9000))
}

func TestFinalizeNeutralVotesExcluded(t *testing.T) {
	h := newInitializedHarness(t)
	hash, escrowed := submitEscrowedClaim(t, h, "neutral heavy", "alice")
	require.NoError(t, h.engine.Vote("bob", hash, 1))
	for _, voter := range []string{"n1", "n2", "n3"} {
		require.NoError(t, h.engine.Vote(voter, hash, 0))
	}
	closeWindow(h)
	require.NoError(t, h.engine.Finalize(hash))

	// One approval and no rejections accepts despite the neutral votes;
	// neutral voters receive nothing
	authorShare := escrowed * 5000 / 10000
	assert.Equal(t, authorShare, h.tokens.Balance("alice"))
	assert.Equal(t, escrowed-authorShare, h.tokens.Balance("bob"))
	assert.Equal(t, uint64(0), h.tokens.Balance("n1"))
}

func TestFinalizeRejectedNoDownVotersFailsOpen(t *testing.T) {
	h := newInitializedHarness(t)
	hash, _ := submitEscrowedClaim(t, h, "all neutral", "alice")
	require.NoError(t, h.engine.Vote("n1", hash, 0))
	closeWindow(h)

	escrowBefore := h.tokens.Balance(DefaultEscrowAccount)
	require.NoError(t, h.engine.Finalize(hash))

	// No down voters and no stakers: the voter share is not distributed
	// and the staker share has nowhere to go, so escrow keeps everything
	assert.Equal(t, escrowBefore, h.tokens.Balance(DefaultEscrowAccount))
	assert.Equal(t, uint64(0), h.tokens.Balance("alice"))
	assert.Equal(t, uint64(0), h.tokens.Balance("n1"))
}

func TestFinalizeAttestationGate(t *testing.T) {
	h := newInitializedHarness(t)
	hash := hashOf("gated release")
	require.NoError(t, h.engine.Submit(
		"label",
		EventTypeReleaseBundle,
		hash,
		nil,
		h.now,
		nil,
		nil,
	))
	require.NoError(t, h.engine.Vote("bob", hash, 1))
	closeWindow(h)

	// Release bundles cannot finalize without a trusted attestation
	require.ErrorIs(t, h.engine.Finalize(hash), ErrNotFound)

	require.NoError(t, h.engine.Attest(testOracle, hash, EventTypeReleaseBundle))
	require.NoError(t, h.engine.Finalize(hash))
}

func TestFinalizeRejectedCreditsStakers(t *testing.T) {
	h := newInitializedHarness(t)
	node := hashOf("staked node")
	h.fund(t, "staker1", 1000)
	require.NoError(t, h.engine.Stake("staker1", node, 1000))

	hash, escrowed := submitEscrowedClaim(t, h, "staker credit", "alice")
	require.NoError(t, h.engine.Vote("bob", hash, -1))
	closeWindow(h)
	require.NoError(t, h.engine.Finalize(hash))

	votersShare := escrowed * 5000 / 10000
	stakersShare := escrowed - votersShare
	pending, err := h.db.GetPendingReward("staker1", node, nil)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, stakersShare, pending.Amount)
}

func TestFinalizeWhilePaused(t *testing.T) {
	h := newInitializedHarness(t)
	hash := submitClaim(t, h, "paused finalize")
	closeWindow(h)
	require.NoError(t, h.engine.Pause(testAdmin))
	require.ErrorIs(t, h.engine.Finalize(hash), ErrPaused)
}

func TestMulDiv(t *testing.T) {
	assert.Equal(t, uint64(500), mulDiv(1000, 5000, 10000))
	assert.Equal(t, uint64(0), mulDiv(1000, 5000, 0))
	// 128-bit intermediate avoids wrapping
	big := uint64(1) << 62
	assert.Equal(t, big, mulDiv(big, 10000, 10000))
	// Saturates instead of overflowing the quotient
	assert.Equal(t, ^uint64(0), mulDiv(^uint64(0), ^uint64(0), 2))
}

func TestCmp128(t *testing.T) {
	assert.Equal(t, 0, cmp128(9, 10000, 10, 9000))
	assert.Equal(t, 1, cmp128(10, 10000, 10, 9000))
	assert.Equal(t, -1, cmp128(8, 10000, 10, 9000))
	// Products that overflow 64 bits still compare correctly
	big := uint64(1) << 63
	assert.Equal(t, 1, cmp128(big, 4, big, 3))
}

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

	"github.com/blinklabs-io/polaris/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOnly(t *testing.T) {
	h := newInitializedHarness(t)
	require.ErrorIs(t, h.engine.SetOracle("mallory", "evil"), ErrUnauthorized)
	require.ErrorIs(t, h.engine.Pause("mallory"), ErrUnauthorized)
	require.ErrorIs(t, h.engine.Reset("mallory"), ErrUnauthorized)
	require.ErrorIs(
		t,
		h.engine.SetParams("mallory", 9000, 100, 50),
		ErrUnauthorized,
	)
}

func TestSetOracle(t *testing.T) {
	h := newInitializedHarness(t)
	require.NoError(t, h.engine.SetOracle(testAdmin, "oracle.next"))
	globals, err := h.engine.Globals()
	require.NoError(t, err)
	assert.Equal(t, "oracle.next", globals.OracleAccount)

	require.ErrorIs(t, h.engine.SetOracle(testAdmin, ""), ErrInvalidInput)
}

func TestSetParams(t *testing.T) {
	h := newInitializedHarness(t)
	require.NoError(t, h.engine.SetParams(testAdmin, 7500, 200, 100))
	globals, err := h.engine.Globals()
	require.NoError(t, err)
	assert.Equal(t, uint64(7500), globals.ApprovalThresholdBp)
	assert.Equal(t, uint32(200), globals.MaxVoteWeight)
	assert.Equal(t, uint32(100), globals.AttestorThreshold)
}

func TestSetParamsBounds(t *testing.T) {
	h := newInitializedHarness(t)
	// Threshold outside 5000-9500
	require.ErrorIs(
		t,
		h.engine.SetParams(testAdmin, 4999, 100, 50),
		ErrInvalidInput,
	)
	require.ErrorIs(
		t,
		h.engine.SetParams(testAdmin, 9501, 100, 50),
		ErrInvalidInput,
	)
	// Vote weight outside 1-10000
	require.ErrorIs(
		t,
		h.engine.SetParams(testAdmin, 9000, 0, 50),
		ErrInvalidInput,
	)
	require.ErrorIs(
		t,
		h.engine.SetParams(testAdmin, 9000, 10001, 50),
		ErrInvalidInput,
	)
	// Attestor threshold outside 1-1000
	require.ErrorIs(
		t,
		h.engine.SetParams(testAdmin, 9000, 100, 0),
		ErrInvalidInput,
	)
	require.ErrorIs(
		t,
		h.engine.SetParams(testAdmin, 9000, 100, 1001),
		ErrInvalidInput,
	)
}

func TestSetVoteWindows(t *testing.T) {
	h := newInitializedHarness(t)
	windows := VoteWindows{
		Release: 7200,
		Mint:    7200,
		Resolve: 7200,
		Claim:   7200,
		Merge:   7200,
		Default: 3600,
	}
	require.NoError(t, h.engine.SetVoteWindows(testAdmin, windows))
	globals, err := h.engine.Globals()
	require.NoError(t, err)
	assert.Equal(t, uint32(7200), globals.VoteWindowRelease)
	assert.Equal(t, uint32(3600), globals.VoteWindowDefault)

	windows.Mint = MinVoteWindow - 1
	require.ErrorIs(
		t,
		h.engine.SetVoteWindows(testAdmin, windows),
		ErrInvalidInput,
	)
	windows.Mint = MaxVoteWindow + 1
	require.ErrorIs(
		t,
		h.engine.SetVoteWindows(testAdmin, windows),
		ErrInvalidInput,
	)
}

func TestSetMultipliers(t *testing.T) {
	h := newInitializedHarness(t)
	multipliers := Multipliers{
		Release:  50000000,
		AddClaim: 500000,
		// Zero disables emission for a type
		Mint: 0,
	}
	require.NoError(t, h.engine.SetMultipliers(testAdmin, multipliers))
	globals, err := h.engine.Globals()
	require.NoError(t, err)
	assert.Equal(t, uint64(50000000), globals.MultiplierRelease)
	assert.Equal(t, uint64(0), globals.MultiplierMint)

	multipliers.Release = MaxMultiplier + 1
	require.ErrorIs(
		t,
		h.engine.SetMultipliers(testAdmin, multipliers),
		ErrInvalidInput,
	)
}

func TestSetDistribution(t *testing.T) {
	h := newInitializedHarness(t)
	dist := Distribution{
		ApprovedAuthorBp:  6000,
		ApprovedVotersBp:  3000,
		ApprovedStakersBp: 1000,
		RejectedVotersBp:  4000,
		RejectedStakersBp: 6000,
	}
	require.NoError(t, h.engine.SetDistribution(testAdmin, dist))
	globals, err := h.engine.Globals()
	require.NoError(t, err)
	assert.Equal(t, uint64(6000), globals.ApprovedAuthorBp)
	assert.Equal(t, uint64(6000), globals.RejectedStakersBp)
}

func TestSetDistributionMustSum(t *testing.T) {
	h := newInitializedHarness(t)
	dist := Distribution{
		ApprovedAuthorBp:  6000,
		ApprovedVotersBp:  3000,
		ApprovedStakersBp: 999,
		RejectedVotersBp:  5000,
		RejectedStakersBp: 5000,
	}
	require.ErrorIs(
		t,
		h.engine.SetDistribution(testAdmin, dist),
		ErrInvalidInput,
	)
	dist.ApprovedStakersBp = 1000
	dist.RejectedStakersBp = 5001
	require.ErrorIs(
		t,
		h.engine.SetDistribution(testAdmin, dist),
		ErrInvalidInput,
	)
}

func TestPauseUnpause(t *testing.T) {
	h := newInitializedHarness(t)
	require.NoError(t, h.engine.Pause(testAdmin))
	globals, err := h.engine.Globals()
	require.NoError(t, err)
	assert.True(t, globals.Paused)

	// Pausing twice is an error, as is unpausing a running registry
	require.ErrorIs(t, h.engine.Pause(testAdmin), ErrInvalidInput)
	require.NoError(t, h.engine.Unpause(testAdmin))
	require.ErrorIs(t, h.engine.Unpause(testAdmin), ErrInvalidInput)
}

func TestAdminWorksWhilePaused(t *testing.T) {
	h := newInitializedHarness(t)
	require.NoError(t, h.engine.Pause(testAdmin))
	// Governance changes stay available during a pause
	require.NoError(t, h.engine.SetParams(testAdmin, 8000, 100, 50))
	require.NoError(t, h.engine.SetOracle(testAdmin, "oracle.next"))
	require.NoError(t, h.engine.Unpause(testAdmin))
}

func TestReset(t *testing.T) {
	h := newInitializedHarness(t)
	submitClaim(t, h, "doomed claim")
	require.NoError(t, h.engine.Reset(testAdmin))

	// The registry needs initializing again after a wipe
	_, err := h.engine.Globals()
	require.ErrorIs(t, err, ErrNotInitialized)
	require.NoError(t, h.engine.Initialize(testOracle, testToken))
}

func TestResetBlockedByStake(t *testing.T) {
	h := newInitializedHarness(t)
	h.fund(t, "alice", 100)
	require.NoError(t, h.engine.Stake("alice", hashOf("staked"), 100))
	require.ErrorIs(t, h.engine.Reset(testAdmin), ErrInvalidInput)
}

func TestResetDisabled(t *testing.T) {
	db, err := database.New(nil, t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	e, err := NewEngine(EngineConfig{
		Database:     db,
		AdminAccount: testAdmin,
	})
	require.NoError(t, err)
	require.NoError(t, e.Initialize(testOracle, testToken))
	require.ErrorIs(t, e.Reset(testAdmin), ErrUnauthorized)
}

func TestOracleUpdateReputation(t *testing.T) {
	h := newInitializedHarness(t)
	updates := []ReputationUpdate{
		{Account: "alice", Weight: 10},
		{Account: "bob", Weight: 20},
	}
	require.NoError(t, h.engine.UpdateReputation(testOracle, updates, 1))

	rep, err := h.db.GetReputation("bob", nil)
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Equal(t, uint32(20), rep.Weight)
	assert.Equal(t, uint64(1), rep.Round)

	globals, err := h.engine.Globals()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), globals.Round)
}

func TestOracleRoundMonotonic(t *testing.T) {
	h := newInitializedHarness(t)
	updates := []ReputationUpdate{{Account: "alice", Weight: 10}}
	require.NoError(t, h.engine.UpdateReputation(testOracle, updates, 5))

	// Replayed and stale rounds are rejected
	require.ErrorIs(
		t,
		h.engine.UpdateReputation(testOracle, updates, 5),
		ErrInvalidInput,
	)
	require.ErrorIs(
		t,
		h.engine.UpdateReputation(testOracle, updates, 3),
		ErrInvalidInput,
	)
	// Gaps are fine
	require.NoError(t, h.engine.UpdateReputation(testOracle, updates, 100))
}

func TestOracleOnly(t *testing.T) {
	h := newInitializedHarness(t)
	updates := []ReputationUpdate{{Account: "alice", Weight: 10}}
	require.ErrorIs(
		t,
		h.engine.UpdateReputation("mallory", updates, 1),
		ErrUnauthorized,
	)
	require.ErrorIs(
		t,
		h.engine.UpdateReputation(testAdmin, updates, 1),
		ErrUnauthorized,
	)
}

func TestOracleBatchValidation(t *testing.T) {
	h := newInitializedHarness(t)
	require.ErrorIs(
		t,
		h.engine.UpdateReputation(testOracle, nil, 1),
		ErrInvalidInput,
	)

	tooBig := make([]ReputationUpdate, MaxOracleBatch+1)
	for i := range tooBig {
		tooBig[i] = ReputationUpdate{Account: "acct", Weight: 1}
	}
	require.ErrorIs(
		t,
		h.engine.UpdateReputation(testOracle, tooBig, 1),
		ErrInvalidInput,
	)

	require.ErrorIs(
		t,
		h.engine.UpdateReputation(
			testOracle,
			[]ReputationUpdate{{Account: "alice", Weight: 0}},
			1,
		),
		ErrInvalidInput,
	)
	require.ErrorIs(
		t,
		h.engine.UpdateReputation(
			testOracle,
			[]ReputationUpdate{{Account: "alice", Weight: MaxOracleWeight + 1}},
			1,
		),
		ErrInvalidInput,
	)
}

func TestOracleNotPauseGated(t *testing.T) {
	h := newInitializedHarness(t)
	require.NoError(t, h.engine.Pause(testAdmin))
	require.NoError(t, h.engine.UpdateReputation(
		testOracle,
		[]ReputationUpdate{{Account: "alice", Weight: 10}},
		1,
	))
}

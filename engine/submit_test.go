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
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitBasic(t *testing.T) {
	h := newInitializedHarness(t)
	hash := hashOf("first event")
	err := h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		hash,
		nil,
		h.now,
		[]string{"genre", "blues"},
		nil,
	)
	require.NoError(t, err)

	anchor, err := h.db.GetAnchorByHash(hash, nil)
	require.NoError(t, err)
	require.NotNil(t, anchor)
	assert.Equal(t, "alice", anchor.Author)
	assert.Equal(t, uint8(EventTypeAddClaim), anchor.Type)
	assert.False(t, anchor.Finalized)
	assert.Equal(t, uint64(1), anchor.SubmissionX)
	assert.Equal(t, []string{"genre", "blues"}, anchor.TagList())
	assert.Equal(
		t,
		h.now+uint64(claimWindow(t, h)),
		anchor.ExpiresAt,
	)
}

// claimWindow reads the configured claim window so window assertions track
// governance state instead of hardcoding it
func claimWindow(t *testing.T, h *testHarness) uint32 {
	t.Helper()
	globals, err := h.engine.Globals()
	require.NoError(t, err)
	return globals.VoteWindowClaim
}

func TestSubmitDuplicateHash(t *testing.T) {
	h := newInitializedHarness(t)
	hash := hashOf("dup")
	require.NoError(
		t,
		h.engine.Submit("alice", EventTypeAddClaim, hash, nil, h.now, nil, nil),
	)
	err := h.engine.Submit(
		"bob",
		EventTypeAddClaim,
		hash,
		nil,
		h.now,
		nil,
		nil,
	)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSubmitValidation(t *testing.T) {
	h := newInitializedHarness(t)
	hash := hashOf("valid")

	err := h.engine.Submit("", EventTypeAddClaim, hash, nil, h.now, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	err = h.engine.Submit("alice", 0, hash, nil, h.now, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	err = h.engine.Submit("alice", 100, hash, nil, h.now, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	err = h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		[]byte("short"),
		nil,
		h.now,
		nil,
		nil,
	)
	require.ErrorIs(t, err, ErrInvalidInput)

	// Timestamp before the epoch floor
	err = h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		hash,
		nil,
		MinOriginTime-1,
		nil,
		nil,
	)
	require.ErrorIs(t, err, ErrInvalidInput)

	// Timestamp too far in the future
	err = h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		hash,
		nil,
		h.now+MaxFutureSkew+1,
		nil,
		nil,
	)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitTagValidation(t *testing.T) {
	h := newInitializedHarness(t)

	tooMany := make([]string, MaxTags+1)
	for i := range tooMany {
		tooMany[i] = "tag" + strings.Repeat("x", 3)
	}
	err := h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		hashOf("tags-1"),
		nil,
		h.now,
		tooMany,
		nil,
	)
	require.ErrorIs(t, err, ErrInvalidInput)

	err = h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		hashOf("tags-2"),
		nil,
		h.now,
		[]string{"ab"},
		nil,
	)
	require.ErrorIs(t, err, ErrInvalidInput)

	err = h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		hashOf("tags-3"),
		nil,
		h.now,
		[]string{strings.Repeat("y", MaxTagLen+1)},
		nil,
	)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitUnknownParent(t *testing.T) {
	h := newInitializedHarness(t)
	err := h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		hashOf("child"),
		hashOf("missing parent"),
		h.now,
		nil,
		nil,
	)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitParentChain(t *testing.T) {
	h := newInitializedHarness(t)
	parent := hashOf("parent")
	require.NoError(
		t,
		h.engine.Submit("alice", EventTypeMintEntity, parent, nil, h.now, nil, nil),
	)
	child := hashOf("child")
	require.NoError(
		t,
		h.engine.Submit("bob", EventTypeAddClaim, child, parent, h.now, nil, nil),
	)
	anchor, err := h.db.GetAnchorByHash(child, nil)
	require.NoError(t, err)
	require.NotNil(t, anchor)
	assert.Equal(t, parent, anchor.Parent)
}

func TestSubmitBodyArchival(t *testing.T) {
	h := newInitializedHarness(t)
	body := []byte(`{"claim":"released 1959"}`)
	sum := sha256.Sum256(body)
	require.NoError(
		t,
		h.engine.Submit("alice", EventTypeAddClaim, sum[:], nil, h.now, nil, body),
	)

	stored, err := h.db.GetEventBody(sum[:], nil)
	require.NoError(t, err)
	assert.Equal(t, body, stored)
}

func TestSubmitBodyHashMismatch(t *testing.T) {
	h := newInitializedHarness(t)
	err := h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		hashOf("claimed hash"),
		nil,
		h.now,
		nil,
		[]byte("different body"),
	)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitCounterAdvancesOnlyForContentTypes(t *testing.T) {
	h := newInitializedHarness(t)

	// A non-content type leaves the counter alone
	require.NoError(
		t,
		h.engine.Submit("alice", 10, hashOf("discussion"), nil, h.now, nil, nil),
	)
	globals, err := h.engine.Globals()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), globals.X)

	// Content types advance it by one each
	require.NoError(
		t,
		h.engine.Submit(
			"alice",
			EventTypeAddClaim,
			hashOf("content-1"),
			nil,
			h.now,
			nil,
			nil,
		),
	)
	require.NoError(
		t,
		h.engine.Submit(
			"bob",
			EventTypeMintEntity,
			hashOf("content-2"),
			nil,
			h.now,
			nil,
			nil,
		),
	)
	globals, err = h.engine.Globals()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), globals.X)
}

func TestSubmitPricesOnPreAdvanceCounter(t *testing.T) {
	h := newInitializedHarness(t)
	// First content submission prices at x=1, second at x=2
	require.NoError(
		t,
		h.engine.Submit(
			"alice",
			EventTypeAddClaim,
			hashOf("x1"),
			nil,
			h.now,
			nil,
			nil,
		),
	)
	require.NoError(
		t,
		h.engine.Submit(
			"alice",
			EventTypeAddClaim,
			hashOf("x2"),
			nil,
			h.now,
			nil,
			nil,
		),
	)
	first, err := h.db.GetAnchorByHash(hashOf("x1"), nil)
	require.NoError(t, err)
	second, err := h.db.GetAnchorByHash(hashOf("x2"), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.SubmissionX)
	assert.Equal(t, uint64(2), second.SubmissionX)

	// x=1 mints nothing; x=2 mints on the curve into escrow
	assert.Equal(t, uint64(0), first.EscrowedAmount)
	assert.Positive(t, second.EscrowedAmount)
	assert.Equal(
		t,
		second.EscrowedAmount,
		h.tokens.Balance(DefaultEscrowAccount),
	)
}

func TestSubmitNonContentTypeNoEscrow(t *testing.T) {
	h := newInitializedHarness(t)
	require.NoError(
		t,
		h.engine.Submit("alice", 50, hashOf("vote event"), nil, h.now, nil, nil),
	)
	anchor, err := h.db.GetAnchorByHash(hashOf("vote event"), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), anchor.EscrowedAmount)
	assert.Equal(t, uint64(0), h.tokens.Balance(DefaultEscrowAccount))
}

func TestSubmitWhilePaused(t *testing.T) {
	h := newInitializedHarness(t)
	require.NoError(t, h.engine.Pause(testAdmin))
	err := h.engine.Submit(
		"alice",
		EventTypeAddClaim,
		hashOf("paused"),
		nil,
		h.now,
		nil,
		nil,
	)
	require.ErrorIs(t, err, ErrPaused)
}

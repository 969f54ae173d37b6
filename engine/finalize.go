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
	"fmt"
	"math/bits"

	"github.com/blinklabs-io/polaris/database"
	"github.com/blinklabs-io/polaris/database/models"
)

// Finalize closes an anchor's voting window, tallies weighted votes, decides
// accept/reject against the approval threshold, and distributes the escrow
// reserved at submission time. Anyone may call it once the window has
// elapsed. The finalized transition is irreversible; a second call on the
// same hash always fails.
func (e *Engine) Finalize(hash []byte) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if len(hash) != sha256.Size {
		return fmt.Errorf("%w: hash must be 32 bytes", ErrInvalidInput)
	}

	var effects []tokenEffect
	var evt FinalizeEvent
	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		globals, err := e.loadGlobals(txn)
		if err != nil {
			return err
		}
		if globals.Paused {
			return ErrPaused
		}
		anchor, err := e.db.GetAnchorByHash(hash, txn)
		if err != nil {
			return err
		}
		if anchor == nil {
			return fmt.Errorf("%w: anchor", ErrNotFound)
		}
		if anchor.Finalized {
			return ErrAlreadyFinalized
		}
		if e.now() < anchor.ExpiresAt {
			return ErrWindowOpen
		}
		if requiresAttestation(anchor.Type) {
			attested, err := e.db.HasAttestation(hash, txn)
			if err != nil {
				return err
			}
			if !attested {
				return fmt.Errorf(
					"%w: attestation required",
					ErrNotFound,
				)
			}
		}

		votes, err := e.db.GetVotesByAnchor(hash, txn)
		if err != nil {
			return err
		}
		var up, down uint64
		for _, vote := range votes {
			switch vote.Value {
			case models.VoteApprove:
				up += uint64(vote.Weight)
			case models.VoteReject:
				down += uint64(vote.Weight)
			}
			// Neutral votes are excluded from the tally
		}
		total := up + down

		// Threshold compare in basis points with 128-bit intermediates
		accepted := total > 0 &&
			cmp128(up, 10000, total, globals.ApprovalThresholdBp) >= 0

		escrowed := anchor.EscrowedAmount
		evt = FinalizeEvent{
			Hash:      hash,
			Accepted:  accepted,
			UpVotes:   up,
			DownVotes: down,
			Escrowed:  escrowed,
		}

		if escrowed > 0 {
			if accepted {
				authorShare := mulDiv(
					escrowed,
					globals.ApprovedAuthorBp,
					10000,
				)
				votersShare := escrowed - authorShare
				if authorShare > 0 {
					effects = append(effects, moveEffect(
						e.escrowAccount,
						anchor.Author,
						authorShare,
						"approved submission reward",
					))
				}
				if votersShare > 0 {
					distributeToVoters(
						votes,
						models.VoteApprove,
						votersShare,
						e.escrowAccount,
						&effects,
					)
				}
				evt.AuthorShare = authorShare
				evt.VotersShare = votersShare
			} else {
				votersShare := mulDiv(
					escrowed,
					globals.RejectedVotersBp,
					10000,
				)
				stakersShare := escrowed - votersShare
				if votersShare > 0 {
					distributeToVoters(
						votes,
						models.VoteReject,
						votersShare,
						e.escrowAccount,
						&effects,
					)
				}
				if stakersShare > 0 {
					if err := e.distributeToStakers(stakersShare, txn); err != nil {
						return err
					}
				}
				evt.VotersShare = votersShare
				evt.StakersShare = stakersShare
			}
		}

		if err := e.db.FinalizeAnchor(anchor.ID, txn); err != nil {
			return err
		}
		if e.metrics != nil {
			outcome := "rejected"
			if accepted {
				outcome = "accepted"
			}
			e.metrics.finalizeTotal.WithLabelValues(outcome).Inc()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := e.dispatch(effects); err != nil {
		return err
	}
	e.publish(FinalizeEventType, evt)
	e.logger.Debug(
		"anchor finalized",
		"hash", fmt.Sprintf("%x", hash),
		"accepted", evt.Accepted,
		"escrowed", evt.Escrowed,
	)
	return nil
}

// distributeToVoters queues equal shares of total for every voter whose
// vote matches target. Counting and payment are separated so per-account
// amounts are fixed before any external call occurs. An empty winning voter
// set fails open: the share is silently not distributed.
func distributeToVoters(
	votes []models.Vote,
	target int8,
	total uint64,
	escrowAccount string,
	effects *[]tokenEffect,
) {
	// First pass: count matching voters
	var count uint64
	for _, vote := range votes {
		if vote.Value == target {
			count++
		}
	}
	if count == 0 {
		return
	}
	share := total / count
	if share == 0 {
		return
	}
	memo := "approval vote reward"
	if target == models.VoteReject {
		memo = "rejection vote reward"
	}
	// Second pass: queue every share
	for _, vote := range votes {
		if vote.Value == target {
			*effects = append(*effects, moveEffect(
				escrowAccount,
				vote.Voter,
				share,
				memo,
			))
		}
	}
}

// mulDiv computes a*b/den with a 128-bit intermediate, saturating instead of
// wrapping when the quotient exceeds 64 bits
func mulDiv(a, b, den uint64) uint64 {
	if den == 0 {
		return 0
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		// Quotient would overflow uint64; saturate
		return ^uint64(0)
	}
	quo, _ := bits.Div64(hi, lo, den)
	return quo
}

// cmp128 compares a*b against c*d without overflow
func cmp128(a, b, c, d uint64) int {
	hi1, lo1 := bits.Mul64(a, b)
	hi2, lo2 := bits.Mul64(c, d)
	if hi1 != hi2 {
		if hi1 > hi2 {
			return 1
		}
		return -1
	}
	if lo1 != lo2 {
		if lo1 > lo2 {
			return 1
		}
		return -1
	}
	return 0
}

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

	"github.com/blinklabs-io/polaris/database"
	"github.com/blinklabs-io/polaris/database/models"
)

// Vote casts or changes a reputation-weighted vote on an open anchor.
// Weight is the voter's reputation capped at the configured maximum, or 1
// for accounts the oracle has never ranked. Zero is a valid neutral value
// excluded from tallies. Re-voting before the window closes overwrites the
// prior record.
func (e *Engine) Vote(voter string, hash []byte, value int8) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if voter == "" {
		return fmt.Errorf("%w: empty voter", ErrInvalidInput)
	}
	if len(hash) != sha256.Size {
		return fmt.Errorf("%w: hash must be 32 bytes", ErrInvalidInput)
	}
	if value < models.VoteReject || value > models.VoteApprove {
		return fmt.Errorf(
			"%w: vote value must be -1, 0, or 1",
			ErrInvalidInput,
		)
	}

	var evt VoteEvent
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
		if e.now() >= anchor.ExpiresAt {
			return ErrWindowClosed
		}

		// Resolve vote weight from reputation, capped to bound whale
		// influence. Unranked voters get baseline weight 1.
		weight := uint32(1)
		reputation, err := e.db.GetReputation(voter, txn)
		if err != nil {
			return err
		}
		if reputation != nil {
			weight = reputation.Weight
			if weight > globals.MaxVoteWeight {
				weight = globals.MaxVoteWeight
			}
		}

		vote, err := e.db.GetVote(voter, hash, txn)
		if err != nil {
			return err
		}
		if vote == nil {
			vote = &models.Vote{
				AnchorHash: hash,
				Voter:      voter,
			}
		}
		vote.Value = value
		vote.Weight = weight
		vote.CastAt = e.now()
		if err := e.db.SetVote(vote, txn); err != nil {
			return err
		}

		evt = VoteEvent{
			Voter:  voter,
			Hash:   hash,
			Value:  value,
			Weight: weight,
		}
		if e.metrics != nil {
			e.metrics.votesTotal.Inc()
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.publish(VoteEventType, evt)
	return nil
}

// Attest records a trusted confirmation of a high-value submission.
// Eligible attestors are the oracle, the council account, and any account
// whose reputation meets the attestor threshold. Attestations are
// append-only; finalization only checks existence-for-hash.
func (e *Engine) Attest(
	attestor string,
	hash []byte,
	confirmedType uint8,
) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if attestor == "" {
		return fmt.Errorf("%w: empty attestor", ErrInvalidInput)
	}
	if len(hash) != sha256.Size {
		return fmt.Errorf("%w: hash must be 32 bytes", ErrInvalidInput)
	}

	var evt AttestationEvent
	txn := e.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		globals, err := e.loadGlobals(txn)
		if err != nil {
			return err
		}
		authorized, err := e.isAuthorizedAttestor(attestor, globals, txn)
		if err != nil {
			return err
		}
		if !authorized {
			return fmt.Errorf("%w: not an authorized attestor", ErrUnauthorized)
		}
		anchor, err := e.db.GetAnchorByHash(hash, txn)
		if err != nil {
			return err
		}
		if anchor == nil {
			return fmt.Errorf("%w: anchor", ErrNotFound)
		}
		if anchor.Type != confirmedType {
			return fmt.Errorf("%w: event type mismatch", ErrInvalidInput)
		}
		if anchor.Finalized {
			return ErrAlreadyFinalized
		}
		attestation := &models.Attestation{
			AnchorHash: hash,
			Attestor:   attestor,
			Type:       confirmedType,
			CreatedAt:  e.now(),
		}
		if err := e.db.AddAttestation(attestation, txn); err != nil {
			return err
		}
		evt = AttestationEvent{
			Attestor: attestor,
			Hash:     hash,
			Type:     confirmedType,
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.publish(AttestationEventType, evt)
	return nil
}

// isAuthorizedAttestor checks attestor eligibility: the oracle, the council
// account, or reputation at or above the configured threshold
func (e *Engine) isAuthorizedAttestor(
	account string,
	globals *models.Globals,
	txn *database.Txn,
) (bool, error) {
	if account == globals.OracleAccount {
		return true, nil
	}
	if account == e.councilAccount {
		return true, nil
	}
	reputation, err := e.db.GetReputation(account, txn)
	if err != nil {
		return false, err
	}
	if reputation != nil &&
		reputation.Weight >= globals.AttestorThreshold {
		return true, nil
	}
	return false, nil
}

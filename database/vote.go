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

package database

import (
	"github.com/blinklabs-io/polaris/database/models"
)

// GetVote returns a voter's live vote on an anchor, or nil when none exists
func (d *Database) GetVote(
	voter string,
	anchorHash []byte,
	txn *Txn,
) (*models.Vote, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetVote(voter, anchorHash, txn.Metadata())
}

// SetVote saves a vote record, inserting or updating in place
func (d *Database) SetVote(vote *models.Vote, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.SetVote(vote, txn.Metadata())
}

// GetVotesByAnchor returns all votes on an anchor in insertion order
func (d *Database) GetVotesByAnchor(
	anchorHash []byte,
	txn *Txn,
) ([]models.Vote, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetVotesByAnchor(anchorHash, txn.Metadata())
}

// AddAttestation inserts a new attestation record
func (d *Database) AddAttestation(
	attestation *models.Attestation,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.AddAttestation(attestation, txn.Metadata())
}

// HasAttestation returns whether any attestation exists for an anchor hash
func (d *Database) HasAttestation(
	anchorHash []byte,
	txn *Txn,
) (bool, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.HasAttestation(anchorHash, txn.Metadata())
}

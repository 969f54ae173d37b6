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

// GetStake returns an account's stake on a node, or nil when none exists
func (d *Database) GetStake(
	account string,
	nodeID []byte,
	txn *Txn,
) (*models.Stake, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetStake(account, nodeID, txn.Metadata())
}

// SetStake saves a stake record, inserting or updating in place
func (d *Database) SetStake(stake *models.Stake, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.SetStake(stake, txn.Metadata())
}

// DeleteStake removes a stake record
func (d *Database) DeleteStake(stake *models.Stake, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.DeleteStake(stake, txn.Metadata())
}

// GetNodeAggregate returns the stake aggregate for a node, or nil when the
// node has no stakers
func (d *Database) GetNodeAggregate(
	nodeID []byte,
	txn *Txn,
) (*models.NodeAggregate, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetNodeAggregate(nodeID, txn.Metadata())
}

// SetNodeAggregate saves a node stake aggregate
func (d *Database) SetNodeAggregate(
	aggregate *models.NodeAggregate,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.SetNodeAggregate(aggregate, txn.Metadata())
}

// DeleteNodeAggregate removes a node stake aggregate
func (d *Database) DeleteNodeAggregate(
	aggregate *models.NodeAggregate,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.DeleteNodeAggregate(aggregate, txn.Metadata())
}

// GetNodeAggregates returns all node stake aggregates in deterministic order
func (d *Database) GetNodeAggregates(
	txn *Txn,
) ([]models.NodeAggregate, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetNodeAggregates(txn.Metadata())
}

// GetStakerIndex returns the staker index entry for an (account, node) pair,
// or nil when none exists
func (d *Database) GetStakerIndex(
	account string,
	nodeID []byte,
	txn *Txn,
) (*models.StakerIndex, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetStakerIndex(account, nodeID, txn.Metadata())
}

// SetStakerIndex saves a staker index entry
func (d *Database) SetStakerIndex(
	entry *models.StakerIndex,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.SetStakerIndex(entry, txn.Metadata())
}

// DeleteStakerIndex removes a staker index entry
func (d *Database) DeleteStakerIndex(
	entry *models.StakerIndex,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.DeleteStakerIndex(entry, txn.Metadata())
}

// GetStakersByNode returns all staker index entries for a node, ordered by
// account
func (d *Database) GetStakersByNode(
	nodeID []byte,
	txn *Txn,
) ([]models.StakerIndex, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetStakersByNode(nodeID, txn.Metadata())
}

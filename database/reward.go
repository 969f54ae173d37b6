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

// GetPendingReward returns an account's accrued reward credit for a node, or
// nil when none exists
func (d *Database) GetPendingReward(
	account string,
	nodeID []byte,
	txn *Txn,
) (*models.PendingReward, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPendingReward(account, nodeID, txn.Metadata())
}

// SetPendingReward saves a pending reward record
func (d *Database) SetPendingReward(
	reward *models.PendingReward,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.SetPendingReward(reward, txn.Metadata())
}

// DeletePendingReward removes a pending reward record
func (d *Database) DeletePendingReward(
	reward *models.PendingReward,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.DeletePendingReward(reward, txn.Metadata())
}

// GetPendingRewardsByAccount returns all pending reward records for an
// account, ordered by node ID
func (d *Database) GetPendingRewardsByAccount(
	account string,
	txn *Txn,
) ([]models.PendingReward, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetPendingRewardsByAccount(account, txn.Metadata())
}

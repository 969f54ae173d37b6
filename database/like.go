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

// GetLike returns an account's like on a node, or nil when none exists
func (d *Database) GetLike(
	account string,
	nodeID []byte,
	txn *Txn,
) (*models.Like, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetLike(account, nodeID, txn.Metadata())
}

// SetLike saves a like record
func (d *Database) SetLike(like *models.Like, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.SetLike(like, txn.Metadata())
}

// DeleteLike removes a like record
func (d *Database) DeleteLike(like *models.Like, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.DeleteLike(like, txn.Metadata())
}

// GetLikeAggregate returns the like counter for a node, or nil when the
// node has never been liked
func (d *Database) GetLikeAggregate(
	nodeID []byte,
	txn *Txn,
) (*models.LikeAggregate, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetLikeAggregate(nodeID, txn.Metadata())
}

// SetLikeAggregate saves a like counter
func (d *Database) SetLikeAggregate(
	aggregate *models.LikeAggregate,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.SetLikeAggregate(aggregate, txn.Metadata())
}

// DeleteLikeAggregate removes a like counter
func (d *Database) DeleteLikeAggregate(
	aggregate *models.LikeAggregate,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.DeleteLikeAggregate(aggregate, txn.Metadata())
}

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

// GetReputation returns an account's reputation record, or nil when the
// oracle has never assigned it a weight
func (d *Database) GetReputation(
	account string,
	txn *Txn,
) (*models.Reputation, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetReputation(account, txn.Metadata())
}

// SetReputation saves a reputation record, inserting or updating in place
func (d *Database) SetReputation(
	reputation *models.Reputation,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.SetReputation(reputation, txn.Metadata())
}

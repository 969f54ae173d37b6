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

// GetGlobals returns the registry globals singleton, or nil when the
// registry has not been initialized
func (d *Database) GetGlobals(txn *Txn) (*models.Globals, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetGlobals(txn.Metadata())
}

// SetGlobals saves the registry globals singleton
func (d *Database) SetGlobals(globals *models.Globals, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.SetGlobals(globals, txn.Metadata())
}

// Wipe clears all registry state from both stores
func (d *Database) Wipe(txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	if err := d.metadata.Wipe(txn.Metadata()); err != nil {
		return err
	}
	return d.blob.Wipe(txn.Blob())
}

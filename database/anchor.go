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
	"errors"

	"github.com/blinklabs-io/polaris/database/models"
	"github.com/blinklabs-io/polaris/database/types"
)

// AddAnchor inserts a new anchor record
func (d *Database) AddAnchor(anchor *models.Anchor, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.AddAnchor(anchor, txn.Metadata())
}

// GetAnchorByHash returns the anchor with the given content hash, or nil
// when no such anchor exists
func (d *Database) GetAnchorByHash(
	hash []byte,
	txn *Txn,
) (*models.Anchor, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.GetAnchorByHash(hash, txn.Metadata())
}

// FinalizeAnchor marks an anchor as finalized and zeroes its escrow
func (d *Database) FinalizeAnchor(anchorID uint64, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.FinalizeAnchor(anchorID, txn.Metadata())
}

// CountAnchors returns the total number of anchor records
func (d *Database) CountAnchors(txn *Txn) (int64, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	return d.metadata.CountAnchors(txn.Metadata())
}

// AddEventBody archives a raw event body in the blob store, keyed by its
// content hash
func (d *Database) AddEventBody(hash, body []byte, txn *Txn) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	return d.blob.Set(txn.Blob(), types.EventBodyKey(hash), body)
}

// GetEventBody returns an archived event body, or nil when the body was
// never archived
func (d *Database) GetEventBody(hash []byte, txn *Txn) ([]byte, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Commit() //nolint:errcheck
	}
	body, err := d.blob.Get(txn.Blob(), types.EventBodyKey(hash))
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return body, nil
}

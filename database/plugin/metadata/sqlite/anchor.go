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

package sqlite

import (
	"errors"

	"github.com/blinklabs-io/polaris/database/models"
	"gorm.io/gorm"
)

// AddAnchor inserts a new anchor record
func (d *MetadataStoreSqlite) AddAnchor(
	anchor *models.Anchor,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Create(anchor); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetAnchorByHash returns the anchor with the given content hash, or nil when
// no such anchor exists
func (d *MetadataStoreSqlite) GetAnchorByHash(
	hash []byte,
	txn *gorm.DB,
) (*models.Anchor, error) {
	ret := &models.Anchor{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("hash = ?", hash).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// FinalizeAnchor marks an anchor as finalized and zeroes its escrow
func (d *MetadataStoreSqlite) FinalizeAnchor(
	anchorID uint64,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Model(&models.Anchor{}).
		Where("id = ?", anchorID).
		Updates(map[string]any{
			"finalized":       true,
			"escrowed_amount": 0,
		})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CountAnchors returns the total number of anchor records
func (d *MetadataStoreSqlite) CountAnchors(txn *gorm.DB) (int64, error) {
	if txn == nil {
		txn = d.DB()
	}
	var count int64
	result := txn.Model(&models.Anchor{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

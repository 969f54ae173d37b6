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

// GetPendingReward returns an account's accrued reward credit for a node, or
// nil when none exists
func (d *MetadataStoreSqlite) GetPendingReward(
	account string,
	nodeID []byte,
	txn *gorm.DB,
) (*models.PendingReward, error) {
	ret := &models.PendingReward{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("account = ? AND node_id = ?", account, nodeID).
		First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetPendingReward saves a pending reward record, inserting or updating in
// place
func (d *MetadataStoreSqlite) SetPendingReward(
	reward *models.PendingReward,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Save(reward); result.Error != nil {
		return result.Error
	}
	return nil
}

// DeletePendingReward removes a pending reward record
func (d *MetadataStoreSqlite) DeletePendingReward(
	reward *models.PendingReward,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Delete(reward); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetPendingRewardsByAccount returns all pending reward records for an
// account, ordered by node ID for deterministic enumeration
func (d *MetadataStoreSqlite) GetPendingRewardsByAccount(
	account string,
	txn *gorm.DB,
) ([]models.PendingReward, error) {
	if txn == nil {
		txn = d.DB()
	}
	var ret []models.PendingReward
	result := txn.Where("account = ?", account).
		Order("node_id ASC").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

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

// GetStake returns an account's stake on a node, or nil when none exists
func (d *MetadataStoreSqlite) GetStake(
	account string,
	nodeID []byte,
	txn *gorm.DB,
) (*models.Stake, error) {
	ret := &models.Stake{}
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

// SetStake saves a stake record, inserting or updating in place
func (d *MetadataStoreSqlite) SetStake(
	stake *models.Stake,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Save(stake); result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteStake removes a stake record
func (d *MetadataStoreSqlite) DeleteStake(
	stake *models.Stake,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Delete(stake); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetNodeAggregate returns the stake aggregate for a node, or nil when the
// node has no stakers
func (d *MetadataStoreSqlite) GetNodeAggregate(
	nodeID []byte,
	txn *gorm.DB,
) (*models.NodeAggregate, error) {
	ret := &models.NodeAggregate{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("node_id = ?", nodeID).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetNodeAggregate saves a node stake aggregate, inserting or updating in place
func (d *MetadataStoreSqlite) SetNodeAggregate(
	aggregate *models.NodeAggregate,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Save(aggregate); result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteNodeAggregate removes a node stake aggregate
func (d *MetadataStoreSqlite) DeleteNodeAggregate(
	aggregate *models.NodeAggregate,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Delete(aggregate); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetNodeAggregates returns all node stake aggregates in deterministic order
func (d *MetadataStoreSqlite) GetNodeAggregates(
	txn *gorm.DB,
) ([]models.NodeAggregate, error) {
	if txn == nil {
		txn = d.DB()
	}
	var ret []models.NodeAggregate
	result := txn.Order("node_id ASC").Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// GetStakerIndex returns the staker index entry for an (account, node) pair,
// or nil when none exists
func (d *MetadataStoreSqlite) GetStakerIndex(
	account string,
	nodeID []byte,
	txn *gorm.DB,
) (*models.StakerIndex, error) {
	ret := &models.StakerIndex{}
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

// SetStakerIndex saves a staker index entry, inserting or updating in place
func (d *MetadataStoreSqlite) SetStakerIndex(
	entry *models.StakerIndex,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Save(entry); result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteStakerIndex removes a staker index entry
func (d *MetadataStoreSqlite) DeleteStakerIndex(
	entry *models.StakerIndex,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Delete(entry); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetStakersByNode returns all staker index entries for a node, ordered by
// account for deterministic enumeration
func (d *MetadataStoreSqlite) GetStakersByNode(
	nodeID []byte,
	txn *gorm.DB,
) ([]models.StakerIndex, error) {
	if txn == nil {
		txn = d.DB()
	}
	var ret []models.StakerIndex
	result := txn.Where("node_id = ?", nodeID).
		Order("account ASC").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

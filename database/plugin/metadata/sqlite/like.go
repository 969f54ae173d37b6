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

// GetLike returns an account's like on a node, or nil when none exists
func (d *MetadataStoreSqlite) GetLike(
	account string,
	nodeID []byte,
	txn *gorm.DB,
) (*models.Like, error) {
	ret := &models.Like{}
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

// SetLike saves a like record, inserting or updating in place
func (d *MetadataStoreSqlite) SetLike(
	like *models.Like,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Save(like); result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteLike removes a like record
func (d *MetadataStoreSqlite) DeleteLike(
	like *models.Like,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Delete(like); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetLikeAggregate returns the like counter for a node, or nil when the node
// has never been liked
func (d *MetadataStoreSqlite) GetLikeAggregate(
	nodeID []byte,
	txn *gorm.DB,
) (*models.LikeAggregate, error) {
	ret := &models.LikeAggregate{}
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

// SetLikeAggregate saves a like counter, inserting or updating in place
func (d *MetadataStoreSqlite) SetLikeAggregate(
	aggregate *models.LikeAggregate,
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

// DeleteLikeAggregate removes a like counter
func (d *MetadataStoreSqlite) DeleteLikeAggregate(
	aggregate *models.LikeAggregate,
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

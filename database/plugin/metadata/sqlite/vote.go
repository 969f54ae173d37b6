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

// GetVote returns a voter's live vote on an anchor, or nil when none exists
func (d *MetadataStoreSqlite) GetVote(
	voter string,
	anchorHash []byte,
	txn *gorm.DB,
) (*models.Vote, error) {
	ret := &models.Vote{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("voter = ? AND anchor_hash = ?", voter, anchorHash).
		First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetVote saves a vote record, inserting or updating in place
func (d *MetadataStoreSqlite) SetVote(
	vote *models.Vote,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Save(vote); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetVotesByAnchor returns all votes on an anchor in insertion order
func (d *MetadataStoreSqlite) GetVotesByAnchor(
	anchorHash []byte,
	txn *gorm.DB,
) ([]models.Vote, error) {
	if txn == nil {
		txn = d.DB()
	}
	var ret []models.Vote
	result := txn.Where("anchor_hash = ?", anchorHash).
		Order("id ASC").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

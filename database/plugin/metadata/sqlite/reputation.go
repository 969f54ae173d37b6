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

// GetReputation returns an account's reputation record, or nil when the
// account has never received a weight from the oracle
func (d *MetadataStoreSqlite) GetReputation(
	account string,
	txn *gorm.DB,
) (*models.Reputation, error) {
	ret := &models.Reputation{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("account = ?", account).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetReputation saves a reputation record, inserting or updating in place
func (d *MetadataStoreSqlite) SetReputation(
	reputation *models.Reputation,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.DB()
	}
	if result := txn.Save(reputation); result.Error != nil {
		return result.Error
	}
	return nil
}
